package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
)

func TestEventMetricsCollector_TaskCompleted(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	xpBefore := testutil.ToFloat64(XPAwarded.WithLabelValues(SourceTask))
	bonusBefore := testutil.ToFloat64(XPAwarded.WithLabelValues(SourceStreakBonus))
	goldBefore := testutil.ToFloat64(GoldAwarded)
	dailyBefore := testutil.ToFloat64(TasksCompleted.WithLabelValues("daily"))

	result := domain.CompletionResult{
		Task:       domain.Task{ID: "t1", Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyMedium},
		XPGained:   20,
		GoldGained: 10,
		BonusXP:    50,
	}
	require.NoError(t, bus.Publish(context.Background(), event.NewTaskCompletedEvent("u1", result)))

	assert.Equal(t, xpBefore+20, testutil.ToFloat64(XPAwarded.WithLabelValues(SourceTask)))
	assert.Equal(t, bonusBefore+50, testutil.ToFloat64(XPAwarded.WithLabelValues(SourceStreakBonus)))
	assert.Equal(t, goldBefore+10, testutil.ToFloat64(GoldAwarded))
	assert.Equal(t, dailyBefore+1, testutil.ToFloat64(TasksCompleted.WithLabelValues("daily")))
}

func TestEventMetricsCollector_LevelUpCountsEveryLevel(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	before := testutil.ToFloat64(LevelUps)
	require.NoError(t, bus.Publish(context.Background(), event.NewLevelUpEvent("u1", 1, 4, "task_completion")))

	assert.Equal(t, before+3, testutil.ToFloat64(LevelUps))
}

func TestEventMetricsCollector_DailyAudit(t *testing.T) {
	c := NewEventMetricsCollector()

	resetBefore := testutil.ToFloat64(StreaksReset)
	reopenedBefore := testutil.ToFloat64(DailiesReopened)

	evt := event.NewDailyAuditCompleteEvent(time.Now(), domain.AuditReport{StreaksReset: 4, DailiesReopened: 2})
	require.NoError(t, c.HandleEvent(context.Background(), evt))

	assert.Equal(t, resetBefore+4, testutil.ToFloat64(StreaksReset))
	assert.Equal(t, reopenedBefore+2, testutil.ToFloat64(DailiesReopened))
}

func TestEventMetricsCollector_BadPayloadCountsError(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.LevelUp)))

	err := c.HandleEvent(context.Background(), event.Event{Type: event.LevelUp, Payload: func() {}})

	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.LevelUp))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/tasks/{taskID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/tasks/{taskID}", "418")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}
