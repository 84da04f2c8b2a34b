package handler

import (
	"net/http"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/task"
)

// HandleXPHistory sums the caller's XP gains per day, week or month
// @Summary XP history
// @Description from and to are YYYY-MM-DD days in the game timezone, both inclusive. Defaults to the last 30 days by day.
// @Tags analytics
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param from query string false "First day"
// @Param to query string false "Last day"
// @Param interval query string false "day, week or month"
// @Success 200 {object} DataResponse{data=[]domain.XPHistoryPoint}
// @Failure 400 {object} ErrorResponse
// @Router /analytics/xp [get]
func (h *TaskHandler) HandleXPHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	log := logger.FromContext(r.Context())
	q := r.URL.Query()

	interval, err := domain.ParseInterval(q.Get("interval"))
	if err != nil {
		log.Warn("Invalid XP history interval", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidQuery)
		return
	}

	to := h.now().In(h.loc)
	if raw := q.Get("to"); raw != "" {
		if to, err = time.ParseInLocation(time.DateOnly, raw, h.loc); err != nil {
			log.Warn("Invalid XP history end", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidQuery)
			return
		}
	}
	from := to.AddDate(0, 0, -(task.DefaultHistoryDays - 1))
	if raw := q.Get("from"); raw != "" {
		if from, err = time.ParseInLocation(time.DateOnly, raw, h.loc); err != nil {
			log.Warn("Invalid XP history start", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidQuery)
			return
		}
	}

	points, err := h.service.GetXPHistory(r.Context(), userID, from, to, interval)
	if err != nil {
		respondServiceError(w, r, OpXPHistory, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: xpHistorySummary(points), Data: points})
}

// HandleTaskStats reports the caller's completion rate and completed tasks by type and difficulty
// @Summary Task statistics
// @Tags analytics
// @Produce json
// @Param X-User-ID header string true "User id"
// @Success 200 {object} DataResponse{data=domain.TaskStats}
// @Router /analytics/tasks [get]
func (h *TaskHandler) HandleTaskStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetTaskStats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpTaskStats, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: taskStatsSummary(stats), Data: stats})
}

// HandleStreakData returns the caller's running streaks, best streak and active days
// @Summary Streak statistics
// @Tags analytics
// @Produce json
// @Param X-User-ID header string true "User id"
// @Success 200 {object} DataResponse{data=domain.StreakData}
// @Router /analytics/streaks [get]
func (h *TaskHandler) HandleStreakData(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	data, err := h.service.GetStreakData(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpStreakData, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: data})
}
