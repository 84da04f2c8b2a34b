package task

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/streak"
)

// RunDailyAudit resets streaks whose daily was missed and reopens dailies completed on
// an earlier day that are scheduled again today. Updates are conditional on the row still
// holding the values that were read, so a completion racing the audit wins.
// Rows that fail individually are logged and skipped; the audit carries on.
func (s *service) RunDailyAudit(ctx context.Context, now time.Time) (*domain.AuditReport, error) {
	log := logger.FromContext(ctx)
	today := streak.Day(s.today(now))
	report := &domain.AuditReport{Day: today}

	log.Info(LogMsgAuditStarted, "day", today.Format(time.DateOnly))

	streaks, err := s.repo.ListActiveStreaks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active streaks: %w", err)
	}

	for _, st := range streaks {
		if st.LastCompletedDate == nil {
			continue
		}
		if _, lapsed := streak.EvaluateAbsence(st, today); !lapsed {
			continue
		}
		reset, err := s.repo.ResetStreak(ctx, st.ID, *st.LastCompletedDate)
		if err != nil {
			log.Error(LogMsgAuditStreakFailed, "streak_id", st.ID, "error", err)
			report.Skipped++
			continue
		}
		if reset {
			report.StreaksReset++
		}
	}

	dailies, err := s.repo.ListCompletedDailies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed dailies: %w", err)
	}

	for _, t := range dailies {
		if t.CompletedAt == nil {
			continue
		}
		if !streak.ShouldResetDailyTasks(ptrTo(streak.Day(t.CompletedAt.In(s.loc))), today) {
			continue
		}
		active, err := streak.IsTaskActiveOn(t.RepeatPattern, today)
		if err != nil {
			log.Warn(LogMsgAuditSkippedTask, "task_id", t.ID, "error", err)
			report.Skipped++
			continue
		}
		if !active {
			continue
		}
		reopened, err := s.repo.ReopenTask(ctx, t.ID, *t.CompletedAt)
		if err != nil {
			log.Error(LogMsgAuditReopenFailed, "task_id", t.ID, "error", err)
			report.Skipped++
			continue
		}
		if reopened {
			report.DailiesReopened++
		}
	}

	log.Info(LogMsgAuditCompleted,
		"day", today.Format(time.DateOnly),
		"streaks_reset", report.StreaksReset,
		"dailies_reopened", report.DailiesReopened,
		"skipped", report.Skipped)

	s.publish(ctx, event.NewDailyAuditCompleteEvent(now, *report))

	return report, nil
}

func ptrTo[T any](v T) *T {
	return &v
}
