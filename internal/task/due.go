package task

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/streak"
)

// ListDueToday returns the open dailies scheduled today and every open to-do.
// To-dos carry their overdue flag and days left; dailies carry their next scheduled day.
func (s *service) ListDueToday(ctx context.Context, userID string, now time.Time) ([]domain.DueTask, error) {
	log := logger.FromContext(ctx)
	today := streak.Day(s.today(now))

	tasks, err := s.repo.ListOpenTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}

	due := make([]domain.DueTask, 0, len(tasks))
	for _, t := range tasks {
		switch t.Type {
		case domain.TaskTypeDaily:
			active, err := streak.IsTaskActiveOn(t.RepeatPattern, today)
			if err != nil {
				log.Warn(LogMsgDueInvalidPattern, "task_id", t.ID, "error", err)
				continue
			}
			if !active {
				continue
			}
			next, err := streak.NextActiveDate(t.RepeatPattern, today)
			if err != nil {
				log.Warn(LogMsgDueInvalidPattern, "task_id", t.ID, "error", err)
				continue
			}
			due = append(due, domain.DueTask{Task: t, NextActiveDate: &next})

		case domain.TaskTypeTodo:
			item := domain.DueTask{Task: t}
			if t.DueDate != nil {
				dueDay := streak.Day(t.DueDate.In(s.loc))
				days := streak.DaysUntilDue(dueDay, today)
				item.Overdue = streak.IsOverdue(dueDay, today)
				item.DaysUntilDue = &days
			}
			due = append(due, item)
		}
	}

	return due, nil
}
