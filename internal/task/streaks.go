package task

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/repository"
	"github.com/osse101/habitquest/internal/streak"
)

// UpdateStreak applies a completion (completed=true) or an absence check to a daily's streak
// without touching the task itself. Milestone bonus XP goes through the level resolver.
func (s *service) UpdateStreak(ctx context.Context, userID, taskID string, completed bool, now time.Time) (*domain.StreakUpdateResult, error) {
	log := logger.FromContext(ctx)
	today := s.today(now)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	t, err := tx.GetTaskForUpdate(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if t.Type != domain.TaskTypeDaily {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, domain.ErrNotADaily)
	}

	existing, err := tx.GetStreakForUpdate(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	isNew := existing == nil
	if isNew {
		existing = &domain.Streak{TaskID: taskID, UserID: userID}
	}

	result := &domain.StreakUpdateResult{Streak: *existing}
	changed := false
	oldLevel := 0

	if completed {
		outcome := streak.EvaluateCompletion(*existing, today)
		result.Streak = outcome.Streak
		result.BonusXP = outcome.BonusXP
		result.Milestone = outcome.Milestone
		changed = outcome.Changed

		if outcome.BonusXP > 0 {
			char, err := tx.GetCharacterForUpdate(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to get character: %w", err)
			}
			lvl, prev, err := applyXP(char, outcome.BonusXP)
			if err != nil {
				return nil, err
			}
			oldLevel = prev
			result.LeveledUp = lvl.LeveledUp
			result.NewLevel = lvl.NewLevel
			result.LevelsGained = lvl.LevelsGained

			if err := tx.UpdateCharacter(ctx, char); err != nil {
				return nil, fmt.Errorf("failed to update character: %w", err)
			}
			txn := domain.NewTransaction(userID, domain.TransactionXPGain, outcome.BonusXP, domain.SourceStreakMilestone, taskID)
			if err := tx.InsertTransactions(ctx, []domain.Transaction{txn}); err != nil {
				return nil, fmt.Errorf("failed to record transactions: %w", err)
			}
		}
	} else {
		result.Streak, changed = streak.EvaluateAbsence(*existing, today)
	}

	// an absence check on a task that never had a streak leaves nothing to store
	if changed {
		if err := tx.UpsertStreak(ctx, &result.Streak); err != nil {
			return nil, fmt.Errorf("failed to save streak: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info(LogMsgStreakUpdated,
		"user_id", userID,
		"task_id", taskID,
		"completed", completed,
		"current", result.Streak.CurrentStreak,
		"best", result.Streak.BestStreak,
		"changed", changed)

	var events []event.Event
	if result.Milestone > 0 {
		events = append(events, event.NewStreakMilestoneEvent(userID, taskID, result.Milestone, result.BonusXP))
	}
	if result.LeveledUp {
		events = append(events, event.NewLevelUpEvent(userID, oldLevel, result.NewLevel, domain.SourceStreakMilestone))
	}
	s.publish(ctx, events...)

	return result, nil
}

// ListStreaks returns the user's streaks, longest current streak first
func (s *service) ListStreaks(ctx context.Context, userID string) ([]domain.Streak, error) {
	streaks, err := s.repo.ListStreaks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list streaks: %w", err)
	}
	return streaks, nil
}
