package task

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/progression"
	"github.com/osse101/habitquest/internal/repository"
	"github.com/osse101/habitquest/internal/streak"
)

// CompleteTask completes a daily or to-do, awarding XP and gold with equipment bonuses.
// Dailies also advance their streak and may earn the milestone bonus.
// Task, character and streak rows stay locked until commit.
func (s *service) CompleteTask(ctx context.Context, userID, taskID string, now time.Time) (*domain.CompletionResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	t, err := tx.GetTaskForUpdate(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if t.Type == domain.TaskTypeHabit {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, domain.ErrNotCompletable)
	}
	if t.IsCompleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskAlreadyCompleted, taskID)
	}
	if err := requireDifficulty(t); err != nil {
		return nil, err
	}

	char, bonuses, err := lockCharacter(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	xpGained := progression.CalculateXP(t.Difficulty, &bonuses)
	goldGained := progression.CalculateGoldReward(t.Difficulty, &bonuses)

	var outcome streak.CompletionOutcome
	var st *domain.Streak
	if t.Type == domain.TaskTypeDaily {
		existing, err := tx.GetStreakForUpdate(ctx, userID, taskID)
		if err != nil {
			return nil, fmt.Errorf("failed to get streak: %w", err)
		}
		if existing == nil {
			existing = &domain.Streak{TaskID: taskID, UserID: userID}
		}
		outcome = streak.EvaluateCompletion(*existing, s.today(now))
		st = &outcome.Streak
	}

	lvl, oldLevel, err := applyXP(char, xpGained+outcome.BonusXP)
	if err != nil {
		return nil, err
	}
	char.Gold += goldGained

	if err := tx.UpdateCharacter(ctx, char); err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}
	if err := tx.MarkTaskCompleted(ctx, taskID, now); err != nil {
		return nil, fmt.Errorf("failed to mark task completed: %w", err)
	}
	if st != nil && outcome.Changed {
		if err := tx.UpsertStreak(ctx, st); err != nil {
			return nil, fmt.Errorf("failed to save streak: %w", err)
		}
	}

	txns := []domain.Transaction{
		domain.NewTransaction(userID, domain.TransactionXPGain, xpGained, domain.SourceTaskCompletion, taskID),
	}
	if goldGained > 0 {
		txns = append(txns, domain.NewTransaction(userID, domain.TransactionGoldGain, goldGained, domain.SourceTaskCompletion, taskID))
	}
	if outcome.BonusXP > 0 {
		txns = append(txns, domain.NewTransaction(userID, domain.TransactionXPGain, outcome.BonusXP, domain.SourceStreakMilestone, taskID))
	}
	if err := tx.InsertTransactions(ctx, txns); err != nil {
		return nil, fmt.Errorf("failed to record transactions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	completedAt := now
	t.IsCompleted = true
	t.CompletedAt = &completedAt

	result := &domain.CompletionResult{
		Task:         *t,
		XPGained:     xpGained,
		GoldGained:   goldGained,
		LeveledUp:    lvl.LeveledUp,
		NewLevel:     lvl.NewLevel,
		LevelsGained: lvl.LevelsGained,
		Streak:       st,
		BonusXP:      outcome.BonusXP,
		Milestone:    outcome.Milestone,
	}

	log.Info(LogMsgTaskCompleted,
		"user_id", userID,
		"task_id", taskID,
		"type", t.Type,
		"xp", xpGained,
		"gold", goldGained,
		"bonus_xp", outcome.BonusXP,
		"level", lvl.NewLevel)

	events := []event.Event{event.NewTaskCompletedEvent(userID, *result)}
	if lvl.LeveledUp {
		log.Info(LogMsgLevelUp, "user_id", userID, "old_level", oldLevel, "new_level", lvl.NewLevel)
		events = append(events, event.NewLevelUpEvent(userID, oldLevel, lvl.NewLevel, domain.SourceTaskCompletion))
	}
	if outcome.Milestone > 0 {
		log.Info(LogMsgStreakMilestone, "user_id", userID, "task_id", taskID, "streak", outcome.Milestone)
		events = append(events, event.NewStreakMilestoneEvent(userID, taskID, outcome.Milestone, outcome.BonusXP))
	}
	s.publish(ctx, events...)

	return result, nil
}
