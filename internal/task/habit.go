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
)

// LogHabit records a positive or negative habit check-in.
// Positive logs pay XP and gold like a completion. Negative logs cost HP; a character
// brought to zero HP is defeated, losing a share of gold and returning at full health.
func (s *service) LogHabit(ctx context.Context, userID, taskID string, positive bool, now time.Time) (*domain.HabitResult, error) {
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
	if t.Type != domain.TaskTypeHabit {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, domain.ErrNotAHabit)
	}
	if err := requireDifficulty(t); err != nil {
		return nil, err
	}

	char, bonuses, err := lockCharacter(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	result := &domain.HabitResult{
		Log: domain.HabitLog{
			TaskID:     taskID,
			UserID:     userID,
			IsPositive: positive,
			LoggedAt:   now,
		},
	}
	var txns []domain.Transaction
	oldLevel := char.Level

	if positive {
		result.XPGained = progression.CalculateXP(t.Difficulty, &bonuses)
		result.GoldGained = progression.CalculateGoldReward(t.Difficulty, &bonuses)

		lvl, _, err := applyXP(char, result.XPGained)
		if err != nil {
			return nil, err
		}
		char.Gold += result.GoldGained
		result.LeveledUp = lvl.LeveledUp
		result.LevelsGained = lvl.LevelsGained

		txns = append(txns, domain.NewTransaction(userID, domain.TransactionXPGain, result.XPGained, domain.SourceHabitLog, taskID))
		if result.GoldGained > 0 {
			txns = append(txns, domain.NewTransaction(userID, domain.TransactionGoldGain, result.GoldGained, domain.SourceHabitLog, taskID))
		}
	} else {
		result.HPLost = min(char.HP, domain.HabitHPPenalty)
		char.HP -= result.HPLost

		if char.HP == 0 {
			penalty, err := progression.CalculateDefeatPenalty(char.Gold, domain.DefeatGoldPenaltyPercent)
			if err != nil {
				return nil, fmt.Errorf("failed to calculate defeat penalty: %w", err)
			}
			char.Gold = penalty.RemainingGold
			char.HP = domain.MaxHP
			result.Defeated = true
			result.GoldLost = penalty.GoldLost

			if penalty.GoldLost > 0 {
				txns = append(txns, domain.NewTransaction(userID, domain.TransactionGoldLoss, penalty.GoldLost, domain.SourceDefeat, taskID))
			}
		}
	}

	if err := tx.UpdateCharacter(ctx, char); err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}
	if err := tx.InsertHabitLog(ctx, &result.Log); err != nil {
		return nil, fmt.Errorf("failed to record habit log: %w", err)
	}
	if len(txns) > 0 {
		if err := tx.InsertTransactions(ctx, txns); err != nil {
			return nil, fmt.Errorf("failed to record transactions: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.Character = *char

	log.Info(LogMsgHabitLogged,
		"user_id", userID,
		"task_id", taskID,
		"positive", positive,
		"xp", result.XPGained,
		"gold", result.GoldGained,
		"hp_lost", result.HPLost)

	events := []event.Event{event.NewHabitLoggedEvent(userID, *result)}
	if result.LeveledUp {
		log.Info(LogMsgLevelUp, "user_id", userID, "old_level", oldLevel, "new_level", char.Level)
		events = append(events, event.NewLevelUpEvent(userID, oldLevel, char.Level, domain.SourceHabitLog))
	}
	if result.Defeated {
		log.Warn(LogMsgCharacterDefeated, "user_id", userID, "gold_lost", result.GoldLost)
		events = append(events, event.NewDefeatedEvent(userID, result.GoldLost, char.Gold))
	}
	s.publish(ctx, events...)

	return result, nil
}
