package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/habitquest/internal/domain"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// Column lists kept next to their mapping functions so the order cannot drift
const (
	characterColumns = `id::text, user_id::text, level, xp, hp, gold, created_at, updated_at`

	taskColumns = `id::text, user_id::text, title, description, type, difficulty, is_completed,
		completed_at, due_date, repeat_pattern, created_at, updated_at`

	streakColumns = `id::text, task_id::text, user_id::text, current_streak, best_streak,
		last_completed_date, created_at, updated_at`

	rewardColumns = `id::text, name, description, price, is_equipment, equipment_slot, stat_bonuses, created_at`

	transactionColumns = `id::text, user_id::text, type, amount, source, reference_id::text, created_at`
)

func scanCharacter(row rowScanner) (*domain.Character, error) {
	var c domain.Character
	if err := row.Scan(&c.ID, &c.UserID, &c.Level, &c.XP, &c.HP, &c.Gold, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t           domain.Task
		description *string
		taskType    string
		difficulty  string
		pattern     []byte
	)
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&description,
		&taskType,
		&difficulty,
		&t.IsCompleted,
		&t.CompletedAt,
		&t.DueDate,
		&pattern,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description != nil {
		t.Description = *description
	}
	t.Type = domain.TaskType(taskType)

	t.Difficulty, err = domain.ParseDifficulty(difficulty)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", t.ID, err)
	}

	if len(pattern) > 0 {
		var rp domain.RepeatPattern
		if err := json.Unmarshal(pattern, &rp); err != nil {
			return nil, fmt.Errorf("task %s: failed to decode repeat pattern: %w", t.ID, err)
		}
		t.RepeatPattern = &rp
	}
	return &t, nil
}

func scanStreak(row rowScanner) (*domain.Streak, error) {
	var (
		s    domain.Streak
		last *time.Time
	)
	err := row.Scan(
		&s.ID,
		&s.TaskID,
		&s.UserID,
		&s.CurrentStreak,
		&s.BestStreak,
		&last,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if last != nil {
		day := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
		s.LastCompletedDate = &day
	}
	return &s, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t      domain.Transaction
		txType string
	)
	if err := row.Scan(&t.ID, &t.UserID, &txType, &t.Amount, &t.Source, &t.ReferenceID, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(txType)
	return &t, nil
}

func scanReward(row rowScanner) (*domain.Reward, error) {
	var (
		r           domain.Reward
		description *string
		slot        *string
		bonuses     []byte
	)
	err := row.Scan(&r.ID, &r.Name, &description, &r.Price, &r.IsEquipment, &slot, &bonuses, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	if description != nil {
		r.Description = *description
	}
	if slot != nil {
		s := domain.EquipmentSlot(*slot)
		r.EquipmentSlot = &s
	}
	r.StatBonuses, err = decodeStatBonuses(bonuses)
	if err != nil {
		return nil, fmt.Errorf("reward %s: %w", r.ID, err)
	}
	return &r, nil
}

func scanEquippedItem(row rowScanner) (*domain.EquippedItem, error) {
	var (
		item    domain.EquippedItem
		slot    *string
		bonuses []byte
	)
	if err := row.Scan(&item.RewardID, &item.Name, &slot, &bonuses); err != nil {
		return nil, err
	}

	if slot != nil {
		s := domain.EquipmentSlot(*slot)
		item.Slot = &s
	}
	var err error
	item.StatBonuses, err = decodeStatBonuses(bonuses)
	if err != nil {
		return nil, fmt.Errorf("equipped reward %s: %w", item.RewardID, err)
	}
	return &item, nil
}

func decodeStatBonuses(raw []byte) (*domain.StatBonuses, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var b domain.StatBonuses
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("failed to decode stat bonuses: %w", err)
	}
	return &b, nil
}

// encodeJSON returns nil for nil input so NULL is stored instead of 'null'
func encodeJSON[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
