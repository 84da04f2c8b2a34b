package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/repository"
)

// CharacterRepository implements repository.Character for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// CharacterTx implements repository.CharacterTx
type CharacterTx struct {
	pgTx
	characterWriter
}

// BeginTx starts a new transaction
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &CharacterTx{
		pgTx:            pgTx{tx: tx},
		characterWriter: characterWriter{q: tx},
	}, nil
}

// GetCharacter retrieves the character owned by userID
func (r *CharacterRepository) GetCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1`

	c, err := scanCharacter(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrCharacterNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return c, nil
}

// CreateCharacter inserts a level 1 character if the user has none yet
func (r *CharacterRepository) CreateCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	query := `
		INSERT INTO characters (user_id, level, xp, hp, gold)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, domain.DefaultLevel, domain.DefaultXP, domain.DefaultHP, domain.DefaultGold)
	if err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return r.GetCharacter(ctx, userID)
}

// GetEquippedItems returns the user's equipped rewards
func (r *CharacterRepository) GetEquippedItems(ctx context.Context, userID string) ([]domain.EquippedItem, error) {
	return getEquippedItems(ctx, r.db, userID)
}

// GetLifetimeXP sums every xp transaction the user ever recorded
func (r *CharacterRepository) GetLifetimeXP(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'xp_gain' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE user_id = $1 AND type IN ('xp_gain', 'xp_loss')
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum lifetime xp: %w", err)
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}

// ListRewards returns the shop catalog ordered by price
func (r *CharacterRepository) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards ORDER BY price, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}

	rewards, err := collect(rows, scanReward)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reward: %w", err)
	}
	return rewards, nil
}

// GetReward retrieves a reward by id
func (r *CharacterRepository) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = $1`

	reward, err := scanReward(r.db.QueryRow(ctx, query, rewardID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRewardNotFound, rewardID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	return reward, nil
}

// UpsertReward inserts or refreshes a catalog entry keyed by name
func (r *CharacterRepository) UpsertReward(ctx context.Context, reward *domain.Reward) error {
	bonuses, err := encodeJSON(reward.StatBonuses)
	if err != nil {
		return fmt.Errorf("failed to encode stat bonuses: %w", err)
	}

	var slot *string
	if reward.EquipmentSlot != nil {
		s := string(*reward.EquipmentSlot)
		slot = &s
	}

	var description *string
	if reward.Description != "" {
		description = &reward.Description
	}

	query := `
		INSERT INTO rewards (name, description, price, is_equipment, equipment_slot, stat_bonuses)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description,
		    price = EXCLUDED.price,
		    is_equipment = EXCLUDED.is_equipment,
		    equipment_slot = EXCLUDED.equipment_slot,
		    stat_bonuses = EXCLUDED.stat_bonuses
		RETURNING id::text, created_at
	`

	err = r.db.QueryRow(ctx, query, reward.Name, description, reward.Price, reward.IsEquipment, slot, bonuses).
		Scan(&reward.ID, &reward.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert reward %q: %w", reward.Name, err)
	}
	return nil
}

// AddInventoryItem increments the user's stack of a reward
func (t *CharacterTx) AddInventoryItem(ctx context.Context, userID, rewardID string, quantity int) (int, error) {
	query := `
		INSERT INTO inventory (user_id, reward_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, reward_id) DO UPDATE
		SET quantity = inventory.quantity + EXCLUDED.quantity
		RETURNING quantity
	`

	var total int
	if err := t.tx.QueryRow(ctx, query, userID, rewardID, quantity).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to add inventory item: %w", err)
	}
	return total, nil
}
