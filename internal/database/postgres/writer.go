package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/habitquest/internal/domain"
)

// characterWriter implements repository.CharacterWriter on top of a transaction
type characterWriter struct {
	q querier
}

// GetCharacterForUpdate locks the user's character row until the transaction ends
func (w *characterWriter) GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1 FOR UPDATE`

	c, err := scanCharacter(w.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrCharacterNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock character: %w", err)
	}
	return c, nil
}

// UpdateCharacter writes level, xp, hp and gold in one statement
func (w *characterWriter) UpdateCharacter(ctx context.Context, c *domain.Character) error {
	query := `
		UPDATE characters
		SET level = $2, xp = $3, hp = $4, gold = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := w.q.QueryRow(ctx, query, c.ID, c.Level, c.XP, c.HP, c.Gold).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: id %s", domain.ErrCharacterNotFound, c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

// GetEquippedItems returns the user's equipped rewards with their stat bonuses
func (w *characterWriter) GetEquippedItems(ctx context.Context, userID string) ([]domain.EquippedItem, error) {
	return getEquippedItems(ctx, w.q, userID)
}

// InsertTransactions appends ledger rows in a single batch
func (w *characterWriter) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	query := `
		INSERT INTO transactions (user_id, type, amount, source, reference_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, t := range txns {
		batch.Queue(query, t.UserID, string(t.Type), t.Amount, t.Source, t.ReferenceID)
	}

	if err := w.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert transactions: %w", err)
	}
	return nil
}

func getEquippedItems(ctx context.Context, q querier, userID string) ([]domain.EquippedItem, error) {
	query := `
		SELECT r.id::text, r.name, r.equipment_slot, r.stat_bonuses
		FROM inventory i
		JOIN rewards r ON r.id = i.reward_id
		WHERE i.user_id = $1 AND i.is_equipped AND i.quantity > 0
		ORDER BY r.name
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipped items: %w", err)
	}

	items, err := collect(rows, scanEquippedItem)
	if err != nil {
		return nil, fmt.Errorf("failed to scan equipped items: %w", err)
	}
	return items, nil
}
