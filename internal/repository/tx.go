package repository

import (
	"context"

	"github.com/osse101/habitquest/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// CharacterWriter is the row-locked character access shared by every write transaction.
// GetCharacterForUpdate holds the row lock until commit, giving one writer per character.
type CharacterWriter interface {
	GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character *domain.Character) error
	GetEquippedItems(ctx context.Context, userID string) ([]domain.EquippedItem, error)
	InsertTransactions(ctx context.Context, txns []domain.Transaction) error
}
