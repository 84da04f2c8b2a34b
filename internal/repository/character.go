package repository

import (
	"context"

	"github.com/osse101/habitquest/internal/domain"
)

// Character defines the interface for character, reward and inventory persistence
type Character interface {
	BeginTx(ctx context.Context) (CharacterTx, error)

	GetCharacter(ctx context.Context, userID string) (*domain.Character, error)
	// CreateCharacter inserts a default character and returns the existing one if present
	CreateCharacter(ctx context.Context, userID string) (*domain.Character, error)
	GetEquippedItems(ctx context.Context, userID string) ([]domain.EquippedItem, error)
	GetLifetimeXP(ctx context.Context, userID string) (int64, error)

	ListRewards(ctx context.Context) ([]domain.Reward, error)
	GetReward(ctx context.Context, rewardID string) (*domain.Reward, error)
	UpsertReward(ctx context.Context, reward *domain.Reward) error
}

// CharacterTx defines the interface for purchase transactions
type CharacterTx interface {
	Tx
	CharacterWriter

	// AddInventoryItem adds quantity to the user's stack of the reward and returns the new total
	AddInventoryItem(ctx context.Context, userID, rewardID string, quantity int) (int, error)
}
