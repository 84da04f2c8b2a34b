package character

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/repository"
)

// MockRepository is a mock implementation of repository.Character
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CharacterTx), args.Error(1)
}

func (m *MockRepository) GetCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockRepository) CreateCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockRepository) GetEquippedItems(ctx context.Context, userID string) ([]domain.EquippedItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquippedItem), args.Error(1)
}

func (m *MockRepository) GetLifetimeXP(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reward), args.Error(1)
}

func (m *MockRepository) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	args := m.Called(ctx, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}

func (m *MockRepository) UpsertReward(ctx context.Context, reward *domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

// MockTx is a mock implementation of repository.CharacterTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockTx) UpdateCharacter(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockTx) GetEquippedItems(ctx context.Context, userID string) ([]domain.EquippedItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquippedItem), args.Error(1)
}

func (m *MockTx) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTx) AddInventoryItem(ctx context.Context, userID, rewardID string, quantity int) (int, error) {
	args := m.Called(ctx, userID, rewardID, quantity)
	return args.Int(0), args.Error(1)
}

// MockPublisher is a mock implementation of event.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}
