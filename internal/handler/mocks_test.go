package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/habitquest/internal/domain"
)

// MockTaskService is a mock implementation of task.Service
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CompleteTask(ctx context.Context, userID, taskID string, now time.Time) (*domain.CompletionResult, error) {
	args := m.Called(ctx, userID, taskID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionResult), args.Error(1)
}

func (m *MockTaskService) LogHabit(ctx context.Context, userID, taskID string, positive bool, now time.Time) (*domain.HabitResult, error) {
	args := m.Called(ctx, userID, taskID, positive, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HabitResult), args.Error(1)
}

func (m *MockTaskService) UpdateStreak(ctx context.Context, userID, taskID string, completed bool, now time.Time) (*domain.StreakUpdateResult, error) {
	args := m.Called(ctx, userID, taskID, completed, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakUpdateResult), args.Error(1)
}

func (m *MockTaskService) ListStreaks(ctx context.Context, userID string) ([]domain.Streak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Streak), args.Error(1)
}

func (m *MockTaskService) ListDueToday(ctx context.Context, userID string, now time.Time) ([]domain.DueTask, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueTask), args.Error(1)
}

func (m *MockTaskService) RunDailyAudit(ctx context.Context, now time.Time) (*domain.AuditReport, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

func (m *MockTaskService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID string, input domain.NewTask) (*domain.Task, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) (*domain.TaskPage, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskPage), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, userID, taskID string, update domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, userID, taskID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *MockTaskService) GetXPHistory(ctx context.Context, userID string, from, to time.Time, interval domain.Interval) ([]domain.XPHistoryPoint, error) {
	args := m.Called(ctx, userID, from, to, interval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.XPHistoryPoint), args.Error(1)
}

func (m *MockTaskService) GetTaskStats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskStats), args.Error(1)
}

func (m *MockTaskService) GetStreakData(ctx context.Context, userID string) (*domain.StreakData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakData), args.Error(1)
}

// MockCharacterService is a mock implementation of character.Service
type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) EnsureCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) GetCharacterSheet(ctx context.Context, userID string) (*domain.CharacterSheet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterSheet), args.Error(1)
}

func (m *MockCharacterService) GetLifetimeLevel(ctx context.Context, userID string) (*domain.LifetimeLevel, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LifetimeLevel), args.Error(1)
}

func (m *MockCharacterService) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reward), args.Error(1)
}

func (m *MockCharacterService) PurchaseReward(ctx context.Context, userID, rewardID string) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, userID, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockCharacterService) SyncCatalog(ctx context.Context, rewards []domain.Reward) (int, error) {
	args := m.Called(ctx, rewards)
	return args.Int(0), args.Error(1)
}

func (m *MockCharacterService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
