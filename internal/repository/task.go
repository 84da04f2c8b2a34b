package repository

import (
	"context"
	"time"

	"github.com/osse101/habitquest/internal/domain"
)

// Task defines the interface for task, streak and habit persistence
type Task interface {
	BeginTx(ctx context.Context) (TaskTx, error)

	// ListTasks returns one page of the user's tasks, newest first, and the total matching the filter
	ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, int, error)
	// DeleteTask removes the task with its streak and habit logs, reporting whether it existed
	DeleteTask(ctx context.Context, userID, taskID string) (bool, error)

	ListOpenTasks(ctx context.Context, userID string) ([]domain.Task, error)
	ListStreaks(ctx context.Context, userID string) ([]domain.Streak, error)

	// Analytics
	CountTasks(ctx context.Context, userID string) ([]domain.TaskCount, error)
	// ListXPGains returns xp_gain transactions created in [from, to), oldest first
	ListXPGains(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error)
	// ListXPGainTimes returns when every xp_gain transaction of the user was recorded
	ListXPGainTimes(ctx context.Context, userID string) ([]time.Time, error)

	// Daily audit
	ListActiveStreaks(ctx context.Context) ([]domain.Streak, error)
	ResetStreak(ctx context.Context, streakID string, lastCompleted time.Time) (bool, error)
	ListCompletedDailies(ctx context.Context) ([]domain.Task, error)
	ReopenTask(ctx context.Context, taskID string, completedAt time.Time) (bool, error)
}

// TaskTx defines the interface for task completion transactions
type TaskTx interface {
	Tx
	CharacterWriter

	// InsertTask stores a new task and fills in its id and timestamps
	InsertTask(ctx context.Context, task *domain.Task) error
	// UpdateTask writes the editable fields of a locked task
	UpdateTask(ctx context.Context, task *domain.Task) error

	GetTaskForUpdate(ctx context.Context, userID, taskID string) (*domain.Task, error)
	MarkTaskCompleted(ctx context.Context, taskID string, completedAt time.Time) error

	// GetStreakForUpdate returns nil when the task has no streak row yet
	GetStreakForUpdate(ctx context.Context, userID, taskID string) (*domain.Streak, error)
	UpsertStreak(ctx context.Context, streak *domain.Streak) error

	InsertHabitLog(ctx context.Context, log *domain.HabitLog) error
}
