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

// Service defines the task, habit and streak business logic
type Service interface {
	// Task management
	CreateTask(ctx context.Context, userID string, input domain.NewTask) (*domain.Task, error)
	ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) (*domain.TaskPage, error)
	UpdateTask(ctx context.Context, userID, taskID string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error

	// Rewards
	CompleteTask(ctx context.Context, userID, taskID string, now time.Time) (*domain.CompletionResult, error)
	LogHabit(ctx context.Context, userID, taskID string, positive bool, now time.Time) (*domain.HabitResult, error)

	// Streaks
	UpdateStreak(ctx context.Context, userID, taskID string, completed bool, now time.Time) (*domain.StreakUpdateResult, error)
	ListStreaks(ctx context.Context, userID string) ([]domain.Streak, error)

	// Scheduling
	ListDueToday(ctx context.Context, userID string, now time.Time) ([]domain.DueTask, error)
	RunDailyAudit(ctx context.Context, now time.Time) (*domain.AuditReport, error)

	// Analytics
	GetXPHistory(ctx context.Context, userID string, from, to time.Time, interval domain.Interval) ([]domain.XPHistoryPoint, error)
	GetTaskStats(ctx context.Context, userID string) (*domain.TaskStats, error)
	GetStreakData(ctx context.Context, userID string) (*domain.StreakData, error)

	Shutdown(ctx context.Context) error
}

// shutdowner is implemented by publishers that buffer events
type shutdowner interface {
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Task
	publisher event.Publisher
	loc       *time.Location
}

// NewService creates a new task service. loc is the calendar used for streak days.
func NewService(repo repository.Task, publisher event.Publisher, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		loc:       loc,
	}
}

// Shutdown gracefully shuts down the task service
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgServiceShutdown)

	if sd, ok := s.publisher.(shutdowner); ok {
		if err := sd.Shutdown(ctx); err != nil {
			log.Error(LogMsgServiceShutdownErr, "error", err)
			return err
		}
	}
	return nil
}

// lockCharacter row-locks the user's character and returns it with the aggregated equipment stats
func lockCharacter(ctx context.Context, w repository.CharacterWriter, userID string) (*domain.Character, domain.StatBonuses, error) {
	char, err := w.GetCharacterForUpdate(ctx, userID)
	if err != nil {
		return nil, domain.StatBonuses{}, fmt.Errorf("failed to get character: %w", err)
	}

	items, err := w.GetEquippedItems(ctx, userID)
	if err != nil {
		return nil, domain.StatBonuses{}, fmt.Errorf("failed to get equipped items: %w", err)
	}

	return char, progression.AggregateStats(items), nil
}

// applyXP runs the level resolver on char in place and returns the previous level
func applyXP(char *domain.Character, xpGained int) (progression.LevelUpResult, int, error) {
	oldLevel := char.Level
	lvl, err := progression.ResolveLevelUp(char.Level, char.XP, xpGained)
	if err != nil {
		return progression.LevelUpResult{}, oldLevel, fmt.Errorf("failed to resolve level up: %w", err)
	}
	char.Level = lvl.NewLevel
	char.XP = lvl.RemainingXP
	return lvl, oldLevel, nil
}

// publish sends events once the transaction that produced them has committed
func (s *service) publish(ctx context.Context, events ...event.Event) {
	if s.publisher == nil {
		return
	}
	for _, evt := range events {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

// today is the calendar day of now in the service location
func (s *service) today(now time.Time) time.Time {
	return now.In(s.loc)
}

func requireDifficulty(t *domain.Task) error {
	if !t.Difficulty.IsValid() {
		return fmt.Errorf("%w: task %s has unknown difficulty %q", domain.ErrInvalidArgument, t.ID, t.Difficulty)
	}
	return nil
}
