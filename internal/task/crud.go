package task

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/repository"
	"github.com/osse101/habitquest/internal/streak"
)

// CreateTask stores a new habit, daily or to-do. A daily gets its zeroed streak row
// in the same transaction.
func (s *service) CreateTask(ctx context.Context, userID string, input domain.NewTask) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	t := domain.Task{
		UserID:        userID,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Type:          input.Type,
		Difficulty:    input.Difficulty,
		DueDate:       input.DueDate,
		RepeatPattern: input.RepeatPattern,
	}
	if t.Difficulty == "" {
		t.Difficulty = domain.DifficultyEasy
	}
	if !t.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown task type %q", domain.ErrInvalidArgument, t.Type)
	}
	if err := validateTaskFields(&t); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.InsertTask(ctx, &t); err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	if t.Type == domain.TaskTypeDaily {
		if err := tx.UpsertStreak(ctx, &domain.Streak{TaskID: t.ID, UserID: userID}); err != nil {
			return nil, fmt.Errorf("failed to create streak: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info(LogMsgTaskCreated, "task_id", t.ID, "type", t.Type, "difficulty", t.Difficulty)
	return &t, nil
}

// ListTasks returns one page of the user's tasks, newest first
func (s *service) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) (*domain.TaskPage, error) {
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown task type %q", domain.ErrInvalidArgument, *filter.Type)
	}
	if filter.Limit < 0 || filter.Limit > MaxTaskPageSize {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidArgument, MaxTaskPageSize)
	}
	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidArgument)
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultTaskPageSize
	}

	tasks, total, err := s.repo.ListTasks(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return &domain.TaskPage{Tasks: tasks, Total: total}, nil
}

// UpdateTask edits the title, description, difficulty, due date or repeat pattern of a task.
// Completion state and type are not editable here.
func (s *service) UpdateTask(ctx context.Context, userID, taskID string, update domain.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidArgument)
	}
	if update.DueDate != nil && update.ClearDueDate {
		return nil, fmt.Errorf("%w: due date both set and cleared", domain.ErrInvalidArgument)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	t, err := tx.GetTaskForUpdate(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if update.Title != nil {
		t.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		t.Description = strings.TrimSpace(*update.Description)
	}
	if update.Difficulty != nil {
		t.Difficulty = *update.Difficulty
	}
	if update.DueDate != nil {
		t.DueDate = update.DueDate
	}
	if update.ClearDueDate {
		t.DueDate = nil
	}
	if update.RepeatPattern != nil {
		t.RepeatPattern = update.RepeatPattern
	}
	if err := validateTaskFields(t); err != nil {
		return nil, err
	}

	if err := tx.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info(LogMsgTaskUpdated, "task_id", t.ID)
	return t, nil
}

// DeleteTask removes a task along with its streak and habit logs.
// Ledger entries that reference the task are kept.
func (s *service) DeleteTask(ctx context.Context, userID, taskID string) error {
	deleted, err := s.repo.DeleteTask(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}

	logger.FromContext(ctx).Info(LogMsgTaskDeleted, "task_id", taskID)
	return nil
}

// validateTaskFields checks the user-editable fields of t. Only dailies may carry a repeat pattern.
func validateTaskFields(t *domain.Task) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title longer than %d characters", domain.ErrInvalidArgument, MaxTitleLength)
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description longer than %d characters", domain.ErrInvalidArgument, MaxDescriptionLength)
	}
	if err := requireDifficulty(t); err != nil {
		return err
	}
	if t.RepeatPattern != nil {
		if t.Type != domain.TaskTypeDaily {
			return fmt.Errorf("%w: repeat pattern on a %s", domain.ErrInvalidArgument, t.Type)
		}
		if err := streak.ValidateRepeatPattern(*t.RepeatPattern); err != nil {
			return err
		}
	}
	return nil
}
