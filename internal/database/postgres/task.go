package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/repository"
)

// TaskRepository implements repository.Task for PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskTx implements repository.TaskTx
type TaskTx struct {
	pgTx
	characterWriter
}

// BeginTx starts a new transaction
func (r *TaskRepository) BeginTx(ctx context.Context) (repository.TaskTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &TaskTx{
		pgTx:            pgTx{tx: tx},
		characterWriter: characterWriter{q: tx},
	}, nil
}

// ListTasks returns one page of the user's tasks, newest first, and the number matching the filter
func (r *TaskRepository) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, int, error) {
	var taskType *string
	if filter.Type != nil {
		t := string(*filter.Type)
		taskType = &t
	}

	const where = `
		WHERE user_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::boolean IS NULL OR is_completed = $3)
	`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`+where, userID, taskType, filter.IsCompleted).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks` + where + `
		ORDER BY created_at DESC, id
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query, userID, taskType, filter.IsCompleted, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tasks: %w", err)
	}

	tasks, err := collect(rows, scanTask)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan task: %w", err)
	}
	return tasks, total, nil
}

// DeleteTask removes a task owned by userID. Its streak and habit logs go with it by cascade.
func (r *TaskRepository) DeleteTask(ctx context.Context, userID, taskID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CountTasks groups the user's tasks by type, difficulty and completion state
func (r *TaskRepository) CountTasks(ctx context.Context, userID string) ([]domain.TaskCount, error) {
	query := `
		SELECT type, difficulty, is_completed, COUNT(*)
		FROM tasks
		WHERE user_id = $1
		GROUP BY type, difficulty, is_completed
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	counts, err := collect(rows, func(row rowScanner) (*domain.TaskCount, error) {
		var (
			c                    domain.TaskCount
			taskType, difficulty string
		)
		if err := row.Scan(&taskType, &difficulty, &c.IsCompleted, &c.Count); err != nil {
			return nil, err
		}
		c.Type = domain.TaskType(taskType)
		c.Difficulty = domain.Difficulty(difficulty)
		return &c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan task count: %w", err)
	}
	return counts, nil
}

// ListXPGains returns the user's xp_gain ledger entries created in [from, to), oldest first
func (r *TaskRepository) ListXPGains(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND type = 'xp_gain' AND created_at >= $2 AND created_at < $3
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query xp gains: %w", err)
	}

	txns, err := collect(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	return txns, nil
}

// ListXPGainTimes returns the timestamps of all the user's xp_gain ledger entries
func (r *TaskRepository) ListXPGainTimes(ctx context.Context, userID string) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT created_at FROM transactions WHERE user_id = $1 AND type = 'xp_gain'`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query xp gain times: %w", err)
	}

	times, err := collect(rows, func(row rowScanner) (*time.Time, error) {
		var t time.Time
		return &t, row.Scan(&t)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan xp gain time: %w", err)
	}
	return times, nil
}

// ListOpenTasks returns the user's dailies and to-dos that are not completed
func (r *TaskRepository) ListOpenTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND type <> 'habit' AND NOT is_completed
		ORDER BY due_date NULLS LAST, created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open tasks: %w", err)
	}

	tasks, err := collect(rows, scanTask)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return tasks, nil
}

// ListStreaks returns the user's streaks, longest first
func (r *TaskRepository) ListStreaks(ctx context.Context, userID string) ([]domain.Streak, error) {
	query := `
		SELECT ` + streakColumns + `
		FROM streaks
		WHERE user_id = $1
		ORDER BY current_streak DESC, best_streak DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query streaks: %w", err)
	}

	streaks, err := collect(rows, scanStreak)
	if err != nil {
		return nil, fmt.Errorf("failed to scan streak: %w", err)
	}
	return streaks, nil
}

// ListActiveStreaks returns every streak with a non-zero current count
func (r *TaskRepository) ListActiveStreaks(ctx context.Context) ([]domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM streaks WHERE current_streak > 0`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active streaks: %w", err)
	}

	streaks, err := collect(rows, scanStreak)
	if err != nil {
		return nil, fmt.Errorf("failed to scan streak: %w", err)
	}
	return streaks, nil
}

// ResetStreak zeroes the current streak only if it was not credited since the audit read it
func (r *TaskRepository) ResetStreak(ctx context.Context, streakID string, lastCompleted time.Time) (bool, error) {
	query := `
		UPDATE streaks
		SET current_streak = 0, updated_at = NOW()
		WHERE id = $1 AND last_completed_date = $2 AND current_streak > 0
	`

	tag, err := r.db.Exec(ctx, query, streakID, lastCompleted)
	if err != nil {
		return false, fmt.Errorf("failed to reset streak: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListCompletedDailies returns dailies waiting to be reopened
func (r *TaskRepository) ListCompletedDailies(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE type = 'daily' AND is_completed`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed dailies: %w", err)
	}

	tasks, err := collect(rows, scanTask)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return tasks, nil
}

// ReopenTask clears the completed flag unless the task was completed again meanwhile
func (r *TaskRepository) ReopenTask(ctx context.Context, taskID string, completedAt time.Time) (bool, error) {
	query := `
		UPDATE tasks
		SET is_completed = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_completed AND completed_at = $2
	`

	tag, err := r.db.Exec(ctx, query, taskID, completedAt)
	if err != nil {
		return false, fmt.Errorf("failed to reopen task: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertTask stores a new task, filling in its id and timestamps
func (t *TaskTx) InsertTask(ctx context.Context, task *domain.Task) error {
	pattern, err := encodeJSON(task.RepeatPattern)
	if err != nil {
		return fmt.Errorf("failed to encode repeat pattern: %w", err)
	}

	query := `
		INSERT INTO tasks (user_id, title, description, type, difficulty, due_date, repeat_pattern)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id::text, is_completed, created_at, updated_at
	`

	err = t.tx.QueryRow(ctx, query,
		task.UserID, task.Title, task.Description, string(task.Type), string(task.Difficulty), task.DueDate, pattern,
	).Scan(&task.ID, &task.IsCompleted, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// UpdateTask writes the editable fields of a task locked by GetTaskForUpdate
func (t *TaskTx) UpdateTask(ctx context.Context, task *domain.Task) error {
	pattern, err := encodeJSON(task.RepeatPattern)
	if err != nil {
		return fmt.Errorf("failed to encode repeat pattern: %w", err)
	}

	query := `
		UPDATE tasks
		SET title = $2, description = NULLIF($3, ''), difficulty = $4, due_date = $5,
		    repeat_pattern = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = t.tx.QueryRow(ctx, query,
		task.ID, task.Title, task.Description, string(task.Difficulty), task.DueDate, pattern,
	).Scan(&task.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// GetTaskForUpdate locks the task row owned by userID
func (t *TaskTx) GetTaskForUpdate(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2 FOR UPDATE`

	task, err := scanTask(t.tx.QueryRow(ctx, query, taskID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock task: %w", err)
	}
	return task, nil
}

// MarkTaskCompleted flags the task as completed at completedAt
func (t *TaskTx) MarkTaskCompleted(ctx context.Context, taskID string, completedAt time.Time) error {
	query := `
		UPDATE tasks
		SET is_completed = TRUE, completed_at = $2, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := t.tx.Exec(ctx, query, taskID, completedAt); err != nil {
		return fmt.Errorf("failed to mark task completed: %w", err)
	}
	return nil
}

// GetStreakForUpdate locks the streak row of a task, returning nil if none exists
func (t *TaskTx) GetStreakForUpdate(ctx context.Context, userID, taskID string) (*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM streaks WHERE task_id = $1 AND user_id = $2 FOR UPDATE`

	s, err := scanStreak(t.tx.QueryRow(ctx, query, taskID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock streak: %w", err)
	}
	return s, nil
}

// UpsertStreak writes the streak counters, creating the row on first completion
func (t *TaskTx) UpsertStreak(ctx context.Context, s *domain.Streak) error {
	query := `
		INSERT INTO streaks (task_id, user_id, current_streak, best_streak, last_completed_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (task_id) DO UPDATE
		SET current_streak = EXCLUDED.current_streak,
		    best_streak = EXCLUDED.best_streak,
		    last_completed_date = EXCLUDED.last_completed_date,
		    updated_at = NOW()
		RETURNING id::text, created_at, updated_at
	`

	err := t.tx.QueryRow(ctx, query, s.TaskID, s.UserID, s.CurrentStreak, s.BestStreak, s.LastCompletedDate).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert streak: %w", err)
	}
	return nil
}

// InsertHabitLog records a habit check-in
func (t *TaskTx) InsertHabitLog(ctx context.Context, l *domain.HabitLog) error {
	query := `
		INSERT INTO habit_logs (task_id, user_id, is_positive, logged_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`

	if err := t.tx.QueryRow(ctx, query, l.TaskID, l.UserID, l.IsPositive, l.LoggedAt).Scan(&l.ID); err != nil {
		return fmt.Errorf("failed to insert habit log: %w", err)
	}
	return nil
}
