package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty grades a task and selects its base XP
type Difficulty string

const (
	DifficultyTrivial Difficulty = "trivial"
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
)

// IsValid reports whether d is one of the four known difficulties
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyTrivial, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty converts user or storage input into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidArgument, s)
	}
	return d, nil
}

// TaskType distinguishes habits, dailies and to-dos
type TaskType string

const (
	TaskTypeHabit TaskType = "habit"
	TaskTypeDaily TaskType = "daily"
	TaskTypeTodo  TaskType = "todo"
)

// IsValid reports whether t is one of the three task types
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeHabit, TaskTypeDaily, TaskTypeTodo:
		return true
	}
	return false
}

// ParseTaskType converts user input into a TaskType
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown task type %q", ErrInvalidArgument, s)
	}
	return t, nil
}

// Repeat intervals for daily tasks
const (
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
	RepeatCustom = "custom"
)

// RepeatPattern schedules a daily task. Days holds weekday numbers (0 = Sunday .. 6 = Saturday).
type RepeatPattern struct {
	Interval string `json:"interval"`
	Days     []int  `json:"days,omitempty"`
}

// Task is a user's habit, daily or to-do
type Task struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Type          TaskType       `json:"type"`
	Difficulty    Difficulty     `json:"difficulty"`
	IsCompleted   bool           `json:"is_completed"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	DueDate       *time.Time     `json:"due_date,omitempty"`
	RepeatPattern *RepeatPattern `json:"repeat_pattern,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// HabitLog records a single positive or negative habit check-in
type HabitLog struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	IsPositive bool      `json:"is_positive"`
	LoggedAt   time.Time `json:"logged_at"`
}

// CompletionResult is returned by task completion and positive habit logs
type CompletionResult struct {
	Task         Task    `json:"task"`
	XPGained     int     `json:"xp_gained"`
	GoldGained   int     `json:"gold_gained"`
	LeveledUp    bool    `json:"leveled_up"`
	NewLevel     int     `json:"new_level"`
	LevelsGained int     `json:"levels_gained,omitempty"`
	Streak       *Streak `json:"streak,omitempty"`
	BonusXP      int     `json:"bonus_xp,omitempty"`
	Milestone    int     `json:"milestone,omitempty"`
}

// HabitResult is returned by LogHabit
type HabitResult struct {
	Log          HabitLog  `json:"log"`
	Character    Character `json:"character"`
	XPGained     int       `json:"xp_gained"`
	GoldGained   int       `json:"gold_gained"`
	HPLost       int       `json:"hp_lost"`
	LeveledUp    bool      `json:"leveled_up"`
	LevelsGained int       `json:"levels_gained,omitempty"`
	Defeated     bool      `json:"defeated"`
	GoldLost     int       `json:"gold_lost,omitempty"`
}

// DueTask is a task in the due-today view
type DueTask struct {
	Task           Task       `json:"task"`
	Overdue        bool       `json:"overdue"`
	DaysUntilDue   *int       `json:"days_until_due,omitempty"`
	NextActiveDate *time.Time `json:"next_active_date,omitempty"`
}

// NewTask holds the fields a user supplies when creating a task.
// An empty Difficulty defaults to easy.
type NewTask struct {
	Title         string
	Description   string
	Type          TaskType
	Difficulty    Difficulty
	DueDate       *time.Time
	RepeatPattern *RepeatPattern
}

// TaskUpdate lists the fields to change on a task; nil fields are left alone.
// The type of a task is fixed at creation.
type TaskUpdate struct {
	Title         *string
	Description   *string
	Difficulty    *Difficulty
	DueDate       *time.Time
	ClearDueDate  bool
	RepeatPattern *RepeatPattern
}

// IsEmpty reports whether the update changes nothing
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Difficulty == nil &&
		u.DueDate == nil && !u.ClearDueDate && u.RepeatPattern == nil
}

// TaskFilter narrows and pages a task listing. Zero values mean no filter and the default page.
type TaskFilter struct {
	Type        *TaskType
	IsCompleted *bool
	Limit       int
	Offset      int
}

// TaskPage is one page of a task listing with the total count of matching tasks
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}
