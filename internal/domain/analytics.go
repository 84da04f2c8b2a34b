package domain

import (
	"fmt"
	"strings"
)

// Interval is the bucket size of an XP history
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// ParseInterval converts user input into an Interval. Empty input means day.
func ParseInterval(s string) (Interval, error) {
	switch i := Interval(strings.ToLower(strings.TrimSpace(s))); i {
	case "":
		return IntervalDay, nil
	case IntervalDay, IntervalWeek, IntervalMonth:
		return i, nil
	}
	return "", fmt.Errorf("%w: unknown interval %q", ErrInvalidArgument, s)
}

// XPHistoryPoint is the XP gained in one period. Period is YYYY-MM-DD for days and weeks
// (weeks start on Sunday) and YYYY-MM for months.
type XPHistoryPoint struct {
	Period string `json:"period"`
	XP     int    `json:"xp"`
}

// TaskTypeCounts counts tasks per type
type TaskTypeCounts struct {
	Habit int `json:"habit"`
	Daily int `json:"daily"`
	Todo  int `json:"todo"`
}

// DifficultyCounts counts tasks per difficulty
type DifficultyCounts struct {
	Trivial int `json:"trivial"`
	Easy    int `json:"easy"`
	Medium  int `json:"medium"`
	Hard    int `json:"hard"`
}

// TaskCount is the number of a user's tasks sharing a type, difficulty and completion state
type TaskCount struct {
	Type        TaskType
	Difficulty  Difficulty
	IsCompleted bool
	Count       int
}

// TaskStats summarizes a user's tasks. CompletionRate is a percentage; the breakdowns count completed tasks.
type TaskStats struct {
	TotalTasks     int              `json:"total_tasks"`
	TotalCompleted int              `json:"total_completed"`
	CompletionRate float64          `json:"completion_rate"`
	ByType         TaskTypeCounts   `json:"by_type"`
	ByDifficulty   DifficultyCounts `json:"by_difficulty"`
}

// StreakData summarizes a user's streaks and activity
type StreakData struct {
	CurrentStreaks  []Streak `json:"current_streaks"`
	LongestStreak   *Streak  `json:"longest_streak"`
	TotalActiveDays int      `json:"total_active_days"`
}

