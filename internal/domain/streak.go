package domain

import "time"

// Streak tracks consecutive-day completion of one daily task.
// LastCompletedDate is a calendar day stored as UTC midnight.
type Streak struct {
	ID                string     `json:"id"`
	TaskID            string     `json:"task_id"`
	UserID            string     `json:"user_id"`
	CurrentStreak     int        `json:"current_streak"`
	BestStreak        int        `json:"best_streak"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// StreakUpdateResult is returned by the stand-alone streak update
type StreakUpdateResult struct {
	Streak       Streak `json:"streak"`
	BonusXP      int    `json:"bonus_xp"`
	Milestone    int    `json:"milestone,omitempty"`
	LeveledUp    bool   `json:"leveled_up"`
	NewLevel     int    `json:"new_level"`
	LevelsGained int    `json:"levels_gained,omitempty"`
}

// AuditReport summarises a daily audit run
type AuditReport struct {
	Day             time.Time `json:"day"`
	StreaksReset    int       `json:"streaks_reset"`
	DailiesReopened int       `json:"dailies_reopened"`
	Skipped         int       `json:"skipped"`
}
