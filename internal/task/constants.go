package task

// Task field limits and listing pages
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	DefaultTaskPageSize  = 50
	MaxTaskPageSize      = 100
)

// XP history windows in calendar days
const (
	DefaultHistoryDays = 30
	MaxHistoryDays     = 366
)

// Log messages
const (
	LogMsgTaskCreated        = "Task created"
	LogMsgTaskUpdated        = "Task updated"
	LogMsgTaskDeleted        = "Task deleted"
	LogMsgTaskCompleted      = "Task completed"
	LogMsgHabitLogged        = "Habit logged"
	LogMsgCharacterDefeated  = "Character defeated, gold penalty applied"
	LogMsgStreakUpdated      = "Streak updated"
	LogMsgStreakMilestone    = "Streak milestone reached"
	LogMsgLevelUp            = "Character leveled up"
	LogMsgAuditStarted       = "Daily audit started"
	LogMsgAuditCompleted     = "Daily audit completed"
	LogMsgAuditSkippedTask   = "Daily audit skipped task with invalid repeat pattern"
	LogMsgAuditStreakFailed  = "Daily audit failed to reset streak"
	LogMsgAuditReopenFailed  = "Daily audit failed to reopen daily"
	LogMsgDueInvalidPattern  = "Skipping daily with invalid repeat pattern"
	LogMsgServiceShutdown    = "Task service shutting down..."
	LogMsgServiceShutdownErr = "Failed to shut down task publisher"
)
