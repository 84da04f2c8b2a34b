package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path parameter error messages
	ErrMsgInvalidTaskID = "Task id must be a UUID"

	// Query parameter error messages
	ErrMsgInvalidQuery = "Invalid query parameters"
)

// Success messages
const (
	MsgTaskCreated = "Task created"
	MsgTaskUpdated = "Task updated"
	MsgTaskDeleted = "Task deleted"
)

// Operation names used in logs
const (
	OpResolveUser    = "Resolve user"
	OpCreateTask     = "Create task"
	OpListTasks      = "List tasks"
	OpUpdateTask     = "Update task"
	OpDeleteTask     = "Delete task"
	OpCompleteTask   = "Complete task"
	OpLogHabit       = "Log habit"
	OpUpdateStreak   = "Update streak"
	OpListStreaks    = "List streaks"
	OpListDue        = "List due tasks"
	OpRunAudit       = "Run daily audit"
	OpCharacterSheet = "Get character sheet"
	OpLifetimeLevel  = "Get lifetime level"
	OpListRewards    = "List rewards"
	OpPurchaseReward = "Purchase reward"
	OpXPHistory      = "Get XP history"
	OpTaskStats      = "Get task stats"
	OpStreakData     = "Get streak data"
)
