package domain

// Event types emitted by the progression services
const (
	EventTypeTaskCompleted   = "task.completed"
	EventTypeHabitLogged     = "habit.logged"
	EventTypeLevelUp         = "character.level_up"
	EventTypeDefeated        = "character.defeated"
	EventTypeStreakMilestone = "streak.milestone"
	EventTypeRewardPurchased = "reward.purchased"
	EventTypeDailyAudit      = "audit.daily_complete"
)
