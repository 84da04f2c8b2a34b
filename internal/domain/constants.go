package domain

// Character defaults
const (
	DefaultLevel = 1
	DefaultXP    = 0
	DefaultHP    = 100
	MaxHP        = 100
	DefaultGold  = 0
)

// Habit penalties
const (
	// HabitHPPenalty is the hp lost on a negative habit log
	HabitHPPenalty = 5

	// DefeatGoldPenaltyPercent is the share of gold lost when hp reaches zero
	DefeatGoldPenaltyPercent = 10
)

// Stat bonus bounds accepted from catalog input
const (
	MinMultiplier = 1.0
	MaxMultiplier = 5.0
	MinHPBonus    = 0
	MaxHPBonus    = 100
)
