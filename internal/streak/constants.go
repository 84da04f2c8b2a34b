package streak

// Milestone rules
const (
	// MilestoneInterval: every Nth consecutive day is a milestone
	MilestoneInterval = 7

	// MilestoneBonusXP is awarded when a milestone is reached
	MilestoneBonusXP = 50
)

// Calendar constants
const (
	hoursPerDay  = 24
	daysPerWeek  = 7
	minWeekday   = 0
	maxWeekday   = 6
	maxLookahead = 7
)
