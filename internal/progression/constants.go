package progression

import "github.com/osse101/habitquest/internal/domain"

// Level curve constants: required XP for level N = BaseLevelXP * (N ^ LevelExponent)
const (
	BaseLevelXP   = 100.0
	LevelExponent = 1.5

	// MinLevel is the lowest valid character level
	MinLevel = 1
)

// Base XP awarded per difficulty
const (
	XPTrivial = 5
	XPEasy    = 10
	XPMedium  = 20
	XPHard    = 40
)

// GoldDivisor converts bonused XP into gold before the gold multiplier applies
const GoldDivisor = 2

// ProgressPrecision is the number of decimals kept in progress percentages
const ProgressPrecision = 2

// MaxProgressPercentage caps XP progress reports
const MaxProgressPercentage = 100.0

var baseXPTable = map[domain.Difficulty]int{
	domain.DifficultyTrivial: XPTrivial,
	domain.DifficultyEasy:    XPEasy,
	domain.DifficultyMedium:  XPMedium,
	domain.DifficultyHard:    XPHard,
}
