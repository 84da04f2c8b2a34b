package progression

import (
	"fmt"

	"github.com/osse101/habitquest/internal/domain"
)

// LevelUpResult is the outcome of applying gained XP to a character
type LevelUpResult struct {
	NewLevel     int
	RemainingXP  int
	LeveledUp    bool
	LevelsGained int
}

// ResolveLevelUp adds xpGained to the in-level xp and advances levels while the running
// total reaches the current threshold. The result always satisfies RemainingXP < RequiredXP(NewLevel).
func ResolveLevelUp(level, xp, xpGained int) (LevelUpResult, error) {
	if level < MinLevel {
		return LevelUpResult{}, fmt.Errorf("%w: level must be >= %d, got %d", domain.ErrInvalidArgument, MinLevel, level)
	}
	if xp < 0 || xpGained < 0 {
		return LevelUpResult{}, fmt.Errorf("%w: xp values must be non-negative (xp=%d, gained=%d)", domain.ErrInvalidArgument, xp, xpGained)
	}

	total := xp + xpGained
	newLevel := level
	for total >= requiredXP(newLevel) {
		total -= requiredXP(newLevel)
		newLevel++
	}

	return LevelUpResult{
		NewLevel:     newLevel,
		RemainingXP:  total,
		LeveledUp:    newLevel > level,
		LevelsGained: newLevel - level,
	}, nil
}
