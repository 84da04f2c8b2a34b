package progression

import (
	"fmt"
	"math"

	"github.com/osse101/habitquest/internal/domain"
)

// BaseXP returns the table XP for a difficulty.
// An unknown difficulty is a programming error; validate input with domain.ParseDifficulty first.
func BaseXP(d domain.Difficulty) int {
	xp, ok := baseXPTable[d]
	if !ok {
		panic(fmt.Sprintf("progression: unknown difficulty %q", d))
	}
	return xp
}

// CalculateXP returns floor(baseXP * xpMultiplier). Nil bonuses count as multiplier 1.
func CalculateXP(d domain.Difficulty, bonuses *domain.StatBonuses) int {
	base := BaseXP(d)
	return int(math.Floor(float64(base) * bonuses.XPMultiplierOrDefault()))
}

// RequiredXP returns the XP needed to advance out of level
func RequiredXP(level int) (int, error) {
	if level < MinLevel {
		return 0, fmt.Errorf("%w: level must be >= %d, got %d", domain.ErrInvalidArgument, MinLevel, level)
	}
	return requiredXP(level), nil
}

func requiredXP(level int) int {
	return int(math.Floor(BaseLevelXP * math.Pow(float64(level), LevelExponent)))
}

// LevelFromTotalXP maps lifetime cumulative XP to a level.
// Used for analytics only; characters track XP per level.
func LevelFromTotalXP(totalXP int64) (int, error) {
	if totalXP < 0 {
		return 0, fmt.Errorf("%w: total xp must be non-negative, got %d", domain.ErrInvalidArgument, totalXP)
	}

	level := MinLevel
	remaining := totalXP
	for {
		req := int64(requiredXP(level))
		if remaining < req {
			return level, nil
		}
		remaining -= req
		level++
	}
}

// CalculateXPProgress reports progress toward the next level.
// Percentage is capped at 100 and rounded to two decimals.
func CalculateXPProgress(xp, level int) (domain.XPProgress, error) {
	required, err := RequiredXP(level)
	if err != nil {
		return domain.XPProgress{}, err
	}
	if xp < 0 {
		return domain.XPProgress{}, fmt.Errorf("%w: xp must be non-negative, got %d", domain.ErrInvalidArgument, xp)
	}

	pct := math.Min(float64(xp)/float64(required)*100, MaxProgressPercentage)
	scale := math.Pow(10, ProgressPrecision)

	return domain.XPProgress{
		Current:    xp,
		Required:   required,
		Percentage: math.Round(pct*scale) / scale,
	}, nil
}
