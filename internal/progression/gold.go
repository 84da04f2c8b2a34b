package progression

import (
	"fmt"
	"math"

	"github.com/osse101/habitquest/internal/domain"
)

// CalculateGoldReward returns floor(floor(bonusedXP / 2) * goldMultiplier)
func CalculateGoldReward(d domain.Difficulty, bonuses *domain.StatBonuses) int {
	baseGold := CalculateXP(d, bonuses) / GoldDivisor
	return int(math.Floor(float64(baseGold) * bonuses.GoldMultiplierOrDefault()))
}

// CanAffordPurchase reports whether gold covers cost
func CanAffordPurchase(gold, cost int) (bool, error) {
	if gold < 0 || cost < 0 {
		return false, fmt.Errorf("%w: gold and cost must be non-negative (gold=%d, cost=%d)", domain.ErrInvalidArgument, gold, cost)
	}
	return gold >= cost, nil
}

// DeductGold returns the balance after paying cost
func DeductGold(gold, cost int) (int, error) {
	affordable, err := CanAffordPurchase(gold, cost)
	if err != nil {
		return 0, err
	}
	if !affordable {
		return 0, &domain.InsufficientGoldError{Required: cost, Available: gold}
	}
	return gold - cost, nil
}

// DefeatPenalty is the gold lost when a character's hp reaches zero
type DefeatPenalty struct {
	GoldLost      int
	RemainingGold int
}

// CalculateDefeatPenalty takes floor(gold * percent / 100) from gold
func CalculateDefeatPenalty(gold, percent int) (DefeatPenalty, error) {
	if gold < 0 {
		return DefeatPenalty{}, fmt.Errorf("%w: gold must be non-negative, got %d", domain.ErrInvalidArgument, gold)
	}
	if percent < 0 || percent > 100 {
		return DefeatPenalty{}, fmt.Errorf("%w: penalty percent must be within 0..100, got %d", domain.ErrInvalidArgument, percent)
	}

	lost := gold * percent / 100
	return DefeatPenalty{GoldLost: lost, RemainingGold: gold - lost}, nil
}

// IsValidGoldAmount reports whether amount can be stored as a price or balance
func IsValidGoldAmount(amount int) bool {
	return amount >= 0
}
