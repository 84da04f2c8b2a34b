package progression

import (
	"fmt"

	"github.com/osse101/habitquest/internal/domain"
)

// AggregateStats folds the bonuses of every equipped item into one total.
// Multipliers combine by product and hp bonuses by sum, so order never matters.
// An empty slice yields {1, 1, 0}.
func AggregateStats(items []domain.EquippedItem) domain.StatBonuses {
	xpMult := 1.0
	goldMult := 1.0
	hpBonus := 0

	for _, item := range items {
		xpMult *= item.StatBonuses.XPMultiplierOrDefault()
		goldMult *= item.StatBonuses.GoldMultiplierOrDefault()
		hpBonus += item.StatBonuses.HPBonusOrDefault()
	}

	return domain.StatBonuses{
		XPMultiplier:   &xpMult,
		GoldMultiplier: &goldMult,
		HPBonus:        &hpBonus,
	}
}

// ValidateStatBonuses checks catalog input against the accepted ranges
func ValidateStatBonuses(b *domain.StatBonuses) error {
	if b == nil {
		return nil
	}
	if b.XPMultiplier != nil && (*b.XPMultiplier < domain.MinMultiplier || *b.XPMultiplier > domain.MaxMultiplier) {
		return invalidBonus("xp_multiplier", *b.XPMultiplier)
	}
	if b.GoldMultiplier != nil && (*b.GoldMultiplier < domain.MinMultiplier || *b.GoldMultiplier > domain.MaxMultiplier) {
		return invalidBonus("gold_multiplier", *b.GoldMultiplier)
	}
	if b.HPBonus != nil && (*b.HPBonus < domain.MinHPBonus || *b.HPBonus > domain.MaxHPBonus) {
		return invalidBonus("hp_bonus", float64(*b.HPBonus))
	}
	return nil
}

func invalidBonus(field string, value float64) error {
	return fmt.Errorf("%w: %s out of range: %v", domain.ErrInvalidArgument, field, value)
}
