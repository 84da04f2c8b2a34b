package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/habitquest/internal/domain"
)

func TestCompletionSummary(t *testing.T) {
	tests := []struct {
		name   string
		result domain.CompletionResult
		want   string
	}{
		{
			name:   "plain completion",
			result: domain.CompletionResult{XPGained: 20, GoldGained: 10, NewLevel: 1},
			want:   "+20 XP, +10 gold",
		},
		{
			name:   "milestone and level up",
			result: domain.CompletionResult{XPGained: 40, GoldGained: 20, Milestone: 7, BonusXP: 50, LeveledUp: true, NewLevel: 3},
			want:   "+40 XP, +20 gold. 7-day streak! +50 bonus XP. Level up! Now level 3",
		},
		{
			name:   "large numbers are grouped",
			result: domain.CompletionResult{XPGained: 1200, GoldGained: 600, NewLevel: 9},
			want:   "+1,200 XP, +600 gold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, completionSummary(&tt.result))
		})
	}
}

func TestHabitSummary(t *testing.T) {
	positive := &domain.HabitResult{Log: domain.HabitLog{IsPositive: true}, XPGained: 10, GoldGained: 5}
	assert.Equal(t, "+10 XP, +5 gold", habitSummary(positive))

	negative := &domain.HabitResult{HPLost: 5, Character: domain.Character{HP: 45}}
	assert.Equal(t, "-5 HP, 45 HP left", habitSummary(negative))

	defeated := &domain.HabitResult{HPLost: 5, Defeated: true, GoldLost: 12}
	assert.Equal(t, "-5 HP. You were defeated and lost 12 gold", habitSummary(defeated))
}

func TestStreakSummary(t *testing.T) {
	assert.Equal(t, "Streak: 1 day (best 4)",
		streakSummary(&domain.StreakUpdateResult{Streak: domain.Streak{CurrentStreak: 1, BestStreak: 4}}))
	assert.Equal(t, "Streak: 3 days (best 4)",
		streakSummary(&domain.StreakUpdateResult{Streak: domain.Streak{CurrentStreak: 3, BestStreak: 4}}))
	assert.Equal(t, "14-day streak! +50 bonus XP",
		streakSummary(&domain.StreakUpdateResult{Milestone: 14, BonusXP: 50}))
}

func TestPurchaseSummary(t *testing.T) {
	r := &domain.PurchaseResult{Reward: domain.Reward{Name: "Ring of Momentum"}, GoldSpent: 400, RemainingGold: 1250}
	assert.Equal(t, "Purchased Ring of Momentum for 400 gold. 1,250 gold left", purchaseSummary(r))
}

func TestFormatInsufficientGold(t *testing.T) {
	assert.Equal(t, "Not enough gold: 1,500 needed, 320 available", formatInsufficientGold(1500, 320))
}
