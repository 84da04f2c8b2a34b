package progression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/habitquest/internal/domain"
)

func TestCalculateGoldReward(t *testing.T) {
	tests := []struct {
		name       string
		difficulty domain.Difficulty
		bonuses    *domain.StatBonuses
		expected   int
	}{
		{"medium no bonus", domain.DifficultyMedium, nil, 10},
		{"trivial floors half", domain.DifficultyTrivial, nil, 2},
		{"hard no bonus", domain.DifficultyHard, nil, 20},
		{"gold multiplier", domain.DifficultyMedium, &domain.StatBonuses{GoldMultiplier: floatPtr(1.5)}, 15},
		{"xp multiplier feeds gold", domain.DifficultyEasy, &domain.StatBonuses{XPMultiplier: floatPtr(2)}, 10},
		{"both multipliers", domain.DifficultyEasy, &domain.StatBonuses{XPMultiplier: floatPtr(1.5), GoldMultiplier: floatPtr(1.5)}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateGoldReward(tt.difficulty, tt.bonuses))
		})
	}
}

func TestCanAffordPurchase(t *testing.T) {
	ok, err := CanAffordPurchase(50, 50)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanAffordPurchase(49, 50)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CanAffordPurchase(-1, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = CanAffordPurchase(5, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDeductGold(t *testing.T) {
	remaining, err := DeductGold(100, 30)
	require.NoError(t, err)
	assert.Equal(t, 70, remaining)

	remaining, err = DeductGold(30, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = DeductGold(10, 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientResources)

	var goldErr *domain.InsufficientGoldError
	require.True(t, errors.As(err, &goldErr))
	assert.Equal(t, 20, goldErr.Required)
	assert.Equal(t, 10, goldErr.Available)

	_, err = DeductGold(-1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCalculateDefeatPenalty(t *testing.T) {
	p, err := CalculateDefeatPenalty(155, 10)
	require.NoError(t, err)
	assert.Equal(t, DefeatPenalty{GoldLost: 15, RemainingGold: 140}, p)

	p, err = CalculateDefeatPenalty(0, 10)
	require.NoError(t, err)
	assert.Equal(t, DefeatPenalty{}, p)

	_, err = CalculateDefeatPenalty(100, 101)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = CalculateDefeatPenalty(100, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = CalculateDefeatPenalty(-5, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestIsValidGoldAmount(t *testing.T) {
	assert.True(t, IsValidGoldAmount(0))
	assert.True(t, IsValidGoldAmount(1000))
	assert.False(t, IsValidGoldAmount(-1))
}
