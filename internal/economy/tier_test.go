package economy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starcrystal-economy-go/internal/models"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name   string
		tier   models.Tier
		amount int64
		want   int64
	}{
		{"low is identity", models.TierLow, 42, 42},
		{"medium is x100", models.TierMedium, 3, 300},
		{"high is x10k", models.TierHigh, 2, 20_000},
		{"supreme is x1M", models.TierSupreme, 5, 5_000_000},
		{"zero amount", models.TierSupreme, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(tt.tier, tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBaseUnitsRejectsBadInput(t *testing.T) {
	_, err := ToBaseUnits(models.Tier(7), 1)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ToBaseUnits(models.TierLow, -1)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ToBaseUnits(models.TierSupreme, math.MaxInt64/2)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFromBaseUnitsCollapsesToPrimaryDenomination(t *testing.T) {
	tests := []struct {
		name       string
		value      int64
		wantTier   models.Tier
		wantAmount int64
	}{
		{"zero", 0, models.TierLow, 0},
		{"below medium", 99, models.TierLow, 99},
		{"exact medium", 100, models.TierMedium, 1},
		{"remainder is discarded", 150, models.TierMedium, 1},
		{"exact high", 10_000, models.TierHigh, 1},
		{"mixed value picks highest tier", 1_234_567, models.TierSupreme, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, amount, err := FromBaseUnits(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}
}

func TestFromBaseUnitsRejectsNegative(t *testing.T) {
	_, _, err := FromBaseUnits(-1)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDecomposeBaseUnits(t *testing.T) {
	crystals, err := DecomposeBaseUnits(1_010_101)
	require.NoError(t, err)
	assert.Equal(t, []models.Crystal{
		{Tier: models.TierSupreme, Amount: 1},
		{Tier: models.TierHigh, Amount: 1},
		{Tier: models.TierMedium, Amount: 1},
		{Tier: models.TierLow, Amount: 1},
	}, crystals)

	crystals, err = DecomposeBaseUnits(0)
	require.NoError(t, err)
	assert.Empty(t, crystals)

	_, err = DecomposeBaseUnits(-5)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestRoundTripLosesOnlySubTierRemainder(t *testing.T) {
	tier, amount, err := FromBaseUnits(123_456)
	require.NoError(t, err)

	back, err := ToBaseUnits(tier, amount)
	require.NoError(t, err)
	assert.Equal(t, models.TierHigh, tier)
	assert.Equal(t, int64(120_000), back)
}
