package economy

import (
	"fmt"
	"math"

	"starcrystal-economy-go/internal/models"
)

// ToBaseUnits converts a crystal quantity of one tier to its canonical
// base-unit value. Returns ErrInvalidValue for an unknown tier or negative
// amount, ErrOverflow if the product does not fit in int64.
func ToBaseUnits(tier models.Tier, amount int64) (int64, error) {
	if !tier.Valid() {
		return 0, fmt.Errorf("%w: unknown tier %d", ErrInvalidValue, tier)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: negative amount %d", ErrInvalidValue, amount)
	}
	rate := tier.Rate()
	if amount > math.MaxInt64/rate {
		return 0, fmt.Errorf("%w: %d x %d exceeds int64", ErrOverflow, amount, rate)
	}
	return amount * rate, nil
}

// FromBaseUnits decomposes a base-unit value greedily through all tiers and
// returns only the highest non-zero denomination, discarding lower
// remainders. This mirrors the primary-denomination display; callers that
// need the full breakdown use DecomposeBaseUnits.
func FromBaseUnits(value int64) (models.Tier, int64, error) {
	if value < 0 {
		return models.TierLow, 0, fmt.Errorf("%w: negative base value %d", ErrInvalidValue, value)
	}
	for tier := models.Tier(models.TierCount - 1); tier > models.TierLow; tier-- {
		if q := value / tier.Rate(); q > 0 {
			return tier, q, nil
		}
	}
	return models.TierLow, value, nil
}

// DecomposeBaseUnits returns the full greedy breakdown of a base-unit value,
// highest tier first, omitting zero quantities.
func DecomposeBaseUnits(value int64) ([]models.Crystal, error) {
	if value < 0 {
		return nil, fmt.Errorf("%w: negative base value %d", ErrInvalidValue, value)
	}
	var crystals []models.Crystal
	for tier := models.Tier(models.TierCount - 1); tier >= models.TierLow; tier-- {
		rate := tier.Rate()
		if q := value / rate; q > 0 {
			crystals = append(crystals, models.Crystal{Tier: tier, Amount: q})
			value -= q * rate
		}
	}
	return crystals, nil
}

// addChecked adds two non-negative values, reporting ErrOverflow instead of
// wrapping around.
func addChecked(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("%w: %d + %d exceeds int64", ErrOverflow, a, b)
	}
	return a + b, nil
}
