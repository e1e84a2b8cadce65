package economy

import (
	"math/rand"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
)

// maxPowerFactor caps how much a strong monster scales the drop chances.
const maxPowerFactor = 10.0

// dropAmountCeiling[t] is the exclusive upper bound on the crystal count a
// single drop of tier t can yield.
var dropAmountCeiling = [models.TierCount]int64{20, 10, 5, 3}

// DropPolicy decides which crystal drop, if any, a monster kill yields.
// Chances scale with the monster's max life and are checked highest tier
// first, so one roll produces at most one drop.
type DropPolicy struct {
	chances models.DropTable
	rng     *rand.Rand
}

// NewDropPolicy creates a policy over the configured chance table. A nil rng
// uses the shared global source.
func NewDropPolicy(chances models.DropTable, rng *rand.Rand) *DropPolicy {
	return &DropPolicy{chances: chances, rng: rng}
}

func (p *DropPolicy) randFloat() float64 {
	if p.rng != nil {
		return p.rng.Float64()
	}
	return rand.Float64()
}

func (p *DropPolicy) randInt63n(n int64) int64 {
	if p.rng != nil {
		return p.rng.Int63n(n)
	}
	return rand.Int63n(n)
}

// Roll decides a drop for a monster with the given max life. Returns the
// dropped crystal and true, or false when the roll yields nothing.
func (p *DropPolicy) Roll(monsterMaxLife int) (models.Crystal, bool) {
	power := float64(monsterMaxLife) / 100.0
	if power > maxPowerFactor {
		power = maxPowerFactor
	}

	roll := p.randFloat()
	tiers := models.Tiers()
	for i := len(tiers) - 1; i >= 0; i-- {
		tier := tiers[i]
		if roll < p.chances.Chance(tier)*power {
			amount := 1 + p.randInt63n(dropAmountCeiling[tier]-1)
			return models.Crystal{Tier: tier, Amount: amount}, true
		}
	}
	return models.Crystal{}, false
}

// Award rolls a drop and deposits it into the account's ledger balance.
// Returns the dropped crystal and true when something was granted.
func (p *DropPolicy) Award(ledger *Ledger, accountId string, monsterMaxLife int) (models.Crystal, bool) {
	drop, ok := p.Roll(monsterMaxLife)
	if !ok {
		return models.Crystal{}, false
	}
	if err := ledger.Deposit(accountId, drop.Tier, drop.Amount); err != nil {
		zap.L().Error("Failed to deposit drop",
			zap.String("account_id", accountId),
			zap.String("tier", drop.Tier.String()),
			zap.Int64("amount", drop.Amount),
			zap.Error(err))
		return models.Crystal{}, false
	}
	return drop, true
}
