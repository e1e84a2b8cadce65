package models

// Tier is one of the four star-crystal denomination grades, ordered lowest to
// highest. Exchange rates are fixed powers of 100; a new grade must be
// inserted in order so the rates stay strictly increasing.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
	TierSupreme

	TierCount = 4
)

// tierRates[t] is the value of one crystal of tier t in base units.
var tierRates = [TierCount]int64{1, 100, 10_000, 1_000_000}

var tierNames = [TierCount]string{"low", "medium", "high", "supreme"}

var tierLabels = [TierCount]string{
	"low-grade star crystal",
	"medium-grade star crystal",
	"high-grade star crystal",
	"supreme-grade star crystal",
}

var tierColors = [TierCount]string{"00FF00", "0099FF", "CC00FF", "FFD700"}

// Tiers returns all tiers, lowest first.
func Tiers() []Tier {
	return []Tier{TierLow, TierMedium, TierHigh, TierSupreme}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t >= TierLow && t < TierCount
}

// Rate returns the base-unit value of one crystal of this tier.
func (t Tier) Rate() int64 {
	if !t.Valid() {
		return 1
	}
	return tierRates[t]
}

// String returns the short tier name used in config files and CLI flags.
func (t Tier) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return tierNames[t]
}

// Label returns the human-readable crystal name.
func (t Tier) Label() string {
	if !t.Valid() {
		return "unknown star crystal"
	}
	return tierLabels[t]
}

// ColorHex returns the RRGGBB display color for this tier.
func (t Tier) ColorHex() string {
	if !t.Valid() {
		return "FFFFFF"
	}
	return tierColors[t]
}

// ParseTier maps a short tier name back to its Tier. The second return is
// false for unknown names.
func ParseTier(name string) (Tier, bool) {
	for i, n := range tierNames {
		if n == name {
			return Tier(i), true
		}
	}
	return TierLow, false
}

// Crystal is a quantity of a single tier, the unit of prices and balances.
type Crystal struct {
	Tier   Tier  `json:"tier" yaml:"tier"`
	Amount int64 `json:"amount" yaml:"amount"`
}
