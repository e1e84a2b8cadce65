package models

import "time"

// AccountRecord is the persisted state of one account: its per-tier crystal
// balances and the timestamp of its last daily reward claim. Zero-amount
// buckets are never stored; an absent tier means zero.
type AccountRecord struct {
	Balances        map[Tier]int64 `json:"balances"`
	LastDailyReward time.Time      `json:"last_daily_reward"`
}

// Clone returns a deep copy so snapshots never share the live balance map.
func (a AccountRecord) Clone() AccountRecord {
	balances := make(map[Tier]int64, len(a.Balances))
	for tier, amount := range a.Balances {
		balances[tier] = amount
	}
	return AccountRecord{Balances: balances, LastDailyReward: a.LastDailyReward}
}

// ItemRef identifies a traded game item: its id, stack size and variant
// prefix. The engine never interprets these beyond carrying them through a
// listing or receipt; granting the item is the caller's job.
type ItemRef struct {
	ItemId int   `json:"item_id"`
	Stack  int   `json:"stack"`
	Prefix uint8 `json:"prefix"`
}

// Listing is an auction-house offer. Lifecycle: active (not sold, not
// expired) to either sold (Buyer set, Sold true, terminal) or expired
// (past ExpiresAt, unsold, removed by the next sweep).
type Listing struct {
	Id          string    `json:"id"`
	Seller      string    `json:"seller"`
	Item        ItemRef   `json:"item"`
	PriceTier   Tier      `json:"price_tier"`
	PriceAmount int64     `json:"price_amount"`
	ListedAt    time.Time `json:"listed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Buyer       string    `json:"buyer,omitempty"`
	Sold        bool      `json:"sold"`
}

// IsExpired reports whether the listing is past its expiration, evaluated
// against the wall clock at call time.
func (l Listing) IsExpired() bool {
	return time.Now().After(l.ExpiresAt)
}

// Active reports whether the listing should appear in the browse view.
func (l Listing) Active() bool {
	return !l.Sold && !l.IsExpired()
}

// UnboundedSentinel marks shop stock or purchase caps with no limit.
const UnboundedSentinel = -1

// ShopEntry is one catalog row. Stock and PurchaseLimit use
// UnboundedSentinel (-1) for "no limit"; Purchases tracks cumulative units
// bought per account for cap enforcement.
type ShopEntry struct {
	ItemId        int              `json:"item_id" yaml:"item_id"`
	Stock         int64            `json:"stock" yaml:"stock"`
	PriceTier     Tier             `json:"price_tier" yaml:"price_tier"`
	PriceAmount   int64            `json:"price_amount" yaml:"price_amount"`
	PurchaseLimit int64            `json:"purchase_limit" yaml:"purchase_limit"`
	Purchases     map[string]int64 `json:"purchases,omitempty" yaml:"-"`
}

// Clone returns a deep copy including the purchase counters.
func (e ShopEntry) Clone() ShopEntry {
	cloned := e
	cloned.Purchases = make(map[string]int64, len(e.Purchases))
	for account, units := range e.Purchases {
		cloned.Purchases[account] = units
	}
	return cloned
}
