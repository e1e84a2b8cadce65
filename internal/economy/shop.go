package economy

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
)

// Receipt is returned by a successful purchase for the caller to materialize
// (grant the item to the buyer). The engine never touches inventories.
type Receipt struct {
	ItemId     int
	Quantity   int64
	PriceTier  models.Tier
	TotalPrice int64
	EntryIndex int
	AccountId  string
}

// ShopCatalog owns the ordered purchasable entries and their per-account
// purchase counters. The 1-based entry index shown in List is the handle
// callers buy with. Lock order for cross-aggregate work: catalog before
// ledger.
type ShopCatalog struct {
	mu      sync.Mutex
	entries []*models.ShopEntry
	ledger  *Ledger
}

// NewShopCatalog builds a catalog over the given entries. Entries are cloned
// so the caller's slice (typically config) is never aliased.
func NewShopCatalog(ledger *Ledger, entries []models.ShopEntry) *ShopCatalog {
	catalog := &ShopCatalog{ledger: ledger}
	catalog.setEntries(entries)
	return catalog
}

func (c *ShopCatalog) setEntries(entries []models.ShopEntry) {
	c.entries = make([]*models.ShopEntry, 0, len(entries))
	for _, entry := range entries {
		cloned := entry.Clone()
		c.entries = append(c.entries, &cloned)
	}
}

// List returns a copy of the catalog in stable order. Position i corresponds
// to purchase index i+1.
func (c *ShopCatalog) List() []models.ShopEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]models.ShopEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry.Clone())
	}
	return entries
}

// Purchase buys quantity units of the entry at the 1-based index for the
// account. Validation and the ledger withdrawal fully precede any catalog
// mutation, so a failure at any step leaves stock, counters and the buyer's
// balance untouched.
func (c *ShopCatalog) Purchase(entryIndex int, accountId string, quantity int64) (Receipt, error) {
	if quantity < 1 {
		return Receipt{}, fmt.Errorf("%w: purchase quantity %d", ErrInvalidValue, quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entryIndex < 1 || entryIndex > len(c.entries) {
		return Receipt{}, fmt.Errorf("%w: shop index %d", ErrNotFound, entryIndex)
	}
	entry := c.entries[entryIndex-1]

	if entry.Stock != models.UnboundedSentinel && entry.Stock < quantity {
		return Receipt{}, fmt.Errorf("%w: %d left, %d requested", ErrInsufficientStock, entry.Stock, quantity)
	}

	if entry.PurchaseLimit != models.UnboundedSentinel {
		bought := entry.Purchases[accountId]
		if bought+quantity > entry.PurchaseLimit {
			return Receipt{}, fmt.Errorf("%w: cap %d, already bought %d", ErrPurchaseLimitExceeded, entry.PurchaseLimit, bought)
		}
	}

	if entry.PriceAmount > math.MaxInt64/quantity {
		return Receipt{}, fmt.Errorf("%w: %d x %d exceeds int64", ErrOverflow, entry.PriceAmount, quantity)
	}
	totalPrice := entry.PriceAmount * quantity

	if !c.ledger.Withdraw(accountId, entry.PriceTier, totalPrice) {
		return Receipt{}, fmt.Errorf("%w: need %d %s", ErrInsufficientFunds, totalPrice, entry.PriceTier.Label())
	}

	if entry.Stock != models.UnboundedSentinel {
		entry.Stock -= quantity
	}
	if entry.PurchaseLimit != models.UnboundedSentinel {
		if entry.Purchases == nil {
			entry.Purchases = make(map[string]int64)
		}
		entry.Purchases[accountId] += quantity
	}

	zap.L().Info("Shop purchase completed",
		zap.String("account_id", accountId),
		zap.Int("entry_index", entryIndex),
		zap.Int("item_id", entry.ItemId),
		zap.Int64("quantity", quantity),
		zap.String("price_tier", entry.PriceTier.String()),
		zap.Int64("total_price", totalPrice))

	return Receipt{
		ItemId:     entry.ItemId,
		Quantity:   quantity,
		PriceTier:  entry.PriceTier,
		TotalPrice: totalPrice,
		EntryIndex: entryIndex,
		AccountId:  accountId,
	}, nil
}

// Snapshot returns a deep copy of the catalog for persistence.
func (c *ShopCatalog) Snapshot() models.CatalogSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := models.CatalogSnapshot{Entries: make([]models.ShopEntry, 0, len(c.entries))}
	for _, entry := range c.entries {
		snapshot.Entries = append(snapshot.Entries, entry.Clone())
	}
	return snapshot
}

// Restore replaces the catalog's contents with a loaded snapshot.
func (c *ShopCatalog) Restore(snapshot models.CatalogSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setEntries(snapshot.Entries)
}
