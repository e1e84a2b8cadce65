package economy

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
)

// ListingDuration is the fixed lifetime of every auction listing.
const ListingDuration = 7 * 24 * time.Hour

// SettlementResult is returned by a successful settlement for the caller to
// grant the item to the buyer.
type SettlementResult struct {
	ListingId   string
	Seller      string
	Buyer       string
	Item        models.ItemRef
	PriceTier   models.Tier
	PriceAmount int64
}

// Auction owns the listing collection. Expiration is observed lazily from
// the wall clock; expired unsold listings linger until the next Sweep.
// Lock order for cross-aggregate work: auction before ledger.
type Auction struct {
	mu       sync.Mutex
	listings []*models.Listing
	ledger   *Ledger
}

// NewAuction creates an empty auction house settling trades against ledger.
func NewAuction(ledger *Ledger) *Auction {
	return &Auction{ledger: ledger}
}

// Create lists an item for sale at a fixed price. The item is assumed to be
// already removed from the seller's possession by the caller. No crystals
// move at creation time.
func (a *Auction) Create(sellerId string, item models.ItemRef, priceTier models.Tier, priceAmount int64) (models.Listing, error) {
	if !priceTier.Valid() {
		return models.Listing{}, fmt.Errorf("%w: unknown tier %d", ErrInvalidValue, priceTier)
	}
	if priceAmount < 1 {
		return models.Listing{}, fmt.Errorf("%w: listing price %d", ErrInvalidValue, priceAmount)
	}

	now := time.Now()
	listing := models.Listing{
		Id:          uuid.New().String(),
		Seller:      sellerId,
		Item:        item,
		PriceTier:   priceTier,
		PriceAmount: priceAmount,
		ListedAt:    now,
		ExpiresAt:   now.Add(ListingDuration),
	}

	a.mu.Lock()
	a.listings = append(a.listings, &listing)
	a.mu.Unlock()

	zap.L().Info("Listing created",
		zap.String("listing_id", listing.Id),
		zap.String("seller", sellerId),
		zap.Int("item_id", item.ItemId),
		zap.Int("stack", item.Stack),
		zap.String("price_tier", priceTier.String()),
		zap.Int64("price_amount", priceAmount))

	return listing, nil
}

// activeLocked returns the live listings that are neither sold nor expired,
// in creation order. Caller must hold a.mu.
func (a *Auction) activeLocked() []*models.Listing {
	active := make([]*models.Listing, 0, len(a.listings))
	for _, listing := range a.listings {
		if listing.Active() {
			active = append(active, listing)
		}
	}
	return active
}

// ActiveListings returns the current browse view: unsold, unexpired
// listings in creation order. The 1-based position in this view is the
// index Settle accepts, and it is only valid against the view it was read
// from; listings created or expiring in between shift indices, which
// surfaces as ErrNotFound on a stale buy.
func (a *Auction) ActiveListings() []models.Listing {
	a.mu.Lock()
	defer a.mu.Unlock()

	active := a.activeLocked()
	listings := make([]models.Listing, 0, len(active))
	for _, listing := range active {
		listings = append(listings, *listing)
	}
	return listings
}

// Settle buys the listing at the 1-based index into the current active
// view. On success the listing is marked sold with the buyer recorded, the
// price moves from buyer to seller in one ledger transfer, and the item
// descriptor is returned for the caller to grant. Every failure leaves the
// listing and both balances untouched.
func (a *Auction) Settle(activeIndex int, buyerId string) (SettlementResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	active := a.activeLocked()
	if activeIndex < 1 || activeIndex > len(active) {
		return SettlementResult{}, fmt.Errorf("%w: auction index %d", ErrNotFound, activeIndex)
	}
	listing := active[activeIndex-1]

	if listing.Seller == buyerId {
		return SettlementResult{}, fmt.Errorf("%w: listing %s", ErrSelfTrade, listing.Id)
	}

	if !a.ledger.Transfer(buyerId, listing.Seller, listing.PriceTier, listing.PriceAmount) {
		return SettlementResult{}, fmt.Errorf("%w: need %d %s", ErrInsufficientFunds, listing.PriceAmount, listing.PriceTier.Label())
	}

	listing.Sold = true
	listing.Buyer = buyerId

	zap.L().Info("Listing settled",
		zap.String("listing_id", listing.Id),
		zap.String("seller", listing.Seller),
		zap.String("buyer", buyerId),
		zap.String("price_tier", listing.PriceTier.String()),
		zap.Int64("price_amount", listing.PriceAmount))

	return SettlementResult{
		ListingId:   listing.Id,
		Seller:      listing.Seller,
		Buyer:       buyerId,
		Item:        listing.Item,
		PriceTier:   listing.PriceTier,
		PriceAmount: listing.PriceAmount,
	}, nil
}

// Sweep removes listings that are expired and were never sold, returning
// how many were dropped. Safe to call at any time; idempotent.
func (a *Auction) Sweep() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := a.listings[:0]
	removed := 0
	for _, listing := range a.listings {
		if listing.IsExpired() && !listing.Sold {
			removed++
			continue
		}
		kept = append(kept, listing)
	}
	a.listings = kept

	if removed > 0 {
		zap.L().Info("Expired listings swept",
			zap.Int("removed", removed),
			zap.Int("remaining", len(a.listings)))
	}
	return removed
}

// Snapshot returns a deep copy of all listings for persistence, including
// sold ones not yet pruned and expired ones awaiting a sweep.
func (a *Auction) Snapshot() models.AuctionSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := models.AuctionSnapshot{Listings: make([]models.Listing, 0, len(a.listings))}
	for _, listing := range a.listings {
		snapshot.Listings = append(snapshot.Listings, *listing)
	}
	return snapshot
}

// Restore replaces the listing collection with a loaded snapshot.
func (a *Auction) Restore(snapshot models.AuctionSnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.listings = make([]*models.Listing, 0, len(snapshot.Listings))
	for _, listing := range snapshot.Listings {
		cloned := listing
		a.listings = append(a.listings, &cloned)
	}
}
