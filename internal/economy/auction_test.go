package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starcrystal-economy-go/internal/models"
)

var testItem = models.ItemRef{ItemId: 757, Stack: 1, Prefix: 81}

func TestCreateListing(t *testing.T) {
	auction := NewAuction(NewLedger(false, 0))

	before := time.Now()
	listing, err := auction.Create("seller", testItem, models.TierHigh, 5)
	require.NoError(t, err)

	assert.NotEmpty(t, listing.Id)
	assert.Equal(t, "seller", listing.Seller)
	assert.Equal(t, testItem, listing.Item)
	assert.False(t, listing.Sold)
	assert.WithinDuration(t, before.Add(ListingDuration), listing.ExpiresAt, time.Minute)

	active := auction.ActiveListings()
	require.Len(t, active, 1)
	assert.Equal(t, listing.Id, active[0].Id)
}

func TestCreateListingValidation(t *testing.T) {
	auction := NewAuction(NewLedger(false, 0))

	_, err := auction.Create("seller", testItem, models.Tier(12), 5)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = auction.Create("seller", testItem, models.TierLow, 0)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSettleMovesExactPrice(t *testing.T) {
	ledger := NewLedger(false, 0)
	auction := NewAuction(ledger)
	require.NoError(t, ledger.Deposit("buyer", models.TierHigh, 5))

	listing, err := auction.Create("seller", testItem, models.TierHigh, 5)
	require.NoError(t, err)

	result, err := auction.Settle(1, "buyer")
	require.NoError(t, err)
	assert.Equal(t, listing.Id, result.ListingId)
	assert.Equal(t, "seller", result.Seller)
	assert.Equal(t, "buyer", result.Buyer)
	assert.Equal(t, testItem, result.Item)

	buyer, _ := ledger.TryGet("buyer")
	seller, _ := ledger.TryGet("seller")
	assert.Empty(t, buyer.Balances)
	assert.Equal(t, int64(5), seller.Balances[models.TierHigh])

	// Sold listings leave the browse view but stay in the snapshot.
	assert.Empty(t, auction.ActiveListings())
	snapshot := auction.Snapshot()
	require.Len(t, snapshot.Listings, 1)
	assert.True(t, snapshot.Listings[0].Sold)
	assert.Equal(t, "buyer", snapshot.Listings[0].Buyer)
}

func TestSettleRejectsSelfTrade(t *testing.T) {
	ledger := NewLedger(false, 0)
	auction := NewAuction(ledger)
	require.NoError(t, ledger.Deposit("seller", models.TierLow, 100))

	_, err := auction.Create("seller", testItem, models.TierLow, 10)
	require.NoError(t, err)

	_, err = auction.Settle(1, "seller")
	assert.ErrorIs(t, err, ErrSelfTrade)

	require.Len(t, auction.ActiveListings(), 1)
}

func TestSettleInsufficientFundsChangesNothing(t *testing.T) {
	ledger := NewLedger(false, 0)
	auction := NewAuction(ledger)
	require.NoError(t, ledger.Deposit("buyer", models.TierLow, 9))

	_, err := auction.Create("seller", testItem, models.TierLow, 10)
	require.NoError(t, err)

	_, err = auction.Settle(1, "buyer")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	buyer, _ := ledger.TryGet("buyer")
	assert.Equal(t, int64(9), buyer.Balances[models.TierLow])
	require.Len(t, auction.ActiveListings(), 1)
	assert.False(t, auction.ActiveListings()[0].Sold)
}

func TestSettleStaleIndex(t *testing.T) {
	ledger := NewLedger(false, 0)
	auction := NewAuction(ledger)

	_, err := auction.Settle(1, "buyer")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, ledger.Deposit("buyer", models.TierLow, 100))
	_, err = auction.Create("seller", testItem, models.TierLow, 10)
	require.NoError(t, err)

	_, err = auction.Settle(2, "buyer")
	assert.ErrorIs(t, err, ErrNotFound)
}

// expireListing rewrites the listing's expiry into the past through a
// snapshot round trip.
func expireListing(a *Auction, id string) {
	snapshot := a.Snapshot()
	for i := range snapshot.Listings {
		if snapshot.Listings[i].Id == id {
			snapshot.Listings[i].ExpiresAt = time.Now().Add(-time.Hour)
		}
	}
	a.Restore(snapshot)
}

func TestExpiredListingLeavesActiveView(t *testing.T) {
	ledger := NewLedger(false, 0)
	auction := NewAuction(ledger)
	require.NoError(t, ledger.Deposit("buyer", models.TierLow, 100))

	listing, err := auction.Create("seller", testItem, models.TierLow, 10)
	require.NoError(t, err)
	expireListing(auction, listing.Id)

	assert.Empty(t, auction.ActiveListings())
	_, err = auction.Settle(1, "buyer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweepRemovesOnlyExpiredUnsold(t *testing.T) {
	ledger := NewLedger(false, 0)
	auction := NewAuction(ledger)
	require.NoError(t, ledger.Deposit("buyer", models.TierLow, 100))

	expired, err := auction.Create("seller", testItem, models.TierLow, 10)
	require.NoError(t, err)
	sold, err := auction.Create("seller", testItem, models.TierLow, 10)
	require.NoError(t, err)
	live, err := auction.Create("seller", testItem, models.TierLow, 10)
	require.NoError(t, err)

	// Sell the second listing, then expire the first two.
	_, err = auction.Settle(2, "buyer")
	require.NoError(t, err)
	expireListing(auction, expired.Id)
	expireListing(auction, sold.Id)

	assert.Equal(t, 1, auction.Sweep())
	assert.Equal(t, 0, auction.Sweep())

	snapshot := auction.Snapshot()
	ids := make([]string, 0, len(snapshot.Listings))
	for _, l := range snapshot.Listings {
		ids = append(ids, l.Id)
	}
	assert.ElementsMatch(t, []string{sold.Id, live.Id}, ids)
}
