package economy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starcrystal-economy-go/internal/filestore"
	"starcrystal-economy-go/internal/models"
)

func testEconomyConfig() *models.EconomyConfig {
	return &models.EconomyConfig{
		Enabled:             true,
		GiveStartingBalance: true,
		StartingCrystals:    100,
		DailyReward:         models.RewardTable{Low: 10, Medium: 5, High: 2, Supreme: 1},
		ShopItems: []models.ShopEntry{
			{ItemId: 29, Stock: 5, PriceTier: models.TierLow, PriceAmount: 10, PurchaseLimit: models.UnboundedSentinel},
		},
	}
}

// setupTestService builds a service over a file backend in dir. Reopening
// the same dir simulates a restart.
func setupTestService(t *testing.T, dir string) *Service {
	t.Helper()

	backend, err := filestore.NewService(dir)
	require.NoError(t, err)

	service := NewService(backend, testEconomyConfig())
	require.NoError(t, service.LoadAll(context.Background()))
	return service
}

func TestServicePersistsDeposit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	service := setupTestService(t, dir)
	require.NoError(t, service.Deposit(ctx, "player-1", models.TierHigh, 3))

	reopened := setupTestService(t, dir)
	account, ok := reopened.Ledger().TryGet("player-1")
	require.True(t, ok)
	assert.Equal(t, int64(3), account.Balances[models.TierHigh])
	assert.Equal(t, int64(100), account.Balances[models.TierLow])
}

func TestServicePersistsPurchase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	service := setupTestService(t, dir)
	_, err := service.GetOrCreate(ctx, "player-1")
	require.NoError(t, err)

	receipt, err := service.Purchase(ctx, 1, "player-1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(30), receipt.TotalPrice)

	reopened := setupTestService(t, dir)
	entry := reopened.ShopList()[0]
	assert.Equal(t, int64(2), entry.Stock)

	account, _ := reopened.Ledger().TryGet("player-1")
	assert.Equal(t, int64(70), account.Balances[models.TierLow])
}

func TestServicePersistsSettlement(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	service := setupTestService(t, dir)
	_, err := service.GetOrCreate(ctx, "seller")
	require.NoError(t, err)
	_, err = service.GetOrCreate(ctx, "buyer")
	require.NoError(t, err)

	_, err = service.CreateListing(ctx, "seller", testItem, models.TierLow, 40)
	require.NoError(t, err)

	_, err = service.Settle(ctx, 1, "buyer")
	require.NoError(t, err)

	reopened := setupTestService(t, dir)
	assert.Empty(t, reopened.ActiveListings())

	seller, _ := reopened.Ledger().TryGet("seller")
	buyer, _ := reopened.Ledger().TryGet("buyer")
	assert.Equal(t, int64(140), seller.Balances[models.TierLow])
	assert.Equal(t, int64(60), buyer.Balances[models.TierLow])
}

func TestServiceCatalogDefaultsFromConfig(t *testing.T) {
	service := setupTestService(t, t.TempDir())

	entries := service.ShopList()
	require.Len(t, entries, 1)
	assert.Equal(t, 29, entries[0].ItemId)
	assert.Equal(t, int64(5), entries[0].Stock)
}

func TestServiceDailyRewardPersistsClaim(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	service := setupTestService(t, dir)
	claimed, err := service.ClaimDailyReward(ctx, "player-1")
	require.NoError(t, err)
	assert.True(t, claimed)

	// The claim timestamp survives a restart, so today's reward stays spent.
	reopened := setupTestService(t, dir)
	claimed, err = reopened.ClaimDailyReward(ctx, "player-1")
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestServiceCorruptLedgerStartsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	service := setupTestService(t, dir)
	require.NoError(t, service.Deposit(ctx, "player-1", models.TierLow, 5))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ledger.json"), []byte("{not json"), 0o644))

	reopened := setupTestService(t, dir)
	_, ok := reopened.Ledger().TryGet("player-1")
	assert.False(t, ok)
}

func TestServiceLoadSweepsExpiredListings(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	backend, err := filestore.NewService(dir)
	require.NoError(t, err)
	require.NoError(t, backend.SaveAuction(ctx, models.AuctionSnapshot{Listings: []models.Listing{
		{
			Id:          "stale",
			Seller:      "seller",
			Item:        testItem,
			PriceTier:   models.TierLow,
			PriceAmount: 10,
			ListedAt:    time.Now().Add(-8 * 24 * time.Hour),
			ExpiresAt:   time.Now().Add(-24 * time.Hour),
		},
	}}))

	service := setupTestService(t, dir)
	assert.Empty(t, service.ActiveListings())

	// The sweep was persisted, not just applied in memory.
	snapshot, err := backend.LoadAuction(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Listings)
}
