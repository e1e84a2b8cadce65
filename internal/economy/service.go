package economy

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
	"starcrystal-economy-go/internal/store"
)

// Service is the caller-facing surface of the economy engine. It owns the
// three aggregates and the snapshot store, and persists the affected
// aggregate after every successful mutation. Snapshots are taken under the
// aggregate's lock; the disk write happens after the lock is released, so a
// slow store never blocks other operations.
type Service struct {
	ledger  *Ledger
	catalog *ShopCatalog
	auction *Auction
	backend store.Store
	cfg     *models.EconomyConfig
}

// NewService wires the aggregates over a snapshot backend. The shop catalog
// starts from the configured entries; LoadAll replaces it with persisted
// state (live stock and purchase counters) when a snapshot exists.
func NewService(backend store.Store, cfg *models.EconomyConfig) *Service {
	ledger := NewLedger(cfg.GiveStartingBalance, cfg.StartingCrystals)
	return &Service{
		ledger:  ledger,
		catalog: NewShopCatalog(ledger, cfg.ShopItems),
		auction: NewAuction(ledger),
		backend: backend,
		cfg:     cfg,
	}
}

// IsEnabled reports the config enable flag. The engine itself does not gate
// on it; command handlers do.
func (s *Service) IsEnabled() bool {
	return s.cfg.Enabled
}

// Ledger exposes the account ledger for read-only callers (status display,
// drop policy).
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// LoadAll restores every aggregate from the store. A corrupt snapshot is
// logged and replaced by an empty default so startup always completes; only
// I/O-level failures abort. Stale expired listings are swept before the
// auction is ever shown.
func (s *Service) LoadAll(ctx context.Context) error {
	ledgerSnapshot, err := s.backend.LoadLedger(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSnapshotCorrupt) {
			return fmt.Errorf("load ledger: %w", err)
		}
		zap.L().Error("Ledger snapshot corrupt, starting empty", zap.Error(err))
		ledgerSnapshot = models.EmptyLedgerSnapshot()
	}
	s.ledger.Restore(ledgerSnapshot)

	catalogSnapshot, err := s.backend.LoadCatalog(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSnapshotCorrupt) {
			return fmt.Errorf("load catalog: %w", err)
		}
		zap.L().Error("Catalog snapshot corrupt, using configured entries", zap.Error(err))
		catalogSnapshot = models.CatalogSnapshot{Entries: s.cfg.ShopItems}
	}
	if len(catalogSnapshot.Entries) > 0 {
		s.catalog.Restore(catalogSnapshot)
	}

	auctionSnapshot, err := s.backend.LoadAuction(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSnapshotCorrupt) {
			return fmt.Errorf("load auction: %w", err)
		}
		zap.L().Error("Auction snapshot corrupt, starting empty", zap.Error(err))
		auctionSnapshot = models.AuctionSnapshot{}
	}
	s.auction.Restore(auctionSnapshot)
	if removed := s.auction.Sweep(); removed > 0 {
		if err := s.backend.SaveAuction(ctx, s.auction.Snapshot()); err != nil {
			zap.L().Error("Failed to persist post-load sweep", zap.Error(err))
		}
	}

	zap.L().Info("Economy state loaded",
		zap.Int("accounts", len(ledgerSnapshot.Accounts)),
		zap.Int("shop_entries", len(s.catalog.List())),
		zap.Int("listings", len(auctionSnapshot.Listings)))
	return nil
}

// SaveAll persists every aggregate, collecting errors so one failed write
// does not skip the others.
func (s *Service) SaveAll(ctx context.Context) error {
	var errs []error
	if err := s.backend.SaveLedger(ctx, s.ledger.Snapshot()); err != nil {
		errs = append(errs, fmt.Errorf("save ledger: %w", err))
	}
	if err := s.backend.SaveCatalog(ctx, s.catalog.Snapshot()); err != nil {
		errs = append(errs, fmt.Errorf("save catalog: %w", err))
	}
	if err := s.backend.SaveAuction(ctx, s.auction.Snapshot()); err != nil {
		errs = append(errs, fmt.Errorf("save auction: %w", err))
	}
	return errors.Join(errs...)
}

// persistLedger saves the current ledger snapshot. The in-memory mutation
// already succeeded; a save failure is surfaced but never rolls it back, and
// the next successful save rewrites the full snapshot anyway.
func (s *Service) persistLedger(ctx context.Context) error {
	if err := s.backend.SaveLedger(ctx, s.ledger.Snapshot()); err != nil {
		zap.L().Error("Failed to persist ledger", zap.Error(err))
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func (s *Service) persistCatalog(ctx context.Context) error {
	if err := s.backend.SaveCatalog(ctx, s.catalog.Snapshot()); err != nil {
		zap.L().Error("Failed to persist catalog", zap.Error(err))
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (s *Service) persistAuction(ctx context.Context) error {
	if err := s.backend.SaveAuction(ctx, s.auction.Snapshot()); err != nil {
		zap.L().Error("Failed to persist auction", zap.Error(err))
		return fmt.Errorf("save auction: %w", err)
	}
	return nil
}

// GetOrCreate provisions the account on first reference and persists the
// ledger when that happens.
func (s *Service) GetOrCreate(ctx context.Context, accountId string) (models.AccountRecord, error) {
	_, existed := s.ledger.TryGet(accountId)
	account := s.ledger.GetOrCreate(accountId)
	if existed {
		return account, nil
	}
	return account, s.persistLedger(ctx)
}

// Deposit credits crystals and persists the ledger.
func (s *Service) Deposit(ctx context.Context, accountId string, tier models.Tier, amount int64) error {
	if err := s.ledger.Deposit(accountId, tier, amount); err != nil {
		return err
	}
	return s.persistLedger(ctx)
}

// Withdraw debits crystals from exactly one tier and persists the ledger on
// success.
func (s *Service) Withdraw(ctx context.Context, accountId string, tier models.Tier, amount int64) (bool, error) {
	if !s.ledger.Withdraw(accountId, tier, amount) {
		return false, nil
	}
	return true, s.persistLedger(ctx)
}

// TotalValue returns the account's worth in base units.
func (s *Service) TotalValue(accountId string) (int64, error) {
	return s.ledger.TotalValue(accountId)
}

// BalanceDisplay returns the non-zero buckets, highest tier first.
func (s *Service) BalanceDisplay(accountId string) []models.Crystal {
	return s.ledger.BalanceDisplay(accountId)
}

// ClaimDailyReward grants the configured daily reward at most once per
// calendar day and persists the ledger when it does.
func (s *Service) ClaimDailyReward(ctx context.Context, accountId string) (bool, error) {
	if !s.ledger.ClaimDailyReward(accountId, s.cfg.DailyReward) {
		return false, nil
	}
	return true, s.persistLedger(ctx)
}

// ShopList returns the catalog in purchase-index order.
func (s *Service) ShopList() []models.ShopEntry {
	return s.catalog.List()
}

// Purchase buys from the shop and persists the catalog and ledger.
func (s *Service) Purchase(ctx context.Context, entryIndex int, accountId string, quantity int64) (Receipt, error) {
	receipt, err := s.catalog.Purchase(entryIndex, accountId, quantity)
	if err != nil {
		return Receipt{}, err
	}
	return receipt, errors.Join(s.persistCatalog(ctx), s.persistLedger(ctx))
}

// CreateListing lists an item for auction and persists the auction.
func (s *Service) CreateListing(ctx context.Context, sellerId string, item models.ItemRef, priceTier models.Tier, priceAmount int64) (models.Listing, error) {
	listing, err := s.auction.Create(sellerId, item, priceTier, priceAmount)
	if err != nil {
		return models.Listing{}, err
	}
	return listing, s.persistAuction(ctx)
}

// ActiveListings returns the current auction browse view.
func (s *Service) ActiveListings() []models.Listing {
	return s.auction.ActiveListings()
}

// Settle buys a listing and persists the auction and ledger.
func (s *Service) Settle(ctx context.Context, activeIndex int, buyerId string) (SettlementResult, error) {
	result, err := s.auction.Settle(activeIndex, buyerId)
	if err != nil {
		return SettlementResult{}, err
	}
	return result, errors.Join(s.persistAuction(ctx), s.persistLedger(ctx))
}

// SweepExpired removes expired unsold listings, persisting the auction when
// anything was dropped.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	removed := s.auction.Sweep()
	if removed == 0 {
		return 0, nil
	}
	return removed, s.persistAuction(ctx)
}
