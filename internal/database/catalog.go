package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
	"starcrystal-economy-go/internal/store"
)

// LoadCatalog reads the shop entries in position order along with their
// per-account purchase counters.
func (s *Service) LoadCatalog(ctx context.Context) (models.CatalogSnapshot, error) {
	var snapshot models.CatalogSnapshot

	rows, err := s.db.QueryContext(ctx, queryGetShopEntries)
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to query shop entries: %w", err)
	}
	defer rows.Close()

	positions := make(map[int64]int)
	for rows.Next() {
		var position int64
		var entry models.ShopEntry
		var tier int
		if err := rows.Scan(&position, &entry.ItemId, &entry.Stock, &tier, &entry.PriceAmount, &entry.PurchaseLimit); err != nil {
			return models.CatalogSnapshot{}, fmt.Errorf("failed to scan shop entry: %w", err)
		}
		entry.PriceTier = models.Tier(tier)
		if !entry.PriceTier.Valid() {
			return models.CatalogSnapshot{}, fmt.Errorf("%w: unknown tier %d at position %d", store.ErrSnapshotCorrupt, tier, position)
		}
		entry.Purchases = make(map[string]int64)
		positions[position] = len(snapshot.Entries)
		snapshot.Entries = append(snapshot.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("error iterating shop entries: %w", err)
	}

	purchaseRows, err := s.db.QueryContext(ctx, queryGetShopPurchases)
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to query shop purchases: %w", err)
	}
	defer purchaseRows.Close()

	for purchaseRows.Next() {
		var position int64
		var accountId string
		var units int64
		if err := purchaseRows.Scan(&position, &accountId, &units); err != nil {
			return models.CatalogSnapshot{}, fmt.Errorf("failed to scan shop purchase: %w", err)
		}
		index, ok := positions[position]
		if !ok {
			return models.CatalogSnapshot{}, fmt.Errorf("%w: purchase row for missing entry %d", store.ErrSnapshotCorrupt, position)
		}
		snapshot.Entries[index].Purchases[accountId] = units
	}
	if err := purchaseRows.Err(); err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("error iterating shop purchases: %w", err)
	}

	zap.L().Debug("Catalog snapshot loaded", zap.Int("entries", len(snapshot.Entries)))
	return snapshot, nil
}

// SaveCatalog rewrites the shop tables from the snapshot. Slice order
// becomes the stored position, preserving the 1-based purchase index.
func (s *Service) SaveCatalog(ctx context.Context, snapshot models.CatalogSnapshot) error {
	return s.replaceAll(ctx, []string{"shop_purchases", "shop_entries"}, func(tx *sql.Tx) error {
		for i, entry := range snapshot.Entries {
			position := int64(i + 1)
			if _, err := tx.ExecContext(ctx, queryInsertShopEntry,
				position, entry.ItemId, entry.Stock, int(entry.PriceTier), entry.PriceAmount, entry.PurchaseLimit); err != nil {
				return fmt.Errorf("failed to insert shop entry %d: %w", position, err)
			}
			for accountId, units := range entry.Purchases {
				if _, err := tx.ExecContext(ctx, queryInsertShopPurchase, position, accountId, units); err != nil {
					return fmt.Errorf("failed to insert shop purchase %d/%s: %w", position, accountId, err)
				}
			}
		}
		return nil
	})
}
