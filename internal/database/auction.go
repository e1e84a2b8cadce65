package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
	"starcrystal-economy-go/internal/store"
)

// LoadAuction reads every listing in creation order, including sold and
// not-yet-swept expired ones.
func (s *Service) LoadAuction(ctx context.Context) (models.AuctionSnapshot, error) {
	var snapshot models.AuctionSnapshot

	rows, err := s.db.QueryContext(ctx, queryGetListings)
	if err != nil {
		return models.AuctionSnapshot{}, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var listing models.Listing
		var tier, prefix, sold int
		var listedAt, expiresAt string
		if err := rows.Scan(&listing.Id, &listing.Seller, &listing.Item.ItemId, &listing.Item.Stack,
			&prefix, &tier, &listing.PriceAmount, &listedAt, &expiresAt, &listing.Buyer, &sold); err != nil {
			return models.AuctionSnapshot{}, fmt.Errorf("failed to scan listing: %w", err)
		}

		listing.Item.Prefix = uint8(prefix)
		listing.PriceTier = models.Tier(tier)
		if !listing.PriceTier.Valid() {
			return models.AuctionSnapshot{}, fmt.Errorf("%w: unknown tier %d on listing %s", store.ErrSnapshotCorrupt, tier, listing.Id)
		}
		listing.Sold = sold != 0

		if listing.ListedAt, err = parseTime(listedAt); err != nil {
			return models.AuctionSnapshot{}, err
		}
		if listing.ExpiresAt, err = parseTime(expiresAt); err != nil {
			return models.AuctionSnapshot{}, err
		}

		snapshot.Listings = append(snapshot.Listings, listing)
	}
	if err := rows.Err(); err != nil {
		return models.AuctionSnapshot{}, fmt.Errorf("error iterating listings: %w", err)
	}

	zap.L().Debug("Auction snapshot loaded", zap.Int("listings", len(snapshot.Listings)))
	return snapshot, nil
}

// SaveAuction rewrites the listings table from the snapshot.
func (s *Service) SaveAuction(ctx context.Context, snapshot models.AuctionSnapshot) error {
	return s.replaceAll(ctx, []string{"listings"}, func(tx *sql.Tx) error {
		for _, listing := range snapshot.Listings {
			sold := 0
			if listing.Sold {
				sold = 1
			}
			if _, err := tx.ExecContext(ctx, queryInsertListing,
				listing.Id, listing.Seller, listing.Item.ItemId, listing.Item.Stack, int(listing.Item.Prefix),
				int(listing.PriceTier), listing.PriceAmount,
				formatTime(listing.ListedAt), formatTime(listing.ExpiresAt),
				listing.Buyer, sold); err != nil {
				return fmt.Errorf("failed to insert listing %s: %w", listing.Id, err)
			}
		}
		return nil
	})
}
