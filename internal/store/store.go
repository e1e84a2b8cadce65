package store

import (
	"context"
	"errors"

	"starcrystal-economy-go/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	// ErrSnapshotCorrupt wraps a snapshot that exists but cannot be decoded.
	// Loaders report it and fall back to an empty aggregate so the process
	// can still start.
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
)

// Store defines the contract every snapshot backend (JSON file, SQLite, ...)
// must satisfy. Each aggregate is one logical document saved wholesale; a
// missing document loads as its empty default with a nil error.
type Store interface {
	// --- Ledger ---
	LoadLedger(ctx context.Context) (models.LedgerSnapshot, error)
	SaveLedger(ctx context.Context, snapshot models.LedgerSnapshot) error

	// --- Shop catalog ---
	LoadCatalog(ctx context.Context) (models.CatalogSnapshot, error)
	SaveCatalog(ctx context.Context, snapshot models.CatalogSnapshot) error

	// --- Auction ---
	LoadAuction(ctx context.Context) (models.AuctionSnapshot, error)
	SaveAuction(ctx context.Context, snapshot models.AuctionSnapshot) error

	// --- Lifecycle ---
	Close()
}
