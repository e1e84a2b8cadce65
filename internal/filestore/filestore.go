package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
	"starcrystal-economy-go/internal/store"
)

// Snapshot file names inside the data directory, one document per aggregate.
const (
	ledgerFile  = "ledger.json"
	catalogFile = "catalog.json"
	auctionFile = "auction.json"
)

// Compile-time check: *Service must satisfy store.Store.
var _ store.Store = (*Service)(nil)

// Service persists each aggregate as an indented JSON document in a data
// directory. Saves replace the whole document via a temp-file rename, so a
// crash mid-write never leaves a truncated snapshot behind.
type Service struct {
	dir string
}

// NewService creates the data directory if needed and returns the backend.
func NewService(dir string) (*Service, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create data directory %s: %w", dir, err)
	}
	zap.L().Info("File store initialized", zap.String("dir", dir))
	return &Service{dir: dir}, nil
}

func (s *Service) Close() {}

// load reads and decodes one snapshot document into out. Returns (false,
// nil) when the file does not exist; the caller substitutes its empty
// default. A document that exists but does not decode is reported as
// store.ErrSnapshotCorrupt.
func (s *Service) load(name string, out any) (bool, error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		zap.L().Info("No snapshot yet, starting empty", zap.String("file", name))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("unable to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: unable to parse %s: %v", store.ErrSnapshotCorrupt, path, err)
	}
	return true, nil
}

// save writes one snapshot document wholesale, through a temp file and an
// atomic rename.
func (s *Service) save(name string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("unable to replace %s: %w", path, err)
	}

	zap.L().Debug("Snapshot saved", zap.String("file", name), zap.Int("bytes", len(data)))
	return nil
}

func (s *Service) LoadLedger(_ context.Context) (models.LedgerSnapshot, error) {
	var snapshot models.LedgerSnapshot
	found, err := s.load(ledgerFile, &snapshot)
	if err != nil {
		return models.EmptyLedgerSnapshot(), err
	}
	if !found || snapshot.Accounts == nil {
		return models.EmptyLedgerSnapshot(), nil
	}
	return snapshot, nil
}

func (s *Service) SaveLedger(_ context.Context, snapshot models.LedgerSnapshot) error {
	return s.save(ledgerFile, snapshot)
}

func (s *Service) LoadCatalog(_ context.Context) (models.CatalogSnapshot, error) {
	var snapshot models.CatalogSnapshot
	if _, err := s.load(catalogFile, &snapshot); err != nil {
		return models.CatalogSnapshot{}, err
	}
	return snapshot, nil
}

func (s *Service) SaveCatalog(_ context.Context, snapshot models.CatalogSnapshot) error {
	return s.save(catalogFile, snapshot)
}

func (s *Service) LoadAuction(_ context.Context) (models.AuctionSnapshot, error) {
	var snapshot models.AuctionSnapshot
	if _, err := s.load(auctionFile, &snapshot); err != nil {
		return models.AuctionSnapshot{}, err
	}
	return snapshot, nil
}

func (s *Service) SaveAuction(_ context.Context, snapshot models.AuctionSnapshot) error {
	return s.save(auctionFile, snapshot)
}
