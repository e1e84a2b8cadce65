package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
	"starcrystal-economy-go/internal/store"
)

// Compile-time check: *Service must satisfy store.Store.
var _ store.Store = (*Service)(nil)

// Service is the SQLite snapshot backend. Each Save rewrites the aggregate's
// tables wholesale inside one transaction, mirroring the file backend's
// whole-document overwrite.
type Service struct {
	db *sql.DB
}

// NewService opens the database, applies connection settings and creates the
// schema.
func NewService(ctx context.Context, cfg models.StoreConfig) (*Service, error) {
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.DatabasePath))
	db, err := sql.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database store initialized")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema() error {
	schema := `
	-- Ledger: one row per account plus one row per non-zero tier bucket
	CREATE TABLE IF NOT EXISTS accounts (
		account_id TEXT PRIMARY KEY,
		last_daily_reward TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS balances (
		account_id TEXT NOT NULL REFERENCES accounts(account_id) ON DELETE CASCADE,
		tier INTEGER NOT NULL,
		amount INTEGER NOT NULL,
		PRIMARY KEY (account_id, tier)
	);

	CREATE INDEX IF NOT EXISTS idx_balances_account ON balances(account_id);

	-- Shop catalog: entry order is the 1-based purchase index
	CREATE TABLE IF NOT EXISTS shop_entries (
		position INTEGER PRIMARY KEY,
		item_id INTEGER NOT NULL,
		stock INTEGER NOT NULL,
		price_tier INTEGER NOT NULL,
		price_amount INTEGER NOT NULL,
		purchase_limit INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shop_purchases (
		position INTEGER NOT NULL,
		account_id TEXT NOT NULL,
		units INTEGER NOT NULL,
		PRIMARY KEY (position, account_id)
	);

	-- Auction listings, including sold and not-yet-swept expired ones
	CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		seller TEXT NOT NULL,
		item_id INTEGER NOT NULL,
		stack INTEGER NOT NULL,
		prefix INTEGER NOT NULL,
		price_tier INTEGER NOT NULL,
		price_amount INTEGER NOT NULL,
		listed_at TEXT NOT NULL,
		expires_at TEXT NOT NULL,
		buyer TEXT NOT NULL DEFAULT '',
		sold INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_listings_listed_at ON listings(listed_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// replaceAll runs fn inside a transaction that first clears the given
// tables, giving Save its wholesale-overwrite semantics.
func (s *Service) replaceAll(ctx context.Context, tables []string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
