package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
	"starcrystal-economy-go/internal/store"
)

// timeLayout is how timestamps are stored in text columns.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q: %v", store.ErrSnapshotCorrupt, s, err)
	}
	return t, nil
}

// LoadLedger reads every account and its tier buckets. An empty database
// yields an empty snapshot.
func (s *Service) LoadLedger(ctx context.Context) (models.LedgerSnapshot, error) {
	snapshot := models.EmptyLedgerSnapshot()

	rows, err := s.db.QueryContext(ctx, queryGetAccounts)
	if err != nil {
		return snapshot, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountId, lastReward string
		if err := rows.Scan(&accountId, &lastReward); err != nil {
			return models.EmptyLedgerSnapshot(), fmt.Errorf("failed to scan account: %w", err)
		}
		claimedAt, err := parseTime(lastReward)
		if err != nil {
			return models.EmptyLedgerSnapshot(), err
		}
		snapshot.Accounts[accountId] = models.AccountRecord{
			Balances:        make(map[models.Tier]int64),
			LastDailyReward: claimedAt,
		}
	}
	if err := rows.Err(); err != nil {
		return models.EmptyLedgerSnapshot(), fmt.Errorf("error iterating accounts: %w", err)
	}

	balanceRows, err := s.db.QueryContext(ctx, queryGetBalances)
	if err != nil {
		return models.EmptyLedgerSnapshot(), fmt.Errorf("failed to query balances: %w", err)
	}
	defer balanceRows.Close()

	for balanceRows.Next() {
		var accountId string
		var tier models.Tier
		var amount int64
		if err := balanceRows.Scan(&accountId, &tier, &amount); err != nil {
			return models.EmptyLedgerSnapshot(), fmt.Errorf("failed to scan balance: %w", err)
		}
		if !tier.Valid() {
			return models.EmptyLedgerSnapshot(), fmt.Errorf("%w: unknown tier %d for %s", store.ErrSnapshotCorrupt, tier, accountId)
		}
		account, ok := snapshot.Accounts[accountId]
		if !ok {
			return models.EmptyLedgerSnapshot(), fmt.Errorf("%w: balance row for missing account %s", store.ErrSnapshotCorrupt, accountId)
		}
		if amount > 0 {
			account.Balances[tier] = amount
		}
	}
	if err := balanceRows.Err(); err != nil {
		return models.EmptyLedgerSnapshot(), fmt.Errorf("error iterating balances: %w", err)
	}

	zap.L().Debug("Ledger snapshot loaded", zap.Int("accounts", len(snapshot.Accounts)))
	return snapshot, nil
}

// SaveLedger rewrites the account and balance tables from the snapshot.
func (s *Service) SaveLedger(ctx context.Context, snapshot models.LedgerSnapshot) error {
	return s.replaceAll(ctx, []string{"balances", "accounts"}, func(tx *sql.Tx) error {
		for accountId, account := range snapshot.Accounts {
			if _, err := tx.ExecContext(ctx, queryInsertAccount, accountId, formatTime(account.LastDailyReward)); err != nil {
				return fmt.Errorf("failed to insert account %s: %w", accountId, err)
			}
			for tier, amount := range account.Balances {
				if amount <= 0 {
					continue
				}
				if _, err := tx.ExecContext(ctx, queryInsertBalance, accountId, int(tier), amount); err != nil {
					return fmt.Errorf("failed to insert balance %s/%s: %w", accountId, tier, err)
				}
			}
		}
		return nil
	})
}
