package economy

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"starcrystal-economy-go/internal/models"
)

// Ledger owns every account's crystal balances. All mutations are serialized
// behind one mutex; callers never hold references into the live maps.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*models.AccountRecord

	giveStartingBalance bool
	startingCrystals    int64
}

// NewLedger creates an empty ledger. When giveStartingBalance is set, newly
// provisioned accounts are seeded with startingCrystals at the lowest tier.
func NewLedger(giveStartingBalance bool, startingCrystals int64) *Ledger {
	return &Ledger{
		accounts:            make(map[string]*models.AccountRecord),
		giveStartingBalance: giveStartingBalance,
		startingCrystals:    startingCrystals,
	}
}

// getOrCreateLocked returns the live record, provisioning it on first
// reference. Caller must hold l.mu.
func (l *Ledger) getOrCreateLocked(accountId string) *models.AccountRecord {
	account, ok := l.accounts[accountId]
	if !ok {
		account = &models.AccountRecord{Balances: make(map[models.Tier]int64)}
		if l.giveStartingBalance && l.startingCrystals > 0 {
			account.Balances[models.TierLow] = l.startingCrystals
		}
		l.accounts[accountId] = account
		zap.L().Info("Account provisioned",
			zap.String("account_id", accountId),
			zap.Bool("starting_balance", l.giveStartingBalance))
	}
	return account
}

// GetOrCreate returns a copy of the account record, provisioning the account
// on first reference. This is the only read-shaped call with a side effect;
// use TryGet for a pure read.
func (l *Ledger) GetOrCreate(accountId string) models.AccountRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getOrCreateLocked(accountId).Clone()
}

// TryGet returns a copy of the account record without provisioning.
func (l *Ledger) TryGet(accountId string) (models.AccountRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	account, ok := l.accounts[accountId]
	if !ok {
		return models.AccountRecord{}, false
	}
	return account.Clone(), true
}

// Deposit adds amount crystals of the given tier. Amount must be positive
// and the tier known; valid input never fails.
func (l *Ledger) Deposit(accountId string, tier models.Tier, amount int64) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: unknown tier %d", ErrInvalidValue, tier)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: deposit amount %d", ErrInvalidValue, amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	account := l.getOrCreateLocked(accountId)
	account.Balances[tier] += amount

	zap.L().Info("Crystals deposited",
		zap.String("account_id", accountId),
		zap.String("tier", tier.String()),
		zap.Int64("amount", amount),
		zap.Int64("new_balance", account.Balances[tier]))
	return nil
}

// Withdraw removes amount crystals of exactly the given tier. It succeeds
// only if that tier's bucket holds at least amount: no partial withdrawal
// and no auto-conversion from other tiers, even when their combined value
// would cover the request. A drained bucket is pruned.
func (l *Ledger) Withdraw(accountId string, tier models.Tier, amount int64) bool {
	if !tier.Valid() || amount <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.withdrawLocked(accountId, tier, amount)
}

func (l *Ledger) withdrawLocked(accountId string, tier models.Tier, amount int64) bool {
	account := l.getOrCreateLocked(accountId)
	if account.Balances[tier] < amount {
		return false
	}
	account.Balances[tier] -= amount
	if account.Balances[tier] == 0 {
		delete(account.Balances, tier)
	}

	zap.L().Info("Crystals withdrawn",
		zap.String("account_id", accountId),
		zap.String("tier", tier.String()),
		zap.Int64("amount", amount),
		zap.Int64("new_balance", account.Balances[tier]))
	return true
}

// Transfer moves amount crystals of one tier from one account to another
// under a single lock acquisition, so no caller can observe the debit
// without the credit. Returns false (and changes nothing) if the source
// tier bucket cannot cover the amount.
func (l *Ledger) Transfer(fromId, toId string, tier models.Tier, amount int64) bool {
	if !tier.Valid() || amount <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.withdrawLocked(fromId, tier, amount) {
		return false
	}
	l.getOrCreateLocked(toId).Balances[tier] += amount

	zap.L().Info("Crystals transferred",
		zap.String("from", fromId),
		zap.String("to", toId),
		zap.String("tier", tier.String()),
		zap.Int64("amount", amount))
	return true
}

// TotalValue returns the account's total worth in base units.
func (l *Ledger) TotalValue(accountId string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.accounts[accountId]
	if !ok {
		return 0, nil
	}

	var total int64
	for tier, amount := range account.Balances {
		value, err := ToBaseUnits(tier, amount)
		if err != nil {
			return 0, err
		}
		total, err = addChecked(total, value)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

// BalanceDisplay returns the account's non-zero buckets, highest tier first.
func (l *Ledger) BalanceDisplay(accountId string) []models.Crystal {
	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.accounts[accountId]
	if !ok {
		return nil
	}

	crystals := make([]models.Crystal, 0, len(account.Balances))
	for tier, amount := range account.Balances {
		if amount > 0 {
			crystals = append(crystals, models.Crystal{Tier: tier, Amount: amount})
		}
	}
	sort.Slice(crystals, func(i, j int) bool {
		return crystals[i].Tier > crystals[j].Tier
	})
	return crystals
}

// ClaimDailyReward deposits the configured per-tier reward at most once per
// calendar day. Returns false without mutation if the account already
// claimed today.
func (l *Ledger) ClaimDailyReward(accountId string, rewards models.RewardTable) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	account := l.getOrCreateLocked(accountId)
	if sameCalendarDay(account.LastDailyReward, now) {
		return false
	}

	account.LastDailyReward = now
	for _, tier := range models.Tiers() {
		if amount := rewards.Amount(tier); amount > 0 {
			account.Balances[tier] += amount
		}
	}

	zap.L().Info("Daily reward claimed", zap.String("account_id", accountId))
	return true
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Snapshot returns a deep copy of the ledger for persistence. Taken under
// the lock; serialization and disk I/O happen on the copy afterwards.
func (l *Ledger) Snapshot() models.LedgerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := models.EmptyLedgerSnapshot()
	for accountId, account := range l.accounts {
		snapshot.Accounts[accountId] = account.Clone()
	}
	return snapshot
}

// Restore replaces the ledger's contents with a loaded snapshot.
func (l *Ledger) Restore(snapshot models.LedgerSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.accounts = make(map[string]*models.AccountRecord, len(snapshot.Accounts))
	for accountId, account := range snapshot.Accounts {
		cloned := account.Clone()
		// Zero buckets are never stored; drop any found in the snapshot.
		for tier, amount := range cloned.Balances {
			if amount <= 0 {
				delete(cloned.Balances, tier)
			}
		}
		l.accounts[accountId] = &cloned
	}
}
