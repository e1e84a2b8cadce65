package models

// Snapshot documents, one per aggregate. Each save overwrites the previous
// document wholesale; aggregates are small and saves are infrequent relative
// to server uptime, so there is no incremental log.

// LedgerSnapshot is the durable form of the account ledger.
type LedgerSnapshot struct {
	Accounts map[string]AccountRecord `json:"accounts"`
}

// EmptyLedgerSnapshot is the default used when no snapshot exists yet.
func EmptyLedgerSnapshot() LedgerSnapshot {
	return LedgerSnapshot{Accounts: make(map[string]AccountRecord)}
}

// CatalogSnapshot is the durable form of the shop catalog, including live
// stock and per-account purchase counters. Entry order is the 1-based index
// callers use to buy.
type CatalogSnapshot struct {
	Entries []ShopEntry `json:"entries"`
}

// AuctionSnapshot is the durable form of the auction house. It may contain
// sold listings not yet pruned and expired listings awaiting the next sweep.
type AuctionSnapshot struct {
	Listings []Listing `json:"listings"`
}
