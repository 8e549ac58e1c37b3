package domain

import "context"

// LedgerRepository is the abstraction for any kind of database intended to
// persist the append-only internal ledger.
type LedgerRepository interface {
	// AddLedgerEntry inserts a new ledger entry, failing if one with the
	// same id already exists.
	AddLedgerEntry(ctx context.Context, entry *LedgerEntry) error
	// SumSatoshis returns the signed sum of all entries of the given
	// account, or nil if the account has no entries yet (distinct from a
	// zero balance).
	SumSatoshis(ctx context.Context, accountID string) (*int64, error)
	// ListLedgerEntries returns all entries of the given account ordered by
	// timestamp.
	ListLedgerEntries(ctx context.Context, accountID string) ([]LedgerEntry, error)
}
