package domain

import "github.com/shopspring/decimal"

// Ledger entry statuses. A deposit is a pure ledger credit, a withdrawal a
// pure ledger debit, a transfer is the off-chain debit recorded alongside an
// on-chain spend from the treasury pool.
const (
	LedgerEntryStatusWithdrawal = "withdrawal"
	LedgerEntryStatusDeposit    = "deposit"
	LedgerEntryStatusTransfer   = "transfer"
)

// LedgerEntry is an immutable, append-only bookkeeping record of the
// internal ledger. Satoshis is signed, negative for debits. FiatValue, when
// set, carries the fiat valuation of the movement at booking time.
type LedgerEntry struct {
	ID        string
	AccountID string
	Satoshis  int64
	FiatValue decimal.Decimal
	Timestamp int64
	Status    string
	Kind      string
}

// NewLedgerEntry returns a ledger entry for the given account movement.
func NewLedgerEntry(
	id, accountID string,
	satoshis int64,
	fiatValue decimal.Decimal,
	timestamp int64,
	status string,
) *LedgerEntry {
	return &LedgerEntry{
		ID:        id,
		AccountID: accountID,
		Satoshis:  satoshis,
		FiatValue: fiatValue,
		Timestamp: timestamp,
		Status:    status,
		Kind:      LedgerEntryKind,
	}
}
