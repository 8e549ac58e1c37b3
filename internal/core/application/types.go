package application

import (
	"github.com/shopspring/decimal"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

// AccountInfo is the response payload of account creation. It never carries
// address secrets.
type AccountInfo struct {
	AccountID      string
	SequenceNumber uint32
	FirstName      string
	LastName       string
}

// BalanceInfo is the response payload of a balance computation. TotalBalance
// is always LedgerBalance + ChainBalance, recomputed on every request.
type BalanceInfo struct {
	TotalBalance  int64
	LedgerBalance int64
	ChainBalance  uint64
}

// LedgerEntryInfo is the response payload of ledger movements.
type LedgerEntryInfo struct {
	ID        string
	AccountID string
	Satoshis  int64
	FiatValue decimal.Decimal
	Timestamp int64
	Status    string
}

func ledgerEntryInfo(entry *domain.LedgerEntry) *LedgerEntryInfo {
	return &LedgerEntryInfo{
		ID:        entry.ID,
		AccountID: entry.AccountID,
		Satoshis:  entry.Satoshis,
		FiatValue: entry.FiatValue,
		Timestamp: entry.Timestamp,
		Status:    entry.Status,
	}
}
