package application

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/mathutil"
)

// Withdraw debits the account ledger by the given amount. The fiat valuation
// is snapshotted at write time and never recomputed. Balance check, price
// lookup and ledger write happen in this order so that a failing collaborator
// leaves no partial state behind.
func (w *walletService) Withdraw(
	ctx context.Context, accountID string, satoshis uint64,
) (*LedgerEntryInfo, error) {
	if _, err := w.accountRepository.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	balance, err := w.ledgerRepository.SumSatoshis(ctx, accountID)
	if err != nil {
		return nil, err
	}
	// amounts beyond int64 range would flip sign on conversion and can
	// never be covered by a ledger balance anyway
	if balance == nil || satoshis > math.MaxInt64 || *balance < int64(satoshis) {
		return nil, ErrInsufficientFunds
	}

	price, err := w.currentPrice()
	if err != nil {
		return nil, err
	}

	entry := domain.NewLedgerEntry(
		uuid.New().String(),
		accountID,
		-int64(satoshis),
		mathutil.SatoshisToFiat(satoshis, price),
		time.Now().UnixMilli(),
		domain.LedgerEntryStatusWithdrawal,
	)
	if err := w.ledgerRepository.AddLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	return ledgerEntryInfo(entry), nil
}

// Deposit credits the account ledger with the satoshi equivalent of the
// given fiat amount at the current exchange rate, rounded to the nearest
// satoshi.
func (w *walletService) Deposit(
	ctx context.Context, accountID string, fiatAmount decimal.Decimal,
) (*LedgerEntryInfo, error) {
	if _, err := w.accountRepository.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	price, err := w.currentPrice()
	if err != nil {
		return nil, err
	}

	entry := domain.NewLedgerEntry(
		uuid.New().String(),
		accountID,
		mathutil.FiatToSatoshis(fiatAmount, price),
		fiatAmount,
		time.Now().UnixMilli(),
		domain.LedgerEntryStatusDeposit,
	)
	if err := w.ledgerRepository.AddLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	return ledgerEntryInfo(entry), nil
}
