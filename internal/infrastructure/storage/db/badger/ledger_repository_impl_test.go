package dbbadger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

func TestAddLedgerEntryAndSumSatoshis(t *testing.T) {
	_, _, ledgerRepository := newTestDb(t)
	ctx := context.Background()

	sum, err := ledgerRepository.SumSatoshis(ctx, "acc1")
	require.NoError(t, err)
	assert.Nil(t, sum)

	entries := []*domain.LedgerEntry{
		domain.NewLedgerEntry(
			"tx1", "acc1", 200000, decimal.NewFromInt(50), 1,
			domain.LedgerEntryStatusDeposit,
		),
		domain.NewLedgerEntry(
			"tx2", "acc1", -100000, decimal.NewFromInt(25), 2,
			domain.LedgerEntryStatusWithdrawal,
		),
		domain.NewLedgerEntry(
			"tx3", "acc2", 999, decimal.Decimal{}, 3,
			domain.LedgerEntryStatusDeposit,
		),
	}
	for _, entry := range entries {
		require.NoError(t, ledgerRepository.AddLedgerEntry(ctx, entry))
	}

	sum, err = ledgerRepository.SumSatoshis(ctx, "acc1")
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, int64(100000), *sum)
}

func TestSumSatoshisDistinguishesZeroFromNull(t *testing.T) {
	_, _, ledgerRepository := newTestDb(t)
	ctx := context.Background()

	entries := []*domain.LedgerEntry{
		domain.NewLedgerEntry(
			"tx1", "acc1", 500, decimal.Decimal{}, 1,
			domain.LedgerEntryStatusDeposit,
		),
		domain.NewLedgerEntry(
			"tx2", "acc1", -500, decimal.Decimal{}, 2,
			domain.LedgerEntryStatusWithdrawal,
		),
	}
	for _, entry := range entries {
		require.NoError(t, ledgerRepository.AddLedgerEntry(ctx, entry))
	}

	sum, err := ledgerRepository.SumSatoshis(ctx, "acc1")
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, int64(0), *sum)
}

func TestFailingAddLedgerEntry(t *testing.T) {
	_, _, ledgerRepository := newTestDb(t)
	ctx := context.Background()

	entry := domain.NewLedgerEntry(
		"tx1", "acc1", 100, decimal.Decimal{}, 1,
		domain.LedgerEntryStatusDeposit,
	)
	require.NoError(t, ledgerRepository.AddLedgerEntry(ctx, entry))

	err := ledgerRepository.AddLedgerEntry(ctx, entry)
	assert.Equal(t, domain.ErrLedgerEntryAlreadyExists, err)
}

func TestListLedgerEntriesOrderedByTimestamp(t *testing.T) {
	_, _, ledgerRepository := newTestDb(t)
	ctx := context.Background()

	entries := []*domain.LedgerEntry{
		domain.NewLedgerEntry(
			"tx2", "acc1", -100, decimal.Decimal{}, 20,
			domain.LedgerEntryStatusWithdrawal,
		),
		domain.NewLedgerEntry(
			"tx1", "acc1", 200, decimal.Decimal{}, 10,
			domain.LedgerEntryStatusDeposit,
		),
	}
	for _, entry := range entries {
		require.NoError(t, ledgerRepository.AddLedgerEntry(ctx, entry))
	}

	stored, err := ledgerRepository.ListLedgerEntries(ctx, "acc1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "tx1", stored[0].ID)
	assert.Equal(t, "tx2", stored[1].ID)
}
