package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

type ledgerRepositoryImpl struct {
	store *badgerhold.Store
}

// NewLedgerRepositoryImpl initializes a badger implementation of the
// domain.LedgerRepository
func NewLedgerRepositoryImpl(db *DbManager) domain.LedgerRepository {
	return ledgerRepositoryImpl{store: db.LedgerStore}
}

func (l ledgerRepositoryImpl) AddLedgerEntry(
	ctx context.Context, entry *domain.LedgerEntry,
) error {
	if err := l.store.Insert(entry.ID, entry); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrLedgerEntryAlreadyExists
		}
		return err
	}
	return nil
}

func (l ledgerRepositoryImpl) SumSatoshis(
	ctx context.Context, accountID string,
) (*int64, error) {
	entries, err := l.findEntries(accountID)
	if err != nil {
		return nil, err
	}
	if len(entries) <= 0 {
		return nil, nil
	}

	sum := int64(0)
	for i := range entries {
		sum += entries[i].Satoshis
	}
	return &sum, nil
}

func (l ledgerRepositoryImpl) ListLedgerEntries(
	ctx context.Context, accountID string,
) ([]domain.LedgerEntry, error) {
	return l.findEntries(accountID)
}

func (l ledgerRepositoryImpl) findEntries(
	accountID string,
) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	query := badgerhold.Where("AccountID").Eq(accountID).SortBy("Timestamp")
	if err := l.store.Find(&entries, query); err != nil {
		return nil, err
	}
	return entries, nil
}
