package dbbadger

import (
	"context"
	"sync"

	"github.com/timshannon/badgerhold/v4"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

type accountRepositoryImpl struct {
	store *badgerhold.Store

	// guards read-modify-write cycles on accounts so that concurrent
	// address appends to the same account never lose updates
	updateLock sync.Mutex
}

// NewAccountRepositoryImpl initializes a badger implementation of the
// domain.AccountRepository
func NewAccountRepositoryImpl(db *DbManager) domain.AccountRepository {
	return &accountRepositoryImpl{store: db.AccountStore}
}

func (a *accountRepositoryImpl) AddAccount(
	ctx context.Context, account *domain.Account,
) error {
	if err := a.store.Insert(account.ID, account); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (a *accountRepositoryImpl) GetAccount(
	ctx context.Context, accountID string,
) (*domain.Account, error) {
	var account domain.Account
	if err := a.store.Get(accountID, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (a *accountRepositoryImpl) AppendAddress(
	ctx context.Context, accountID string, address domain.AddressInfo,
) error {
	a.updateLock.Lock()
	defer a.updateLock.Unlock()

	account, err := a.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	account.Addresses = append(account.Addresses, address)
	return a.store.Update(accountID, account)
}

func (a *accountRepositoryImpl) ListAddresses(
	ctx context.Context, accountID string,
) ([]string, error) {
	account, err := a.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.AddressStrings(), nil
}

func (a *accountRepositoryImpl) ListAllAddresses(
	ctx context.Context,
) ([]string, error) {
	var accounts []domain.Account
	query := badgerhold.Where("Kind").Eq(domain.AccountKind).
		SortBy("SequenceNumber")
	if err := a.store.Find(&accounts, query); err != nil {
		return nil, err
	}

	addresses := make([]string, 0)
	for i := range accounts {
		addresses = append(addresses, accounts[i].AddressStrings()...)
	}
	return addresses, nil
}

func (a *accountRepositoryImpl) GetSecretForAddress(
	ctx context.Context, accountID string, address string,
) (string, error) {
	account, err := a.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}
	return account.SecretForAddress(address)
}
