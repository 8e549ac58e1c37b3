package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/explorer"
)

var errCollaboratorDown = errors.New("collaborator is down")

type fakeAccountRepository struct {
	mtx      sync.Mutex
	accounts map[string]*domain.Account
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{accounts: map[string]*domain.Account{}}
}

func (r *fakeAccountRepository) AddAccount(
	_ context.Context, account *domain.Account,
) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.accounts[account.ID]; ok {
		return domain.ErrAccountAlreadyExists
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepository) GetAccount(
	_ context.Context, accountID string,
) (*domain.Account, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *fakeAccountRepository) AppendAddress(
	_ context.Context, accountID string, address domain.AddressInfo,
) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Addresses = append(account.Addresses, address)
	return nil
}

func (r *fakeAccountRepository) ListAddresses(
	ctx context.Context, accountID string,
) ([]string, error) {
	account, err := r.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.AddressStrings(), nil
}

func (r *fakeAccountRepository) ListAllAddresses(
	_ context.Context,
) ([]string, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	addresses := make([]string, 0)
	for _, account := range r.accounts {
		addresses = append(addresses, account.AddressStrings()...)
	}
	return addresses, nil
}

func (r *fakeAccountRepository) GetSecretForAddress(
	ctx context.Context, accountID string, address string,
) (string, error) {
	account, err := r.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}
	return account.SecretForAddress(address)
}

type fakeLedgerRepository struct {
	mtx     sync.Mutex
	entries map[string][]domain.LedgerEntry
}

func newFakeLedgerRepository() *fakeLedgerRepository {
	return &fakeLedgerRepository{entries: map[string][]domain.LedgerEntry{}}
}

func (r *fakeLedgerRepository) AddLedgerEntry(
	_ context.Context, entry *domain.LedgerEntry,
) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.entries[entry.AccountID] = append(r.entries[entry.AccountID], *entry)
	return nil
}

func (r *fakeLedgerRepository) SumSatoshis(
	_ context.Context, accountID string,
) (*int64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	entries, ok := r.entries[accountID]
	if !ok || len(entries) == 0 {
		return nil, nil
	}
	sum := int64(0)
	for _, entry := range entries {
		sum += entry.Satoshis
	}
	return &sum, nil
}

func (r *fakeLedgerRepository) ListLedgerEntries(
	_ context.Context, accountID string,
) ([]domain.LedgerEntry, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.entries[accountID], nil
}

func (r *fakeLedgerRepository) count(accountID string) int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.entries[accountID])
}

type fakeSequenceRepository struct {
	mtx      sync.Mutex
	counters map[string]uint32
}

func newFakeSequenceRepository() *fakeSequenceRepository {
	return &fakeSequenceRepository{counters: map[string]uint32{}}
}

func (r *fakeSequenceRepository) NextSequenceNumber(
	_ context.Context, key string,
) (uint32, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.counters[key]++
	return r.counters[key], nil
}

type fakeExplorer struct {
	mtx      sync.Mutex
	balances map[string]uint64
	unspents map[string][]explorer.Utxo
	failing  bool
}

func newFakeExplorer() *fakeExplorer {
	return &fakeExplorer{
		balances: map[string]uint64{},
		unspents: map[string][]explorer.Utxo{},
	}
}

func (e *fakeExplorer) GetBalance(addr string) (uint64, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.failing {
		return 0, errCollaboratorDown
	}
	return e.balances[addr], nil
}

func (e *fakeExplorer) GetBalancesForAddresses(
	addresses []string,
) (map[string]uint64, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.failing {
		return nil, errCollaboratorDown
	}
	balances := make(map[string]uint64, len(addresses))
	for _, addr := range addresses {
		balances[addr] = e.balances[addr]
	}
	return balances, nil
}

func (e *fakeExplorer) GetUnspents(addr string) ([]explorer.Utxo, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.failing {
		return nil, errCollaboratorDown
	}
	return e.unspents[addr], nil
}

func (e *fakeExplorer) GetUnspentsForAddresses(
	addresses []string,
) ([]explorer.Utxo, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.failing {
		return nil, errCollaboratorDown
	}
	unspents := make([]explorer.Utxo, 0)
	for _, addr := range addresses {
		unspents = append(unspents, e.unspents[addr]...)
	}
	return unspents, nil
}

func (e *fakeExplorer) BroadcastTransaction(_ string) (string, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.failing {
		return "", errCollaboratorDown
	}
	return strings.Repeat("00", 32), nil
}

func (e *fakeExplorer) fund(addr string, utxo explorer.Utxo) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.unspents[addr] = append(e.unspents[addr], utxo)
	e.balances[addr] += utxo.Value()
}

type fakePriceSource struct {
	price   decimal.Decimal
	failing bool
}

func (p *fakePriceSource) GetPrice(_, _ string) (decimal.Decimal, error) {
	if p.failing {
		return decimal.Zero, errCollaboratorDown
	}
	return p.price, nil
}
