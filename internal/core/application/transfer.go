package application

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/wallet"
)

// TransferFromAddress builds and signs a transaction spending from one of
// the account's own addresses to the given destination. The raw transaction
// hex is returned without being broadcast, callers decide when to announce
// it to the network.
func (w *walletService) TransferFromAddress(
	ctx context.Context,
	accountID, sourceAddress, destinationAddress string,
	satoshis uint64,
) (string, error) {
	secret, err := w.accountRepository.GetSecretForAddress(
		ctx, accountID, sourceAddress,
	)
	if err != nil {
		return "", err
	}

	balance, err := w.chainBalance(sourceAddress)
	if err != nil {
		return "", err
	}
	if balance < satoshis {
		return "", ErrInsufficientFunds
	}

	unspents, err := w.chainUnspents(sourceAddress)
	if err != nil {
		return "", err
	}
	if len(unspents) == 0 {
		return "", ErrNoUnspentOutputs
	}

	changeAddress, err := w.IssueAddress(ctx, accountID)
	if err != nil {
		return "", err
	}

	return wallet.NewSignedTransaction(wallet.NewSignedTransactionOpts{
		Unspents:      unspents,
		Outputs:       []wallet.TxOutput{{Address: destinationAddress, Satoshis: satoshis}},
		ChangeAddress: changeAddress,
		SatsPerByte:   w.satsPerByte,
		SecretsWIF:    []string{secret},
		Net:           w.net,
	})
}

// TransferFromMaster pays the given destination out of the treasury pool and
// debits the account's internal ledger by the same amount. The pool address
// is picked first-fit in derivation order among those whose confirmed
// balance covers the amount. The ledger debit is booked only after the
// transaction is successfully built and signed.
func (w *walletService) TransferFromMaster(
	ctx context.Context, accountID, destinationAddress string,
	satoshis uint64,
) (string, error) {
	if _, err := w.accountRepository.GetAccount(ctx, accountID); err != nil {
		return "", err
	}

	balance, err := w.ledgerRepository.SumSatoshis(ctx, accountID)
	if err != nil {
		return "", err
	}
	if balance == nil || satoshis > math.MaxInt64 || *balance < int64(satoshis) {
		return "", ErrInsufficientFunds
	}

	pool, err := w.treasuryPool()
	if err != nil {
		return "", err
	}

	poolBalances, err := w.chainBalances(addressesOf(pool))
	if err != nil {
		return "", err
	}

	source, found := firstFunded(pool, poolBalances, satoshis)
	if !found {
		return "", ErrNoFundedSource
	}

	unspents, err := w.chainUnspents(source.Address)
	if err != nil {
		return "", err
	}
	if len(unspents) == 0 {
		return "", ErrNoUnspentOutputs
	}

	changeAddress, err := w.masterChangeAddress(ctx)
	if err != nil {
		return "", err
	}

	txHex, err := wallet.NewSignedTransaction(wallet.NewSignedTransactionOpts{
		Unspents:      unspents,
		Outputs:       []wallet.TxOutput{{Address: destinationAddress, Satoshis: satoshis}},
		ChangeAddress: changeAddress,
		SatsPerByte:   w.satsPerByte,
		SecretsWIF:    []string{source.Secret},
		Net:           w.net,
	})
	if err != nil {
		return "", err
	}

	entry := domain.NewLedgerEntry(
		uuid.New().String(),
		accountID,
		-int64(satoshis),
		decimal.Zero,
		time.Now().UnixMilli(),
		domain.LedgerEntryStatusTransfer,
	)
	if err := w.ledgerRepository.AddLedgerEntry(ctx, entry); err != nil {
		log.WithError(err).WithField("account_id", accountID).Error(
			"signed transfer could not be booked to the ledger",
		)
		return "", err
	}

	return txHex, nil
}

// CashOut sweeps the unspents of all the account's addresses into a single
// transaction paying the requested amount to the configured payout address,
// with change going back to a freshly issued account address.
func (w *walletService) CashOut(
	ctx context.Context, accountID string, satoshis uint64,
) (string, error) {
	account, err := w.accountRepository.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}
	if len(account.Addresses) == 0 {
		return "", ErrNoUnspentOutputs
	}

	unspents, err := w.chainUnspentsForAddresses(account.AddressStrings())
	if err != nil {
		return "", err
	}
	if len(unspents) == 0 {
		return "", ErrNoUnspentOutputs
	}

	secrets := make([]string, 0, len(account.Addresses))
	for _, info := range account.Addresses {
		secrets = append(secrets, info.Secret)
	}

	changeAddress, err := w.IssueAddress(ctx, accountID)
	if err != nil {
		return "", err
	}

	return wallet.NewSignedTransaction(wallet.NewSignedTransactionOpts{
		Unspents:      unspents,
		Outputs:       []wallet.TxOutput{{Address: w.payoutAddress, Satoshis: satoshis}},
		ChangeAddress: changeAddress,
		SatsPerByte:   w.satsPerByte,
		SecretsWIF:    secrets,
		Net:           w.net,
	})
}

// treasuryPool derives the fixed pool of treasury addresses under the
// reserved master account. Derivation is deterministic so the pool is
// recomputed on demand instead of being persisted.
func (w *walletService) treasuryPool() ([]domain.AddressInfo, error) {
	pool := make([]domain.AddressInfo, 0, w.masterPoolSize)
	for index := uint32(1); index <= w.masterPoolSize; index++ {
		address, secret, err := w.wallet.DeriveAddressAndSecret(
			wallet.DeriveSigningKeyPairOpts{
				Account: masterAccountIndex,
				Index:   index,
			},
		)
		if err != nil {
			return nil, err
		}
		pool = append(pool, domain.AddressInfo{
			DerivationIndex: index,
			Address:         address,
			Secret:          secret,
		})
	}
	return pool, nil
}

// masterChangeAddress derives a fresh treasury change address above the
// reserved pool range, so change never lands on a pool address and skews
// the first-fit selection.
func (w *walletService) masterChangeAddress(ctx context.Context) (string, error) {
	counter, err := w.sequenceRepository.NextSequenceNumber(
		ctx, masterChangeCounterKey,
	)
	if err != nil {
		return "", err
	}
	return w.wallet.DeriveAddress(wallet.DeriveSigningKeyPairOpts{
		Account: masterAccountIndex,
		Index:   w.masterPoolSize + counter,
	})
}

func addressesOf(pool []domain.AddressInfo) []string {
	addresses := make([]string, 0, len(pool))
	for _, info := range pool {
		addresses = append(addresses, info.Address)
	}
	return addresses
}

func firstFunded(
	pool []domain.AddressInfo, balances map[string]uint64, satoshis uint64,
) (domain.AddressInfo, bool) {
	for _, info := range pool {
		if balances[info.Address] >= satoshis {
			return info, true
		}
	}
	return domain.AddressInfo{}, false
}
