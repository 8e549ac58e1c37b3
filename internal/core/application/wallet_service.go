package application

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/circuitbreaker"
	"github.com/custodia-network/custodia-daemon/pkg/explorer"
	"github.com/custodia-network/custodia-daemon/pkg/mathutil"
	"github.com/custodia-network/custodia-daemon/pkg/pricefeeder"
	"github.com/custodia-network/custodia-daemon/pkg/wallet"
)

const (
	// masterAccountIndex is the account-level derivation index reserved for
	// the treasury. Customer sequence numbers start at 1, so the subtree
	// never overlaps with customer keys.
	masterAccountIndex = 0
	// masterChangeCounterKey scopes the counter used to derive treasury
	// change addresses above the reserved pool.
	masterChangeCounterKey = "master::change"
	// accountsCounterKey scopes the counter assigning account sequence
	// numbers.
	accountsCounterKey = "accounts"
)

// WalletService is the engine orchestrating key derivation, the internal
// ledger and the chain/price collaborators. One method per use case, each
// taking already validated arguments.
type WalletService interface {
	CreateAccount(
		ctx context.Context, firstName, lastName string,
	) (*AccountInfo, error)
	IssueAddress(ctx context.Context, accountID string) (string, error)
	GetBalance(ctx context.Context, accountID string) (*BalanceInfo, error)
	ListAddresses(ctx context.Context, accountID string) ([]string, error)
	ListAllAddresses(ctx context.Context) ([]string, error)
	ListLedgerEntries(
		ctx context.Context, accountID string,
	) ([]LedgerEntryInfo, error)
	Withdraw(
		ctx context.Context, accountID string, satoshis uint64,
	) (*LedgerEntryInfo, error)
	Deposit(
		ctx context.Context, accountID string, fiatAmount decimal.Decimal,
	) (*LedgerEntryInfo, error)
	TransferFromAddress(
		ctx context.Context,
		accountID, sourceAddress, destinationAddress string,
		satoshis uint64,
	) (string, error)
	TransferFromMaster(
		ctx context.Context, accountID, destinationAddress string,
		satoshis uint64,
	) (string, error)
	CashOut(
		ctx context.Context, accountID string, satoshis uint64,
	) (string, error)
	GenMnemonic(ctx context.Context) ([]string, error)
	FiatValue(
		ctx context.Context, satoshis uint64,
	) (decimal.Decimal, error)
	BroadcastTransaction(ctx context.Context, txHex string) (string, error)
}

type walletService struct {
	wallet             *wallet.Wallet
	accountRepository  domain.AccountRepository
	ledgerRepository   domain.LedgerRepository
	sequenceRepository domain.SequenceRepository
	explorerSvc        explorer.Service
	priceSource        pricefeeder.PriceSource
	chainBreaker       *gobreaker.CircuitBreaker
	priceBreaker       *gobreaker.CircuitBreaker
	net                *chaincfg.Params
	payoutAddress      string
	satsPerByte        uint64
	masterPoolSize     uint32
	baseAsset          string
	quoteCurrency      string
}

// WalletServiceOpts is the struct given to NewWalletService
type WalletServiceOpts struct {
	Wallet             *wallet.Wallet
	AccountRepository  domain.AccountRepository
	LedgerRepository   domain.LedgerRepository
	SequenceRepository domain.SequenceRepository
	ExplorerSvc        explorer.Service
	PriceSource        pricefeeder.PriceSource
	Net                *chaincfg.Params
	PayoutAddress      string
	SatsPerByte        uint64
	MasterPoolSize     uint32
	BaseAsset          string
	QuoteCurrency      string
}

// NewWalletService returns a new WalletService. The master wallet is an
// injected read-only capability, the service never mutates nor exposes it.
func NewWalletService(opts WalletServiceOpts) WalletService {
	return &walletService{
		wallet:             opts.Wallet,
		accountRepository:  opts.AccountRepository,
		ledgerRepository:   opts.LedgerRepository,
		sequenceRepository: opts.SequenceRepository,
		explorerSvc:        opts.ExplorerSvc,
		priceSource:        opts.PriceSource,
		chainBreaker:       circuitbreaker.NewCircuitBreaker("explorer"),
		priceBreaker:       circuitbreaker.NewCircuitBreaker("pricefeeder"),
		net:                opts.Net,
		payoutAddress:      opts.PayoutAddress,
		satsPerByte:        opts.SatsPerByte,
		masterPoolSize:     opts.MasterPoolSize,
		baseAsset:          opts.BaseAsset,
		quoteCurrency:      opts.QuoteCurrency,
	}
}

func (w *walletService) CreateAccount(
	ctx context.Context, firstName, lastName string,
) (*AccountInfo, error) {
	sequenceNumber, err := w.sequenceRepository.NextSequenceNumber(
		ctx, accountsCounterKey,
	)
	if err != nil {
		return nil, err
	}

	// If the insert below fails the sequence number stays consumed. The gap
	// is harmless and must never be reused for another account, so there is
	// no retry.
	account := domain.NewAccount(
		uuid.New().String(), sequenceNumber, firstName, lastName,
	)
	if err := w.accountRepository.AddAccount(ctx, account); err != nil {
		log.WithError(err).WithField(
			"sequence_number", sequenceNumber,
		).Warn("account insert failed, sequence number consumed")
		return nil, err
	}

	return &AccountInfo{
		AccountID:      account.ID,
		SequenceNumber: account.SequenceNumber,
		FirstName:      account.FirstName,
		LastName:       account.LastName,
	}, nil
}

func (w *walletService) IssueAddress(
	ctx context.Context, accountID string,
) (string, error) {
	account, err := w.accountRepository.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}

	// The per-account counter guarantees a fresh derivation index even when
	// issuances for the same account race.
	derivationIndex, err := w.sequenceRepository.NextSequenceNumber(
		ctx, addressCounterKey(accountID),
	)
	if err != nil {
		return "", err
	}

	address, secret, err := w.wallet.DeriveAddressAndSecret(
		wallet.DeriveSigningKeyPairOpts{
			Account: account.SequenceNumber,
			Index:   derivationIndex,
		},
	)
	if err != nil {
		return "", err
	}

	if err := w.accountRepository.AppendAddress(
		ctx, accountID, domain.AddressInfo{
			DerivationIndex: derivationIndex,
			Address:         address,
			Secret:          secret,
		},
	); err != nil {
		return "", err
	}

	return address, nil
}

func (w *walletService) GetBalance(
	ctx context.Context, accountID string,
) (*BalanceInfo, error) {
	ledgerBalance, err := w.ledgerBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	addresses, err := w.accountRepository.ListAddresses(ctx, accountID)
	if err != nil {
		return nil, err
	}

	chainBalance := uint64(0)
	if len(addresses) > 0 {
		balances, err := w.chainBalances(addresses)
		if err != nil {
			return nil, err
		}
		for _, balance := range balances {
			chainBalance += balance
		}
	}

	return &BalanceInfo{
		TotalBalance:  ledgerBalance + int64(chainBalance),
		LedgerBalance: ledgerBalance,
		ChainBalance:  chainBalance,
	}, nil
}

func (w *walletService) ListAddresses(
	ctx context.Context, accountID string,
) ([]string, error) {
	return w.accountRepository.ListAddresses(ctx, accountID)
}

func (w *walletService) ListAllAddresses(ctx context.Context) ([]string, error) {
	return w.accountRepository.ListAllAddresses(ctx)
}

func (w *walletService) ListLedgerEntries(
	ctx context.Context, accountID string,
) ([]LedgerEntryInfo, error) {
	if _, err := w.accountRepository.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	entries, err := w.ledgerRepository.ListLedgerEntries(ctx, accountID)
	if err != nil {
		return nil, err
	}

	infos := make([]LedgerEntryInfo, 0, len(entries))
	for i := range entries {
		infos = append(infos, *ledgerEntryInfo(&entries[i]))
	}
	return infos, nil
}

func (w *walletService) GenMnemonic(_ context.Context) ([]string, error) {
	return wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: 256})
}

func (w *walletService) FiatValue(
	_ context.Context, satoshis uint64,
) (decimal.Decimal, error) {
	price, err := w.currentPrice()
	if err != nil {
		return decimal.Zero, err
	}
	return mathutil.SatoshisToFiat(satoshis, price), nil
}

func (w *walletService) BroadcastTransaction(
	_ context.Context, txHex string,
) (string, error) {
	txid, err := w.chainBreaker.Execute(func() (interface{}, error) {
		return w.explorerSvc.BroadcastTransaction(txHex)
	})
	if err != nil {
		log.WithError(err).Warn("transaction broadcast failed")
		return "", ErrChainLookup
	}
	return txid.(string), nil
}

// ledgerBalance returns the ledger sum of the account, 0 when the account
// has no entries yet.
func (w *walletService) ledgerBalance(
	ctx context.Context, accountID string,
) (int64, error) {
	sum, err := w.ledgerRepository.SumSatoshis(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (w *walletService) currentPrice() (decimal.Decimal, error) {
	price, err := w.priceBreaker.Execute(func() (interface{}, error) {
		return w.priceSource.GetPrice(w.baseAsset, w.quoteCurrency)
	})
	if err != nil {
		log.WithError(err).Warn("price lookup failed")
		return decimal.Zero, ErrPriceUnavailable
	}
	return price.(decimal.Decimal), nil
}

func (w *walletService) chainBalance(address string) (uint64, error) {
	balance, err := w.chainBreaker.Execute(func() (interface{}, error) {
		return w.explorerSvc.GetBalance(address)
	})
	if err != nil {
		log.WithError(err).Warn("chain balance lookup failed")
		return 0, ErrChainLookup
	}
	return balance.(uint64), nil
}

func (w *walletService) chainBalances(
	addresses []string,
) (map[string]uint64, error) {
	balances, err := w.chainBreaker.Execute(func() (interface{}, error) {
		return w.explorerSvc.GetBalancesForAddresses(addresses)
	})
	if err != nil {
		log.WithError(err).Warn("chain balances lookup failed")
		return nil, ErrChainLookup
	}
	return balances.(map[string]uint64), nil
}

func (w *walletService) chainUnspents(address string) ([]explorer.Utxo, error) {
	unspents, err := w.chainBreaker.Execute(func() (interface{}, error) {
		return w.explorerSvc.GetUnspents(address)
	})
	if err != nil {
		log.WithError(err).Warn("chain unspents lookup failed")
		return nil, ErrChainLookup
	}
	return unspents.([]explorer.Utxo), nil
}

func (w *walletService) chainUnspentsForAddresses(
	addresses []string,
) ([]explorer.Utxo, error) {
	unspents, err := w.chainBreaker.Execute(func() (interface{}, error) {
		return w.explorerSvc.GetUnspentsForAddresses(addresses)
	})
	if err != nil {
		log.WithError(err).Warn("chain unspents lookup failed")
		return nil, ErrChainLookup
	}
	return unspents.([]explorer.Utxo), nil
}

func addressCounterKey(accountID string) string {
	return accountID + "::addresses"
}
