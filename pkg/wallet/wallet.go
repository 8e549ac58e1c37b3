package wallet

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullSigningMnemonic ...
	ErrNullSigningMnemonic = errors.New("signing mnemonic is null")
	// ErrNullSigningSeed ...
	ErrNullSigningSeed = errors.New("signing seed is null")
	// ErrNullSigningMasterKey ...
	ErrNullSigningMasterKey = errors.New("signing master key is null")
	// ErrNullSecret ...
	ErrNullSecret = errors.New("signing secret must not be null")
	// ErrInvalidSigningMnemonic ...
	ErrInvalidSigningMnemonic = errors.New("signing mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrOutOfRangeDerivationIndex ...
	ErrOutOfRangeDerivationIndex = errors.New(
		"derivation index is out of the valid non-hardened range",
	)
	// ErrInvalidSecret ...
	ErrInvalidSecret = errors.New("signing secret is not a valid WIF")
	// ErrMissingSecretForUnspent ...
	ErrMissingSecretForUnspent = errors.New(
		"no signing secret provided for one of the unspents",
	)
	// ErrInvalidOutputAddress ...
	ErrInvalidOutputAddress = errors.New("output address must be a valid address")
	// ErrInvalidChangeAddress ...
	ErrInvalidChangeAddress = errors.New("change address must be a valid address")
	// ErrEmptyUnspents ...
	ErrEmptyUnspents = errors.New("unspent list must not be empty")
	// ErrEmptyOutputs ...
	ErrEmptyOutputs = errors.New("output list must not be empty")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New(
		"total unspent amount does not cover outputs plus network fees",
	)
)

// Wallet is the data structure representing the hierarchical deterministic
// wallet of the daemon. It wraps the signing master key every account and
// address key is derived from.
type Wallet struct {
	signingMnemonic  []string
	signingMasterKey []byte
	net              *chaincfg.Params
}

// NewWalletFromMnemonicOpts is the struct given to NewWalletFromMnemonic
type NewWalletFromMnemonicOpts struct {
	SigningMnemonic []string
	Net             *chaincfg.Params
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.SigningMnemonic) <= 0 {
		return ErrNullSigningMnemonic
	}
	if !isMnemonicValid(o.SigningMnemonic) {
		return ErrInvalidSigningMnemonic
	}
	if o.Net == nil {
		return ErrNullNetwork
	}
	return nil
}

// NewWalletFromMnemonic returns a new wallet initialized with the signing
// master key derived from the provided mnemonic.
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed := generateSeedFromMnemonic(opts.SigningMnemonic)
	signingMasterKey, err := generateSigningMasterKey(seed, opts.Net)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		signingMnemonic:  opts.SigningMnemonic,
		signingMasterKey: signingMasterKey,
		net:              opts.Net,
	}, nil
}

// NewWalletFromSeedOpts is the struct given to NewWalletFromSeed
type NewWalletFromSeedOpts struct {
	Seed []byte
	Net  *chaincfg.Params
}

func (o NewWalletFromSeedOpts) validate() error {
	if len(o.Seed) <= 0 {
		return ErrNullSigningSeed
	}
	if o.Net == nil {
		return ErrNullNetwork
	}
	return nil
}

// NewWalletFromSeed returns a new wallet initialized with the signing master
// key derived from the provided raw seed.
func NewWalletFromSeed(opts NewWalletFromSeedOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	signingMasterKey, err := generateSigningMasterKey(opts.Seed, opts.Net)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		signingMasterKey: signingMasterKey,
		net:              opts.Net,
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.signingMasterKey) <= 0 {
		return ErrNullSigningMasterKey
	}
	if w.net == nil {
		return ErrNullNetwork
	}
	return nil
}
