package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DeriveSigningKeyPairOpts is the struct given to DeriveSigningKeyPair,
// DeriveAddress and DeriveAddressAndSecret methods. The account index is the
// globally unique sequence number of the owning account, the address index
// identifies the child key within the account subtree. Both must stay in the
// non-hardened range.
type DeriveSigningKeyPairOpts struct {
	Account uint32
	Index   uint32
}

func (o DeriveSigningKeyPairOpts) validate() error {
	if o.Account > MaxDerivationIndex || o.Index > MaxDerivationIndex {
		return ErrOutOfRangeDerivationIndex
	}
	return nil
}

// DeriveSigningKeyPair derives the key pair at path account/index. The
// derivation is deterministic, the same pair of indexes always yields the
// same key pair.
func (w *Wallet) DeriveSigningKeyPair(opts DeriveSigningKeyPairOpts) (
	*btcec.PrivateKey, *btcec.PublicKey, error,
) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	if err := w.validate(); err != nil {
		return nil, nil, err
	}

	hdNode, err := hdkeychain.NewKeyFromString(
		base58.Encode(w.signingMasterKey),
	)
	if err != nil {
		return nil, nil, err
	}

	for _, step := range []uint32{opts.Account, opts.Index} {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return nil, nil, err
		}
	}

	privateKey, err := hdNode.ECPrivKey()
	if err != nil {
		return nil, nil, err
	}
	publicKey, err := hdNode.ECPubKey()
	if err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}

// DeriveAddress derives the P2PKH address at path account/index.
func (w *Wallet) DeriveAddress(opts DeriveSigningKeyPairOpts) (string, error) {
	_, publicKey, err := w.DeriveSigningKeyPair(opts)
	if err != nil {
		return "", err
	}

	addr, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(publicKey.SerializeCompressed()), w.net,
	)
	if err != nil {
		return "", err
	}

	return addr.EncodeAddress(), nil
}

// DeriveAddressAndSecret derives the P2PKH address at path account/index
// along with its private key in WIF format. The secret is meant to be stored
// by the caller within the custody boundary, never returned to end users.
func (w *Wallet) DeriveAddressAndSecret(opts DeriveSigningKeyPairOpts) (
	string, string, error,
) {
	privateKey, publicKey, err := w.DeriveSigningKeyPair(opts)
	if err != nil {
		return "", "", err
	}

	addr, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(publicKey.SerializeCompressed()), w.net,
	)
	if err != nil {
		return "", "", err
	}

	wif, err := btcutil.NewWIF(privateKey, w.net, true)
	if err != nil {
		return "", "", err
	}

	return addr.EncodeAddress(), wif.String(), nil
}
