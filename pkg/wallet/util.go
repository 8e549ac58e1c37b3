package wallet

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/vulpemventures/go-bip39"
)

// MaxDerivationIndex is the max value for the non-hardened account and
// address indexes of BIP32 derivation paths.
const MaxDerivationIndex = hdkeychain.HardenedKeyStart - 1

func generateMnemonic(entropySize int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

func generateSeedFromMnemonic(mnemonic []string) []byte {
	m := strings.Join(mnemonic, " ")
	return bip39.NewSeed(m, "")
}

func isMnemonicValid(mnemonic []string) bool {
	m := strings.Join(mnemonic, " ")
	return bip39.IsMnemonicValid(m)
}

func generateSigningMasterKey(
	seed []byte, net *chaincfg.Params,
) ([]byte, error) {
	hdNode, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, err
	}
	return base58.Decode(hdNode.String()), nil
}
