package wallet

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/custodia-network/custodia-daemon/pkg/explorer"
)

// DustLimit is the smallest change amount worth adding as an extra output,
// anything below is left to the network as fees.
const DustLimit = 546

// TxOutput is a recipient of a transaction to be built.
type TxOutput struct {
	Address  string
	Satoshis uint64
}

// NewSignedTransactionOpts is the struct given to NewSignedTransaction.
// Every unspent must be spendable by one of the provided WIF secrets.
type NewSignedTransactionOpts struct {
	Unspents      []explorer.Utxo
	Outputs       []TxOutput
	ChangeAddress string
	SatsPerByte   uint64
	SecretsWIF    []string
	Net           *chaincfg.Params
}

func (o NewSignedTransactionOpts) validate() error {
	if len(o.Unspents) <= 0 {
		return ErrEmptyUnspents
	}
	if len(o.Outputs) <= 0 {
		return ErrEmptyOutputs
	}
	if o.Net == nil {
		return ErrNullNetwork
	}
	for _, out := range o.Outputs {
		if _, err := btcutil.DecodeAddress(out.Address, o.Net); err != nil {
			return ErrInvalidOutputAddress
		}
	}
	if o.ChangeAddress != "" {
		if _, err := btcutil.DecodeAddress(o.ChangeAddress, o.Net); err != nil {
			return ErrInvalidChangeAddress
		}
	}
	if len(o.SecretsWIF) <= 0 {
		return ErrNullSecret
	}
	return nil
}

// NewSignedTransaction builds a transaction spending all the provided
// unspents, paying each output its amount and returning the remainder to the
// change address when it exceeds the dust limit. Each input is signed with
// the secret matching its previous output script and the signed transaction
// is returned in hex format.
func NewSignedTransaction(opts NewSignedTransactionOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	keysByScript, err := signingKeysByScript(opts.SecretsWIF, opts.Net)
	if err != nil {
		return "", err
	}

	msgTx := wire.NewMsgTx(wire.TxVersion)

	totalIn := uint64(0)
	for _, unspent := range opts.Unspents {
		txHash, err := chainhash.NewHashFromStr(unspent.Hash())
		if err != nil {
			return "", err
		}
		outpoint := wire.NewOutPoint(txHash, unspent.Index())
		msgTx.AddTxIn(wire.NewTxIn(outpoint, nil, nil))
		totalIn += unspent.Value()
	}

	totalOut := uint64(0)
	for _, out := range opts.Outputs {
		addr, _ := btcutil.DecodeAddress(out.Address, opts.Net)
		script, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return "", err
		}
		msgTx.AddTxOut(wire.NewTxOut(int64(out.Satoshis), script))
		totalOut += out.Satoshis
	}

	// Fees are estimated on the final shape of the transaction, change
	// output included.
	numOutputs := len(opts.Outputs)
	if opts.ChangeAddress != "" {
		numOutputs++
	}
	fee := EstimateTxSize(len(opts.Unspents), numOutputs) * opts.SatsPerByte

	if totalIn < totalOut+fee {
		return "", ErrInsufficientFunds
	}

	if change := totalIn - totalOut - fee; opts.ChangeAddress != "" && change >= DustLimit {
		addr, _ := btcutil.DecodeAddress(opts.ChangeAddress, opts.Net)
		script, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return "", err
		}
		msgTx.AddTxOut(wire.NewTxOut(int64(change), script))
	}

	for i, unspent := range opts.Unspents {
		privateKey, ok := keysByScript[hex.EncodeToString(unspent.Script())]
		if !ok {
			return "", ErrMissingSecretForUnspent
		}
		sigScript, err := txscript.SignatureScript(
			msgTx, i, unspent.Script(), txscript.SigHashAll, privateKey, true,
		)
		if err != nil {
			return "", err
		}
		msgTx.TxIn[i].SignatureScript = sigScript
	}

	var buf bytes.Buffer
	if err := msgTx.Serialize(&buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf.Bytes()), nil
}

func signingKeysByScript(
	secrets []string, net *chaincfg.Params,
) (map[string]*btcec.PrivateKey, error) {
	keysByScript := make(map[string]*btcec.PrivateKey)
	for _, secret := range secrets {
		wif, err := btcutil.DecodeWIF(secret)
		if err != nil {
			return nil, ErrInvalidSecret
		}

		addr, err := btcutil.NewAddressPubKeyHash(
			btcutil.Hash160(wif.PrivKey.PubKey().SerializeCompressed()), net,
		)
		if err != nil {
			return nil, err
		}
		script, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return nil, err
		}
		keysByScript[hex.EncodeToString(script)] = wif.PrivKey
	}
	return keysByScript, nil
}
