package wallet

const (
	txBaseSize      = 10
	p2pkhInputSize  = 148
	p2pkhOutputSize = 34
)

// EstimateTxSize returns the estimated size in bytes of a transaction with
// the given number of P2PKH inputs and outputs.
func EstimateTxSize(numInputs, numOutputs int) uint64 {
	return uint64(
		txBaseSize + p2pkhInputSize*numInputs + p2pkhOutputSize*numOutputs,
	)
}
