package explorer

// Utxo represents an unspent transaction output, consumable as the input of
// a new transaction.
type Utxo interface {
	Hash() string
	Index() uint32
	Value() uint64
	Script() []byte
	IsConfirmed() bool
}

// Service is the representation of a block explorer that allows to fetch
// address balances and unspents from the blockchain and to broadcast signed
// transactions.
type Service interface {
	// GetBalance returns the confirmed balance in satoshis of the given address.
	GetBalance(addr string) (uint64, error)
	// GetBalancesForAddresses returns the balance of every given address. It
	// fails as a whole if any single lookup fails.
	GetBalancesForAddresses(addresses []string) (map[string]uint64, error)
	// GetUnspents fetches the utxos of the given address.
	GetUnspents(addr string) ([]Utxo, error)
	// GetUnspentsForAddresses fetches the utxos of the given list of addresses.
	GetUnspentsForAddresses(addresses []string) ([]Utxo, error)
	// BroadcastTransaction publishes the given raw transaction in hex format
	// and returns its txid.
	BroadcastTransaction(txHex string) (string, error)
}
