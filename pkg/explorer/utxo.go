package explorer

type utxo struct {
	UHash      string
	UIndex     uint32
	UValue     uint64
	UScript    []byte
	UConfirmed bool
}

// NewUtxo returns a plain Utxo from its raw fields.
func NewUtxo(
	hash string, index uint32, value uint64, script []byte, confirmed bool,
) Utxo {
	return utxo{
		UHash:      hash,
		UIndex:     index,
		UValue:     value,
		UScript:    script,
		UConfirmed: confirmed,
	}
}

func (u utxo) Hash() string {
	return u.UHash
}

func (u utxo) Index() uint32 {
	return u.UIndex
}

func (u utxo) Value() uint64 {
	return u.UValue
}

func (u utxo) Script() []byte {
	return u.UScript
}

func (u utxo) IsConfirmed() bool {
	return u.UConfirmed
}
