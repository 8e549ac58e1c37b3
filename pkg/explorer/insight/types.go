package insight

// addressDetails is the payload returned by the /addr/{address} endpoint.
type addressDetails struct {
	AddrStr                 string `json:"addrStr"`
	BalanceSat              uint64 `json:"balanceSat"`
	UnconfirmedBalanceSat   int64  `json:"unconfirmedBalanceSat"`
	TxApperances            int    `json:"txApperances"`
	UnconfirmedTxApperances int    `json:"unconfirmedTxApperances"`
}

// witnessUtxo is the payload returned by the /addr/{address}/utxo endpoint.
type witnessUtxo struct {
	Txid          string  `json:"txid"`
	Vout          uint32  `json:"vout"`
	Satoshis      uint64  `json:"satoshis"`
	ScriptPubKey  string  `json:"scriptPubKey"`
	Confirmations int     `json:"confirmations"`
	Amount        float64 `json:"amount"`
}

type broadcastResponse struct {
	Txid string `json:"txid"`
}
