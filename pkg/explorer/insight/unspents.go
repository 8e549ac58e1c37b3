package insight

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-network/custodia-daemon/pkg/explorer"
	"github.com/custodia-network/custodia-daemon/pkg/httputil"
)

func (i *insight) GetUnspents(addr string) ([]explorer.Utxo, error) {
	return i.getUnspents(addr)
}

func (i *insight) GetUnspentsForAddresses(
	addresses []string,
) ([]explorer.Utxo, error) {
	chUnspents := make(chan []explorer.Utxo)
	chErr := make(chan error, 1)
	unspents := make([]explorer.Utxo, 0)

	for _, addr := range addresses {
		go i.getUnspentsForAddress(addr, chUnspents, chErr)

		select {
		case err := <-chErr:
			close(chErr)
			close(chUnspents)
			return nil, err
		case unspentsForAddress := <-chUnspents:
			unspents = append(unspents, unspentsForAddress...)
		}
	}

	return unspents, nil
}

func (i *insight) getUnspents(addr string) ([]explorer.Utxo, error) {
	url := fmt.Sprintf("%s/addr/%s/utxo", i.apiURL, addr)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	var witnessOuts []witnessUtxo
	if err := json.Unmarshal([]byte(resp), &witnessOuts); err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}

	unspents := make([]explorer.Utxo, 0, len(witnessOuts))
	for _, out := range witnessOuts {
		script, err := hex.DecodeString(out.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf("error on retrieving utxos: %s", err)
		}
		unspents = append(unspents, explorer.NewUtxo(
			out.Txid, out.Vout, out.Satoshis, script, out.Confirmations > 0,
		))
	}

	return unspents, nil
}

func (i *insight) getUnspentsForAddress(
	addr string,
	chUnspents chan []explorer.Utxo,
	chErr chan error,
) {
	unspents, err := i.getUnspents(addr)
	if err != nil {
		chErr <- err
		return
	}
	chUnspents <- unspents
}
