package insight

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-network/custodia-daemon/pkg/httputil"
)

func (i *insight) BroadcastTransaction(txHex string) (string, error) {
	url := fmt.Sprintf("%s/tx/send", i.apiURL)
	payload := map[string]string{"rawtx": txHex}
	body, _ := json.Marshal(payload)

	status, resp, err := httputil.NewHTTPRequest(
		"POST", url, string(body), map[string]string{
			"Content-Type": "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("error on broadcasting transaction: %s", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	var broadcast broadcastResponse
	if err := json.Unmarshal([]byte(resp), &broadcast); err != nil {
		return "", fmt.Errorf("error on broadcasting transaction: %s", err)
	}

	return broadcast.Txid, nil
}
