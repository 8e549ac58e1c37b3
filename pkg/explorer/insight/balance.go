package insight

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-network/custodia-daemon/pkg/httputil"
)

func (i *insight) GetBalance(addr string) (uint64, error) {
	url := fmt.Sprintf("%s/addr/%s", i.apiURL, addr)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return 0, fmt.Errorf("error on retrieving address: %s", err)
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf(resp)
	}

	var details addressDetails
	if err := json.Unmarshal([]byte(resp), &details); err != nil {
		return 0, fmt.Errorf("error on retrieving address: %s", err)
	}

	return details.BalanceSat, nil
}

func (i *insight) GetBalancesForAddresses(
	addresses []string,
) (map[string]uint64, error) {
	chBalances := make(chan addressBalance)
	chErr := make(chan error, 1)
	balances := make(map[string]uint64)

	for _, addr := range addresses {
		go i.getBalanceForAddress(addr, chBalances, chErr)

		select {
		case err := <-chErr:
			close(chErr)
			close(chBalances)
			return nil, err
		case balance := <-chBalances:
			balances[balance.address] = balance.satoshis
		}
	}

	return balances, nil
}

type addressBalance struct {
	address  string
	satoshis uint64
}

func (i *insight) getBalanceForAddress(
	addr string,
	chBalances chan addressBalance,
	chErr chan error,
) {
	balance, err := i.GetBalance(addr)
	if err != nil {
		chErr <- err
		return
	}
	chBalances <- addressBalance{address: addr, satoshis: balance}
}
