package coinmarketcapfeeder

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/custodia-network/custodia-daemon/pkg/httputil"
	"github.com/custodia-network/custodia-daemon/pkg/pricefeeder"
)

var tickersBySymbol = map[string]string{
	"BTC": "bitcoin",
	"LTC": "litecoin",
	"ETH": "ethereum",
}

type service struct {
	apiURL string
}

// NewService returns a new coinmarketcap ticker client as a
// pricefeeder.PriceSource interface.
func NewService(apiURL string) pricefeeder.PriceSource {
	return &service{apiURL}
}

func (s *service) GetPrice(base, quote string) (decimal.Decimal, error) {
	ticker, ok := tickersBySymbol[strings.ToUpper(base)]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown base asset %s", base)
	}
	if strings.ToUpper(quote) != "USD" {
		return decimal.Zero, fmt.Errorf("unsupported quote currency %s", quote)
	}

	url := fmt.Sprintf("%s/ticker/%s/", s.apiURL, ticker)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error on retrieving price: %s", err)
	}
	if status != http.StatusOK {
		return decimal.Zero, fmt.Errorf(resp)
	}

	var tickers []tickerDetails
	if err := json.Unmarshal([]byte(resp), &tickers); err != nil {
		return decimal.Zero, fmt.Errorf("error on retrieving price: %s", err)
	}
	if len(tickers) <= 0 {
		return decimal.Zero, fmt.Errorf("empty response for ticker %s", ticker)
	}

	price, err := decimal.NewFromString(tickers[0].PriceUsd)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price for ticker %s: %s", ticker, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive price for ticker %s", ticker)
	}

	return price, nil
}

type tickerDetails struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	PriceUsd string `json:"price_usd"`
}
