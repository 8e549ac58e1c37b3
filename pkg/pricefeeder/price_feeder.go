package pricefeeder

import "github.com/shopspring/decimal"

// PriceSource is the abstraction of any market data provider capable of
// returning the current exchange rate of a coin against a fiat currency.
type PriceSource interface {
	// GetPrice returns the current price of one whole unit of the base asset
	// expressed in the quote currency.
	GetPrice(base, quote string) (decimal.Decimal, error)
}
