package application

import "errors"

var (
	// ErrInsufficientFunds is returned when the requested amount exceeds the
	// balance backing the operation.
	ErrInsufficientFunds = errors.New("not enough funds in account")
	// ErrPriceUnavailable is returned when the price oracle cannot provide a
	// valid exchange rate. Operations carrying a fiat valuation never
	// proceed without one.
	ErrPriceUnavailable = errors.New("price oracle is unavailable, try again later")
	// ErrChainLookup is returned when balances or unspents cannot be
	// fetched from the blockchain explorer. Lookups are all-or-nothing, a
	// partial result is never used to under-report a balance.
	ErrChainLookup = errors.New("blockchain explorer is unavailable, try again later")
	// ErrNoUnspentOutputs ...
	ErrNoUnspentOutputs = errors.New("there are no unspent transactions available")
	// ErrNoFundedSource is returned when no treasury pool address holds
	// enough funds to cover the requested transfer.
	ErrNoFundedSource = errors.New("not enough funds in treasury pool")
)
