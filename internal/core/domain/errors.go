package domain

import "errors"

var (
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = errors.New("account with same id already exists")
	// ErrLedgerEntryAlreadyExists ...
	ErrLedgerEntryAlreadyExists = errors.New("ledger entry with same id already exists")
	// ErrAddressNotFound ...
	ErrAddressNotFound = errors.New("address not found for account")
)
