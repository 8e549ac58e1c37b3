package domain

import "context"

// AccountRepository is the abstraction for any kind of database intended to
// persist Accounts and their issued addresses.
type AccountRepository interface {
	// AddAccount inserts a new account, failing if one with the same id
	// already exists.
	AddAccount(ctx context.Context, account *Account) error
	// GetAccount returns the account with the given id.
	GetAccount(ctx context.Context, accountID string) (*Account, error)
	// AppendAddress atomically appends an issued address to the account's
	// address list. Concurrent appends to the same account must not lose
	// updates.
	AppendAddress(
		ctx context.Context, accountID string, address AddressInfo,
	) error
	// ListAddresses returns the address strings of the given account in
	// issuance order.
	ListAddresses(ctx context.Context, accountID string) ([]string, error)
	// ListAllAddresses returns the address strings of every account.
	ListAllAddresses(ctx context.Context) ([]string, error)
	// GetSecretForAddress returns the stored secret of the given address
	// owned by the given account.
	GetSecretForAddress(
		ctx context.Context, accountID string, address string,
	) (string, error)
}

// SequenceRepository provides the atomic counters used for account and
// address numbering. NextSequenceNumber must be linearizable per key, two
// concurrent calls with the same key never observe the same value. Values
// start at 1 and are strictly increasing; gaps are allowed.
type SequenceRepository interface {
	NextSequenceNumber(ctx context.Context, key string) (uint32, error)
}
