package domain

// AccountKind and LedgerEntryKind discriminate record types within the
// shared store.
const (
	AccountKind     = "account"
	LedgerEntryKind = "transaction"
)

// Account is the entity representing a customer of the custodial wallet.
// Its SequenceNumber is globally unique and doubles as the account-level
// index in the HD key tree, so every account maps to a disjoint subtree of
// the master key. Accounts are append-only, addresses are added over their
// lifetime and never removed.
type Account struct {
	ID             string
	SequenceNumber uint32
	FirstName      string
	LastName       string
	Addresses      []AddressInfo
	Kind           string
}

// AddressInfo is an address issued to an account along with the derivation
// index it was generated at and its private key in WIF format. The secret
// never leaves the custody boundary, response payloads only ever carry the
// address string.
type AddressInfo struct {
	DerivationIndex uint32
	Address         string
	Secret          string
}

// NewAccount returns a new Account with the given identity and sequence
// number and an empty address list.
func NewAccount(id string, sequenceNumber uint32, firstName, lastName string) *Account {
	return &Account{
		ID:             id,
		SequenceNumber: sequenceNumber,
		FirstName:      firstName,
		LastName:       lastName,
		Addresses:      []AddressInfo{},
		Kind:           AccountKind,
	}
}

// AddressStrings returns the plain list of the account's address strings in
// issuance order.
func (a *Account) AddressStrings() []string {
	addresses := make([]string, 0, len(a.Addresses))
	for _, info := range a.Addresses {
		addresses = append(addresses, info.Address)
	}
	return addresses
}

// SecretForAddress returns the stored WIF secret of the given address.
func (a *Account) SecretForAddress(address string) (string, error) {
	for _, info := range a.Addresses {
		if info.Address == address {
			return info.Secret, nil
		}
	}
	return "", ErrAddressNotFound
}
