// Package hierarchy implements the five-level organizational state
// machine (L3): accounts, wallet-groups, wallets, address-groups, and
// subwallets, layered over the chain-codec (L2) and store (L4) packages
// beneath it.
package hierarchy

import "time"

// Account is the collaborator-facing view of a master account. It holds
// no mnemonic, passphrase or master secret, so CLI output built from it
// never contains them.
type Account struct {
	ID                 int64
	Name               string
	NextWalletGroupIdx uint32
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// WalletGroup is the collaborator-facing view of a wallet group.
type WalletGroup struct {
	ID           int64
	AccountID    int64
	Name         string
	AccountIndex uint32
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Wallet is the collaborator-facing view of a base wallet, subwallet,
// or standalone wallet; the two optional ids tell which.
type Wallet struct {
	ID                  int64
	WalletGroupID       *int64
	AddressGroupID      *int64
	Blockchain          string
	Address             string
	AddressWithChecksum string
	PublicKey           string
	DerivationPath      string
	Label               string
	SourceType          string
	ExplorerURL         string
	Notes               string
	AdditionalData      map[string]string
	SecondaryAddresses  map[string]string
	CreatedAt           time.Time
}

// AddressGroup is the collaborator-facing view of an address group.
type AddressGroup struct {
	ID                 int64
	WalletGroupID      int64
	WalletID           int64
	Blockchain         string
	Name               string
	AddressGroupIndex  uint32
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
