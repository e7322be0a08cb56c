// Package store implements the persistence contract (L4): a normalized
// relational schema for the five-level hierarchy, held in memory and
// flushed to an atomically-written JSON file, with foreign-key
// invariants enforced by the layer above rather than a SQL engine.
package store

import "time"

// SourceType distinguishes a wallet derived from a mnemonic from one
// imported from a raw private key, per spec §3's source_type column.
type SourceType string

const (
	SourceMnemonic   SourceType = "mnemonic"
	SourcePrivateKey SourceType = "private_key"
)

// Account mirrors the accounts table.
type Account struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Mnemonic            string    `json:"mnemonic"`
	Passphrase          string    `json:"passphrase,omitempty"`
	MasterPrivateKey    string    `json:"master_private_key"`
	NextWalletGroupIdx  uint32    `json:"next_wallet_group_index"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// WalletGroup mirrors the wallet_groups table.
type WalletGroup struct {
	ID           int64     `json:"id"`
	AccountID    int64     `json:"account_id"`
	Name         string    `json:"name"`
	AccountIndex uint32    `json:"account_index"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AddressGroup mirrors the address_groups table.
type AddressGroup struct {
	ID               int64     `json:"id"`
	WalletGroupID    int64     `json:"wallet_group_id"`
	WalletID         int64     `json:"wallet_id"`
	Blockchain       string    `json:"blockchain"`
	Name             string    `json:"name"`
	AddressGroupIdx  uint32    `json:"address_group_index"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Wallet mirrors the wallets table. WalletGroupID and AddressGroupID are
// pointers so a nil value represents the column's SQL NULL: both nil is
// a StandaloneWallet, AddressGroupID alone nil is a base Wallet, neither
// nil is a Subwallet.
type Wallet struct {
	ID                 int64             `json:"id"`
	WalletGroupID      *int64            `json:"wallet_group_id,omitempty"`
	AddressGroupID     *int64            `json:"address_group_id,omitempty"`
	Blockchain         string            `json:"blockchain"`
	Address            string            `json:"address"`
	AddressWithChecksum string           `json:"address_with_checksum,omitempty"`
	PrivateKey         string            `json:"private_key"`
	PublicKey          string            `json:"public_key,omitempty"`
	DerivationPath     string            `json:"derivation_path,omitempty"`
	Label              string            `json:"label,omitempty"`
	SourceType         SourceType        `json:"source_type"`
	ExplorerURL        string            `json:"explorer_url,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	AdditionalData     map[string]string `json:"additional_data,omitempty"`
	SecondaryAddresses map[string]string `json:"secondary_addresses,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// IsStandalone reports whether w is a StandaloneWallet (both group ids null).
func (w *Wallet) IsStandalone() bool {
	return w.WalletGroupID == nil && w.AddressGroupID == nil
}

// IsSubwallet reports whether w is a Subwallet (non-null address-group id).
func (w *Wallet) IsSubwallet() bool {
	return w.AddressGroupID != nil
}

// file is the on-disk JSON envelope for the whole store, grounded on
// the teacher's single-struct-of-maps persistence file format.
type file struct {
	Accounts      map[int64]*Account      `json:"accounts"`
	WalletGroups  map[int64]*WalletGroup  `json:"wallet_groups"`
	AddressGroups map[int64]*AddressGroup `json:"address_groups"`
	Wallets       map[int64]*Wallet       `json:"wallets"`
	NextID        int64                   `json:"next_id"`
}
