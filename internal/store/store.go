package store

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/keyforge-hd/keyforge/internal/fileutil"
	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

// Store is the single-process, transactional relational store described
// by spec §4.6: one in-memory table per entity, a monotonic id counter,
// and whole-store atomic JSON persistence. Every exported method takes
// the store's lock for its full duration, which is what makes a
// multi-row method "transactional" in the single-threaded-cooperative
// model spec §5 describes: either every mutation inside it lands, or
// (on an early validation error) none do.
type Store struct {
	path string
	mu   sync.RWMutex
	f    *file
}

// New creates an empty Store backed by path. Save must be called
// explicitly; New does not write to disk.
func New(path string) *Store {
	return &Store{
		path: path,
		f: &file{
			Accounts:      map[int64]*Account{},
			WalletGroups:  map[int64]*WalletGroup{},
			AddressGroups: map[int64]*AddressGroup{},
			Wallets:       map[int64]*Wallet{},
			NextID:        1,
		},
	}
}

// Load reads path and returns a Store populated from it, or a fresh
// empty Store if path does not yet exist.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from validated config, not user input
	if os.IsNotExist(err) {
		return New(path), nil
	}
	if err != nil {
		return nil, kferrors.Wrap(kferrors.ErrStoreIO, "reading store file: %v", err)
	}

	f := &file{}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, kferrors.Wrap(kferrors.ErrStoreIO, "parsing store file: %v", err)
	}
	if f.Accounts == nil {
		f.Accounts = map[int64]*Account{}
	}
	if f.WalletGroups == nil {
		f.WalletGroups = map[int64]*WalletGroup{}
	}
	if f.AddressGroups == nil {
		f.AddressGroups = map[int64]*AddressGroup{}
	}
	if f.Wallets == nil {
		f.Wallets = map[int64]*Wallet{}
	}
	if f.NextID == 0 {
		f.NextID = 1
	}

	return &Store{path: path, f: f}, nil
}

// Save flushes the store to its backing file atomically.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.f, "", "  ")
	if err != nil {
		return kferrors.Wrap(kferrors.ErrStoreIO, "encoding store file: %v", err)
	}
	if err := fileutil.WriteAtomic(s.path, data, 0o600); err != nil {
		return kferrors.Wrap(kferrors.ErrStoreIO, "writing store file: %v", err)
	}
	return nil
}

func (s *Store) nextID() int64 {
	id := s.f.NextID
	s.f.NextID++
	return id
}

// --- Accounts ---

// InsertAccount assigns an id and timestamps and stores account.
func (s *Store) InsertAccount(a *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.f.Accounts {
		if existing.Name == a.Name {
			return nil, kferrors.WithDetails(kferrors.ErrDuplicateName, map[string]string{"name": a.Name})
		}
	}

	now := time.Now().UTC()
	a.ID = s.nextID()
	a.CreatedAt, a.UpdatedAt = now, now
	s.f.Accounts[a.ID] = a
	return a, nil
}

// GetAccountByName returns the account named name, or ErrAccountNotFound.
func (s *Store) GetAccountByName(name string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.f.Accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, kferrors.WithDetails(kferrors.ErrAccountNotFound, map[string]string{"name": name})
}

// GetAccount returns the account by id, or ErrAccountNotFound.
func (s *Store) GetAccount(id int64) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.f.Accounts[id]
	if !ok {
		return nil, kferrors.ErrAccountNotFound
	}
	return a, nil
}

// ListAccounts returns every account, in no particular order.
func (s *Store) ListAccounts() []*Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Account, 0, len(s.f.Accounts))
	for _, a := range s.f.Accounts {
		out = append(out, a)
	}
	return out
}

// IncrementWalletGroupIndex atomically reads and advances an account's
// next_wallet_group_index counter, returning the value to assign to the
// new group.
func (s *Store) IncrementWalletGroupIndex(accountID int64) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.f.Accounts[accountID]
	if !ok {
		return 0, kferrors.ErrAccountNotFound
	}
	idx := a.NextWalletGroupIdx
	a.NextWalletGroupIdx++
	a.UpdatedAt = time.Now().UTC()
	return idx, nil
}

// DeleteAccountCascade removes an account and every WalletGroup,
// AddressGroup, and Wallet beneath it in one locked pass.
func (s *Store) DeleteAccountCascade(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.f.Accounts[id]; !ok {
		return kferrors.ErrAccountNotFound
	}

	var groupIDs []int64
	for gid, g := range s.f.WalletGroups {
		if g.AccountID == id {
			groupIDs = append(groupIDs, gid)
		}
	}
	for _, gid := range groupIDs {
		s.deleteWalletGroupCascadeLocked(gid)
	}

	delete(s.f.Accounts, id)
	return nil
}

// --- WalletGroups ---

// InsertWalletGroup stores a new wallet group, rejecting a duplicate
// name within the same account.
func (s *Store) InsertWalletGroup(g *WalletGroup) (*WalletGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.f.WalletGroups {
		if existing.AccountID == g.AccountID && existing.Name == g.Name {
			return nil, kferrors.WithDetails(kferrors.ErrDuplicateName, map[string]string{"name": g.Name})
		}
	}

	now := time.Now().UTC()
	g.ID = s.nextID()
	g.CreatedAt, g.UpdatedAt = now, now
	s.f.WalletGroups[g.ID] = g
	return g, nil
}

// GetWalletGroup returns the group by id.
func (s *Store) GetWalletGroup(id int64) (*WalletGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.f.WalletGroups[id]
	if !ok {
		return nil, kferrors.ErrWalletGroupNotFound
	}
	return g, nil
}

// GetWalletGroupByName finds a group by (accountID, name).
func (s *Store) GetWalletGroupByName(accountID int64, name string) (*WalletGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.f.WalletGroups {
		if g.AccountID == accountID && g.Name == name {
			return g, nil
		}
	}
	return nil, kferrors.WithDetails(kferrors.ErrWalletGroupNotFound, map[string]string{"name": name})
}

// ListWalletGroups returns every group under accountID.
func (s *Store) ListWalletGroups(accountID int64) []*WalletGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*WalletGroup
	for _, g := range s.f.WalletGroups {
		if g.AccountID == accountID {
			out = append(out, g)
		}
	}
	return out
}

// DeleteWalletGroup removes an empty group, or fails with ErrNotEmpty.
func (s *Store) DeleteWalletGroup(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.f.WalletGroups[id]; !ok {
		return kferrors.ErrWalletGroupNotFound
	}
	for _, w := range s.f.Wallets {
		if w.WalletGroupID != nil && *w.WalletGroupID == id {
			return kferrors.ErrNotEmpty
		}
	}
	delete(s.f.WalletGroups, id)
	return nil
}

// DeleteWalletGroupCascade removes a group and everything beneath it.
func (s *Store) DeleteWalletGroupCascade(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.f.WalletGroups[id]; !ok {
		return kferrors.ErrWalletGroupNotFound
	}
	s.deleteWalletGroupCascadeLocked(id)
	return nil
}

func (s *Store) deleteWalletGroupCascadeLocked(groupID int64) {
	var walletIDs []int64
	for wid, w := range s.f.Wallets {
		if w.WalletGroupID != nil && *w.WalletGroupID == groupID {
			walletIDs = append(walletIDs, wid)
		}
	}
	for _, wid := range walletIDs {
		s.deleteWalletCascadeLocked(wid)
	}
	delete(s.f.WalletGroups, groupID)
}

// RenameWalletGroup renames a group, rejecting a collision within the
// same account.
func (s *Store) RenameWalletGroup(id int64, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.f.WalletGroups[id]
	if !ok {
		return kferrors.ErrWalletGroupNotFound
	}
	for _, existing := range s.f.WalletGroups {
		if existing.ID != id && existing.AccountID == g.AccountID && existing.Name == newName {
			return kferrors.WithDetails(kferrors.ErrDuplicateName, map[string]string{"name": newName})
		}
	}
	g.Name = newName
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// --- AddressGroups ---

// InsertAddressGroup stores a new address group, rejecting a duplicate
// name within the same wallet.
func (s *Store) InsertAddressGroup(ag *AddressGroup) (*AddressGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.f.AddressGroups {
		if existing.WalletID == ag.WalletID && existing.Name == ag.Name {
			return nil, kferrors.WithDetails(kferrors.ErrDuplicateName, map[string]string{"name": ag.Name})
		}
	}

	now := time.Now().UTC()
	ag.ID = s.nextID()
	ag.CreatedAt, ag.UpdatedAt = now, now
	s.f.AddressGroups[ag.ID] = ag
	return ag, nil
}

// GetAddressGroup returns the group by id.
func (s *Store) GetAddressGroup(id int64) (*AddressGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ag, ok := s.f.AddressGroups[id]
	if !ok {
		return nil, kferrors.ErrAddressGroupNotFound
	}
	return ag, nil
}

// NextAddressGroupIndex returns the next auto-increment value for a
// wallet's address groups.
func (s *Store) NextAddressGroupIndex(walletID int64) uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max uint32
	found := false
	for _, ag := range s.f.AddressGroups {
		if ag.WalletID == walletID && (!found || ag.AddressGroupIdx > max) {
			max, found = ag.AddressGroupIdx, true
		}
	}
	if !found {
		return 0
	}
	return max + 1
}

// ListAddressGroups returns every address group under walletID.
func (s *Store) ListAddressGroups(walletID int64) []*AddressGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*AddressGroup
	for _, ag := range s.f.AddressGroups {
		if ag.WalletID == walletID {
			out = append(out, ag)
		}
	}
	return out
}

// DeleteAddressGroup removes an empty address group.
func (s *Store) DeleteAddressGroup(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.f.AddressGroups[id]; !ok {
		return kferrors.ErrAddressGroupNotFound
	}
	for _, w := range s.f.Wallets {
		if w.AddressGroupID != nil && *w.AddressGroupID == id {
			return kferrors.ErrNotEmpty
		}
	}
	delete(s.f.AddressGroups, id)
	return nil
}

// --- Wallets ---

// InsertWallet stores a new wallet, rejecting a globally duplicate address.
func (s *Store) InsertWallet(w *Wallet) (*Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.f.Wallets {
		if existing.Address == w.Address {
			return nil, kferrors.WithDetails(kferrors.ErrDuplicateName, map[string]string{"address": w.Address})
		}
	}

	w.ID = s.nextID()
	w.CreatedAt = time.Now().UTC()
	s.f.Wallets[w.ID] = w
	return w, nil
}

// GetWallet returns the wallet by id.
func (s *Store) GetWallet(id int64) (*Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.f.Wallets[id]
	if !ok {
		return nil, kferrors.ErrWalletNotFound
	}
	return w, nil
}

// GetWalletByAddress finds a wallet by its globally unique address.
func (s *Store) GetWalletByAddress(address string) (*Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.f.Wallets {
		if w.Address == address {
			return w, nil
		}
	}
	return nil, kferrors.ErrWalletNotFound
}

// GetWalletByLabel finds a StandaloneWallet by label.
func (s *Store) GetWalletByLabel(label string) (*Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.f.Wallets {
		if w.IsStandalone() && w.Label == label {
			return w, nil
		}
	}
	return nil, kferrors.ErrWalletNotFound
}

// ListBaseWallets returns the base wallets (address_group_id null)
// directly under walletGroupID.
func (s *Store) ListBaseWallets(walletGroupID int64) []*Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Wallet
	for _, w := range s.f.Wallets {
		if w.WalletGroupID != nil && *w.WalletGroupID == walletGroupID && w.AddressGroupID == nil {
			out = append(out, w)
		}
	}
	return out
}

// ListSubwallets returns every wallet whose address_group_id is addressGroupID.
func (s *Store) ListSubwallets(addressGroupID int64) []*Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Wallet
	for _, w := range s.f.Wallets {
		if w.AddressGroupID != nil && *w.AddressGroupID == addressGroupID {
			out = append(out, w)
		}
	}
	return out
}

// ListStandaloneWallets returns every StandaloneWallet.
func (s *Store) ListStandaloneWallets() []*Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Wallet
	for _, w := range s.f.Wallets {
		if w.IsStandalone() {
			out = append(out, w)
		}
	}
	return out
}

// DeleteWallet removes a wallet and, if it is a base wallet, cascades to
// its AddressGroups and their Subwallets.
func (s *Store) DeleteWallet(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.f.Wallets[id]; !ok {
		return kferrors.ErrWalletNotFound
	}
	s.deleteWalletCascadeLocked(id)
	return nil
}

func (s *Store) deleteWalletCascadeLocked(walletID int64) {
	var groupIDs []int64
	for gid, ag := range s.f.AddressGroups {
		if ag.WalletID == walletID {
			groupIDs = append(groupIDs, gid)
		}
	}
	for _, gid := range groupIDs {
		for wid, w := range s.f.Wallets {
			if w.AddressGroupID != nil && *w.AddressGroupID == gid {
				delete(s.f.Wallets, wid)
			}
		}
		delete(s.f.AddressGroups, gid)
	}
	delete(s.f.Wallets, walletID)
}

// SetLabel updates a wallet's label.
func (s *Store) SetLabel(id int64, label string) error {
	return s.mutateWallet(id, func(w *Wallet) { w.Label = label })
}

// SetNotes updates a wallet's notes.
func (s *Store) SetNotes(id int64, notes string) error {
	return s.mutateWallet(id, func(w *Wallet) { w.Notes = notes })
}

// SetAdditionalData upserts a key in a wallet's additional_data map.
func (s *Store) SetAdditionalData(id int64, key, value string) error {
	return s.mutateWallet(id, func(w *Wallet) {
		if w.AdditionalData == nil {
			w.AdditionalData = map[string]string{}
		}
		w.AdditionalData[key] = value
	})
}

// RemoveAdditionalData deletes a key from a wallet's additional_data map.
func (s *Store) RemoveAdditionalData(id int64, key string) error {
	return s.mutateWallet(id, func(w *Wallet) { delete(w.AdditionalData, key) })
}

// ClearAdditionalData empties a wallet's additional_data map.
func (s *Store) ClearAdditionalData(id int64) error {
	return s.mutateWallet(id, func(w *Wallet) { w.AdditionalData = map[string]string{} })
}

// SetSecondaryAddress upserts a key in a wallet's secondary_addresses map.
func (s *Store) SetSecondaryAddress(id int64, addressType, address string) error {
	return s.mutateWallet(id, func(w *Wallet) {
		if w.SecondaryAddresses == nil {
			w.SecondaryAddresses = map[string]string{}
		}
		w.SecondaryAddresses[addressType] = address
	})
}

// RemoveSecondaryAddress deletes a key from a wallet's secondary_addresses map.
func (s *Store) RemoveSecondaryAddress(id int64, addressType string) error {
	return s.mutateWallet(id, func(w *Wallet) { delete(w.SecondaryAddresses, addressType) })
}

// ClearSecondaryAddresses empties a wallet's secondary_addresses map.
func (s *Store) ClearSecondaryAddresses(id int64) error {
	return s.mutateWallet(id, func(w *Wallet) { w.SecondaryAddresses = map[string]string{} })
}

func (s *Store) mutateWallet(id int64, fn func(*Wallet)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.f.Wallets[id]
	if !ok {
		return kferrors.ErrWalletNotFound
	}
	fn(w)
	return nil
}
