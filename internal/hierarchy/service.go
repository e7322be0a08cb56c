package hierarchy

import (
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/keyforge-hd/keyforge/internal/bip39"
	"github.com/keyforge-hd/keyforge/internal/chain"
	"github.com/keyforge-hd/keyforge/internal/store"
	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

// Service is the L3 state machine: it resolves names to ids, drives the
// L2 chain codecs, and hands fully-built rows to the L4 store inside a
// single locked call. It never retains a mnemonic or private key beyond
// the scope of the call that needed it.
type Service struct {
	store *store.Store
	opts  chain.Options
}

// New constructs a Service over st, gating the ambiguous chains per
// opts (see chain.Options).
func New(st *store.Store, opts chain.Options) *Service {
	return &Service{store: st, opts: opts}
}

// masterSecret is the first 32 bytes of the BIP-39 seed, kept as hex —
// spec §3's Account.master_private_key, used only for proof-of-ownership
// comparisons, never for derivation itself.
func masterSecret(mnemonic, passphrase string) string {
	seed := bip39.Seed(mnemonic, passphrase)
	defer bip39.ZeroBytes(seed)
	return hex.EncodeToString(seed[:32])
}

// --- Account ---

// CreateAccount validates mnemonic, computes the master secret, and
// stores a new account with next_wallet_group_index = 0.
func (s *Service) CreateAccount(name, mnemonic, passphrase string) (*Account, error) {
	if err := bip39.Validate(mnemonic); err != nil {
		return nil, err
	}

	row, err := s.store.InsertAccount(&store.Account{
		Name:             name,
		Mnemonic:         bip39.Normalize(mnemonic),
		Passphrase:       passphrase,
		MasterPrivateKey: masterSecret(mnemonic, passphrase),
	})
	if err != nil {
		return nil, err
	}
	return toAccount(row), nil
}

// GetAccount resolves an account by name.
func (s *Service) GetAccount(name string) (*Account, error) {
	row, err := s.store.GetAccountByName(name)
	if err != nil {
		return nil, err
	}
	return toAccount(row), nil
}

// ListAccounts returns every account.
func (s *Service) ListAccounts() []*Account {
	rows := s.store.ListAccounts()
	out := make([]*Account, 0, len(rows))
	for _, r := range rows {
		out = append(out, toAccount(r))
	}
	return out
}

// RemoveAccount destroys accountName and every descendant, after
// verifying mnemonic reproduces the stored master secret.
func (s *Service) RemoveAccount(accountName, mnemonic, passphrase string) error {
	acct, err := s.store.GetAccountByName(accountName)
	if err != nil {
		return err
	}
	if !proves(acct.MasterPrivateKey, mnemonic, passphrase) {
		return kferrors.ErrMnemonicMismatch
	}
	return s.store.DeleteAccountCascade(acct.ID)
}

func proves(storedSecret, mnemonic, passphrase string) bool {
	candidate := masterSecret(mnemonic, passphrase)
	return subtle.ConstantTimeCompare([]byte(storedSecret), []byte(candidate)) == 1
}

// --- WalletGroup ---

// CreateWalletGroup creates a new group under accountName, assigning the
// account's next wallet-group index and advancing the counter.
func (s *Service) CreateWalletGroup(accountName, groupName, description string) (*WalletGroup, error) {
	acct, err := s.store.GetAccountByName(accountName)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetWalletGroupByName(acct.ID, groupName); err == nil {
		return nil, kferrors.WithDetails(kferrors.ErrDuplicateName, map[string]string{"name": groupName})
	}

	idx, err := s.store.IncrementWalletGroupIndex(acct.ID)
	if err != nil {
		return nil, err
	}

	row, err := s.store.InsertWalletGroup(&store.WalletGroup{
		AccountID:    acct.ID,
		Name:         groupName,
		AccountIndex: idx,
		Description:  description,
	})
	if err != nil {
		return nil, err
	}
	return toWalletGroup(row), nil
}

// GetWalletGroup resolves a group by (accountName, groupName).
func (s *Service) GetWalletGroup(accountName, groupName string) (*WalletGroup, error) {
	acct, err := s.store.GetAccountByName(accountName)
	if err != nil {
		return nil, err
	}
	row, err := s.store.GetWalletGroupByName(acct.ID, groupName)
	if err != nil {
		return nil, err
	}
	return toWalletGroup(row), nil
}

// ListWalletGroups lists every group under accountName.
func (s *Service) ListWalletGroups(accountName string) ([]*WalletGroup, error) {
	acct, err := s.store.GetAccountByName(accountName)
	if err != nil {
		return nil, err
	}
	rows := s.store.ListWalletGroups(acct.ID)
	out := make([]*WalletGroup, 0, len(rows))
	for _, r := range rows {
		out = append(out, toWalletGroup(r))
	}
	return out, nil
}

// RenameWalletGroup renames a group, rejecting a collision in its
// account scope.
func (s *Service) RenameWalletGroup(groupID int64, newName string) error {
	return s.store.RenameWalletGroup(groupID, newName)
}

// RemoveWalletGroup deletes an empty group.
func (s *Service) RemoveWalletGroup(groupID int64) error {
	return s.store.DeleteWalletGroup(groupID)
}

// --- Wallet ---

// AddWallet derives and stores a base wallet for chainID under
// (accountName, groupName). accountIndexOverride defaults to the
// group's account_index; addressIndexOverride defaults to 0.
func (s *Service) AddWallet(
	accountName, groupName string, chainID chain.ID, label string,
	accountIndexOverride, addressIndexOverride *uint32, pathOverride string,
) (*Wallet, error) {
	acct, err := s.store.GetAccountByName(accountName)
	if err != nil {
		return nil, err
	}
	group, err := s.store.GetWalletGroupByName(acct.ID, groupName)
	if err != nil {
		return nil, err
	}

	accountIdx := group.AccountIndex
	if accountIndexOverride != nil {
		accountIdx = *accountIndexOverride
	}
	addressIdx := uint32(0)
	if addressIndexOverride != nil {
		addressIdx = *addressIndexOverride
	}

	codec, err := chain.Get(chainID, s.opts)
	if err != nil {
		return nil, err
	}
	keys, err := codec.DeriveFromMnemonic(acct.Mnemonic, acct.Passphrase, accountIdx, addressIdx, pathOverride)
	if err != nil {
		return nil, err
	}

	gid := group.ID
	row, err := s.store.InsertWallet(&store.Wallet{
		WalletGroupID:       &gid,
		Blockchain:          string(chainID),
		Address:             keys.Address,
		AddressWithChecksum: keys.ChecksumAddress,
		PrivateKey:          keys.PrivateKeyHex,
		PublicKey:           keys.PublicKeyHex,
		DerivationPath:      keys.DerivationPath,
		Label:               label,
		SourceType:          store.SourceMnemonic,
		ExplorerURL:         chain.ExplorerURL(chainID, keys.Address),
		AdditionalData:      keys.AdditionalData,
		SecondaryAddresses:  keys.SecondaryAddresses,
	})
	if err != nil {
		return nil, err
	}
	return toWallet(row), nil
}

// AddBlockchains adds a base wallet (and, for chains with
// MaxHierarchyDepth >= 4, a default AddressGroup) for each chain in
// chains not already present in groupName; per spec §4.5 and E6, a
// chain already present is silently skipped.
func (s *Service) AddBlockchains(accountName, groupName string, chains []chain.ID) ([]*Wallet, error) {
	acct, err := s.store.GetAccountByName(accountName)
	if err != nil {
		return nil, err
	}
	group, err := s.store.GetWalletGroupByName(acct.ID, groupName)
	if err != nil {
		return nil, err
	}

	existing := map[string]bool{}
	for _, w := range s.store.ListBaseWallets(group.ID) {
		existing[w.Blockchain] = true
	}

	var added []*Wallet
	for _, id := range chains {
		if existing[string(id)] {
			continue
		}
		wallet, err := s.AddWallet(accountName, groupName, id, "", nil, nil, "")
		if err != nil {
			return added, err
		}
		if id.MaxHierarchyDepth() >= 4 {
			if _, err := s.CreateAddressGroup(wallet.ID, "default"); err != nil {
				return added, err
			}
		}
		added = append(added, wallet)
		existing[string(id)] = true
	}
	return added, nil
}

// GetWallet resolves a wallet by id.
func (s *Service) GetWallet(id int64) (*Wallet, error) {
	row, err := s.store.GetWallet(id)
	if err != nil {
		return nil, err
	}
	return toWallet(row), nil
}

// GetWalletByAddress resolves a wallet by its globally unique address.
func (s *Service) GetWalletByAddress(address string) (*Wallet, error) {
	row, err := s.store.GetWalletByAddress(address)
	if err != nil {
		return nil, err
	}
	return toWallet(row), nil
}

// ListWallets lists the base wallets directly under a wallet group.
func (s *Service) ListWallets(groupID int64) []*Wallet {
	rows := s.store.ListBaseWallets(groupID)
	out := make([]*Wallet, 0, len(rows))
	for _, r := range rows {
		out = append(out, toWallet(r))
	}
	return out
}

// SetLabel updates a wallet's label.
func (s *Service) SetLabel(walletID int64, label string) error {
	return s.store.SetLabel(walletID, label)
}

// SetNotes updates a wallet's notes.
func (s *Service) SetNotes(walletID int64, notes string) error {
	return s.store.SetNotes(walletID, notes)
}

// SetAdditionalData upserts a key in a wallet's additional_data map.
func (s *Service) SetAdditionalData(walletID int64, key, value string) error {
	return s.store.SetAdditionalData(walletID, key, value)
}

// RemoveAdditionalData deletes a key from a wallet's additional_data map.
func (s *Service) RemoveAdditionalData(walletID int64, key string) error {
	return s.store.RemoveAdditionalData(walletID, key)
}

// ClearAdditionalData empties a wallet's additional_data map.
func (s *Service) ClearAdditionalData(walletID int64) error {
	return s.store.ClearAdditionalData(walletID)
}

// SetSecondaryAddress upserts a key in a wallet's secondary_addresses map.
func (s *Service) SetSecondaryAddress(walletID int64, addressType, address string) error {
	return s.store.SetSecondaryAddress(walletID, addressType, address)
}

// RemoveSecondaryAddress deletes a key from a wallet's secondary_addresses map.
func (s *Service) RemoveSecondaryAddress(walletID int64, addressType string) error {
	return s.store.RemoveSecondaryAddress(walletID, addressType)
}

// ClearSecondaryAddresses empties a wallet's secondary_addresses map.
func (s *Service) ClearSecondaryAddresses(walletID int64) error {
	return s.store.ClearSecondaryAddresses(walletID)
}

// RemoveWallet deletes a base wallet or subwallet after verifying
// mnemonic proves ownership of the account the wallet descends from.
func (s *Service) RemoveWallet(walletID int64, mnemonic, passphrase string) error {
	w, err := s.store.GetWallet(walletID)
	if err != nil {
		return err
	}
	if w.IsStandalone() {
		return kferrors.Wrap(kferrors.ErrInvalidAddress, "use RemoveStandaloneWallet for a wallet with no group")
	}

	gid := w.WalletGroupID
	group, err := s.store.GetWalletGroup(*gid)
	if err != nil {
		return err
	}
	acct, err := s.store.GetAccount(group.AccountID)
	if err != nil {
		return err
	}
	if !proves(acct.MasterPrivateKey, mnemonic, passphrase) {
		return kferrors.ErrMnemonicMismatch
	}
	return s.store.DeleteWallet(walletID)
}

// --- AddressGroup ---

// CreateAddressGroup creates a group under walletID, rejecting chains
// whose max hierarchy depth is below 4 and duplicate names in the
// wallet's scope.
func (s *Service) CreateAddressGroup(walletID int64, name string) (*AddressGroup, error) {
	wallet, err := s.store.GetWallet(walletID)
	if err != nil {
		return nil, err
	}
	if chain.ID(wallet.Blockchain).MaxHierarchyDepth() < 4 {
		return nil, kferrors.WithDetails(kferrors.ErrUnsupportedDepth, map[string]string{"chain": wallet.Blockchain})
	}
	if wallet.WalletGroupID == nil {
		return nil, kferrors.Wrap(kferrors.ErrInvalidAddress, "address groups require a wallet that belongs to a wallet group")
	}

	idx := s.store.NextAddressGroupIndex(walletID)
	row, err := s.store.InsertAddressGroup(&store.AddressGroup{
		WalletGroupID:   *wallet.WalletGroupID,
		WalletID:        walletID,
		Blockchain:      wallet.Blockchain,
		Name:            name,
		AddressGroupIdx: idx,
	})
	if err != nil {
		return nil, err
	}
	return toAddressGroup(row), nil
}

// GetAddressGroup resolves a group by id.
func (s *Service) GetAddressGroup(id int64) (*AddressGroup, error) {
	row, err := s.store.GetAddressGroup(id)
	if err != nil {
		return nil, err
	}
	return toAddressGroup(row), nil
}

// ListAddressGroups lists the address groups under walletID.
func (s *Service) ListAddressGroups(walletID int64) []*AddressGroup {
	rows := s.store.ListAddressGroups(walletID)
	out := make([]*AddressGroup, 0, len(rows))
	for _, r := range rows {
		out = append(out, toAddressGroup(r))
	}
	return out
}

// RemoveAddressGroup deletes an empty group.
func (s *Service) RemoveAddressGroup(id int64) error {
	return s.store.DeleteAddressGroup(id)
}

// --- Subwallet ---

// AddSubwallet derives and stores a subwallet under addressGroupID.
// addressIndexOverride defaults to one past the highest existing
// sibling index, starting at 1.
func (s *Service) AddSubwallet(addressGroupID int64, label string, addressIndexOverride *uint32) (*Wallet, error) {
	ag, err := s.store.GetAddressGroup(addressGroupID)
	if err != nil {
		return nil, err
	}
	if chain.ID(ag.Blockchain).MaxHierarchyDepth() < 5 {
		return nil, kferrors.WithDetails(kferrors.ErrUnsupportedDepth, map[string]string{"chain": ag.Blockchain})
	}

	group, err := s.store.GetWalletGroup(ag.WalletGroupID)
	if err != nil {
		return nil, err
	}
	acct, err := s.store.GetAccount(group.AccountID)
	if err != nil {
		return nil, err
	}

	addressIdx := addressIndexOverride
	if addressIdx == nil {
		next := nextSiblingIndex(s.store.ListSubwallets(addressGroupID))
		addressIdx = &next
	}

	codec, err := chain.Get(chain.ID(ag.Blockchain), s.opts)
	if err != nil {
		return nil, err
	}
	keys, err := codec.DeriveFromMnemonic(acct.Mnemonic, acct.Passphrase, group.AccountIndex, *addressIdx, "")
	if err != nil {
		return nil, err
	}

	gid := group.ID
	row, err := s.store.InsertWallet(&store.Wallet{
		WalletGroupID:       &gid,
		AddressGroupID:      &addressGroupID,
		Blockchain:          ag.Blockchain,
		Address:             keys.Address,
		AddressWithChecksum: keys.ChecksumAddress,
		PrivateKey:          keys.PrivateKeyHex,
		PublicKey:           keys.PublicKeyHex,
		DerivationPath:      keys.DerivationPath,
		Label:               label,
		SourceType:          store.SourceMnemonic,
		ExplorerURL:         chain.ExplorerURL(chain.ID(ag.Blockchain), keys.Address),
		AdditionalData:      keys.AdditionalData,
		SecondaryAddresses:  keys.SecondaryAddresses,
	})
	if err != nil {
		return nil, err
	}
	return toWallet(row), nil
}

// nextSiblingIndex computes max(existing child indices) + 1, starting
// at 1, by parsing the last component of each sibling's derivation path.
func nextSiblingIndex(siblings []*store.Wallet) uint32 {
	var max uint32
	found := false
	for _, w := range siblings {
		parts := strings.Split(w.DerivationPath, "/")
		last := strings.TrimSuffix(parts[len(parts)-1], "'")
		n, err := strconv.ParseUint(last, 10, 32)
		if err != nil {
			continue
		}
		if !found || uint32(n) > max {
			max, found = uint32(n), true
		}
	}
	if !found {
		return 1
	}
	return max + 1
}

// ListSubwallets lists subwallets under an address group.
func (s *Service) ListSubwallets(addressGroupID int64) []*Wallet {
	rows := s.store.ListSubwallets(addressGroupID)
	out := make([]*Wallet, 0, len(rows))
	for _, r := range rows {
		out = append(out, toWallet(r))
	}
	return out
}

// --- StandaloneWallet ---

// ImportStandaloneWallet derives a wallet from a raw private key and
// stores it with both group ids null.
func (s *Service) ImportStandaloneWallet(privateKeyHex string, chainID chain.ID, label, notes string) (*Wallet, error) {
	if _, err := s.store.GetWalletByLabel(label); err == nil {
		return nil, kferrors.WithDetails(kferrors.ErrDuplicateName, map[string]string{"label": label})
	}

	codec, err := chain.Get(chainID, s.opts)
	if err != nil {
		return nil, err
	}
	keys, err := codec.DeriveFromPrivateKey(privateKeyHex)
	if err != nil {
		return nil, err
	}

	row, err := s.store.InsertWallet(&store.Wallet{
		Blockchain:          string(chainID),
		Address:             keys.Address,
		AddressWithChecksum: keys.ChecksumAddress,
		PrivateKey:          keys.PrivateKeyHex,
		PublicKey:           keys.PublicKeyHex,
		Label:               label,
		Notes:               notes,
		SourceType:          store.SourcePrivateKey,
		ExplorerURL:         chain.ExplorerURL(chainID, keys.Address),
		AdditionalData:      keys.AdditionalData,
		SecondaryAddresses:  keys.SecondaryAddresses,
	})
	if err != nil {
		return nil, err
	}
	return toWallet(row), nil
}

// ListStandaloneWallets lists every StandaloneWallet.
func (s *Service) ListStandaloneWallets() []*Wallet {
	rows := s.store.ListStandaloneWallets()
	out := make([]*Wallet, 0, len(rows))
	for _, r := range rows {
		out = append(out, toWallet(r))
	}
	return out
}

// RemoveStandaloneWallet deletes a StandaloneWallet after verifying
// privateKeyHex matches the stored value exactly.
func (s *Service) RemoveStandaloneWallet(walletID int64, privateKeyHex string) error {
	w, err := s.store.GetWallet(walletID)
	if err != nil {
		return err
	}
	if !w.IsStandalone() {
		return kferrors.Wrap(kferrors.ErrInvalidAddress, "wallet is not a standalone wallet")
	}
	normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(privateKeyHex)), "0x")
	if subtle.ConstantTimeCompare([]byte(normalized), []byte(w.PrivateKey)) != 1 {
		return kferrors.ErrPrivateKeyMismatch
	}
	return s.store.DeleteWallet(walletID)
}

// --- conversions ---

func toAccount(a *store.Account) *Account {
	return &Account{
		ID:                 a.ID,
		Name:               a.Name,
		NextWalletGroupIdx: a.NextWalletGroupIdx,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func toWalletGroup(g *store.WalletGroup) *WalletGroup {
	return &WalletGroup{
		ID:           g.ID,
		AccountID:    g.AccountID,
		Name:         g.Name,
		AccountIndex: g.AccountIndex,
		Description:  g.Description,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func toAddressGroup(ag *store.AddressGroup) *AddressGroup {
	return &AddressGroup{
		ID:                ag.ID,
		WalletGroupID:     ag.WalletGroupID,
		WalletID:          ag.WalletID,
		Blockchain:        ag.Blockchain,
		Name:              ag.Name,
		AddressGroupIndex: ag.AddressGroupIdx,
		CreatedAt:         ag.CreatedAt,
		UpdatedAt:         ag.UpdatedAt,
	}
}

func toWallet(w *store.Wallet) *Wallet {
	return &Wallet{
		ID:                  w.ID,
		WalletGroupID:       w.WalletGroupID,
		AddressGroupID:      w.AddressGroupID,
		Blockchain:          w.Blockchain,
		Address:             w.Address,
		AddressWithChecksum: w.AddressWithChecksum,
		PublicKey:           w.PublicKey,
		DerivationPath:      w.DerivationPath,
		Label:               w.Label,
		SourceType:          string(w.SourceType),
		ExplorerURL:         w.ExplorerURL,
		Notes:               w.Notes,
		AdditionalData:      w.AdditionalData,
		SecondaryAddresses:  w.SecondaryAddresses,
		CreatedAt:           w.CreatedAt,
	}
}
