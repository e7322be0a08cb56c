package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyforge-hd/keyforge/internal/store"
)

func TestInsertAccountRejectsDuplicateName(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "store.json"))

	_, err := s.InsertAccount(&store.Account{Name: "alice"})
	require.NoError(t, err)

	_, err = s.InsertAccount(&store.Account{Name: "alice"})
	assert.Error(t, err)
}

func TestIncrementWalletGroupIndexNeverReuses(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "store.json"))
	acct, err := s.InsertAccount(&store.Account{Name: "alice"})
	require.NoError(t, err)

	idx0, err := s.IncrementWalletGroupIndex(acct.ID)
	require.NoError(t, err)
	idx1, err := s.IncrementWalletGroupIndex(acct.ID)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), idx0)
	assert.Equal(t, uint32(1), idx1)
}

func TestDeleteWalletGroupRequiresEmpty(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "store.json"))
	acct, err := s.InsertAccount(&store.Account{Name: "alice"})
	require.NoError(t, err)
	group, err := s.InsertWalletGroup(&store.WalletGroup{AccountID: acct.ID, Name: "main"})
	require.NoError(t, err)

	gid := group.ID
	_, err = s.InsertWallet(&store.Wallet{WalletGroupID: &gid, Blockchain: "bitcoin", Address: "bc1abc"})
	require.NoError(t, err)

	assert.Error(t, s.DeleteWalletGroup(group.ID))
	assert.NoError(t, s.DeleteWalletGroupCascade(group.ID))

	_, err = s.GetWalletGroup(group.ID)
	assert.Error(t, err)
}

func TestDeleteAccountCascadeRemovesEverything(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "store.json"))
	acct, err := s.InsertAccount(&store.Account{Name: "alice"})
	require.NoError(t, err)
	group, err := s.InsertWalletGroup(&store.WalletGroup{AccountID: acct.ID, Name: "main"})
	require.NoError(t, err)

	gid := group.ID
	wallet, err := s.InsertWallet(&store.Wallet{WalletGroupID: &gid, Blockchain: "bitcoin", Address: "bc1abc"})
	require.NoError(t, err)

	ag, err := s.InsertAddressGroup(&store.AddressGroup{WalletGroupID: gid, WalletID: wallet.ID, Name: "recv"})
	require.NoError(t, err)

	agid := ag.ID
	_, err = s.InsertWallet(&store.Wallet{WalletGroupID: &gid, AddressGroupID: &agid, Blockchain: "bitcoin", Address: "bc1def"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccountCascade(acct.ID))

	assert.Empty(t, s.ListWalletGroups(acct.ID))
	_, err = s.GetAddressGroup(ag.ID)
	assert.Error(t, err)
	_, err = s.GetWalletByAddress("bc1def")
	assert.Error(t, err)
}

func TestInsertWalletRejectsDuplicateAddress(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "store.json"))

	_, err := s.InsertWallet(&store.Wallet{Blockchain: "bitcoin", Address: "bc1abc"})
	require.NoError(t, err)
	_, err = s.InsertWallet(&store.Wallet{Blockchain: "ethereum", Address: "bc1abc"})
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := store.New(path)
	_, err := s.InsertAccount(&store.Account{Name: "alice", Mnemonic: "abandon abandon"})
	require.NoError(t, err)
	require.NoError(t, s.Save())

	loaded, err := store.Load(path)
	require.NoError(t, err)

	acct, err := loaded.GetAccountByName("alice")
	require.NoError(t, err)
	assert.Equal(t, "abandon abandon", acct.Mnemonic)
}

func TestAdditionalDataMutators(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "store.json"))
	w, err := s.InsertWallet(&store.Wallet{Blockchain: "bitcoin", Address: "bc1abc"})
	require.NoError(t, err)

	require.NoError(t, s.SetAdditionalData(w.ID, "note", "imported"))
	got, err := s.GetWallet(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "imported", got.AdditionalData["note"])

	require.NoError(t, s.RemoveAdditionalData(w.ID, "note"))
	got, err = s.GetWallet(w.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.AdditionalData, "note")
}
