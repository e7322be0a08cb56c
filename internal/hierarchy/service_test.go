package hierarchy_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyforge-hd/keyforge/internal/chain"
	"github.com/keyforge-hd/keyforge/internal/hierarchy"
	"github.com/keyforge-hd/keyforge/internal/store"
)

const canonicalMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
const otherMnemonic = "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong"

func newService(t *testing.T) *hierarchy.Service {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "store.json"))
	return hierarchy.New(st, chain.Options{})
}

// E1: create an account, a wallet group, and add three chains; each
// chain deep enough for AddressGroups should receive a default one.
func TestAddBlockchainsCreatesWalletsAndDefaultGroups(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)
	_, err = svc.CreateWalletGroup("main", "personal", "")
	require.NoError(t, err)

	added, err := svc.AddBlockchains("main", "personal", []chain.ID{chain.Bitcoin, chain.Ethereum, chain.Solana})
	require.NoError(t, err)
	require.Len(t, added, 3)

	for _, w := range added {
		assert.NotEmpty(t, w.Address)
		groups := svc.ListAddressGroups(w.ID)
		require.Len(t, groups, 1)
		assert.Equal(t, "default", groups[0].Name)
	}
}

// E2: subwallets added without an explicit index auto-increment
// starting at 1.
func TestAddSubwalletAutoIncrementsIndex(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)
	_, err = svc.CreateWalletGroup("main", "personal", "")
	require.NoError(t, err)

	added, err := svc.AddBlockchains("main", "personal", []chain.ID{chain.Bitcoin})
	require.NoError(t, err)
	base := added[0]
	groups := svc.ListAddressGroups(base.ID)
	require.Len(t, groups, 1)

	var paths []string
	for i := 0; i < 3; i++ {
		sw, err := svc.AddSubwallet(groups[0].ID, "", nil)
		require.NoError(t, err)
		paths = append(paths, sw.DerivationPath)
	}

	assert.Equal(t, []string{
		"m/84'/0'/0'/0/1",
		"m/84'/0'/0'/0/2",
		"m/84'/0'/0'/0/3",
	}, paths)
}

// E3: removal requires the mnemonic to prove ownership.
func TestRemoveAccountRequiresMatchingMnemonic(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)

	err = svc.RemoveAccount("main", otherMnemonic, "")
	assert.Error(t, err)

	err = svc.RemoveAccount("main", canonicalMnemonic, "")
	assert.NoError(t, err)

	_, err = svc.GetAccount("main")
	assert.Error(t, err)
}

// E4: a standalone wallet imported from a literal private key vector.
func TestImportStandaloneWalletLiteralVector(t *testing.T) {
	svc := newService(t)

	privKeyHex := "0000000000000000000000000000000000000000000000000000000000000001"
	w, err := svc.ImportStandaloneWallet(privKeyHex, chain.Ethereum, "cold", "")
	require.NoError(t, err)

	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", w.Address)
	assert.Nil(t, w.WalletGroupID)
	assert.Nil(t, w.AddressGroupID)

	_, err = svc.ImportStandaloneWallet(privKeyHex, chain.Ethereum, "cold", "")
	assert.Error(t, err, "duplicate label and address must be rejected")
}

// E5: cross-chain addresses fail validation.
func TestValidateAddressAcrossChains(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)
	_, err = svc.CreateWalletGroup("main", "personal", "")
	require.NoError(t, err)

	btcWallet, err := svc.AddWallet("main", "personal", chain.Bitcoin, "", nil, nil, "")
	require.NoError(t, err)

	btcCodec, err := chain.Get(chain.Bitcoin, chain.Options{})
	require.NoError(t, err)
	ethCodec, err := chain.Get(chain.Ethereum, chain.Options{})
	require.NoError(t, err)

	assert.True(t, btcCodec.ValidateAddress(btcWallet.Address))

	ethWallet, err := svc.AddWallet("main", "personal", chain.Ethereum, "", nil, nil, "")
	require.NoError(t, err)
	assert.True(t, ethCodec.ValidateAddress(ethWallet.Address))
	assert.False(t, btcCodec.ValidateAddress(ethWallet.Address))
}

// E6: adding a chain already present in the group is a no-op.
func TestAddBlockchainsSkipsExistingChain(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)
	_, err = svc.CreateWalletGroup("main", "personal", "")
	require.NoError(t, err)

	first, err := svc.AddBlockchains("main", "personal", []chain.ID{chain.Bitcoin})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.AddBlockchains("main", "personal", []chain.ID{chain.Bitcoin, chain.Ethereum})
	require.NoError(t, err)
	require.Len(t, second, 1, "bitcoin already present, only ethereum should be added")
	assert.Equal(t, chain.Ethereum.String(), second[0].Blockchain)

	wallets := svc.ListWallets(mustGroupID(t, svc))
	assert.Len(t, wallets, 2)
}

func mustGroupID(t *testing.T, svc *hierarchy.Service) int64 {
	t.Helper()
	g, err := svc.GetWalletGroup("main", "personal")
	require.NoError(t, err)
	return g.ID
}

func TestCreateWalletGroupRejectsDuplicateName(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)
	_, err = svc.CreateWalletGroup("main", "personal", "")
	require.NoError(t, err)

	_, err = svc.CreateWalletGroup("main", "personal", "")
	assert.Error(t, err)
}

func TestCreateAddressGroupRejectsShallowChain(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)
	_, err = svc.CreateWalletGroup("main", "personal", "")
	require.NoError(t, err)

	w, err := svc.AddWallet("main", "personal", chain.Stellar, "", nil, nil, "")
	require.NoError(t, err)

	_, err = svc.CreateAddressGroup(w.ID, "recv")
	assert.Error(t, err)
}

func TestRemoveWalletGroupRequiresEmpty(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)
	group, err := svc.CreateWalletGroup("main", "personal", "")
	require.NoError(t, err)

	_, err = svc.AddWallet("main", "personal", chain.Bitcoin, "", nil, nil, "")
	require.NoError(t, err)

	assert.Error(t, svc.RemoveWalletGroup(group.ID))
}

func TestRemoveStandaloneWalletRequiresMatchingKey(t *testing.T) {
	svc := newService(t)
	privKeyHex := "0202020202020202020202020202020202020202020202020202020202020202"[:64]
	w, err := svc.ImportStandaloneWallet(privKeyHex, chain.Ethereum, "cold", "")
	require.NoError(t, err)

	assert.Error(t, svc.RemoveStandaloneWallet(w.ID, "00"))
	assert.NoError(t, svc.RemoveStandaloneWallet(w.ID, privKeyHex))
}

func TestAdditionalDataPassthrough(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateAccount("main", canonicalMnemonic, "")
	require.NoError(t, err)
	_, err = svc.CreateWalletGroup("main", "personal", "")
	require.NoError(t, err)
	w, err := svc.AddWallet("main", "personal", chain.Bitcoin, "savings", nil, nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.SetLabel(w.ID, "renamed"))
	require.NoError(t, svc.SetAdditionalData(w.ID, "exchange", "kraken"))

	got, err := svc.GetWallet(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Label)
	assert.Equal(t, "kraken", got.AdditionalData["exchange"])
}
