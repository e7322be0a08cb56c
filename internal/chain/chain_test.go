package chain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyforge-hd/keyforge/internal/chain"
)

const canonicalTestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestAllChainsAreValid(t *testing.T) {
	for _, id := range chain.AllChains() {
		assert.True(t, id.IsValid())
	}
	assert.False(t, chain.ID("dogecoin").IsValid())
}

func TestGetUnknownChainFails(t *testing.T) {
	_, err := chain.Get(chain.ID("dogecoin"), chain.Options{})
	assert.Error(t, err)
}

func TestBitcoinDefaultPathAndAddress(t *testing.T) {
	c, err := chain.Get(chain.Bitcoin, chain.Options{})
	require.NoError(t, err)

	keys, err := c.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)

	assert.Equal(t, "m/84'/0'/0'/0/0", keys.DerivationPath)
	assert.Regexp(t, `^bc1[a-z0-9]{39,59}$`, keys.Address)
	assert.True(t, c.ValidateAddress(keys.Address))
}

func TestEthereumDefaultPathAndChecksum(t *testing.T) {
	c, err := chain.Get(chain.Ethereum, chain.Options{})
	require.NoError(t, err)

	keys, err := c.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)

	assert.Equal(t, "m/44'/60'/0'/0/0", keys.DerivationPath)
	assert.Regexp(t, `^0x[0-9a-fA-F]{40}$`, keys.Address)
	assert.True(t, c.ValidateAddress(keys.Address))
}

func TestOptimismSharesEthereumKeyMaterial(t *testing.T) {
	eth, err := chain.Get(chain.Ethereum, chain.Options{})
	require.NoError(t, err)
	op, err := chain.Get(chain.Optimism, chain.Options{})
	require.NoError(t, err)

	ethKeys, err := eth.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)
	opKeys, err := op.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)

	assert.Equal(t, ethKeys.Address, opKeys.Address)
	assert.Equal(t, ethKeys.PublicKeyHex, opKeys.PublicKeyHex)
}

func TestSolanaDefaultPathAndAddress(t *testing.T) {
	c, err := chain.Get(chain.Solana, chain.Options{})
	require.NoError(t, err)

	keys, err := c.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)

	assert.Equal(t, "m/44'/501'/0'/0'", keys.DerivationPath)
	assert.True(t, c.ValidateAddress(keys.Address))
}

func TestStellarExpectedAddresses(t *testing.T) {
	c, err := chain.Get(chain.Stellar, chain.Options{})
	require.NoError(t, err)

	cases := []struct {
		path    string
		account uint32
		address string
	}{
		{"m/44'/148'/0'", 0, "GB3JDWCQJCWMJ3IILWIGDTQJJC5567PGVEVXSCVPEQOTDN64VJBDQBYX"},
		{"m/44'/148'/1'", 1, "GDVSYYTUAJ3ACHTPQNSTQBDQ4LDHQCMNY4FCEQH5TJUMSSLWQSTG42MV"},
		{"m/44'/148'/2'", 2, "GBFPWBTN4AXHPWPTQVQBP4KRZ2YVYYOGRMV2PEYL2OBPPJDP7LECEVHR"},
		{"m/44'/148'/3'", 3, "GCCCOWAKYVFY5M6SYHOW33TSNC7Z5IBRUEU2XQVVT34CIZU7CXZ4OQ4O"},
	}

	for _, tc := range cases {
		keys, err := c.DeriveFromMnemonic(canonicalTestMnemonic, "", tc.account, 0, "")
		require.NoError(t, err)
		assert.Equal(t, tc.address, keys.Address, "path %s", tc.path)
		assert.True(t, c.ValidateAddress(keys.Address))
	}
}

func TestCosmosDefaultPathAndAddress(t *testing.T) {
	c, err := chain.Get(chain.Cosmos, chain.Options{})
	require.NoError(t, err)

	keys, err := c.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)

	assert.Equal(t, "m/44'/118'/0'/0/0", keys.DerivationPath)
	assert.Regexp(t, `^cosmos1[a-z0-9]{38}$`, keys.Address)
	assert.True(t, c.ValidateAddress(keys.Address))
}

func TestEthereumLiteralPrivateKeyVector(t *testing.T) {
	c, err := chain.Get(chain.Ethereum, chain.Options{})
	require.NoError(t, err)

	privKeyHex := "0000000000000000000000000000000000000000000000000000000000000001" // private key 1
	keys, err := c.DeriveFromPrivateKey(privKeyHex)
	require.NoError(t, err)

	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", keys.Address)
}

func TestValidateAddressRejectsCrossChainAddresses(t *testing.T) {
	btc, err := chain.Get(chain.Bitcoin, chain.Options{})
	require.NoError(t, err)
	eth, err := chain.Get(chain.Ethereum, chain.Options{})
	require.NoError(t, err)

	ethKeys, err := eth.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)

	assert.False(t, btc.ValidateAddress(ethKeys.Address))
}

func TestCardanoFlagHasNoEffect(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		c, err := chain.Get(chain.Cardano, chain.Options{EnableCardano: enabled})
		require.NoError(t, err)

		_, err = c.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
		assert.Error(t, err)

		_, err = c.DeriveFromPrivateKey("01")
		assert.Error(t, err)
	}
}

func TestCardanoValidateAddressIsShapeOnly(t *testing.T) {
	c, err := chain.Get(chain.Cardano, chain.Options{})
	require.NoError(t, err)

	assert.True(t, c.ValidateAddress("addr1"+strings.Repeat("q", 98)))
	assert.False(t, c.ValidateAddress("bc1qsomethingelse"))
}

func TestHederaAliasGatedByFlag(t *testing.T) {
	off, err := chain.Get(chain.Hedera, chain.Options{EnableHederaAlias: false})
	require.NoError(t, err)
	on, err := chain.Get(chain.Hedera, chain.Options{EnableHederaAlias: true})
	require.NoError(t, err)

	keysOff, err := off.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)
	assert.Empty(t, keysOff.Address)
	assert.NotEmpty(t, keysOff.PublicKeyHex)

	keysOn, err := on.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	require.NoError(t, err)
	assert.NotEmpty(t, keysOn.Address)
}

func TestXRPIsStubbed(t *testing.T) {
	c, err := chain.Get(chain.XRP, chain.Options{})
	require.NoError(t, err)
	_, err = c.DeriveFromMnemonic(canonicalTestMnemonic, "", 0, 0, "")
	assert.Error(t, err)
}

func TestMaxHierarchyDepth(t *testing.T) {
	assert.Equal(t, 3, chain.Stellar.MaxHierarchyDepth())
	assert.Equal(t, 4, chain.Solana.MaxHierarchyDepth())
	assert.Equal(t, 5, chain.Bitcoin.MaxHierarchyDepth())
}

func TestExplorerURL(t *testing.T) {
	assert.Equal(t, "https://mempool.space/address/abc", chain.ExplorerURL(chain.Bitcoin, "abc"))
	assert.Empty(t, chain.ExplorerURL(chain.ID("nope"), "abc"))
}
