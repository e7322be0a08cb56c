package slip10_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyforge-hd/keyforge/internal/bip39"
	"github.com/keyforge-hd/keyforge/internal/slip10"
)

const canonicalTestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestIsValidPath(t *testing.T) {
	assert.True(t, slip10.IsValidPath("m/44'/148'/0'"))
	assert.False(t, slip10.IsValidPath("m/44'/148'/0")) // non-hardened component
	assert.False(t, slip10.IsValidPath("44'/148'/0'"))
}

func TestDeriveForPathIsDeterministic(t *testing.T) {
	seed := bip39.Seed(canonicalTestMnemonic, "")

	n1, err := slip10.DeriveForPath("m/44'/148'/0'", seed)
	require.NoError(t, err)
	n2, err := slip10.DeriveForPath("m/44'/148'/0'", seed)
	require.NoError(t, err)

	assert.Equal(t, n1.RawSeed(), n2.RawSeed())
}

func TestDeriveForPathDiffersByAccount(t *testing.T) {
	seed := bip39.Seed(canonicalTestMnemonic, "")

	n0, err := slip10.DeriveForPath("m/44'/148'/0'", seed)
	require.NoError(t, err)
	n1, err := slip10.DeriveForPath("m/44'/148'/1'", seed)
	require.NoError(t, err)

	assert.NotEqual(t, n0.RawSeed(), n1.RawSeed())
}

func TestKeypairRoundTripsThroughRawSeed(t *testing.T) {
	seed := bip39.Seed(canonicalTestMnemonic, "")
	node, err := slip10.DeriveForPath("m/44'/501'/0'", seed)
	require.NoError(t, err)

	_, priv := node.Keypair()
	assert.Equal(t, node.RawSeed(), []byte(priv.Seed()))
}

func TestDeriveRejectsAlreadyHardenedIndex(t *testing.T) {
	master, err := slip10.NewMasterNode([]byte("0123456789012345678901234567890123456789012345678901234567890123"))
	require.NoError(t, err)
	_, err = master.Derive(slip10.HardenedOffset + 1)
	assert.Error(t, err)
}
