package bip32_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyforge-hd/keyforge/internal/bip32"
	"github.com/keyforge-hd/keyforge/internal/bip39"
)

const canonicalTestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestParsePath(t *testing.T) {
	indices, err := bip32.ParsePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	require.Len(t, indices, 5)
	assert.Equal(t, bip32.HardenedOffset+44, indices[0])
	assert.Equal(t, bip32.HardenedOffset+60, indices[1])
	assert.Equal(t, uint32(0), indices[3])
}

func TestParsePathRejectsMalformed(t *testing.T) {
	_, err := bip32.ParsePath("44'/60'/0'/0/0")
	assert.Error(t, err)

	_, err = bip32.ParsePath("m/abc/0")
	assert.Error(t, err)
}

func TestDeriveFromSeedIsDeterministic(t *testing.T) {
	seed := bip39.Seed(canonicalTestMnemonic, "")

	k1, err := bip32.DeriveFromSeed(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	k2, err := bip32.DeriveFromSeed(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)

	assert.Equal(t, k1.Private, k2.Private)
	assert.Equal(t, k1.Public, k2.Public)
	assert.Contains(t, []byte{0x02, 0x03}, k1.Public[0])
}

func TestDeriveFromSeedDiffersByPath(t *testing.T) {
	seed := bip39.Seed(canonicalTestMnemonic, "")

	k1, err := bip32.DeriveFromSeed(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	k2, err := bip32.DeriveFromSeed(seed, "m/44'/60'/0'/0/1")
	require.NoError(t, err)

	assert.NotEqual(t, k1.Private, k2.Private)
}

func TestPublicFromPrivateMatchesDerivation(t *testing.T) {
	seed := bip39.Seed(canonicalTestMnemonic, "")
	k, err := bip32.DeriveFromSeed(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)

	pub, err := bip32.PublicFromPrivate(k.Private[:])
	require.NoError(t, err)
	assert.Equal(t, k.Public, pub)
}

func TestDecompressPubKey(t *testing.T) {
	seed := bip39.Seed(canonicalTestMnemonic, "")
	k, err := bip32.DeriveFromSeed(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)

	uncompressed, err := bip32.DecompressPubKey(k.Public[:])
	require.NoError(t, err)
	assert.Len(t, uncompressed, 65)
	assert.Equal(t, byte(0x04), uncompressed[0])
}
