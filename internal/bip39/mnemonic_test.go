package bip39_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyforge-hd/keyforge/internal/bip39"
)

const canonicalTestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGenerateProducesValidMnemonic(t *testing.T) {
	for _, wc := range []int{12, 15, 18, 21, 24} {
		m, err := bip39.Generate(wc)
		require.NoError(t, err)
		require.NoError(t, bip39.Validate(m))
	}
}

func TestGenerateRejectsBadWordCount(t *testing.T) {
	_, err := bip39.Generate(13)
	assert.Error(t, err)
}

func TestValidateCanonicalMnemonic(t *testing.T) {
	assert.NoError(t, bip39.Validate(canonicalTestMnemonic))
}

func TestValidateRejectsBadChecksum(t *testing.T) {
	bad := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"
	assert.Error(t, bip39.Validate(bad))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	messy := "1. Abandon\n2) ABANDON,  abandon\n- about"
	once := bip39.Normalize(messy)
	twice := bip39.Normalize(once)
	assert.Equal(t, once, twice)
}

func TestSeedIsDeterministicAndSized(t *testing.T) {
	seed := bip39.Seed(canonicalTestMnemonic, "")
	assert.Len(t, seed, 64)
	assert.Equal(t, hex.EncodeToString(seed), hex.EncodeToString(bip39.Seed(canonicalTestMnemonic, "")))

	withPass := bip39.Seed(canonicalTestMnemonic, "TREZOR")
	assert.NotEqual(t, seed, withPass)
}

func TestDetectTyposSuggestsClosestWord(t *testing.T) {
	typos := bip39.DetectTypos("abandon abadon about")
	require.Len(t, typos, 1)
	assert.Equal(t, "abandon", typos[0].Suggestion)
}
