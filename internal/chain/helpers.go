package chain

import (
	"encoding/hex"
	"strings"

	"github.com/keyforge-hd/keyforge/internal/bip32"
	"github.com/keyforge-hd/keyforge/internal/bip39"
	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

// seedFromMnemonic validates and expands a mnemonic phrase into a BIP-39
// seed, the common first step of every mnemonic-based derivation.
func seedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if err := bip39.Validate(mnemonic); err != nil {
		return nil, err
	}
	return bip39.Seed(mnemonic, passphrase), nil
}

// decodePrivateKeyHex parses a hex-encoded private key, accepting an
// optional "0x" prefix.
func decodePrivateKeyHex(hexKey string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, kferrors.Wrap(kferrors.ErrInvalidPrivateKey, "decoding hex: %v", err)
	}
	return raw, nil
}

// bip32zero zeroes a raw seed or private key buffer after use.
func bip32zero(b []byte) {
	bip39.ZeroBytes(b)
}

// bip32zeroKey zeroes the private half of a derived BIP-32 key.
func bip32zeroKey(k *bip32.Key) {
	if k == nil {
		return
	}
	for i := range k.Private {
		k.Private[i] = 0
	}
}
