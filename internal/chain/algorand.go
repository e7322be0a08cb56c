package chain

import (
	"crypto/sha512"
	"encoding/base32"
)

var algorandBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// algorandCodec implements Codec for Algorand: address is
// Base32(pubkey || SHA-512/256(pubkey)[28:32]), 58 characters, no
// version byte.
type algorandCodec struct{}

func (algorandCodec) Name() ID { return Algorand }

func (c algorandCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveEd25519Wallet(Algorand, mnemonic, passphrase, account, index, pathOverride, c.fromPubkey)
}

func (c algorandCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveEd25519FromPrivateKey(hexKey, c.fromPubkey)
}

func (algorandCodec) fromPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	sum := sha512.Sum512_256(pub)
	data := append(append([]byte{}, pub...), sum[28:]...)
	return algorandBase32.EncodeToString(data), "", nil, nil, nil
}

func (algorandCodec) ValidateAddress(address string) bool {
	if len(address) != 58 {
		return false
	}
	decoded, err := algorandBase32.DecodeString(address)
	if err != nil || len(decoded) != 36 {
		return false
	}
	sum := sha512.Sum512_256(decoded[:32])
	for i := 0; i < 4; i++ {
		if decoded[32+i] != sum[28+i] {
			return false
		}
	}
	return true
}
