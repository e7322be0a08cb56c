package chain

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const suiEd25519Flag = 0x00

// suiCodec implements Codec for Sui: address is
// "0x" + hex(Blake2b-256(flag || pubkey)), where flag=0x00 marks an
// ed25519 signature scheme.
type suiCodec struct{}

func (suiCodec) Name() ID { return Sui }

func (c suiCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveEd25519Wallet(Sui, mnemonic, passphrase, account, index, pathOverride, c.fromPubkey)
}

func (c suiCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveEd25519FromPrivateKey(hexKey, c.fromPubkey)
}

func (suiCodec) fromPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	data := append([]byte{suiEd25519Flag}, pub...)
	sum := blake2b.Sum256(data)
	return "0x" + hex.EncodeToString(sum[:]), "", nil, nil, nil
}

func (suiCodec) ValidateAddress(address string) bool {
	if len(address) != 66 || address[:2] != "0x" {
		return false
	}
	_, err := hex.DecodeString(address[2:])
	return err == nil
}
