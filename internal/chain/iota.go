package chain

import (
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const iotaHRP = "iota"
const iotaEd25519AddressType = 0x00

// iotaCodec implements Codec for IOTA's Stardust Bech32 address format:
// address type byte (0x00 = ed25519) followed by Blake2b-256(pubkey),
// Bech32-encoded with HRP "iota".
type iotaCodec struct{}

func (iotaCodec) Name() ID { return IOTA }

func (c iotaCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveEd25519Wallet(IOTA, mnemonic, passphrase, account, index, pathOverride, c.fromPubkey)
}

func (c iotaCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveEd25519FromPrivateKey(hexKey, c.fromPubkey)
}

func (iotaCodec) fromPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	sum := blake2b.Sum256(pub)
	payload := append([]byte{iotaEd25519AddressType}, sum[:]...)
	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", "", nil, nil, err
	}
	addr, err := bech32.Encode(iotaHRP, converted)
	if err != nil {
		return "", "", nil, nil, err
	}
	return addr, "", nil, nil, nil
}

func (iotaCodec) ValidateAddress(address string) bool {
	hrp, data, err := bech32.Decode(address)
	if err != nil || hrp != iotaHRP {
		return false
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	return err == nil && len(decoded) == 33
}
