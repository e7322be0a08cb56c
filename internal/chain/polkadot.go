package chain

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

const ss58GenericPrefix = 0x00
const ss58ChecksumContext = "SS58PRE"

// polkadotCodec implements Codec for Polkadot using SS58 address format
// with the generic Substrate network prefix (0): prefix byte + pubkey +
// a 2-byte Blake2b-512 checksum, Base58-encoded.
type polkadotCodec struct{}

func (polkadotCodec) Name() ID { return Polkadot }

func (c polkadotCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveEd25519Wallet(Polkadot, mnemonic, passphrase, account, index, pathOverride, c.fromPubkey)
}

func (c polkadotCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveEd25519FromPrivateKey(hexKey, c.fromPubkey)
}

func (polkadotCodec) fromPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	return encodeSS58(ss58GenericPrefix, pub), "", nil, nil, nil
}

func (polkadotCodec) ValidateAddress(address string) bool {
	decoded := base58.Decode(address)
	if len(decoded) != 1+32+2 {
		return false
	}
	payload, want := decoded[:33], decoded[33:]
	got := ss58Checksum(payload)
	return got[0] == want[0] && got[1] == want[1]
}

func encodeSS58(prefix byte, pub []byte) string {
	payload := append([]byte{prefix}, pub...)
	checksum := ss58Checksum(payload)
	return base58.Encode(append(payload, checksum[:2]...))
}

func ss58Checksum(payload []byte) [64]byte {
	return blake2b.Sum512(append([]byte(ss58ChecksumContext), payload...))
}
