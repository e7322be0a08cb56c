package chain

import (
	"encoding/hex"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/keyforge-hd/keyforge/internal/bip32"
)

// evmCodec implements Codec for every EVM-compatible chain: Ethereum,
// Polygon, Cronos, Optimism, BNB Smart Chain, and XDC. They share one
// address scheme (Keccak256(uncompressed pubkey)[12:], EIP-55 checksum
// casing) and differ only in BIP-44 coin type and, for XDC, the address
// prefix.
type evmCodec struct {
	id            ID
	coinType      uint32
	addressPrefix string // "0x" unless overridden (XDC uses "xdc")
}

// newEVMCodec constructs the shared EVM-family codec. addressPrefix, if
// empty, defaults to "0x".
func newEVMCodec(id ID, coinType uint32, addressPrefix string) Codec {
	if addressPrefix == "" {
		addressPrefix = "0x"
	}
	return &evmCodec{id: id, coinType: coinType, addressPrefix: addressPrefix}
}

func (c *evmCodec) Name() ID { return c.id }

func (c *evmCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveSecp256k1Wallet(c.id, mnemonic, passphrase, account, index, pathOverride, c.fromCompressedPubkey)
}

func (c *evmCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveSecp256k1FromPrivateKey(hexKey, c.fromCompressedPubkey)
}

func (c *evmCodec) fromCompressedPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	uncompressed, err := bip32.DecompressPubKey(pub)
	if err != nil {
		return "", "", nil, nil, err
	}

	// Keccak256 of the 64-byte point (X||Y, dropping the leading 0x04),
	// last 20 bytes is the address.
	hash := ethcrypto.Keccak256(uncompressed[1:])
	addrBytes := hash[12:]

	checksummed := ethcommon.BytesToAddress(addrBytes).Hex() // 0x + EIP-55
	out := checksummed
	if c.addressPrefix != "0x" {
		out = c.addressPrefix + checksummed[2:]
	}
	return out, checksummed, nil, nil, nil
}

func (c *evmCodec) ValidateAddress(address string) bool {
	body := address
	switch {
	case len(address) >= 2 && address[:2] == "0x":
		body = address[2:]
	case c.addressPrefix != "0x" && len(address) > len(c.addressPrefix) && address[:len(c.addressPrefix)] == c.addressPrefix:
		body = address[len(c.addressPrefix):]
	default:
		return false
	}
	if len(body) != 40 {
		return false
	}
	_, err := hex.DecodeString(body)
	return err == nil
}
