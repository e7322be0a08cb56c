package chain

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/keyforge-hd/keyforge/internal/bip32"
)

const tronAddressVersion = 0x41

// tronCodec implements Codec for Tron: same secp256k1/Keccak256 pipeline
// as the EVM family, but the 20-byte hash is prefixed with the Tron
// version byte and Base58Check-encoded instead of hex/EIP-55.
type tronCodec struct{}

func (tronCodec) Name() ID { return Tron }

func (c tronCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveSecp256k1Wallet(Tron, mnemonic, passphrase, account, index, pathOverride, c.fromCompressedPubkey)
}

func (c tronCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveSecp256k1FromPrivateKey(hexKey, c.fromCompressedPubkey)
}

func (tronCodec) fromCompressedPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	uncompressed, err := bip32.DecompressPubKey(pub)
	if err != nil {
		return "", "", nil, nil, err
	}
	hash := ethcrypto.Keccak256(uncompressed[1:])
	return base58.CheckEncode(hash[12:], tronAddressVersion), "", nil, nil, nil
}

func (tronCodec) ValidateAddress(address string) bool {
	decoded, version, err := base58.CheckDecode(address)
	return err == nil && version == tronAddressVersion && len(decoded) == 20
}
