package chain

import (
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const cosmosHRP = "cosmos"

// cosmosCodec implements Codec for Cosmos Hub: the address is
// Bech32(hrp="cosmos", RIPEMD160(SHA256(compressed pubkey))), the same
// hash160 Bitcoin uses but with a Cosmos HRP instead of a version byte.
type cosmosCodec struct{}

func (cosmosCodec) Name() ID { return Cosmos }

func (c cosmosCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveSecp256k1Wallet(Cosmos, mnemonic, passphrase, account, index, pathOverride, c.fromCompressedPubkey)
}

func (c cosmosCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveSecp256k1FromPrivateKey(hexKey, c.fromCompressedPubkey)
}

func (cosmosCodec) fromCompressedPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	h160 := hash160(pub)
	converted, err := bech32.ConvertBits(h160, 8, 5, true)
	if err != nil {
		return "", "", nil, nil, err
	}
	addr, err := bech32.Encode(cosmosHRP, converted)
	if err != nil {
		return "", "", nil, nil, err
	}
	return addr, "", nil, nil, nil
}

func (cosmosCodec) ValidateAddress(address string) bool {
	hrp, data, err := bech32.Decode(address)
	if err != nil || hrp != cosmosHRP {
		return false
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	return err == nil && len(decoded) == 20
}
