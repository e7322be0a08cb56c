package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for Bitcoin hash160; no replacement in the ecosystem

	"github.com/keyforge-hd/keyforge/internal/bip32"
	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

const (
	p2pkhVersion = 0x00
	p2shVersion  = 0x05
)

// bitcoinCodec implements Codec for Bitcoin: default P2WPKH Bech32
// ("bc1…"), with legacy P2PKH and P2SH-P2WPKH exposed as
// secondary_addresses, per spec §4.4.2.
type bitcoinCodec struct{}

func (bitcoinCodec) Name() ID { return Bitcoin }

func (c bitcoinCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveSecp256k1Wallet(Bitcoin, mnemonic, passphrase, account, index, pathOverride, c.fromCompressedPubkey)
}

func (c bitcoinCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveSecp256k1FromPrivateKey(hexKey, c.fromCompressedPubkey)
}

func (bitcoinCodec) fromCompressedPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	h160 := hash160(pub)

	segwit, err := encodeSegwitV0("bc", h160)
	if err != nil {
		return "", "", nil, nil, err
	}

	legacy := base58.CheckEncode(h160, p2pkhVersion)

	redeem := append([]byte{0x00, 0x14}, h160...)
	nestedHash := hash160(redeem)
	nested := base58.CheckEncode(nestedHash, p2shVersion)

	secondary = map[string]string{
		"p2pkh":       legacy,
		"p2sh-p2wpkh": nested,
	}
	return segwit, "", nil, secondary, nil
}

func (bitcoinCodec) ValidateAddress(address string) bool {
	if strings.HasPrefix(address, "bc1") {
		hrp, data, err := bech32.Decode(address)
		return err == nil && hrp == "bc" && len(data) > 0
	}
	if len(address) < 25 || len(address) > 35 {
		return false
	}
	decoded, version, err := base58.CheckDecode(address)
	if err != nil {
		return false
	}
	return (version == p2pkhVersion || version == p2shVersion) && len(decoded) == 20
}

// hash160 computes RIPEMD160(SHA256(data)), the digest Bitcoin-family
// chains use for public-key and script hashes.
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sha[:])
	return r.Sum(nil)
}

// encodeSegwitV0 encodes a witness-version-0 program (e.g. a 20-byte
// pubkey hash) as a Bech32 address with the given human-readable part.
func encodeSegwitV0(hrp string, program []byte) (string, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", kferrors.Wrap(kferrors.ErrInvalidAddress, "converting witness program: %v", err)
	}
	data := append([]byte{0x00}, converted...)
	addr, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", kferrors.Wrap(kferrors.ErrInvalidAddress, "encoding bech32 address: %v", err)
	}
	return addr, nil
}

// deriveSecp256k1Wallet is the shared mnemonic-to-WalletKeys pipeline for
// every secp256k1 chain: walk BIP-32, then hand the compressed pubkey to
// a chain-specific address encoder.
func deriveSecp256k1Wallet(
	id ID, mnemonicPhrase, passphrase string, account, index uint32, pathOverride string,
	encode func(pub []byte) (address, checksum string, additional, secondary map[string]string, err error),
) (*WalletKeys, error) {
	path := pathOverride
	if path == "" {
		path = DefaultPath(id, account, index)
	}

	seed, err := seedFromMnemonic(mnemonicPhrase, passphrase)
	if err != nil {
		return nil, err
	}
	defer bip32zero(seed)

	key, err := bip32.DeriveFromSeed(seed, path)
	if err != nil {
		return nil, err
	}
	defer bip32zeroKey(key)

	address, checksum, additional, secondary, err := encode(key.Public[:])
	if err != nil {
		return nil, err
	}

	return &WalletKeys{
		PrivateKeyHex:      hex.EncodeToString(key.Private[:]),
		PublicKeyHex:       hex.EncodeToString(key.Public[:]),
		Address:            address,
		ChecksumAddress:    checksum,
		DerivationPath:     path,
		AdditionalData:     additional,
		SecondaryAddresses: secondary,
	}, nil
}

// deriveSecp256k1FromPrivateKey mirrors deriveSecp256k1Wallet for the
// import-by-private-key entry point: no derivation path, just
// priv -> pub -> address.
func deriveSecp256k1FromPrivateKey(
	hexKey string,
	encode func(pub []byte) (address, checksum string, additional, secondary map[string]string, err error),
) (*WalletKeys, error) {
	priv, err := decodePrivateKeyHex(hexKey)
	if err != nil {
		return nil, err
	}
	defer bip32zero(priv)

	pub, err := bip32.PublicFromPrivate(priv)
	if err != nil {
		return nil, err
	}

	address, checksum, additional, secondary, err := encode(pub[:])
	if err != nil {
		return nil, err
	}

	return &WalletKeys{
		PrivateKeyHex:      hex.EncodeToString(priv),
		PublicKeyHex:       hex.EncodeToString(pub[:]),
		Address:            address,
		ChecksumAddress:    checksum,
		DerivationPath:     "",
		AdditionalData:     additional,
		SecondaryAddresses: secondary,
	}, nil
}
