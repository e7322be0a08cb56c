package chain

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/keyforge-hd/keyforge/internal/slip10"
	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

// solanaCodec implements Codec for Solana: the address is the raw
// 32-byte ed25519 public key, Base58-encoded with no version byte and
// no checksum.
type solanaCodec struct{}

func (solanaCodec) Name() ID { return Solana }

func (c solanaCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveEd25519Wallet(Solana, mnemonic, passphrase, account, index, pathOverride, c.fromPubkey)
}

func (c solanaCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveEd25519FromPrivateKey(hexKey, c.fromPubkey)
}

func (solanaCodec) fromPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	return base58.Encode(pub), "", nil, nil, nil
}

func (solanaCodec) ValidateAddress(address string) bool {
	decoded := base58.Decode(address)
	return len(decoded) == 32
}

// addressEncoder renders an ed25519 public key into a chain's address
// format.
type addressEncoder func(pub []byte) (address, checksum string, additional, secondary map[string]string, err error)

// deriveEd25519Wallet is the shared mnemonic-to-WalletKeys pipeline for
// every SLIP-0010/ed25519 chain: walk the ed25519 HD tree, then hand
// the public key to a chain-specific address encoder.
func deriveEd25519Wallet(id ID, mnemonicPhrase, passphrase string, account, index uint32, pathOverride string, encode addressEncoder) (*WalletKeys, error) {
	path := pathOverride
	if path == "" {
		path = DefaultPath(id, account, index)
	}

	seed, err := seedFromMnemonic(mnemonicPhrase, passphrase)
	if err != nil {
		return nil, err
	}
	defer bip32zero(seed)

	node, err := slip10.DeriveForPath(path, seed)
	if err != nil {
		return nil, err
	}
	rawSeed := node.RawSeed()
	defer slip10.ZeroBytes(rawSeed)

	pub, _ := node.Keypair()

	address, checksum, additional, secondary, err := encode(pub)
	if err != nil {
		return nil, err
	}

	return &WalletKeys{
		PrivateKeyHex:      hex.EncodeToString(rawSeed),
		PublicKeyHex:       hex.EncodeToString(pub),
		Address:            address,
		ChecksumAddress:    checksum,
		DerivationPath:     path,
		AdditionalData:     additional,
		SecondaryAddresses: secondary,
	}, nil
}

// deriveEd25519FromPrivateKey mirrors deriveEd25519Wallet for the
// import-by-private-key entry point. hexKey is the raw 32-byte ed25519
// seed (SLIP-0010's exported private-key form), not the 64-byte
// expanded key.
func deriveEd25519FromPrivateKey(hexKey string, encode addressEncoder) (*WalletKeys, error) {
	seed, err := decodePrivateKeyHex(hexKey)
	if err != nil {
		return nil, err
	}
	if len(seed) != ed25519.SeedSize {
		return nil, kferrors.WithDetails(kferrors.ErrInvalidPrivateKey, map[string]string{"length": fmt.Sprintf("%d", len(seed))})
	}
	defer bip32zero(seed)

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	address, checksum, additional, secondary, err := encode(pub)
	if err != nil {
		return nil, err
	}

	return &WalletKeys{
		PrivateKeyHex:      hex.EncodeToString(seed),
		PublicKeyHex:       hex.EncodeToString(pub),
		Address:            address,
		ChecksumAddress:    checksum,
		DerivationPath:     "",
		AdditionalData:     additional,
		SecondaryAddresses: secondary,
	}, nil
}
