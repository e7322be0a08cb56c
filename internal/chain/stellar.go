package chain

import (
	"encoding/base32"
)

// stellarVersionByteAccountID is StrKey's version byte for an ed25519
// public key ("G..." accounts), 6<<3.
const stellarVersionByteAccountID = 6 << 3

var stellarBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// stellarCodec implements Codec for Stellar. Stellar has only two
// hierarchy levels below Account (spec §3's MaxHierarchyDepth=3): the
// default path is "m/44'/148'/account'" with no address-index
// component, so a Stellar WalletGroup holds base wallets only and has no
// AddressGroups or Subwallets.
type stellarCodec struct{}

func (stellarCodec) Name() ID { return Stellar }

func (c stellarCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveEd25519Wallet(Stellar, mnemonic, passphrase, account, index, pathOverride, c.fromPubkey)
}

func (c stellarCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveEd25519FromPrivateKey(hexKey, c.fromPubkey)
}

func (stellarCodec) fromPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	return encodeStrKey(stellarVersionByteAccountID, pub), "", nil, nil, nil
}

func (stellarCodec) ValidateAddress(address string) bool {
	if len(address) != 56 || address[0] != 'G' {
		return false
	}
	payload, version, ok := decodeStrKey(address)
	return ok && version == stellarVersionByteAccountID && len(payload) == 32
}

// encodeStrKey implements Stellar's StrKey address format: version byte
// + payload, CRC16/XMODEM checksum (little-endian) over that, all
// Base32-encoded without padding.
func encodeStrKey(version byte, payload []byte) string {
	data := make([]byte, 0, 1+len(payload)+2)
	data = append(data, version)
	data = append(data, payload...)

	crc := crc16XModem(data)
	data = append(data, byte(crc), byte(crc>>8))

	return stellarBase32.EncodeToString(data)
}

// decodeStrKey reverses encodeStrKey, reporting the version byte and
// payload if the checksum verifies.
func decodeStrKey(s string) (payload []byte, version byte, ok bool) {
	decoded, err := stellarBase32.DecodeString(s)
	if err != nil || len(decoded) < 3 {
		return nil, 0, false
	}

	body, want := decoded[:len(decoded)-2], decoded[len(decoded)-2:]
	got := crc16XModem(body)
	if byte(got) != want[0] || byte(got>>8) != want[1] {
		return nil, 0, false
	}

	return body[1:], body[0], true
}
