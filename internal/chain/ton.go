package chain

import (
	"encoding/base64"
)

const (
	tonBounceableTag = 0x11
	tonWorkchain     = 0x00
)

// tonCodec implements Codec for TON: tag || workchain || pubkey ||
// CRC16/XMODEM(tag..pubkey), raw-URL-Base64-encoded. keyforge treats the
// raw ed25519 public key as the 32-byte account hash, matching the
// simplified "pubkey-as-hash" approach taken when no wallet contract has
// been deployed yet.
type tonCodec struct{}

func (tonCodec) Name() ID { return TON }

func (c tonCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveEd25519Wallet(TON, mnemonic, passphrase, account, index, pathOverride, c.fromPubkey)
}

func (c tonCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveEd25519FromPrivateKey(hexKey, c.fromPubkey)
}

func (tonCodec) fromPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	buf := make([]byte, 0, 2+32+2)
	buf = append(buf, tonBounceableTag, tonWorkchain)
	buf = append(buf, pub...)
	crc := crc16XModem(buf)
	buf = append(buf, byte(crc>>8), byte(crc))

	return base64.URLEncoding.EncodeToString(buf), "", nil, nil, nil
}

func (tonCodec) ValidateAddress(address string) bool {
	decoded, err := base64.URLEncoding.DecodeString(address)
	if err != nil || len(decoded) != 36 {
		return false
	}
	body, want := decoded[:34], decoded[34:]
	got := crc16XModem(body)
	return want[0] == byte(got>>8) && want[1] == byte(got)
}
