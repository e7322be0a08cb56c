package chain

import (
	"strings"

	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

// stubCodec backs the three chains spec §4.4.2 leaves unimplemented:
// XRP, Litecoin, and Cardano (Cardano has no non-hardened CIP-1852
// walker to derive through, so it is always stubbed rather than gated
// behind a flag). It refuses to derive — returning ErrNotImplemented
// rather than a guessed or partially-correct address — and validates
// only by prefix/length shape, per spec §4.4.4's failure-mode table.
type stubCodec struct {
	id            ID
	addressPrefix string
	addressLen    int
}

func (s *stubCodec) Name() ID { return s.id }

func (s *stubCodec) DeriveFromMnemonic(string, string, uint32, uint32, string) (*WalletKeys, error) {
	return nil, kferrors.WithDetails(kferrors.ErrNotImplemented, map[string]string{"chain": string(s.id)})
}

func (s *stubCodec) DeriveFromPrivateKey(string) (*WalletKeys, error) {
	return nil, kferrors.WithDetails(kferrors.ErrNotImplemented, map[string]string{"chain": string(s.id)})
}

func (s *stubCodec) ValidateAddress(address string) bool {
	return strings.HasPrefix(address, s.addressPrefix) && len(address) == s.addressLen
}
