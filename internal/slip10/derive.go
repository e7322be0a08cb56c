// Package slip10 implements SLIP-0010 hierarchical deterministic key
// derivation over ed25519: master-key extraction from a BIP-39 seed and
// all-hardened child derivation along an arbitrary path.
package slip10

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"regexp"
	"strconv"
	"strings"

	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

// HardenedOffset is SLIP-0010's first hardened index (2^31); every
// ed25519 derivation step is hardened, so every path component must be
// at or above this value.
const HardenedOffset = uint32(0x80000000)

// seedModifier is the HMAC-SHA512 key used to derive the master node,
// fixed by SLIP-0010 for ed25519.
const seedModifier = "ed25519 seed"

var pathRegex = regexp.MustCompile(`^m(/[0-9]+')*$`)

// Node is one step of an ed25519 HD derivation: a 32-byte raw seed
// ("private key", in the SLIP-0010 sense) and its chain code.
type Node struct {
	key       [32]byte
	chainCode [32]byte
}

// IsValidPath reports whether path is a well-formed all-hardened SLIP-0010
// path such as "m/44'/501'/0'".
func IsValidPath(path string) bool {
	return pathRegex.MatchString(path)
}

// NewMasterNode derives the SLIP-0010 master node from a BIP-39 seed.
func NewMasterNode(seed []byte) (*Node, error) {
	mac := hmac.New(sha512.New, []byte(seedModifier))
	mac.Write(seed)
	sum := mac.Sum(nil)

	n := &Node{}
	copy(n.key[:], sum[:32])
	copy(n.chainCode[:], sum[32:])
	return n, nil
}

// Derive steps to hardened child index i (i must be below HardenedOffset —
// Derive adds the offset itself and rejects an index that already has it).
func (n *Node) Derive(i uint32) (*Node, error) {
	if i >= HardenedOffset {
		return nil, kferrors.WithDetails(kferrors.ErrInvalidPath,
			map[string]string{"reason": "index already includes the hardened offset; pass the bare index"})
	}
	index := i + HardenedOffset

	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, n.key[:]...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, n.chainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)

	child := &Node{}
	copy(child.key[:], sum[:32])
	copy(child.chainCode[:], sum[32:])
	return child, nil
}

// DeriveForPath walks an all-hardened path such as "m/44'/501'/0'" from
// seed and returns the resulting node.
func DeriveForPath(path string, seed []byte) (*Node, error) {
	if !IsValidPath(path) {
		return nil, kferrors.WithDetails(kferrors.ErrInvalidPath,
			map[string]string{"path": path, "reason": "SLIP-0010 paths must be all-hardened (every component ends in ')"})
	}

	node, err := NewMasterNode(seed)
	if err != nil {
		return nil, err
	}

	if path == "m" {
		return node, nil
	}

	for _, component := range strings.Split(path, "/")[1:] {
		raw := strings.TrimSuffix(component, "'")
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, kferrors.WithDetails(kferrors.ErrInvalidPath, map[string]string{"path": path, "component": component})
		}

		node, err = node.Derive(uint32(n))
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

// Keypair derives the ed25519 key pair for this node. The private key is
// produced by the standard ed25519.NewKeyFromSeed(rawSeed) construction,
// so its Seed() reproduces RawSeed() exactly — the SLIP-0010 convention
// that makes import-by-private-key reproduce the same address.
func (n *Node) Keypair() (ed25519.PublicKey, ed25519.PrivateKey) {
	priv := ed25519.NewKeyFromSeed(n.key[:])
	return priv.Public().(ed25519.PublicKey), priv
}

// RawSeed returns the 32-byte raw seed for this node — the value
// exported as the "private key" per spec §4.3, not the SHA-512-clamped
// scalar ed25519 derives internally.
func (n *Node) RawSeed() []byte {
	out := make([]byte, 32)
	copy(out, n.key[:])
	return out
}

// PublicKeyWithPrefix returns 0x00 || pubkey, the SLIP-0010 convention
// for representing an ed25519 public key alongside secp256k1 ones in a
// single byte-string field.
func (n *Node) PublicKeyWithPrefix() []byte {
	pub, _ := n.Keypair()
	out := make([]byte, 0, 33)
	out = append(out, 0x00)
	out = append(out, pub...)
	return out
}

// ZeroBytes overwrites b with zeros in place.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
