// Package bip32 implements BIP-32 hierarchical deterministic key
// derivation over secp256k1: master-key extraction from a BIP-39 seed
// and hardened/non-hardened child derivation along an arbitrary path.
package bip32

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/hdkeychain/v3"

	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

// HardenedOffset is the index at or above which a path component is
// hardened (BIP-32's 2^31).
const HardenedOffset = hdkeychain.HardenedKeyStart

// masterSeedKey is the HMAC-SHA512 key used to derive the master node,
// fixed by BIP-32 for secp256k1.
const masterSeedKey = "Bitcoin seed"

// Key holds the derived private scalar and its compressed public point.
type Key struct {
	Private [32]byte
	Public  [33]byte
}

// netParams satisfies hdkeychain.NetworkParams with Bitcoin-mainnet
// version bytes. keyforge never serializes an extended key to its base58
// xprv/xpub string form, so the concrete version bytes are immaterial —
// they exist only to satisfy hdkeychain's constructor.
type netParams struct{}

func (netParams) HDPrivKeyVersion() [4]byte { return [4]byte{0x04, 0x88, 0xad, 0xe4} }
func (netParams) HDPubKeyVersion() [4]byte  { return [4]byte{0x04, 0x88, 0xb2, 0x1e} }

// ParsePath splits a "m/44'/60'/0'/0/0" style path into its raw BIP-32
// indices, with the high bit set for hardened ' components.
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, kferrors.WithDetails(kferrors.ErrInvalidPath, map[string]string{"path": path})
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, p := range parts[1:] {
		hardened := strings.HasSuffix(p, "'")
		p = strings.TrimSuffix(p, "'")

		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, kferrors.WithDetails(kferrors.ErrInvalidPath, map[string]string{"path": path, "component": p})
		}
		if n >= HardenedOffset {
			return nil, kferrors.WithDetails(kferrors.ErrInvalidPath,
				map[string]string{"path": path, "reason": "component already in hardened range"})
		}

		idx := uint32(n)
		if hardened {
			idx += HardenedOffset
		}
		indices = append(indices, idx)
	}

	return indices, nil
}

// DeriveFromSeed walks path from the BIP-32 master key derived from seed
// and returns the resulting private scalar and compressed public key.
func DeriveFromSeed(seed []byte, path string) (*Key, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	master, err := hdkeychain.NewMaster(seed, netParams{})
	if err != nil {
		return nil, kferrors.Wrap(kferrors.ErrInvalidPath, "deriving master key: %v", err)
	}
	defer master.Zero()

	current := master
	for depth, idx := range indices {
		next, err := current.ChildBIP32Std(idx)
		if err != nil {
			return nil, kferrors.WithDetails(kferrors.ErrInvalidPath, map[string]string{
				"path":  path,
				"depth": fmt.Sprintf("%d", depth),
				"error": err.Error(),
			})
		}
		if current != master {
			current.Zero()
		}
		current = next
	}
	defer current.Zero()

	privKey, err := current.SerializedPrivKey()
	if err != nil {
		return nil, kferrors.Wrap(kferrors.ErrInvalidPath, "extracting private key: %v", err)
	}

	key := &Key{}
	copy(key.Private[:], privKey)
	copy(key.Public[:], current.SerializedPubKey())
	return key, nil
}

// PublicFromPrivate recovers the compressed secp256k1 public key for a
// raw 32-byte private scalar, used by the chain-codec layer's
// derive-from-private-key entry point.
func PublicFromPrivate(priv []byte) ([33]byte, error) {
	var out [33]byte
	if len(priv) != 32 {
		return out, kferrors.WithDetails(kferrors.ErrInvalidPrivateKey, map[string]string{"length": fmt.Sprintf("%d", len(priv))})
	}

	privKey := secp256k1.PrivKeyFromBytes(priv)
	defer privKey.Zero()

	copy(out[:], privKey.PubKey().SerializeCompressed())
	return out, nil
}

// DecompressPubKey expands a 33-byte compressed SEC1 point to its
// 65-byte uncompressed form (0x04 || X || Y), needed by chains (the
// Ethereum family) whose address derivation hashes the uncompressed
// point.
func DecompressPubKey(compressed []byte) ([]byte, error) {
	pub, err := secp256k1.ParsePubKey(compressed)
	if err != nil {
		return nil, kferrors.Wrap(kferrors.ErrInvalidPrivateKey, "parsing public key: %v", err)
	}
	return pub.SerializeUncompressed(), nil
}

// MasterSeedKey exposes the fixed HMAC key for documentation/tests; the
// actual derivation is entirely delegated to hdkeychain.NewMaster.
func MasterSeedKey() string { return masterSeedKey }
