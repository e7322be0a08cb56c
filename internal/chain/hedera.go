package chain

import (
	"encoding/hex"
)

// hederaCodec implements Codec for Hedera. Key derivation is always
// real (standard ed25519/SLIP-0010), but the shard.realm.alias address
// format additionally depends on a network-assigned account number that
// keyforge cannot discover offline; rendering it is gated behind
// enableAlias per spec §9(c) rather than guessed, so a caller never gets
// a silently-wrong Hedera address.
type hederaCodec struct {
	enableAlias bool
}

func (hederaCodec) Name() ID { return Hedera }

func (c hederaCodec) DeriveFromMnemonic(mnemonic, passphrase string, account, index uint32, pathOverride string) (*WalletKeys, error) {
	return deriveEd25519Wallet(Hedera, mnemonic, passphrase, account, index, pathOverride, c.fromPubkey)
}

func (c hederaCodec) DeriveFromPrivateKey(hexKey string) (*WalletKeys, error) {
	return deriveEd25519FromPrivateKey(hexKey, c.fromPubkey)
}

func (c hederaCodec) fromPubkey(pub []byte) (address, checksum string, additional, secondary map[string]string, err error) {
	additional = map[string]string{"public_key_der_prefix": "302a300506032b6570032100"}
	if !c.enableAlias {
		return "", "", additional, nil, nil
	}
	// shard.realm.alias: shard and realm are always 0 for a freshly
	// derived (not yet account-created) key; alias is the hex public key.
	return "0.0." + hex.EncodeToString(pub), "", additional, nil, nil
}

func (hederaCodec) ValidateAddress(address string) bool {
	if address == "" {
		return false
	}
	parts := 0
	for _, r := range address {
		if r == '.' {
			parts++
		}
	}
	return parts == 2
}
