package chain

import "fmt"

// curve identifies which HD-derivation layer (L1a/L1b) a chain uses.
type curve int

const (
	curveSecp256k1 curve = iota
	curveEd25519
)

// coinTypes is the BIP-44 coin type per chain, grounded on
// original_source/src/blockchain/mod.rs's get_coin_type table.
var coinTypes = map[ID]uint32{
	Bitcoin:    0,
	Ethereum:   60,
	Litecoin:   2,
	XRP:        144,
	Stellar:    148,
	Cosmos:     118,
	Cardano:    1815,
	Tron:       195,
	Cronos:     394,
	BinanceBNB: 714,
	Polygon:    966,
	Polkadot:   354,
	Sui:        784,
	Optimism:   60,
	Algorand:   283,
	Hedera:     3030,
	Solana:     501,
	IOTA:       4218,
	XDC:        550,
	TON:        607,
}

// curveOf reports which HD layer derives keys for a chain.
func curveOf(id ID) curve {
	switch id {
	case Solana, Stellar, Cardano, Hedera, Algorand, Polkadot, Sui, IOTA, TON:
		return curveEd25519
	default:
		return curveSecp256k1
	}
}

// DefaultPath returns the default derivation path for a chain at the
// given (account, addressIndex), per spec §4.4.1. Three chains override
// the generic shape; everything else follows "m/44'/coin'/account'/0/i"
// (secp256k1) or "m/44'/coin'/account'/0'/i'" (ed25519). Bitcoin is the
// one secp256k1 chain whose default address type (P2WPKH) is BIP-84
// rather than BIP-44, so its purpose field differs from the rest of the
// Bitcoin-family coin-type table. Cardano has no dedicated case: CIP-1852's
// real path shape (m/1852'/1815'/account'/role/index) has non-hardened
// role/index components that this package's ed25519 deriver cannot walk,
// so Cardano is always stubbed (see stub.go) and falls through to the
// generic all-hardened ed25519 shape here, which is display-only and
// never fed back into derivation.
func DefaultPath(id ID, account, addressIndex uint32) string {
	coin := coinTypes[id]

	switch id {
	case Bitcoin:
		return fmt.Sprintf("m/84'/%d'/%d'/0/%d", coin, account, addressIndex)
	case Stellar:
		return fmt.Sprintf("m/44'/%d'/%d'", coin, account)
	case Solana:
		return fmt.Sprintf("m/44'/%d'/%d'/0'", coin, account)
	case TON:
		return fmt.Sprintf("m/44'/%d'/%d'/%d'", coin, account, addressIndex)
	}

	if curveOf(id) == curveEd25519 {
		return fmt.Sprintf("m/44'/%d'/%d'/0'/%d'", coin, account, addressIndex)
	}
	return fmt.Sprintf("m/44'/%d'/%d'/0/%d", coin, account, addressIndex)
}

// explorerURLTemplates renders the block-explorer URL for a chain's
// address, per spec §6's "Explorer-URL convention" and grounded on
// original_source/src/blockchain/mod.rs's get_explorer_url table.
// For display only; never round-tripped.
var explorerURLTemplates = map[ID]string{
	Bitcoin:    "https://mempool.space/address/%s",
	Ethereum:   "https://etherscan.io/address/%s",
	Solana:     "https://explorer.solana.com/address/%s",
	Stellar:    "https://stellar.expert/explorer/public/account/%s",
	XRP:        "https://xrpscan.com/account/%s",
	Litecoin:   "https://litecoinspace.org/address/%s",
	Cardano:    "https://cardanoscan.io/address/%s",
	Tron:       "https://tronscan.org/#/address/%s",
	Polygon:    "https://polygonscan.com/address/%s",
	Optimism:   "https://optimistic.etherscan.io/address/%s",
	Cronos:     "https://cronoscan.com/address/%s",
	BinanceBNB: "https://bscscan.com/address/%s",
	Cosmos:     "https://www.mintscan.io/cosmos/account/%s",
	Algorand:   "https://allo.info/account/%s",
	Hedera:     "https://hashscan.io/mainnet/account/%s",
	Polkadot:   "https://polkadot.subscan.io/account/%s",
	Sui:        "https://suiscan.xyz/mainnet/account/%s",
	IOTA:       "https://explorer.iota.org/mainnet/addr/%s",
	TON:        "https://tonscan.org/address/%s",
	XDC:        "https://xdcscan.io/address/%s",
}

// ExplorerURL renders the explorer URL for address on chain id.
func ExplorerURL(id ID, address string) string {
	tmpl, ok := explorerURLTemplates[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf(tmpl, address)
}
