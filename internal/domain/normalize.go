package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

const (
	// ZeroAddress is the canonical native-token sentinel on EVM chains.
	ZeroAddress = "0x0000000000000000000000000000000000000000"
	// EeeSentinelAddress is the alternate native-token sentinel some token
	// lists use (popularized by early DEX aggregators).
	EeeSentinelAddress = "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
)

// ChainIDSolana is the canonical chain ID this system uses for Solana.
// Providers disagree on Solana's numeric ID, so every provider-specific
// variant is folded into this one before storage.
const ChainIDSolana int64 = 34268394551451

// chainIDAliases maps provider-specific non-EVM chain IDs to canonical IDs.
// Three providers ship three different IDs for Solana.
var chainIDAliases = map[int64]int64{
	792703809:        ChainIDSolana, // squid / axelar ecosystem
	7565164:          ChainIDSolana, // debridge
	1151111081099710: ChainIDSolana, // lifi
}

// nonEVMChains lists canonical chain IDs known not to be EVM-compatible.
// Anything absent from this table is assumed to be EVM. That default is a
// deliberate heuristic: provider metadata is too sparse to classify every
// chain, and the overwhelming majority of bridged chains are EVM. A future
// non-EVM chain missing from this table will be mis-classified until added.
var nonEVMChains = map[int64]VMType{
	ChainIDSolana: VMTypeSVM,
}

// NormalizeChainID folds known provider-specific chain IDs into their
// canonical ID. Unmapped IDs pass through unchanged.
func NormalizeChainID(chainID int64) int64 {
	if canonical, ok := chainIDAliases[chainID]; ok {
		return canonical
	}
	return chainID
}

// IsEVMChain reports whether the chain uses EVM address semantics.
// Defaults to true for unrecognized chains (see nonEVMChains).
func IsEVMChain(chainID int64) bool {
	_, nonEVM := nonEVMChains[NormalizeChainID(chainID)]
	return !nonEVM
}

// VMTypeForChain returns the VM type for a canonical chain ID.
func VMTypeForChain(chainID int64) VMType {
	if vm, ok := nonEVMChains[NormalizeChainID(chainID)]; ok {
		return vm
	}
	return VMTypeEVM
}

// NormalizeAddress trims surrounding whitespace and lowercases the address
// when the chain is EVM. Non-EVM addresses are case-sensitive (base58) and
// returned verbatim after trimming. Idempotent by construction.
func NormalizeAddress(address string, isEVM bool) string {
	address = strings.TrimSpace(address)
	if isEVM {
		return strings.ToLower(address)
	}
	return address
}

// IsNativeToken reports whether the address is one of the two EVM
// native-token sentinels. Comparison is case-insensitive.
func IsNativeToken(address string) bool {
	normalized := NormalizeAddress(address, true)
	return normalized == ZeroAddress || normalized == EeeSentinelAddress
}

// NormalizeNativeAddress canonicalizes any native-token sentinel to the
// zero address. Non-sentinel addresses pass through unchanged.
func NormalizeNativeAddress(address string) string {
	if IsNativeToken(address) {
		return ZeroAddress
	}
	return address
}

// IsHexAddress reports whether the address is a well-formed 20-byte EVM hex
// address. Used by adapters that must exclude non-EVM rows upstream datasets
// mix in.
func IsHexAddress(address string) bool {
	return common.IsHexAddress(strings.TrimSpace(address))
}

// IsBase58Address reports whether the address decodes as a 32-byte base58
// value, i.e. a plausible Solana account address.
func IsBase58Address(address string) bool {
	decoded, err := base58.Decode(strings.TrimSpace(address))
	if err != nil {
		return false
	}
	return len(decoded) == 32
}

// StripNullBytes removes embedded NUL characters. Postgres text columns
// reject raw NULs, and at least one provider ships them in token names.
func StripNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// CanonicalChainMetadata returns the authoritative Chain row for chains whose
// provider-supplied metadata is unreliable (non-EVM chains reported with EVM
// placeholders). The storage writer prefers these over adapter output.
func CanonicalChainMetadata(chainID int64) (Chain, bool) {
	chain, ok := canonicalChains[NormalizeChainID(chainID)]
	return chain, ok
}

var canonicalChains = map[int64]Chain{
	ChainIDSolana: {
		ID:                     ChainIDSolana,
		Name:                   "Solana",
		NativeCurrencyName:     "Solana",
		NativeCurrencySymbol:   "SOL",
		NativeCurrencyDecimals: 9,
		VMType:                 VMTypeSVM,
	},
}
