package domain

import (
	"regexp"
	"strings"
)

// TokenTag is a semantic category assigned to a token by heuristic matching.
// A token may carry several tags or none.
type TokenTag string

const (
	TagStablecoin    TokenTag = "stablecoin"
	TagWrapped       TokenTag = "wrapped"
	TagNative        TokenTag = "native"
	TagBridged       TokenTag = "bridged"
	TagGovernance    TokenTag = "governance"
	TagLiquidityPool TokenTag = "liquidity-pool"
	TagRebasing      TokenTag = "rebasing"
	TagYieldBearing  TokenTag = "yield-bearing"
)

// Symbol patterns are matched case-sensitively where the convention depends
// on casing (e.g. "stETH", "veCRV"); name patterns are matched against the
// lowercased name.
var (
	lpSymbolRe = regexp.MustCompile(`(?i)(-lp$|slp$|^uni-v2$|^bpt$|-bpt$|^clp-|^[0-9a-z]+crv$)`)
	lpNameRe   = regexp.MustCompile(`(?i)(liquidity pool|lp token|pool token)`)

	governanceSymbolRe = regexp.MustCompile(`^(ve|vl|sd)[A-Z0-9]`)
	governanceNameRe   = regexp.MustCompile(`(?i)(vote.?escrow|governance)`)

	wrappedSymbolRe = regexp.MustCompile(`(?i)^w[a-z]{3,4}$`)
	wrappedNameRe   = regexp.MustCompile(`(?i)\bwrapped\b`)

	bridgedSymbolRe = regexp.MustCompile(`(\.e$|\.so$|^any[A-Z]|^axl|^ce[A-Z]|^so[A-Z])`)
	bridgedNameRe   = regexp.MustCompile(`(?i)(bridged|axelar|wormhole)`)

	rebasingSymbolRe = regexp.MustCompile(`^(st|r)[A-Z]`)
	rebasingNameRe   = regexp.MustCompile(`(?i)(rebas|ampleforth|staked)`)

	yieldSymbolRe = regexp.MustCompile(`^(ib|ay|cy)[A-Z]`)
	yieldNameRe   = regexp.MustCompile(`(?i)(yield|interest.?bearing)`)
)

// stablePrefixes are well-known stable-asset symbols. Matching is by prefix
// on the uppercased symbol (so variants like USDC.e still qualify) or by
// substring on the uppercased name (so bridge-prefixed symbols like axlUSDC
// are caught via "Axelar Bridged USDC").
var stablePrefixes = []string{
	"USDC", "USDT", "DAI", "BUSD", "TUSD", "FRAX", "LUSD", "GUSD",
	"USDD", "USDP", "SUSD", "MIM", "MAI", "EURC", "EURT", "USDE", "FDUSD",
}

// CategorizeToken assigns semantic tags to a token based on its symbol, name
// and address. Each heuristic is evaluated independently; the result set is
// deduplicated and order-insensitive.
func CategorizeToken(symbol, name, address string) []TokenTag {
	var tags []TokenTag
	lowerName := strings.ToLower(name)
	upperName := strings.ToUpper(name)
	upperSymbol := strings.ToUpper(symbol)

	if lpSymbolRe.MatchString(symbol) || lpNameRe.MatchString(lowerName) {
		tags = append(tags, TagLiquidityPool)
	}
	if governanceSymbolRe.MatchString(symbol) || governanceNameRe.MatchString(lowerName) {
		tags = append(tags, TagGovernance)
	}
	if wrappedSymbolRe.MatchString(symbol) || wrappedNameRe.MatchString(lowerName) {
		tags = append(tags, TagWrapped)
	}
	if IsNativeToken(address) {
		tags = append(tags, TagNative)
	}
	for _, prefix := range stablePrefixes {
		if strings.HasPrefix(upperSymbol, prefix) || strings.Contains(upperName, prefix) {
			tags = append(tags, TagStablecoin)
			break
		}
	}
	if bridgedSymbolRe.MatchString(symbol) || bridgedNameRe.MatchString(lowerName) {
		tags = append(tags, TagBridged)
	}
	if rebasingSymbolRe.MatchString(symbol) || rebasingNameRe.MatchString(lowerName) {
		tags = append(tags, TagRebasing)
	}
	if yieldSymbolRe.MatchString(symbol) || yieldNameRe.MatchString(lowerName) {
		tags = append(tags, TagYieldBearing)
	}

	return tags
}
