package domain

import (
	"encoding/json"
	"fmt"
)

// VMType represents the virtual-machine family of a chain. It determines
// address case-sensitivity rules: EVM hex addresses are lowercased, non-EVM
// addresses (e.g. Solana base58) are case-preserved.
type VMType string

const (
	VMTypeEVM VMType = "evm"
	VMTypeSVM VMType = "svm"
)

// Provider identifies an upstream bridge provider.
type Provider string

const (
	ProviderLiFi     Provider = "lifi"
	ProviderSquid    Provider = "squid"
	ProviderSocket   Provider = "socket"
	ProviderStargate Provider = "stargate"
	ProviderWormhole Provider = "wormhole"
	ProviderAxelar   Provider = "axelar"
	ProviderCeler    Provider = "celer"
	ProviderHop      Provider = "hop"
	ProviderSynapse  Provider = "synapse"
	ProviderAcross   Provider = "across"
	ProviderButter   Provider = "butter"
	ProviderDeBridge Provider = "debridge"
)

// UnknownPlaceholder is stored in place of string metadata an upstream
// provider did not supply. The storage layer requires non-null values for
// these columns.
const UnknownPlaceholder = "Unknown"

// Chain represents a blockchain network as reported by a provider.
// The canonical numeric chain ID is the sole identity.
type Chain struct {
	ID                     int64
	Name                   string
	NativeCurrencyName     string
	NativeCurrencySymbol   string
	NativeCurrencyDecimals int
	VMType                 VMType
}

// Token is one provider's view of a fungible asset on one chain.
// Identity is (provider, chain, address); the same symbol may legitimately
// appear on many rows.
type Token struct {
	ChainID  int64
	Address  string
	Symbol   string
	Name     *string
	Decimals *int
	LogoURI  *string
	Tags     []TokenTag
	Raw      json.RawMessage
}

// ProviderResult is the normalized output of one adapter fetch.
type ProviderResult struct {
	Chains []Chain
	Tokens []Token
}

// ProviderError wraps an error with the provider it originated from so the
// orchestrator can attribute failures without parsing messages.
type ProviderError struct {
	Provider Provider
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err for the given provider. A nil err returns nil.
func NewProviderError(provider Provider, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}
