package hop

import (
	"context"
	"encoding/json"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
)

const PROVIDER_NAME = domain.ProviderHop

// Hop publishes its supported networks and tokens as a static dataset inside
// its SDK rather than behind an API, so this adapter ships the dataset as
// code and performs no I/O. Fetch never fails.

type staticChain struct {
	ID                     int64
	Name                   string
	NativeCurrencyName     string
	NativeCurrencySymbol   string
	NativeCurrencyDecimals int
}

type staticToken struct {
	ChainID  int64  `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

var hopChains = []staticChain{
	{ID: 1, Name: "Ethereum", NativeCurrencyName: "Ether", NativeCurrencySymbol: "ETH", NativeCurrencyDecimals: 18},
	{ID: 10, Name: "Optimism", NativeCurrencyName: "Ether", NativeCurrencySymbol: "ETH", NativeCurrencyDecimals: 18},
	{ID: 100, Name: "Gnosis", NativeCurrencyName: "xDAI", NativeCurrencySymbol: "XDAI", NativeCurrencyDecimals: 18},
	{ID: 137, Name: "Polygon", NativeCurrencyName: "MATIC", NativeCurrencySymbol: "MATIC", NativeCurrencyDecimals: 18},
	{ID: 8453, Name: "Base", NativeCurrencyName: "Ether", NativeCurrencySymbol: "ETH", NativeCurrencyDecimals: 18},
	{ID: 42161, Name: "Arbitrum One", NativeCurrencyName: "Ether", NativeCurrencySymbol: "ETH", NativeCurrencyDecimals: 18},
}

var hopTokens = []staticToken{
	{ChainID: 1, Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
	{ChainID: 10, Address: "0x7f5c764cbc14f9669b88837ca1490cca17c31607", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
	{ChainID: 100, Address: "0xddafbb505ad214d7b80b1f830fccc89b60fb7a83", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
	{ChainID: 137, Address: "0x2791bca1f2de4661ed88a30c99a7a9449aa84174", Symbol: "USDC", Name: "USD Coin", Decimals: 6},
	{ChainID: 42161, Address: "0xff970a61a04b1ca14834a43f5de4533ebddb5cc8", Symbol: "USDC", Name: "USD Coin", Decimals: 6},

	{ChainID: 1, Address: "0xdac17f958d2ee523a2206206994597c13d831ec7", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
	{ChainID: 10, Address: "0x94b008aa00579c1307b0ef2c499ad98a8ce58e58", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
	{ChainID: 100, Address: "0x4ecaba5870353805a9f068101a40e0f32ed605c6", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
	{ChainID: 137, Address: "0xc2132d05d31c914a87c6611c10748aeb04b58e8f", Symbol: "USDT", Name: "Tether USD", Decimals: 6},
	{ChainID: 42161, Address: "0xfd086bc7cd5c481dcc9c85ebe478a1c0b69fcbb9", Symbol: "USDT", Name: "Tether USD", Decimals: 6},

	{ChainID: 1, Address: "0x6b175474e89094c44da98b954eedeac495271d0f", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
	{ChainID: 10, Address: "0xda10009cbd5d07dd0cecc66161fc93d7c9000da1", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
	{ChainID: 137, Address: "0x8f3cf7ad23cd3cadbd9735aff958023239c6a063", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},
	{ChainID: 42161, Address: "0xda10009cbd5d07dd0cecc66161fc93d7c9000da1", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18},

	{ChainID: 1, Address: domain.ZeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	{ChainID: 10, Address: domain.ZeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	{ChainID: 8453, Address: domain.ZeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},
	{ChainID: 42161, Address: domain.ZeroAddress, Symbol: "ETH", Name: "Ether", Decimals: 18},

	{ChainID: 1, Address: "0x7d1afa7b718fb893db30a3abc0cfc608aacfebb0", Symbol: "MATIC", Name: "Matic Token", Decimals: 18},
	{ChainID: 100, Address: "0x7122d7661c4564b7c6cd4878b06766489a6028a2", Symbol: "MATIC", Name: "Matic Token", Decimals: 18},
	{ChainID: 137, Address: domain.ZeroAddress, Symbol: "MATIC", Name: "Matic Token", Decimals: 18},

	{ChainID: 1, Address: "0xc5102fe9359fd9a28f877a67e36b0f050d81a3cc", Symbol: "HOP", Name: "Hop", Decimals: 18},
	{ChainID: 10, Address: "0xc5102fe9359fd9a28f877a67e36b0f050d81a3cc", Symbol: "HOP", Name: "Hop", Decimals: 18},
	{ChainID: 137, Address: "0xc5102fe9359fd9a28f877a67e36b0f050d81a3cc", Symbol: "HOP", Name: "Hop", Decimals: 18},
	{ChainID: 42161, Address: "0xc5102fe9359fd9a28f877a67e36b0f050d81a3cc", Symbol: "HOP", Name: "Hop", Decimals: 18},
}

// Adapter serves Hop's static network and token dataset
type Adapter struct{}

// NewAdapter creates a new Hop adapter
func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() domain.Provider {
	return PROVIDER_NAME
}

func (a *Adapter) Fetch(_ context.Context) (*domain.ProviderResult, error) {
	result := &domain.ProviderResult{
		Chains: make([]domain.Chain, 0, len(hopChains)),
		Tokens: make([]domain.Token, 0, len(hopTokens)),
	}

	for _, c := range hopChains {
		result.Chains = append(result.Chains, domain.Chain{
			ID:                     c.ID,
			Name:                   c.Name,
			NativeCurrencyName:     c.NativeCurrencyName,
			NativeCurrencySymbol:   c.NativeCurrencySymbol,
			NativeCurrencyDecimals: c.NativeCurrencyDecimals,
			VMType:                 domain.VMTypeEVM,
		})
	}

	for _, t := range hopTokens {
		t := t
		raw, err := json.Marshal(t)
		if err != nil {
			return nil, domain.NewProviderError(PROVIDER_NAME, err)
		}

		address := domain.NormalizeNativeAddress(domain.NormalizeAddress(t.Address, true))
		result.Tokens = append(result.Tokens, domain.Token{
			ChainID:  t.ChainID,
			Address:  address,
			Symbol:   t.Symbol,
			Name:     &t.Name,
			Decimals: &t.Decimals,
			Tags:     domain.CategorizeToken(t.Symbol, t.Name, address),
			Raw:      raw,
		})
	}

	return result, nil
}
