package wormhole

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/logger"
)

const PROVIDER_NAME = domain.ProviderWormhole

// Wormhole identifies chains by its own registry numbering, unrelated to EVM
// chain IDs. wormholeChainIDs translates the IDs this pipeline cares about
// to canonical chain IDs; tokens on untranslated chains (Cosmos zones, Sui,
// Aptos, ...) are dropped.
var wormholeChainIDs = map[int64]int64{
	1:  domain.ChainIDSolana,
	2:  1,     // ethereum
	4:  56,    // bsc
	5:  137,   // polygon
	6:  43114, // avalanche
	10: 250,   // fantom
	13: 8217,  // klaytn
	14: 42220, // celo
	16: 1284,  // moonbeam
	23: 42161, // arbitrum
	24: 10,    // optimism
	30: 8453,  // base
}

type tokensResponse struct {
	Tokens []json.RawMessage `json:"tokens"`
}

type tokenEntry struct {
	WormholeChainID int64   `json:"wormholeChainId"`
	Address         string  `json:"address"`
	Symbol          string  `json:"symbol"`
	Name            *string `json:"name"`
	Decimals        *int    `json:"decimals"`
	LogoURI         *string `json:"logoUrl"`
}

// Adapter fetches the Wormhole token registry
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Wormhole adapter
func NewAdapter(httpClient adapter.HTTPClient, apiURL string) *Adapter {
	return &Adapter{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

func (a *Adapter) Name() domain.Provider {
	return PROVIDER_NAME
}

// Fetch retrieves the token registry. Wormhole has no chain metadata
// endpoint, so chains are derived from the tokens that survive translation
// and carry placeholder metadata for the enrichment pass to fill in.
func (a *Adapter) Fetch(ctx context.Context) (*domain.ProviderResult, error) {
	var tokensResp tokensResponse
	if err := a.httpClient.Get(ctx, a.apiURL+"/tokens", &tokensResp); err != nil {
		return nil, domain.NewProviderError(PROVIDER_NAME, err)
	}

	result := &domain.ProviderResult{}
	seenChains := make(map[int64]bool)

	for _, raw := range tokensResp.Tokens {
		var t tokenEntry
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, domain.NewProviderError(PROVIDER_NAME, fmt.Errorf("failed to decode token: %w", err))
		}
		chainID, ok := wormholeChainIDs[t.WormholeChainID]
		if !ok {
			logger.Debug("skipping token on untranslated wormhole chain",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.Int64("wormhole_chain_id", t.WormholeChainID),
				zap.String("symbol", t.Symbol))
			continue
		}
		if t.Address == "" || t.Symbol == "" {
			continue
		}

		isEVM := domain.IsEVMChain(chainID)
		if isEVM {
			if !domain.IsHexAddress(t.Address) {
				continue
			}
		} else if !domain.IsBase58Address(t.Address) {
			continue
		}

		if !seenChains[chainID] {
			seenChains[chainID] = true
			result.Chains = append(result.Chains, domain.Chain{
				ID:                   chainID,
				Name:                 domain.UnknownPlaceholder,
				NativeCurrencyName:   domain.UnknownPlaceholder,
				NativeCurrencySymbol: domain.UnknownPlaceholder,
				VMType:               domain.VMTypeForChain(chainID),
			})
		}

		address := domain.NormalizeNativeAddress(domain.NormalizeAddress(t.Address, isEVM))
		name := ""
		if t.Name != nil {
			name = *t.Name
		}

		result.Tokens = append(result.Tokens, domain.Token{
			ChainID:  chainID,
			Address:  address,
			Symbol:   t.Symbol,
			Name:     t.Name,
			Decimals: t.Decimals,
			LogoURI:  t.LogoURI,
			Tags:     domain.CategorizeToken(t.Symbol, name, address),
			Raw:      raw,
		})
	}

	return result, nil
}
