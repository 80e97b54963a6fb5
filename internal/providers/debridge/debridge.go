package debridge

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

const PROVIDER_NAME = domain.ProviderDeBridge

// deBridge numbers chains with its own internal IDs where the network has no
// EVM chain ID; notably Solana is 7565164. Those IDs are folded into the
// canonical numbering during normalization.

type chainsResponse struct {
	Chains []chainEntry `json:"chains"`
}

type chainEntry struct {
	ChainID   int64  `json:"chainId"`
	ChainName string `json:"chainName"`
}

// tokensResponse mirrors GET /token-list: a map keyed by token address
type tokensResponse struct {
	Tokens map[string]json.RawMessage `json:"tokens"`
}

type tokenEntry struct {
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Decimals *int    `json:"decimals"`
	LogoURI  *string `json:"logoURI"`
}

// Adapter fetches supported chains and per-chain token lists from the
// deBridge DLN API
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new deBridge adapter
func NewAdapter(httpClient adapter.HTTPClient, apiURL string) *Adapter {
	return &Adapter{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

func (a *Adapter) Name() domain.Provider {
	return PROVIDER_NAME
}

// Fetch loads the supported-chain list, then each chain's token map in turn.
// A failed token fetch keeps the chain with zero tokens.
func (a *Adapter) Fetch(ctx context.Context) (*domain.ProviderResult, error) {
	var chainsResp chainsResponse
	if err := a.httpClient.Get(ctx, a.apiURL+"/supported-chains-info", &chainsResp); err != nil {
		return nil, domain.NewProviderError(PROVIDER_NAME, err)
	}

	result := &domain.ProviderResult{}

	for _, c := range chainsResp.Chains {
		chainID := domain.NormalizeChainID(c.ChainID)
		result.Chains = append(result.Chains, domain.Chain{
			ID:                   chainID,
			Name:                 orUnknown(c.ChainName),
			NativeCurrencyName:   domain.UnknownPlaceholder,
			NativeCurrencySymbol: domain.UnknownPlaceholder,
			VMType:               domain.VMTypeForChain(chainID),
		})

		tokens, err := a.fetchChainTokens(ctx, c.ChainID)
		if err != nil {
			logger.WarnCtx(ctx, "token list fetch failed, keeping chain with zero tokens",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.Int64("chain_id", c.ChainID),
				zap.Error(err))
			continue
		}
		result.Tokens = append(result.Tokens, tokens...)
	}

	return result, nil
}

func (a *Adapter) fetchChainTokens(ctx context.Context, rawChainID int64) ([]domain.Token, error) {
	var tokensResp tokensResponse
	url := fmt.Sprintf("%s/token-list?chainId=%d", a.apiURL, rawChainID)
	if err := a.httpClient.Get(ctx, url, &tokensResp); err != nil {
		return nil, err
	}

	chainID := domain.NormalizeChainID(rawChainID)
	isEVM := domain.IsEVMChain(chainID)

	tokens := make([]domain.Token, 0, len(tokensResp.Tokens))
	for rawAddress, raw := range tokensResp.Tokens {
		var t tokenEntry
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to decode token %s on chain %d: %w", rawAddress, chainID, err)
		}
		if rawAddress == "" || t.Symbol == "" {
			continue
		}

		address := domain.NormalizeNativeAddress(domain.NormalizeAddress(rawAddress, isEVM))
		name := ""
		if t.Name != nil {
			name = *t.Name
		}

		tokens = append(tokens, domain.Token{
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

	return tokens, nil
}

func orUnknown(s string) string {
	if s == "" {
		return domain.UnknownPlaceholder
	}
	return s
}
