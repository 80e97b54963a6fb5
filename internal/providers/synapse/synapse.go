package synapse

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/logger"
)

const PROVIDER_NAME = domain.ProviderSynapse

// allowedChainIDs restricts the per-chain token fan-out to the networks with
// meaningful Synapse liquidity. The token endpoint is slow and unpaginated,
// so fetching every listed chain roughly triples the adapter's runtime for
// a handful of dust-sized token lists.
var allowedChainIDs = map[int64]bool{
	1:     true, // ethereum
	10:    true, // optimism
	56:    true, // bsc
	137:   true, // polygon
	8453:  true, // base
	42161: true, // arbitrum
	43114: true, // avalanche
}

// deniedChainKeys are the non-EVM entries Synapse mixes into its chain map
// under string keys instead of numeric chain IDs.
var deniedChainKeys = map[string]bool{
	"solana": true,
	"tron":   true,
}

type chainsResponse struct {
	Chains map[string]chainEntry `json:"chains"`
}

type chainEntry struct {
	Name     string `json:"name"`
	Currency struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"currency"`
}

type tokensResponse struct {
	Tokens []json.RawMessage `json:"tokens"`
}

type tokenEntry struct {
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Decimals *int    `json:"decimals"`
	LogoURI  *string `json:"logoURI"`
}

// Adapter fetches chains and per-chain token lists from the Synapse API
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Synapse adapter
func NewAdapter(httpClient adapter.HTTPClient, apiURL string) *Adapter {
	return &Adapter{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

func (a *Adapter) Name() domain.Provider {
	return PROVIDER_NAME
}

func (a *Adapter) Fetch(ctx context.Context) (*domain.ProviderResult, error) {
	var chainsResp chainsResponse
	if err := a.httpClient.Get(ctx, a.apiURL+"/chains", &chainsResp); err != nil {
		return nil, domain.NewProviderError(PROVIDER_NAME, err)
	}

	result := &domain.ProviderResult{}

	for key, c := range chainsResp.Chains {
		if deniedChainKeys[key] {
			continue
		}
		rawChainID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.WarnCtx(ctx, "skipping chain map key with non-numeric chain ID",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.String("key", key))
			continue
		}
		chainID := domain.NormalizeChainID(rawChainID)

		result.Chains = append(result.Chains, domain.Chain{
			ID:                     chainID,
			Name:                   orUnknown(c.Name),
			NativeCurrencyName:     orUnknown(c.Currency.Name),
			NativeCurrencySymbol:   orUnknown(c.Currency.Symbol),
			NativeCurrencyDecimals: c.Currency.Decimals,
			VMType:                 domain.VMTypeForChain(chainID),
		})

		if !allowedChainIDs[rawChainID] {
			continue
		}
		tokens, err := a.fetchChainTokens(ctx, rawChainID)
		if err != nil {
			logger.WarnCtx(ctx, "token list fetch failed, keeping chain with zero tokens",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.Int64("chain_id", rawChainID),
				zap.Error(err))
			continue
		}
		result.Tokens = append(result.Tokens, tokens...)
	}

	return result, nil
}

func (a *Adapter) fetchChainTokens(ctx context.Context, rawChainID int64) ([]domain.Token, error) {
	var tokensResp tokensResponse
	url := fmt.Sprintf("%s/tokens?chainId=%d", a.apiURL, rawChainID)
	if err := a.httpClient.Get(ctx, url, &tokensResp); err != nil {
		return nil, err
	}

	chainID := domain.NormalizeChainID(rawChainID)
	isEVM := domain.IsEVMChain(chainID)

	tokens := make([]domain.Token, 0, len(tokensResp.Tokens))
	for _, raw := range tokensResp.Tokens {
		var t tokenEntry
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to decode token on chain %d: %w", chainID, err)
		}
		if t.Address == "" || t.Symbol == "" {
			continue
		}

		address := domain.NormalizeNativeAddress(domain.NormalizeAddress(t.Address, isEVM))
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
