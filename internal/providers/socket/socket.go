package socket

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

const PROVIDER_NAME = domain.ProviderSocket

type chainsResponse struct {
	Success bool         `json:"success"`
	Result  []chainEntry `json:"result"`
}

type chainEntry struct {
	ChainID int64  `json:"chainId"`
	Name    string `json:"name"`
	Currency struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"currency"`
}

type tokensResponse struct {
	Success bool              `json:"success"`
	Result  []json.RawMessage `json:"result"`
}

type tokenEntry struct {
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Decimals *int    `json:"decimals"`
	Icon     *string `json:"icon"`
}

// Adapter fetches chains and per-chain token lists from the Socket API.
// Tokens are only available per chain, so the adapter fans out one request
// per supported chain after loading the chain list.
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Socket adapter
func NewAdapter(httpClient adapter.HTTPClient, apiURL string) *Adapter {
	return &Adapter{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

func (a *Adapter) Name() domain.Provider {
	return PROVIDER_NAME
}

// Fetch loads the chain list, then each chain's token list in turn. A failed
// token-list fetch does not fail the adapter: the chain is kept with zero
// tokens and the failure is logged, so one flaky chain endpoint cannot wipe
// the provider's whole dataset.
func (a *Adapter) Fetch(ctx context.Context) (*domain.ProviderResult, error) {
	var chainsResp chainsResponse
	if err := a.httpClient.Get(ctx, a.apiURL+"/supported/chains", &chainsResp); err != nil {
		return nil, domain.NewProviderError(PROVIDER_NAME, err)
	}
	if !chainsResp.Success {
		return nil, domain.NewProviderError(PROVIDER_NAME, fmt.Errorf("chain list request reported success=false"))
	}

	result := &domain.ProviderResult{}

	for _, c := range chainsResp.Result {
		chainID := domain.NormalizeChainID(c.ChainID)
		result.Chains = append(result.Chains, domain.Chain{
			ID:                     chainID,
			Name:                   orUnknown(c.Name),
			NativeCurrencyName:     orUnknown(c.Currency.Name),
			NativeCurrencySymbol:   orUnknown(c.Currency.Symbol),
			NativeCurrencyDecimals: c.Currency.Decimals,
			VMType:                 domain.VMTypeForChain(chainID),
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
	url := fmt.Sprintf("%s/token-lists/chain?chainId=%d&isShortList=false", a.apiURL, rawChainID)
	if err := a.httpClient.Get(ctx, url, &tokensResp); err != nil {
		return nil, err
	}
	if !tokensResp.Success {
		return nil, fmt.Errorf("token list request reported success=false")
	}

	chainID := domain.NormalizeChainID(rawChainID)
	isEVM := domain.IsEVMChain(chainID)

	tokens := make([]domain.Token, 0, len(tokensResp.Result))
	for _, raw := range tokensResp.Result {
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
			LogoURI:  t.Icon,
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
