package lifi

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

const PROVIDER_NAME = domain.ProviderLiFi

// chainsResponse mirrors GET /chains
type chainsResponse struct {
	Chains []chainEntry `json:"chains"`
}

type chainEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ChainType string `json:"chainType"`
	NativeToken struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"nativeToken"`
}

// tokensResponse mirrors GET /tokens. The token map is keyed by decimal
// chain ID; entries are kept raw so the original payload survives storage.
type tokensResponse struct {
	Tokens map[string][]json.RawMessage `json:"tokens"`
}

type tokenEntry struct {
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Decimals *int    `json:"decimals"`
	LogoURI  *string `json:"logoURI"`
}

// Adapter fetches chains and tokens from the LI.FI aggregation API
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new LI.FI adapter
func NewAdapter(httpClient adapter.HTTPClient, apiURL string) *Adapter {
	return &Adapter{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

func (a *Adapter) Name() domain.Provider {
	return PROVIDER_NAME
}

// Fetch retrieves the chain and token catalogs. The two endpoints are
// independent and fetched concurrently; either failure fails the adapter.
func (a *Adapter) Fetch(ctx context.Context) (*domain.ProviderResult, error) {
	var (
		chainsResp chainsResponse
		tokensResp tokensResponse
	)

	errCh := make(chan error, 2)
	go func() {
		errCh <- a.httpClient.Get(ctx, a.apiURL+"/chains", &chainsResp)
	}()
	go func() {
		errCh <- a.httpClient.Get(ctx, a.apiURL+"/tokens", &tokensResp)
	}()
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			return nil, domain.NewProviderError(PROVIDER_NAME, err)
		}
	}

	result := &domain.ProviderResult{}

	for _, c := range chainsResp.Chains {
		chainID := domain.NormalizeChainID(c.ID)
		vm := domain.VMTypeForChain(chainID)
		switch strings.ToUpper(c.ChainType) {
		case "EVM":
			vm = domain.VMTypeEVM
		case "SVM":
			vm = domain.VMTypeSVM
		}

		result.Chains = append(result.Chains, domain.Chain{
			ID:                     chainID,
			Name:                   orUnknown(c.Name),
			NativeCurrencyName:     orUnknown(c.NativeToken.Name),
			NativeCurrencySymbol:   orUnknown(c.NativeToken.Symbol),
			NativeCurrencyDecimals: c.NativeToken.Decimals,
			VMType:                 vm,
		})
	}

	for key, entries := range tokensResp.Tokens {
		rawChainID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.WarnCtx(ctx, "skipping token map key with non-numeric chain ID",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.String("key", key))
			continue
		}
		chainID := domain.NormalizeChainID(rawChainID)
		isEVM := domain.IsEVMChain(chainID)

		for _, raw := range entries {
			var t tokenEntry
			if err := json.Unmarshal(raw, &t); err != nil {
				return nil, domain.NewProviderError(PROVIDER_NAME, fmt.Errorf("failed to decode token on chain %d: %w", chainID, err))
			}
			if t.Address == "" || t.Symbol == "" {
				continue
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
	}

	return result, nil
}

func orUnknown(s string) string {
	if s == "" {
		return domain.UnknownPlaceholder
	}
	return s
}
