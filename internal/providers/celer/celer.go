package celer

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

const PROVIDER_NAME = domain.ProviderCeler

// Celer serves its whole transfer configuration from one endpoint. Token
// names in the payload occasionally contain embedded NUL bytes (the values
// are read straight out of on-chain storage), which Postgres text columns
// reject, so every string field is stripped before use.

type transferConfigsResponse struct {
	Chains     []chainEntry               `json:"chains"`
	ChainToken map[string]chainTokenEntry `json:"chain_token"`
}

type chainEntry struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	GasTokenSymbol string `json:"gas_token_symbol"`
}

type chainTokenEntry struct {
	Token []json.RawMessage `json:"token"`
}

type tokenEntry struct {
	Token struct {
		Symbol  string `json:"symbol"`
		Address string `json:"address"`
		Decimal *int   `json:"decimal"`
	} `json:"token"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

// Adapter fetches the Celer cBridge transfer configuration
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Celer adapter
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
	var resp transferConfigsResponse
	if err := a.httpClient.Get(ctx, a.apiURL+"/getTransferConfigs", &resp); err != nil {
		return nil, domain.NewProviderError(PROVIDER_NAME, err)
	}

	result := &domain.ProviderResult{}

	for _, c := range resp.Chains {
		chainID := domain.NormalizeChainID(c.ID)
		result.Chains = append(result.Chains, domain.Chain{
			ID:                   chainID,
			Name:                 orUnknown(domain.StripNullBytes(c.Name)),
			NativeCurrencyName:   domain.UnknownPlaceholder,
			NativeCurrencySymbol: orUnknown(domain.StripNullBytes(c.GasTokenSymbol)),
			VMType:               domain.VMTypeForChain(chainID),
		})
	}

	for key, entry := range resp.ChainToken {
		rawChainID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.WarnCtx(ctx, "skipping chain_token key with non-numeric chain ID",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.String("key", key))
			continue
		}
		chainID := domain.NormalizeChainID(rawChainID)
		isEVM := domain.IsEVMChain(chainID)

		for _, raw := range entry.Token {
			var t tokenEntry
			if err := json.Unmarshal(raw, &t); err != nil {
				return nil, domain.NewProviderError(PROVIDER_NAME, fmt.Errorf("failed to decode token on chain %d: %w", chainID, err))
			}
			symbol := domain.StripNullBytes(t.Token.Symbol)
			if t.Token.Address == "" || symbol == "" {
				continue
			}

			address := domain.NormalizeNativeAddress(domain.NormalizeAddress(t.Token.Address, isEVM))
			var name *string
			cleanName := domain.StripNullBytes(t.Name)
			if cleanName != "" {
				name = &cleanName
			}

			result.Tokens = append(result.Tokens, domain.Token{
				ChainID:  chainID,
				Address:  address,
				Symbol:   symbol,
				Name:     name,
				Decimals: t.Token.Decimal,
				LogoURI:  t.Icon,
				Tags:     domain.CategorizeToken(symbol, cleanName, address),
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
