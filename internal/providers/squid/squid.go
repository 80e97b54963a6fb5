package squid

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

const PROVIDER_NAME = domain.ProviderSquid

// Squid reports chain IDs as strings and mixes bases: most are decimal but
// some are 0x-prefixed hex, and its Cosmos rows carry non-numeric IDs that
// are skipped entirely.

type chainsResponse struct {
	Chains []chainEntry `json:"chains"`
}

type chainEntry struct {
	ChainID     string `json:"chainId"`
	NetworkName string `json:"networkName"`
	ChainType   string `json:"chainType"`
	NativeCurrency struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"nativeCurrency"`
}

type tokensResponse struct {
	Tokens []json.RawMessage `json:"tokens"`
}

type tokenEntry struct {
	ChainID  string  `json:"chainId"`
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Decimals *int    `json:"decimals"`
	LogoURI  *string `json:"logoURI"`
}

// Adapter fetches chains and tokens from the Squid router API
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Squid adapter
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
		rawChainID, err := parseChainID(c.ChainID)
		if err != nil {
			logger.WarnCtx(ctx, "skipping chain with unparsable chain ID",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.String("chain_id", c.ChainID))
			continue
		}
		chainID := domain.NormalizeChainID(rawChainID)
		vm := domain.VMTypeForChain(chainID)
		if strings.EqualFold(c.ChainType, "evm") {
			vm = domain.VMTypeEVM
		}

		result.Chains = append(result.Chains, domain.Chain{
			ID:                     chainID,
			Name:                   orUnknown(c.NetworkName),
			NativeCurrencyName:     orUnknown(c.NativeCurrency.Name),
			NativeCurrencySymbol:   orUnknown(c.NativeCurrency.Symbol),
			NativeCurrencyDecimals: c.NativeCurrency.Decimals,
			VMType:                 vm,
		})
	}

	for _, raw := range tokensResp.Tokens {
		var t tokenEntry
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, domain.NewProviderError(PROVIDER_NAME, fmt.Errorf("failed to decode token: %w", err))
		}
		rawChainID, err := parseChainID(t.ChainID)
		if err != nil {
			logger.WarnCtx(ctx, "skipping token with unparsable chain ID",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.String("chain_id", t.ChainID),
				zap.String("symbol", t.Symbol))
			continue
		}
		if t.Address == "" || t.Symbol == "" {
			continue
		}

		chainID := domain.NormalizeChainID(rawChainID)
		isEVM := domain.IsEVMChain(chainID)
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

// parseChainID accepts decimal and 0x-prefixed hex chain IDs
func parseChainID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseInt(s[2:], 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}

func orUnknown(s string) string {
	if s == "" {
		return domain.UnknownPlaceholder
	}
	return s
}
