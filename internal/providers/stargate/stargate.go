package stargate

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

const PROVIDER_NAME = domain.ProviderStargate

// Stargate keys everything by chainKey strings ("ethereum", "bsc", ...) and
// mixes non-EVM rows (Aptos, Solana) into its token list without marking
// them. Only rows whose address is a well-formed EVM hex address are kept;
// chain IDs come from the chain list's nativeChainId field.

type chainsResponse struct {
	Chains []chainEntry `json:"chains"`
}

type chainEntry struct {
	ChainKey      string `json:"chainKey"`
	Name          string `json:"name"`
	ChainType     string `json:"chainType"`
	NativeChainID int64  `json:"nativeChainId"`
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
	ChainKey string  `json:"chainKey"`
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Decimals *int    `json:"decimals"`
}

// Adapter fetches chains and tokens from the Stargate API
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Stargate adapter
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
	chainIDByKey := make(map[string]int64, len(chainsResp.Chains))

	for _, c := range chainsResp.Chains {
		if c.NativeChainID == 0 || !strings.EqualFold(c.ChainType, "evm") {
			continue
		}
		chainID := domain.NormalizeChainID(c.NativeChainID)
		chainIDByKey[c.ChainKey] = chainID

		result.Chains = append(result.Chains, domain.Chain{
			ID:                     chainID,
			Name:                   orUnknown(c.Name),
			NativeCurrencyName:     orUnknown(c.NativeCurrency.Name),
			NativeCurrencySymbol:   orUnknown(c.NativeCurrency.Symbol),
			NativeCurrencyDecimals: c.NativeCurrency.Decimals,
			VMType:                 domain.VMTypeEVM,
		})
	}

	for _, raw := range tokensResp.Tokens {
		var t tokenEntry
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, domain.NewProviderError(PROVIDER_NAME, fmt.Errorf("failed to decode token: %w", err))
		}
		chainID, ok := chainIDByKey[t.ChainKey]
		if !ok {
			logger.Debug("skipping token on unmapped chain key",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.String("chain_key", t.ChainKey),
				zap.String("symbol", t.Symbol))
			continue
		}
		// Non-EVM rows (Aptos, Solana) carry non-hex addresses
		if !domain.IsHexAddress(t.Address) || t.Symbol == "" {
			continue
		}

		address := domain.NormalizeNativeAddress(domain.NormalizeAddress(t.Address, true))
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
			Tags:     domain.CategorizeToken(t.Symbol, name, address),
			Raw:      raw,
		})
	}

	return result, nil
}

func orUnknown(s string) string {
	if s == "" {
		return domain.UnknownPlaceholder
	}
	return s
}
