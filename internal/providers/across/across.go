package across

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
)

const PROVIDER_NAME = domain.ProviderAcross

// Across omits the display name on a fair share of its token-list entries;
// those rows are kept with a null name rather than dropped, the symbol alone
// identifies the asset well enough.

type chainEntry struct {
	ChainID int64  `json:"chainId"`
	Name    string `json:"name"`
	NativeToken struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"nativeToken"`
}

type tokenEntry struct {
	ChainID  int64   `json:"chainId"`
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Decimals *int    `json:"decimals"`
	LogoURI  *string `json:"logoURI"`
}

// Adapter fetches chains and the token list from the Across API
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Across adapter
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
		chains []chainEntry
		tokens []json.RawMessage
	)

	errCh := make(chan error, 2)
	go func() {
		errCh <- a.httpClient.Get(ctx, a.apiURL+"/chains", &chains)
	}()
	go func() {
		errCh <- a.httpClient.Get(ctx, a.apiURL+"/token-list", &tokens)
	}()
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			return nil, domain.NewProviderError(PROVIDER_NAME, err)
		}
	}

	result := &domain.ProviderResult{}

	for _, c := range chains {
		chainID := domain.NormalizeChainID(c.ChainID)
		result.Chains = append(result.Chains, domain.Chain{
			ID:                     chainID,
			Name:                   orUnknown(c.Name),
			NativeCurrencyName:     orUnknown(c.NativeToken.Name),
			NativeCurrencySymbol:   orUnknown(c.NativeToken.Symbol),
			NativeCurrencyDecimals: c.NativeToken.Decimals,
			VMType:                 domain.VMTypeForChain(chainID),
		})
	}

	for _, raw := range tokens {
		var t tokenEntry
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, domain.NewProviderError(PROVIDER_NAME, fmt.Errorf("failed to decode token: %w", err))
		}
		if t.Address == "" || t.Symbol == "" {
			continue
		}

		chainID := domain.NormalizeChainID(t.ChainID)
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

func orUnknown(s string) string {
	if s == "" {
		return domain.UnknownPlaceholder
	}
	return s
}
