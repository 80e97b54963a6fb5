package axelar

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

const PROVIDER_NAME = domain.ProviderAxelar

// Axelar's asset registry references chains by their Axelar chain name
// ("ethereum", "binance", ...), not by numeric ID. The chain catalog is
// fetched first to build the name-to-ID lookup; asset deployments on chains
// absent from the catalog (Cosmos zones mostly) are dropped.

type chainEntry struct {
	ID        string `json:"id"`
	ChainID   int64  `json:"chain_id"`
	Name      string `json:"name"`
	ChainType string `json:"chain_type"`
	NativeToken struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"native_token"`
}

type assetEntry struct {
	Symbol    string                     `json:"symbol"`
	Name      *string                    `json:"name"`
	Decimals  *int                       `json:"decimals"`
	Image     *string                    `json:"image"`
	Addresses map[string]assetDeployment `json:"addresses"`
}

type assetDeployment struct {
	Address string  `json:"address"`
	Symbol  *string `json:"symbol"`
}

// Adapter fetches the Axelar chain catalog and cross-chain asset registry
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Axelar adapter
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
	var chains []chainEntry
	if err := a.httpClient.Get(ctx, a.apiURL+"/api/getChains", &chains); err != nil {
		return nil, domain.NewProviderError(PROVIDER_NAME, err)
	}

	var assets []json.RawMessage
	if err := a.httpClient.Get(ctx, a.apiURL+"/api/getAssets", &assets); err != nil {
		return nil, domain.NewProviderError(PROVIDER_NAME, err)
	}

	result := &domain.ProviderResult{}
	chainIDByName := make(map[string]int64, len(chains))

	for _, c := range chains {
		if c.ChainID == 0 || !strings.EqualFold(c.ChainType, "evm") {
			continue
		}
		chainID := domain.NormalizeChainID(c.ChainID)
		chainIDByName[c.ID] = chainID

		result.Chains = append(result.Chains, domain.Chain{
			ID:                     chainID,
			Name:                   orUnknown(c.Name),
			NativeCurrencyName:     orUnknown(c.NativeToken.Name),
			NativeCurrencySymbol:   orUnknown(c.NativeToken.Symbol),
			NativeCurrencyDecimals: c.NativeToken.Decimals,
			VMType:                 domain.VMTypeEVM,
		})
	}

	for _, raw := range assets {
		var asset assetEntry
		if err := json.Unmarshal(raw, &asset); err != nil {
			return nil, domain.NewProviderError(PROVIDER_NAME, fmt.Errorf("failed to decode asset: %w", err))
		}
		if asset.Symbol == "" {
			continue
		}

		for chainName, deployment := range asset.Addresses {
			chainID, ok := chainIDByName[chainName]
			if !ok {
				logger.Debug("skipping asset deployment on unmapped chain name",
					zap.String("provider", string(PROVIDER_NAME)),
					zap.String("chain_name", chainName),
					zap.String("symbol", asset.Symbol))
				continue
			}
			if deployment.Address == "" {
				continue
			}

			// Per-chain symbol wins over the registry-level one
			symbol := asset.Symbol
			if deployment.Symbol != nil && *deployment.Symbol != "" {
				symbol = *deployment.Symbol
			}

			address := domain.NormalizeNativeAddress(domain.NormalizeAddress(deployment.Address, true))
			name := ""
			if asset.Name != nil {
				name = *asset.Name
			}

			result.Tokens = append(result.Tokens, domain.Token{
				ChainID:  chainID,
				Address:  address,
				Symbol:   symbol,
				Name:     asset.Name,
				Decimals: asset.Decimals,
				LogoURI:  asset.Image,
				Tags:     domain.CategorizeToken(symbol, name, address),
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
