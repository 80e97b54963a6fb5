package butter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/logger"
)

const PROVIDER_NAME = domain.ProviderButter

// maxConcurrentFetches caps the token-list fan-out. Butter's API starts
// returning 429s above a handful of parallel requests.
const maxConcurrentFetches = 5

// majorNetworks is the fixed set of networks this adapter ingests. Butter
// has no chain discovery endpoint; its token API is queried per network and
// the long tail of exotic networks it bridges is not worth the quota.
var majorNetworks = []staticNetwork{
	{ID: 1, Name: "Ethereum", NativeCurrencyName: "Ether", NativeCurrencySymbol: "ETH", NativeCurrencyDecimals: 18},
	{ID: 56, Name: "BNB Smart Chain", NativeCurrencyName: "BNB", NativeCurrencySymbol: "BNB", NativeCurrencyDecimals: 18},
	{ID: 137, Name: "Polygon", NativeCurrencyName: "MATIC", NativeCurrencySymbol: "MATIC", NativeCurrencyDecimals: 18},
	{ID: 8453, Name: "Base", NativeCurrencyName: "Ether", NativeCurrencySymbol: "ETH", NativeCurrencyDecimals: 18},
	{ID: 42161, Name: "Arbitrum One", NativeCurrencyName: "Ether", NativeCurrencySymbol: "ETH", NativeCurrencyDecimals: 18},
}

type staticNetwork struct {
	ID                     int64
	Name                   string
	NativeCurrencyName     string
	NativeCurrencySymbol   string
	NativeCurrencyDecimals int
}

type tokensResponse struct {
	Code int `json:"code"`
	Data struct {
		Results []json.RawMessage `json:"results"`
	} `json:"data"`
}

type tokenEntry struct {
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Decimals *int    `json:"decimals"`
	Image    *string `json:"image"`
}

// Adapter fetches per-network token lists from the Butter token API
type Adapter struct {
	httpClient adapter.HTTPClient
	apiURL     string
}

// NewAdapter creates a new Butter adapter
func NewAdapter(httpClient adapter.HTTPClient, apiURL string) *Adapter {
	return &Adapter{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
	}
}

func (a *Adapter) Name() domain.Provider {
	return PROVIDER_NAME
}

// Fetch queries each major network's token list through a bounded worker
// pool. A failed network fetch is logged and contributes zero tokens.
func (a *Adapter) Fetch(ctx context.Context) (*domain.ProviderResult, error) {
	result := &domain.ProviderResult{
		Chains: make([]domain.Chain, 0, len(majorNetworks)),
	}

	pool := pond.NewResultPool[[]domain.Token](maxConcurrentFetches, pond.WithContext(ctx))
	tasks := make([]pond.Result[[]domain.Token], 0, len(majorNetworks))

	for _, network := range majorNetworks {
		network := network
		result.Chains = append(result.Chains, domain.Chain{
			ID:                     network.ID,
			Name:                   network.Name,
			NativeCurrencyName:     network.NativeCurrencyName,
			NativeCurrencySymbol:   network.NativeCurrencySymbol,
			NativeCurrencyDecimals: network.NativeCurrencyDecimals,
			VMType:                 domain.VMTypeEVM,
		})

		tasks = append(tasks, pool.SubmitErr(func() ([]domain.Token, error) {
			return a.fetchNetworkTokens(ctx, network.ID)
		}))
	}

	for i, task := range tasks {
		tokens, err := task.Wait()
		if err != nil {
			logger.WarnCtx(ctx, "token list fetch failed, keeping network with zero tokens",
				zap.String("provider", string(PROVIDER_NAME)),
				zap.Int64("chain_id", majorNetworks[i].ID),
				zap.Error(err))
			continue
		}
		result.Tokens = append(result.Tokens, tokens...)
	}
	pool.StopAndWait()

	return result, nil
}

func (a *Adapter) fetchNetworkTokens(ctx context.Context, chainID int64) ([]domain.Token, error) {
	var tokensResp tokensResponse
	url := fmt.Sprintf("%s/api/queryTokenList?network=%d", a.apiURL, chainID)
	if err := a.httpClient.Get(ctx, url, &tokensResp); err != nil {
		return nil, err
	}
	if tokensResp.Code != 0 {
		return nil, fmt.Errorf("token list request returned code %d", tokensResp.Code)
	}

	tokens := make([]domain.Token, 0, len(tokensResp.Data.Results))
	for _, raw := range tokensResp.Data.Results {
		var t tokenEntry
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to decode token on chain %d: %w", chainID, err)
		}
		if t.Address == "" || t.Symbol == "" {
			continue
		}

		address := domain.NormalizeNativeAddress(domain.NormalizeAddress(t.Address, true))
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
			LogoURI:  t.Image,
			Tags:     domain.CategorizeToken(t.Symbol, name, address),
			Raw:      raw,
		})
	}

	return tokens, nil
}
