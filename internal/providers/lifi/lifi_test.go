package lifi_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/mocks"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/lifi"
)

const apiURL = "https://li.quest/v1"

func respond(fixture string) func(ctx context.Context, url string, result interface{}) error {
	return func(_ context.Context, _ string, result interface{}) error {
		return json.Unmarshal([]byte(fixture), result)
	}
}

func TestLiFiAdapter_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := lifi.NewAdapter(mockHTTPClient, apiURL)

	chainsJSON := `{
		"chains": [
			{
				"id": 1,
				"name": "Ethereum",
				"chainType": "EVM",
				"nativeToken": {"name": "Ether", "symbol": "ETH", "decimals": 18}
			},
			{
				"id": 1151111081099710,
				"name": "Solana",
				"chainType": "SVM",
				"nativeToken": {"name": "Solana", "symbol": "SOL", "decimals": 9}
			}
		]
	}`
	tokensJSON := `{
		"tokens": {
			"1": [
				{
					"address": "0xA0b86991C6218b36c1d19D4a2e9Eb0cE3606eB48",
					"symbol": "USDC",
					"name": "USD Coin",
					"decimals": 6,
					"logoURI": "https://example.com/usdc.png"
				},
				{
					"address": "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE",
					"symbol": "ETH",
					"name": "Ether",
					"decimals": 18
				}
			],
			"1151111081099710": [
				{
					"address": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					"symbol": "USDC",
					"name": "USD Coin",
					"decimals": 6
				}
			]
		}
	}`

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/chains", gomock.Any()).
		DoAndReturn(respond(chainsJSON))
	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/tokens", gomock.Any()).
		DoAndReturn(respond(tokensJSON))

	result, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Chains, 2)
	assert.Equal(t, int64(1), result.Chains[0].ID)
	assert.Equal(t, domain.VMTypeEVM, result.Chains[0].VMType)
	// LI.FI's Solana ID is folded into the canonical one
	assert.Equal(t, domain.ChainIDSolana, result.Chains[1].ID)
	assert.Equal(t, domain.VMTypeSVM, result.Chains[1].VMType)

	require.Len(t, result.Tokens, 3)
	byAddress := make(map[string]domain.Token)
	for _, token := range result.Tokens {
		byAddress[token.Address] = token
	}

	usdc, ok := byAddress["0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"]
	require.True(t, ok, "EVM address should be lowercased")
	assert.Equal(t, int64(1), usdc.ChainID)
	assert.Contains(t, usdc.Tags, domain.TagStablecoin)
	require.NotNil(t, usdc.Decimals)
	assert.Equal(t, 6, *usdc.Decimals)

	native, ok := byAddress[domain.ZeroAddress]
	require.True(t, ok, "eee sentinel should fold into the zero address")
	assert.Contains(t, native.Tags, domain.TagNative)

	solanaUSDC, ok := byAddress["EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"]
	require.True(t, ok, "Solana address casing should be preserved")
	assert.Equal(t, domain.ChainIDSolana, solanaUSDC.ChainID)
}

func TestLiFiAdapter_Fetch_SkipsNonNumericChainKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := lifi.NewAdapter(mockHTTPClient, apiURL)

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/chains", gomock.Any()).
		DoAndReturn(respond(`{"chains": []}`))
	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/tokens", gomock.Any()).
		DoAndReturn(respond(`{"tokens": {"not-a-chain": [{"address": "0xabc", "symbol": "X"}]}}`))

	result, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Tokens)
}

func TestLiFiAdapter_Fetch_ChainEndpointFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := lifi.NewAdapter(mockHTTPClient, apiURL)

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/chains", gomock.Any()).
		Return(errors.New("connection refused"))
	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/tokens", gomock.Any()).
		DoAndReturn(respond(`{"tokens": {}}`)).
		AnyTimes()

	result, err := adapter.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderLiFi, providerErr.Provider)
}
