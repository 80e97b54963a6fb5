package wormhole_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/mocks"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/wormhole"
)

const apiURL = "https://api.wormholescan.io/api/v1"

func TestWormholeAdapter_Fetch_TranslatesChainIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := wormhole.NewAdapter(mockHTTPClient, apiURL)

	tokensJSON := `{
		"tokens": [
			{
				"wormholeChainId": 2,
				"address": "0xA0b86991C6218b36c1d19D4a2e9Eb0cE3606eB48",
				"symbol": "USDC",
				"name": "USD Coin",
				"decimals": 6
			},
			{
				"wormholeChainId": 1,
				"address": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
				"symbol": "USDC",
				"name": "USD Coin",
				"decimals": 6
			},
			{
				"wormholeChainId": 22,
				"address": "0x1::aptos_coin::AptosCoin",
				"symbol": "APT",
				"decimals": 8
			}
		]
	}`

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/tokens", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			return json.Unmarshal([]byte(tokensJSON), result)
		})

	result, err := adapter.Fetch(context.Background())
	require.NoError(t, err)

	// wormhole chain 2 -> ethereum, 1 -> solana, 22 (aptos) untranslated
	require.Len(t, result.Tokens, 2)
	assert.Equal(t, int64(1), result.Tokens[0].ChainID)
	assert.Equal(t, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", result.Tokens[0].Address)
	assert.Equal(t, domain.ChainIDSolana, result.Tokens[1].ChainID)
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", result.Tokens[1].Address)

	require.Len(t, result.Chains, 2)
	for _, chain := range result.Chains {
		assert.Equal(t, domain.UnknownPlaceholder, chain.Name)
	}
}

func TestWormholeAdapter_Fetch_RejectsMalformedAddresses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := wormhole.NewAdapter(mockHTTPClient, apiURL)

	tokensJSON := `{
		"tokens": [
			{"wormholeChainId": 2, "address": "not-an-address", "symbol": "BAD", "decimals": 18},
			{"wormholeChainId": 1, "address": "not-base58-0OIl", "symbol": "BAD2", "decimals": 9}
		]
	}`

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/tokens", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			return json.Unmarshal([]byte(tokensJSON), result)
		})

	result, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Tokens)
	assert.Empty(t, result.Chains)
}
