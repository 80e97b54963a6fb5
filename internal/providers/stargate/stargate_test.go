package stargate_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/mocks"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/stargate"
)

const apiURL = "https://stargate.finance/api/v1"

func respond(fixture string) func(ctx context.Context, url string, result interface{}) error {
	return func(_ context.Context, _ string, result interface{}) error {
		return json.Unmarshal([]byte(fixture), result)
	}
}

func TestStargateAdapter_Fetch_FiltersNonEVMRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := stargate.NewAdapter(mockHTTPClient, apiURL)

	chainsJSON := `{
		"chains": [
			{
				"chainKey": "ethereum",
				"name": "Ethereum",
				"chainType": "evm",
				"nativeChainId": 1,
				"nativeCurrency": {"name": "Ether", "symbol": "ETH", "decimals": 18}
			},
			{
				"chainKey": "aptos",
				"name": "Aptos",
				"chainType": "aptos",
				"nativeChainId": 0,
				"nativeCurrency": {"name": "Aptos", "symbol": "APT", "decimals": 8}
			}
		]
	}`
	tokensJSON := `{
		"tokens": [
			{
				"chainKey": "ethereum",
				"address": "0xA0b86991C6218b36c1d19D4a2e9Eb0cE3606eB48",
				"symbol": "USDC",
				"name": "USD Coin",
				"decimals": 6
			},
			{
				"chainKey": "ethereum",
				"address": "0x1::aptos_coin::AptosCoin",
				"symbol": "APT",
				"decimals": 8
			},
			{
				"chainKey": "aptos",
				"address": "0x1::usdc::USDC",
				"symbol": "USDC",
				"decimals": 6
			}
		]
	}`

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/chains", gomock.Any()).
		DoAndReturn(respond(chainsJSON))
	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/tokens", gomock.Any()).
		DoAndReturn(respond(tokensJSON))

	result, err := adapter.Fetch(context.Background())
	require.NoError(t, err)

	// the aptos chain has no EVM chain ID and is dropped
	require.Len(t, result.Chains, 1)
	assert.Equal(t, int64(1), result.Chains[0].ID)

	// only the well-formed hex-address row survives
	require.Len(t, result.Tokens, 1)
	assert.Equal(t, int64(1), result.Tokens[0].ChainID)
	assert.Equal(t, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", result.Tokens[0].Address)
}
