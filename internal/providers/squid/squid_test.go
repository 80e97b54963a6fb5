package squid_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/mocks"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/squid"
)

const apiURL = "https://api.squidrouter.com/v1"

func respond(fixture string) func(ctx context.Context, url string, result interface{}) error {
	return func(_ context.Context, _ string, result interface{}) error {
		return json.Unmarshal([]byte(fixture), result)
	}
}

func TestSquidAdapter_Fetch_MixedBaseChainIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := squid.NewAdapter(mockHTTPClient, apiURL)

	chainsJSON := `{
		"chains": [
			{
				"chainId": "1",
				"networkName": "Ethereum",
				"chainType": "evm",
				"nativeCurrency": {"name": "Ether", "symbol": "ETH", "decimals": 18}
			},
			{
				"chainId": "0xa4b1",
				"networkName": "Arbitrum",
				"chainType": "evm",
				"nativeCurrency": {"name": "Ether", "symbol": "ETH", "decimals": 18}
			},
			{
				"chainId": "cosmoshub-4",
				"networkName": "Cosmos Hub",
				"chainType": "cosmos",
				"nativeCurrency": {"name": "Atom", "symbol": "ATOM", "decimals": 6}
			}
		]
	}`
	tokensJSON := `{
		"tokens": [
			{
				"chainId": "0xa4b1",
				"address": "0xFF970A61A04b1cA14834A43f5dE4533eBDDB5CC8",
				"symbol": "USDC",
				"name": "USD Coin",
				"decimals": 6
			},
			{
				"chainId": "osmosis-1",
				"address": "uosmo",
				"symbol": "OSMO",
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

	// cosmoshub-4 is unparsable and dropped
	require.Len(t, result.Chains, 2)
	assert.Equal(t, int64(1), result.Chains[0].ID)
	// hex chain ID decodes to Arbitrum One
	assert.Equal(t, int64(42161), result.Chains[1].ID)

	require.Len(t, result.Tokens, 1)
	assert.Equal(t, int64(42161), result.Tokens[0].ChainID)
	assert.Equal(t, "0xff970a61a04b1ca14834a43f5de4533ebddb5cc8", result.Tokens[0].Address)
	assert.Contains(t, result.Tokens[0].Tags, domain.TagStablecoin)
}

func TestSquidAdapter_Fetch_SolanaAlias(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := squid.NewAdapter(mockHTTPClient, apiURL)

	chainsJSON := `{
		"chains": [
			{
				"chainId": "792703809",
				"networkName": "Solana",
				"chainType": "svm",
				"nativeCurrency": {"name": "Solana", "symbol": "SOL", "decimals": 9}
			}
		]
	}`
	tokensJSON := `{
		"tokens": [
			{
				"chainId": "792703809",
				"address": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
				"symbol": "USDC",
				"name": "USD Coin",
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

	require.Len(t, result.Chains, 1)
	assert.Equal(t, domain.ChainIDSolana, result.Chains[0].ID)
	assert.Equal(t, domain.VMTypeSVM, result.Chains[0].VMType)

	require.Len(t, result.Tokens, 1)
	assert.Equal(t, domain.ChainIDSolana, result.Tokens[0].ChainID)
	// base58 addresses keep their casing
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", result.Tokens[0].Address)
}
