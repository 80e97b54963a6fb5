package socket_test

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
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/socket"
)

const apiURL = "https://api.socket.tech/v2"

func respond(fixture string) func(ctx context.Context, url string, result interface{}) error {
	return func(_ context.Context, _ string, result interface{}) error {
		return json.Unmarshal([]byte(fixture), result)
	}
}

func TestSocketAdapter_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := socket.NewAdapter(mockHTTPClient, apiURL)

	chainsJSON := `{
		"success": true,
		"result": [
			{"chainId": 1, "name": "Ethereum", "currency": {"name": "Ether", "symbol": "ETH", "decimals": 18}},
			{"chainId": 137, "name": "Polygon", "currency": {"name": "MATIC", "symbol": "MATIC", "decimals": 18}}
		]
	}`
	ethTokensJSON := `{
		"success": true,
		"result": [
			{"address": "0x6B175474E89094C44Da98b954EedeAC495271d0F", "symbol": "DAI", "name": "Dai Stablecoin", "decimals": 18}
		]
	}`
	polygonTokensJSON := `{
		"success": true,
		"result": [
			{"address": "0x0000000000000000000000000000000000000000", "symbol": "MATIC", "name": "Matic Token"}
		]
	}`

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/supported/chains", gomock.Any()).
		DoAndReturn(respond(chainsJSON))
	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/token-lists/chain?chainId=1&isShortList=false", gomock.Any()).
		DoAndReturn(respond(ethTokensJSON))
	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/token-lists/chain?chainId=137&isShortList=false", gomock.Any()).
		DoAndReturn(respond(polygonTokensJSON))

	result, err := adapter.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Chains, 2)
	require.Len(t, result.Tokens, 2)

	dai := result.Tokens[0]
	assert.Equal(t, "0x6b175474e89094c44da98b954eedeac495271d0f", dai.Address)
	assert.Contains(t, dai.Tags, domain.TagStablecoin)

	matic := result.Tokens[1]
	assert.Equal(t, domain.ZeroAddress, matic.Address)
	assert.Contains(t, matic.Tags, domain.TagNative)
	// decimals missing upstream stays null, never guessed
	assert.Nil(t, matic.Decimals)
}

func TestSocketAdapter_Fetch_ChainTokenFailureKeepsChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := socket.NewAdapter(mockHTTPClient, apiURL)

	chainsJSON := `{
		"success": true,
		"result": [
			{"chainId": 1, "name": "Ethereum", "currency": {"name": "Ether", "symbol": "ETH", "decimals": 18}},
			{"chainId": 10, "name": "Optimism", "currency": {"name": "Ether", "symbol": "ETH", "decimals": 18}}
		]
	}`
	ethTokensJSON := `{
		"success": true,
		"result": [
			{"address": "0xdAC17F958D2ee523a2206206994597C13D831ec7", "symbol": "USDT", "decimals": 6}
		]
	}`

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/supported/chains", gomock.Any()).
		DoAndReturn(respond(chainsJSON))
	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/token-lists/chain?chainId=1&isShortList=false", gomock.Any()).
		DoAndReturn(respond(ethTokensJSON))
	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/token-lists/chain?chainId=10&isShortList=false", gomock.Any()).
		Return(errors.New("502 bad gateway"))

	result, err := adapter.Fetch(context.Background())
	require.NoError(t, err)

	// the failed chain survives with zero tokens
	require.Len(t, result.Chains, 2)
	require.Len(t, result.Tokens, 1)
	assert.Equal(t, int64(1), result.Tokens[0].ChainID)
}

func TestSocketAdapter_Fetch_ChainListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	adapter := socket.NewAdapter(mockHTTPClient, apiURL)

	mockHTTPClient.EXPECT().
		Get(gomock.Any(), apiURL+"/supported/chains", gomock.Any()).
		Return(errors.New("timeout"))

	result, err := adapter.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderSocket, providerErr.Provider)
}
