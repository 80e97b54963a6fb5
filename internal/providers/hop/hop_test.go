package hop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers/hop"
)

func TestHopAdapter_Fetch(t *testing.T) {
	adapter := hop.NewAdapter()

	result, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Chains)
	assert.NotEmpty(t, result.Tokens)

	chainIDs := make(map[int64]bool)
	for _, chain := range result.Chains {
		chainIDs[chain.ID] = true
		assert.Equal(t, domain.VMTypeEVM, chain.VMType)
	}
	assert.True(t, chainIDs[1])
	assert.True(t, chainIDs[10])
	assert.True(t, chainIDs[42161])

	for _, token := range result.Tokens {
		assert.True(t, chainIDs[token.ChainID], "token %s references unknown chain %d", token.Symbol, token.ChainID)
		assert.NotEmpty(t, token.Symbol)
		assert.NotEmpty(t, token.Raw)
		require.NotNil(t, token.Decimals)
		if token.Address == domain.ZeroAddress {
			assert.Contains(t, token.Tags, domain.TagNative)
		}
	}
}

func TestHopAdapter_Fetch_Deterministic(t *testing.T) {
	adapter := hop.NewAdapter()

	first, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	second, err := adapter.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Chains, second.Chains)
	assert.Equal(t, first.Tokens, second.Tokens)
}
