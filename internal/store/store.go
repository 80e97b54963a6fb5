package store

import (
	"context"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/store/schema"
)

// InsertFetchAttemptInput captures one adapter invocation for the audit log
type InsertFetchAttemptInput struct {
	RunID        string
	Provider     domain.Provider
	Success      bool
	ChainsCount  *int
	TokensCount  *int
	ErrorMessage *string
}

// ChainMetadataPatch holds the descriptive fields the enrichment pass may
// update. Nil fields are left untouched; identity and native-currency fields
// are deliberately absent.
type ChainMetadataPatch struct {
	Name         *string
	ShortName    *string
	ChainType    *string
	IconURL      *string
	Explorers    []string
	RPCEndpoints []string
}

// Store defines the narrow persistence contract consumed by the ingestion
// pipeline and the enrichment pass
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// InsertFetchAttempt records one adapter run and returns the row ID
	InsertFetchAttempt(ctx context.Context, input InsertFetchAttemptInput) (int64, error)

	// UpsertChains inserts chains, ignoring conflicts on chain ID
	// (first writer wins; enrichment may later update descriptive fields)
	UpsertChains(ctx context.Context, chains []domain.Chain) error

	// LinkChainProviderSupport asserts the provider supports each chain,
	// re-pointing existing links at the given fetch attempt
	LinkChainProviderSupport(ctx context.Context, provider domain.Provider, fetchAttemptID int64, chainIDs []int64) error

	// UpsertTokens batch-inserts tokens in chunks, updating mutable fields
	// on (provider, chain_id, address) conflict
	UpsertTokens(ctx context.Context, provider domain.Provider, fetchAttemptID int64, tokens []domain.Token) error

	// UpdateChainMetadata patches descriptive chain fields (enrichment only)
	UpdateChainMetadata(ctx context.Context, chainID int64, patch ChainMetadataPatch) error

	// ListKnownChainIDs returns every stored canonical chain ID
	ListKnownChainIDs(ctx context.Context) ([]int64, error)

	// LatestFetchAttempts returns the newest fetch attempt per provider
	LatestFetchAttempts(ctx context.Context) ([]schema.FetchAttempt, error)

	// Ping verifies database connectivity
	Ping(ctx context.Context) error
}
