package providers

import (
	"context"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
)

// Adapter is the contract every upstream bridge provider integration
// implements. Fetch returns the full normalized chain and token dataset in
// one call; partial results are only returned on success (an adapter that
// cannot produce its chain list fails outright, an adapter whose optional
// sub-fetches fail may return zero tokens for the affected chains).
//
//go:generate mockgen -source=provider.go -destination=../mocks/provider.go -package=mocks -mock_names=Adapter=MockAdapter
type Adapter interface {
	// Name returns the stable provider identifier used in storage and logs
	Name() domain.Provider

	// Fetch retrieves and normalizes the provider's chains and tokens
	Fetch(ctx context.Context) (*domain.ProviderResult, error)
}
