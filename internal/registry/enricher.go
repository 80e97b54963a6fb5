package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/logger"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/store"
)

// manualOverrides supplies metadata for chains the public registries do not
// carry. The registries only cover EVM networks, so non-EVM chains stored by
// the adapters would otherwise never be enriched.
var manualOverrides = map[int64]override{
	domain.ChainIDSolana: {
		Name:      "Solana",
		ShortName: "sol",
		ChainType: "svm",
		Explorers: []string{"https://solscan.io", "https://explorer.solana.com"},
		RPCEndpoints: []string{
			"https://api.mainnet-beta.solana.com",
		},
	},
}

type override struct {
	Name         string
	ShortName    string
	ChainType    string
	IconURL      string
	Explorers    []string
	RPCEndpoints []string
}

// Enricher refines stored chain rows with metadata from the public chain
// registries after an ingestion pass. Catalog fetches are retried with
// backoff, unlike provider fetches: the registries are the only source of
// this data and a transient failure would otherwise skip a whole pass.
type Enricher struct {
	httpClient  adapter.HTTPClient
	store       store.Store
	primaryURL  string
	fallbackURL string
}

// NewEnricher creates a chain-metadata enricher. httpClient should be a
// retrying client.
func NewEnricher(httpClient adapter.HTTPClient, s store.Store, primaryURL, fallbackURL string) *Enricher {
	return &Enricher{
		httpClient:  httpClient,
		store:       s,
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
	}
}

// Enrich loads both registry catalogs, merges them, and patches every stored
// chain that has a catalog entry or manual override. Returns the number of
// chains updated. The primary catalog wins over the fallback where both have
// an entry. Losing the primary degrades coverage with a warning; losing the
// fallback fails the pass, since it is the baseline the merge builds on.
// Enrichment is idempotent: re-running with the same catalogs writes the
// same values.
func (e *Enricher) Enrich(ctx context.Context) (int, error) {
	merged, err := e.loadCatalogs(ctx)
	if err != nil {
		return 0, err
	}

	knownIDs, err := e.store.ListKnownChainIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list known chains: %w", err)
	}

	enriched := 0
	for _, chainID := range knownIDs {
		patch, ok := e.buildPatch(chainID, merged)
		if !ok {
			continue
		}
		if err := e.store.UpdateChainMetadata(ctx, chainID, patch); err != nil {
			return enriched, fmt.Errorf("failed to enrich chain %d: %w", chainID, err)
		}
		enriched++
	}

	logger.InfoCtx(ctx, "chain enrichment finished",
		zap.Int("known_chains", len(knownIDs)),
		zap.Int("enriched", enriched),
		zap.Int("catalog_size", len(merged)))
	return enriched, nil
}

// loadCatalogs fetches the fallback and primary catalogs and merges them,
// fallback first so primary entries overwrite. A fallback failure is fatal;
// a primary failure only narrows the merge. Testnets are filtered out of
// both; the stored dataset only ever describes production networks.
func (e *Enricher) loadCatalogs(ctx context.Context) (map[int64]ChainRecord, error) {
	merged := make(map[int64]ChainRecord)

	var fallbackRecords []ChainRecord
	if err := e.httpClient.Get(ctx, e.fallbackURL, &fallbackRecords); err != nil {
		return nil, fmt.Errorf("fallback registry catalog unavailable: %w", err)
	}
	mergeRecords(merged, fallbackRecords)

	var primaryRecords []ChainRecord
	if err := e.httpClient.Get(ctx, e.primaryURL, &primaryRecords); err != nil {
		logger.WarnCtx(ctx, "primary registry catalog unavailable",
			zap.String("url", e.primaryURL),
			zap.Error(err))
	} else {
		mergeRecords(merged, primaryRecords)
	}

	return merged, nil
}

func mergeRecords(merged map[int64]ChainRecord, records []ChainRecord) {
	for _, record := range records {
		if record.ChainID == 0 || record.IsTestnet() {
			continue
		}
		merged[record.ChainID] = record
	}
}

// buildPatch assembles the metadata patch for one chain. Manual overrides
// take precedence over catalog entries field by field.
func (e *Enricher) buildPatch(chainID int64, merged map[int64]ChainRecord) (store.ChainMetadataPatch, bool) {
	var patch store.ChainMetadataPatch
	found := false

	if record, ok := merged[chainID]; ok {
		found = true
		if record.Name != "" {
			patch.Name = strPtr(record.Name)
		}
		if record.ShortName != "" {
			patch.ShortName = strPtr(record.ShortName)
		}
		if record.Chain != "" {
			patch.ChainType = strPtr(record.Chain)
		}
		if record.Icon != "" {
			patch.IconURL = strPtr(record.Icon)
		}
		if urls := record.ExplorerURLs(); len(urls) > 0 {
			patch.Explorers = urls
		}
		if endpoints := record.PublicRPCEndpoints(); len(endpoints) > 0 {
			patch.RPCEndpoints = endpoints
		}
	}

	if o, ok := manualOverrides[chainID]; ok {
		found = true
		if o.Name != "" {
			patch.Name = strPtr(o.Name)
		}
		if o.ShortName != "" {
			patch.ShortName = strPtr(o.ShortName)
		}
		if o.ChainType != "" {
			patch.ChainType = strPtr(o.ChainType)
		}
		if o.IconURL != "" {
			patch.IconURL = strPtr(o.IconURL)
		}
		if len(o.Explorers) > 0 {
			patch.Explorers = o.Explorers
		}
		if len(o.RPCEndpoints) > 0 {
			patch.RPCEndpoints = o.RPCEndpoints
		}
	}

	return patch, found
}

func strPtr(s string) *string {
	return &s
}
