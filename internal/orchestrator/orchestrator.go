package orchestrator

import (
	"context"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/domain"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/logger"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/store"
)

// Enricher refines stored chain metadata after an ingestion pass. Implemented
// by the registry package; optional so ingestion can run standalone.
type Enricher interface {
	Enrich(ctx context.Context) (int, error)
}

// Summary reports the outcome of one orchestrator pass
type Summary struct {
	RunID           string
	Duration        time.Duration
	Successes       int
	Failures        int
	FailedProviders []domain.Provider
	EnrichedChains  int
}

// Orchestrator runs every provider adapter concurrently and persists each
// provider's dataset independently, so one failing provider never blocks or
// poisons the others.
type Orchestrator struct {
	adapters []providers.Adapter
	store    store.Store
	enricher Enricher
	clock    adapter.Clock
}

// New creates an orchestrator. enricher may be nil to skip the
// chain-metadata enrichment pass.
func New(adapters []providers.Adapter, s store.Store, enricher Enricher, clock adapter.Clock) *Orchestrator {
	return &Orchestrator{
		adapters: adapters,
		store:    s,
		enricher: enricher,
		clock:    clock,
	}
}

type providerOutcome struct {
	provider domain.Provider
	failed   bool
}

// Run executes one full ingestion pass under a fresh run ID.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	return o.RunWithID(ctx, uuid.NewString())
}

// RunWithID executes one full ingestion pass: every adapter fetches and
// persists concurrently, then the enrichment pass refines chain metadata
// once. The returned error is only non-nil for infrastructure-level
// failures; provider failures are reported through the summary.
func (o *Orchestrator) RunWithID(ctx context.Context, runID string) (*Summary, error) {
	start := o.clock.Now()

	logger.InfoCtx(ctx, "ingestion run starting",
		zap.String("run_id", runID),
		zap.Int("providers", len(o.adapters)))

	pool := pond.NewResultPool[providerOutcome](len(o.adapters), pond.WithContext(ctx))
	tasks := make([]pond.Result[providerOutcome], 0, len(o.adapters))
	for _, a := range o.adapters {
		a := a
		tasks = append(tasks, pool.Submit(func() providerOutcome {
			return o.runProvider(ctx, runID, a)
		}))
	}

	summary := &Summary{RunID: runID}
	for _, task := range tasks {
		outcome, err := task.Wait()
		if err != nil {
			// only happens when the pool context is cancelled
			return nil, err
		}
		if outcome.failed {
			summary.Failures++
			summary.FailedProviders = append(summary.FailedProviders, outcome.provider)
		} else {
			summary.Successes++
		}
	}
	pool.StopAndWait()

	if o.enricher != nil {
		enriched, err := o.enricher.Enrich(ctx)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("run_id", runID), zap.String("stage", "enrichment"))
		}
		summary.EnrichedChains = enriched
	}

	summary.Duration = o.clock.Since(start)
	logger.InfoCtx(ctx, "ingestion run finished",
		zap.String("run_id", runID),
		zap.Int("successes", summary.Successes),
		zap.Int("failures", summary.Failures),
		zap.Int("enriched_chains", summary.EnrichedChains),
		zap.Duration("duration", summary.Duration))

	return summary, nil
}

// runProvider fetches one provider and persists its dataset. Both fetch and
// persistence failures are recorded as a failed fetch attempt; the audit log
// is append-only so the newest row per provider reflects its latest health.
func (o *Orchestrator) runProvider(ctx context.Context, runID string, a providers.Adapter) providerOutcome {
	provider := a.Name()
	start := o.clock.Now()

	result, err := a.Fetch(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("run_id", runID),
			zap.String("provider", string(provider)))
		o.recordFailure(ctx, runID, provider, err)
		return providerOutcome{provider: provider, failed: true}
	}

	if err := o.persist(ctx, runID, provider, result); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("run_id", runID),
			zap.String("provider", string(provider)))
		o.recordFailure(ctx, runID, provider, err)
		return providerOutcome{provider: provider, failed: true}
	}

	logger.InfoCtx(ctx, "provider ingested",
		zap.String("run_id", runID),
		zap.String("provider", string(provider)),
		zap.Int("chains", len(result.Chains)),
		zap.Int("tokens", len(result.Tokens)),
		zap.Duration("duration", o.clock.Since(start)))
	return providerOutcome{provider: provider}
}

// persist writes one provider's dataset. Chains go in first because the
// fetch-attempt row and every token row reference them; the success row is
// inserted before links and tokens so they can carry its ID, and any later
// write failure appends a newer failed row that supersedes it in the
// per-provider health view.
func (o *Orchestrator) persist(ctx context.Context, runID string, provider domain.Provider, result *domain.ProviderResult) error {
	if err := o.store.UpsertChains(ctx, result.Chains); err != nil {
		return err
	}

	chainsCount := len(result.Chains)
	tokensCount := len(result.Tokens)
	attemptID, err := o.store.InsertFetchAttempt(ctx, store.InsertFetchAttemptInput{
		RunID:       runID,
		Provider:    provider,
		Success:     true,
		ChainsCount: &chainsCount,
		TokensCount: &tokensCount,
	})
	if err != nil {
		return err
	}

	chainIDs := make([]int64, 0, len(result.Chains))
	for _, chain := range result.Chains {
		chainIDs = append(chainIDs, chain.ID)
	}
	if err := o.store.LinkChainProviderSupport(ctx, provider, attemptID, chainIDs); err != nil {
		return err
	}

	return o.store.UpsertTokens(ctx, provider, attemptID, result.Tokens)
}

func (o *Orchestrator) recordFailure(ctx context.Context, runID string, provider domain.Provider, cause error) {
	msg := cause.Error()
	if _, err := o.store.InsertFetchAttempt(ctx, store.InsertFetchAttemptInput{
		RunID:        runID,
		Provider:     provider,
		Success:      false,
		ErrorMessage: &msg,
	}); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("run_id", runID),
			zap.String("provider", string(provider)),
			zap.String("stage", "record_failure"))
	}
}
