package rest

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/logger"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/store"
)

// IngestionRunner triggers a full ingestion pass. Implemented by the
// orchestrator; abstracted so handlers can be tested without one.
type IngestionRunner interface {
	RunAsync(ctx context.Context) (runID string, err error)
}

// ErrRunInProgress is returned by RunAsync while a pass is still running.
var ErrRunInProgress = errors.New("an ingestion run is already in progress")

// Handler holds the REST endpoint implementations
type Handler struct {
	store  store.Store
	runner IngestionRunner
}

// NewHandler creates a new REST handler
func NewHandler(s store.Store, runner IngestionRunner) *Handler {
	return &Handler{store: s, runner: runner}
}

// HealthCheck reports database connectivity
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// providerStatus is the wire form of one provider's latest fetch attempt
type providerStatus struct {
	Provider     string    `json:"provider"`
	Success      bool      `json:"success"`
	ChainsCount  *int      `json:"chains_count,omitempty"`
	TokensCount  *int      `json:"tokens_count,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	RunID        string    `json:"run_id"`
	AttemptedAt  time.Time `json:"attempted_at"`
}

// GetProviderStatus returns the newest fetch attempt per provider
func (h *Handler) GetProviderStatus(c *gin.Context) {
	attempts, err := h.store.LatestFetchAttempts(c.Request.Context())
	if err != nil {
		logger.Error(err, zap.String("endpoint", "provider_status"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load provider status"})
		return
	}

	statuses := make([]providerStatus, 0, len(attempts))
	for _, attempt := range attempts {
		statuses = append(statuses, providerStatus{
			Provider:     attempt.Provider,
			Success:      attempt.Success,
			ChainsCount:  attempt.ChainsCount,
			TokensCount:  attempt.TokensCount,
			ErrorMessage: attempt.ErrorMessage,
			RunID:        attempt.RunID,
			AttemptedAt:  attempt.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"providers": statuses})
}

// TriggerIngestion starts an ingestion pass in the background. At most one
// pass runs at a time.
func (h *Handler) TriggerIngestion(c *gin.Context) {
	runID, err := h.runner.RunAsync(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error(err, zap.String("endpoint", "trigger_ingestion"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start ingestion run"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "started",
		"run_id": runID,
	})
}

// AsyncRunner adapts a synchronous orchestrator run into the
// single-flight background execution the trigger endpoint needs.
type AsyncRunner struct {
	run     func(ctx context.Context, runID string) error
	running atomic.Bool
}

// NewAsyncRunner wraps run, which executes one full ingestion pass under the
// given run ID.
func NewAsyncRunner(run func(ctx context.Context, runID string) error) *AsyncRunner {
	return &AsyncRunner{run: run}
}

// RunAsync starts a pass on a background context and returns its run ID
// right away. A second call while one is running returns ErrRunInProgress.
func (r *AsyncRunner) RunAsync(_ context.Context) (string, error) {
	if !r.running.CompareAndSwap(false, true) {
		return "", ErrRunInProgress
	}

	runID := uuid.NewString()
	go func() {
		defer r.running.Store(false)
		// detached from the request context: the run outlives the HTTP call
		if err := r.run(context.Background(), runID); err != nil {
			logger.Error(err, zap.String("run_id", runID), zap.String("stage", "triggered_ingestion"))
		}
	}()

	return runID, nil
}
