package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/api/middleware"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/api/rest"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/mocks"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/store/schema"
)

func newRouter(t *testing.T, mockStore *mocks.MockStore, runner rest.IngestionRunner) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := rest.NewHandler(mockStore, runner)
	rest.SetupRoutes(router, handler, middleware.AuthConfig{APIKeys: []string{"test-key"}})
	return router
}

type stubRunner struct {
	runID string
	err   error
}

func (s stubRunner) RunAsync(context.Context) (string, error) {
	return s.runID, s.err
}

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	router := newRouter(t, mockStore, stubRunner{})

	mockStore.EXPECT().Ping(gomock.Any()).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	router := newRouter(t, mockStore, stubRunner{})

	mockStore.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetProviderStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	router := newRouter(t, mockStore, stubRunner{})

	chains := 10
	tokens := 250
	errMsg := "upstream 500"
	mockStore.EXPECT().LatestFetchAttempts(gomock.Any()).Return([]schema.FetchAttempt{
		{Provider: "lifi", Success: true, ChainsCount: &chains, TokensCount: &tokens, RunID: "run-1", CreatedAt: time.Now()},
		{Provider: "squid", Success: false, ErrorMessage: &errMsg, RunID: "run-1", CreatedAt: time.Now()},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Providers []struct {
			Provider     string  `json:"provider"`
			Success      bool    `json:"success"`
			TokensCount  *int    `json:"tokens_count"`
			ErrorMessage *string `json:"error_message"`
		} `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Providers, 2)
	assert.Equal(t, "lifi", body.Providers[0].Provider)
	assert.True(t, body.Providers[0].Success)
	require.NotNil(t, body.Providers[0].TokensCount)
	assert.Equal(t, 250, *body.Providers[0].TokensCount)
	assert.False(t, body.Providers[1].Success)
	require.NotNil(t, body.Providers[1].ErrorMessage)
}

func TestTriggerIngestion_RequiresAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	router := newRouter(t, mockStore, stubRunner{runID: "run-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fetch", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/fetch", nil)
	req.Header.Set("Authorization", "ApiKey wrong-key")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTriggerIngestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	router := newRouter(t, mockStore, stubRunner{runID: "run-42"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fetch", nil)
	req.Header.Set("Authorization", "ApiKey test-key")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "run-42", body["run_id"])
}

func TestTriggerIngestion_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	router := newRouter(t, mockStore, stubRunner{err: rest.ErrRunInProgress})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fetch", nil)
	req.Header.Set("Authorization", "ApiKey test-key")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAsyncRunner_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	runner := rest.NewAsyncRunner(func(_ context.Context, runID string) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	})

	runID, err := runner.RunAsync(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	<-started
	_, err = runner.RunAsync(context.Background())
	assert.ErrorIs(t, err, rest.ErrRunInProgress)

	close(release)
}
