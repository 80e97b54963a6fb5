package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Get performs a GET request and unmarshals the JSON response into result
	Get(ctx context.Context, url string, result interface{}) error

	// GetBytes performs a GET request and returns the raw response body
	GetBytes(ctx context.Context, url string) ([]byte, error)
}

// RealHTTPClient implements HTTPClient using the standard http package.
// Requests fail fast: provider fetches are never retried, a failed provider
// is simply recorded as a failed fetch attempt.
type RealHTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new real HTTP client with a fixed timeout
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *RealHTTPClient) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, nil
}

// Get performs a GET request and unmarshals the JSON response into result
func (c *RealHTTPClient) Get(ctx context.Context, url string, result interface{}) error {
	respBody, err := c.do(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetBytes performs a GET request and returns the raw response body
func (c *RealHTTPClient) GetBytes(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, url)
}

// RetryingHTTPClient wraps an HTTPClient with exponential backoff. Only the
// chain-registry catalog fetches use it; provider adapters stay fail-fast.
type RetryingHTTPClient struct {
	inner      HTTPClient
	maxRetries uint64
}

// NewRetryingHTTPClient creates an HTTP client that retries failed requests
// up to maxRetries times with exponential backoff and jitter.
func NewRetryingHTTPClient(inner HTTPClient, maxRetries uint64) HTTPClient {
	return &RetryingHTTPClient{
		inner:      inner,
		maxRetries: maxRetries,
	}
}

func (c *RetryingHTTPClient) retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.RandomizationFactor = 0.5 // jitter to avoid thundering herd

	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)
	return backoff.Retry(operation, policy)
}

// Get performs a GET request with retries and unmarshals the response
func (c *RetryingHTTPClient) Get(ctx context.Context, url string, result interface{}) error {
	return c.retry(ctx, func() error {
		return c.inner.Get(ctx, url, result)
	})
}

// GetBytes performs a GET request with retries and returns the raw body
func (c *RetryingHTTPClient) GetBytes(ctx context.Context, url string) ([]byte, error) {
	var respBody []byte
	err := c.retry(ctx, func() error {
		var innerErr error
		respBody, innerErr = c.inner.GetBytes(ctx, url)
		return innerErr
	})
	return respBody, err
}
