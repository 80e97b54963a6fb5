package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
)

// Client wraps an HTTPClient with per-host rate limiting. Each upstream
// provider lives on its own host, so keying limiters by host gives every
// provider an independent budget. Providers that walk their chain list with
// one request per chain (socket, synapse, debridge) are the main reason this
// exists; the single-shot providers barely notice it.
type Client struct {
	inner             adapter.HTTPClient
	requestsPerSecond float64
	burst             int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a rate-limited HTTP client. requestsPerSecond and burst
// apply per host; non-positive values fall back to 4 rps with burst 8.
func NewClient(inner adapter.HTTPClient, requestsPerSecond float64, burst int) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 4
	}
	if burst <= 0 {
		burst = 8
	}
	return &Client{
		inner:             inner,
		requestsPerSecond: requestsPerSecond,
		burst:             burst,
		limiters:          make(map[string]*rate.Limiter),
	}
}

func (c *Client) limiterFor(rawURL string) (*rate.Limiter, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	limiter, ok := c.limiters[u.Host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(c.requestsPerSecond), c.burst)
		c.limiters[u.Host] = limiter
	}
	return limiter, nil
}

func (c *Client) wait(ctx context.Context, rawURL string) error {
	limiter, err := c.limiterFor(rawURL)
	if err != nil {
		return err
	}
	return limiter.Wait(ctx)
}

// Get waits for the host's rate limiter, then delegates to the inner client
func (c *Client) Get(ctx context.Context, url string, result interface{}) error {
	if err := c.wait(ctx, url); err != nil {
		return err
	}
	return c.inner.Get(ctx, url, result)
}

// GetBytes waits for the host's rate limiter, then delegates to the inner client
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	if err := c.wait(ctx, url); err != nil {
		return nil, err
	}
	return c.inner.GetBytes(ctx, url)
}
