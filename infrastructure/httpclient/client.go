// Package httpclient provides the outbound HTTP client shared by the
// network-backed collectors. It layers rate limiting and a circuit
// breaker over net/http so upstream etiquette and failure isolation live
// in one place instead of in every collector.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/chiku1101/druggs/internal/ports"
)

// maxResponseBytes caps how much of an upstream body is read. Evidence
// responses are small; anything larger is malformed.
const maxResponseBytes = 8 << 20

// Client is a rate-limited, circuit-broken HTTP fetcher for one
// upstream. Safe for concurrent use.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// New builds a client for the named upstream. The limiter applies
// requestsPerSecond with the given burst; the breaker opens after
// repeated consecutive failures and recovers on its own.
func New(name string, requestsPerSecond float64, burst int) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Get fetches the URL and returns the response body. It blocks on the
// rate limiter first, then runs the request through the breaker. A
// non-2xx status, an open breaker, and a transport fault all surface as
// wrapped sentinel errors from the ports package.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open for %s", ports.ErrUpstreamUnavailable, c.breaker.Name())
		}
		return nil, err
	}
	return body.([]byte), nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/xml;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ports.ErrUpstreamStatus, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
