// Package http provides a configurable HTTP client with retry logic.
// It wraps the retryablehttp.Client from HashiCorp and exposes functional
// options for customizing timeouts, retry behavior, and request pacing.
package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// config holds internal settings for the HTTP client.
type config struct {
	timeout         time.Duration // maximum duration for a single HTTP request
	retryWaitMin    time.Duration // minimum delay between retry attempts
	retryWaitMax    time.Duration // maximum delay between retry attempts
	retryMax        int           // maximum number of retry attempts
	requestInterval time.Duration // minimum spacing between consecutive requests
}

// Option defines a functional option for configuring the HTTP client.
type Option func(*config)

// NewClient creates and returns a retryablehttp.Client configured with
// the provided options. If no options are given, default values are used:
//
//   - timeout:         5 seconds
//   - retryWaitMin:    1 second
//   - retryWaitMax:    5 seconds
//   - retryMax:        2 retries
//   - requestInterval: 0 (no pacing)
func NewClient(opts ...Option) *retryablehttp.Client {
	cfg := config{
		timeout:      5 * time.Second,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 5 * time.Second,
		retryMax:     2,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryWaitMin = cfg.retryWaitMin
	client.RetryWaitMax = cfg.retryWaitMax
	client.RetryMax = cfg.retryMax

	if cfg.requestInterval > 0 {
		client.HTTPClient.Transport = &pacedTransport{
			next:     client.HTTPClient.Transport,
			interval: cfg.requestInterval,
		}
	}

	return client
}

// WithTimeout sets the maximum duration allowed for a single HTTP request.
// Default: 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRetryWaitMin sets the minimum delay between retry attempts.
// Default: 1 second.
func WithRetryWaitMin(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMin = d
	}
}

// WithRetryWaitMax sets the maximum delay between retry attempts.
// Default: 5 seconds.
func WithRetryWaitMax(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMax = d
	}
}

// WithRetryMax sets the maximum number of retry attempts for failed requests.
// Default: 2 retries.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.retryMax = n
	}
}

// WithRequestInterval enforces a minimum delay between the start of
// consecutive requests issued through the client. Useful against rate-limited
// APIs where bursts of sequential calls would get rejected.
// Default: 0 (requests are not paced).
func WithRequestInterval(d time.Duration) Option {
	return func(c *config) {
		c.requestInterval = d
	}
}

// pacedTransport is a RoundTripper that spaces out requests by a fixed
// interval. Requests arriving early block until their slot, or until their
// context is done.
type pacedTransport struct {
	next     http.RoundTripper
	interval time.Duration

	mu        sync.Mutex
	notBefore time.Time // earliest moment the next request may start
}

// RoundTrip implements http.RoundTripper.
func (t *pacedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	now := time.Now()
	wait := t.notBefore.Sub(now)
	if wait < 0 {
		wait = 0
	}
	t.notBefore = now.Add(wait + t.interval)
	t.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}

	transport := t.next
	if transport == nil {
		transport = http.DefaultTransport
	}
	return transport.RoundTrip(req)
}
