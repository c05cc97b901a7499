package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("uses default configuration when no options are provided", func(t *testing.T) {
		client := NewClient()

		assert.NotNil(t, client, "NewClient should return a non-nil client")
		assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout, "default HTTP timeout should be 5s")
		assert.Equal(t, 1*time.Second, client.RetryWaitMin, "default RetryWaitMin should be 1s")
		assert.Equal(t, 5*time.Second, client.RetryWaitMax, "default RetryWaitMax should be 5s")
		assert.Equal(t, 2, client.RetryMax, "default RetryMax should be 2")
	})

	t.Run("applies provided options correctly", func(t *testing.T) {
		customTimeout := 10 * time.Second
		customMin := 200 * time.Millisecond
		customMax := 10 * time.Second
		customRetries := 5

		client := NewClient(
			WithTimeout(customTimeout),
			WithRetryWaitMin(customMin),
			WithRetryWaitMax(customMax),
			WithRetryMax(customRetries),
		)

		assert.Equal(t, customTimeout, client.HTTPClient.Timeout, "custom HTTP timeout should be applied")
		assert.Equal(t, customMin, client.RetryWaitMin, "custom RetryWaitMin should be applied")
		assert.Equal(t, customMax, client.RetryWaitMax, "custom RetryWaitMax should be applied")
		assert.Equal(t, customRetries, client.RetryMax, "custom RetryMax should be applied")
	})

	t.Run("does not wrap the transport without a request interval", func(t *testing.T) {
		client := NewClient()

		_, paced := client.HTTPClient.Transport.(*pacedTransport)
		assert.False(t, paced, "transport should not be paced by default")
	})

	t.Run("wraps the transport when a request interval is set", func(t *testing.T) {
		client := NewClient(WithRequestInterval(10 * time.Millisecond))

		_, paced := client.HTTPClient.Transport.(*pacedTransport)
		assert.True(t, paced, "transport should be paced when a request interval is configured")
	})
}

func TestWithTimeout(t *testing.T) {
	cfg := &config{}
	timeout := 10 * time.Second

	opt := WithTimeout(timeout)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, timeout, cfg.timeout, "timeout should be set correctly")
}

func TestWithRetryWaitMin(t *testing.T) {
	cfg := &config{}
	min := 500 * time.Millisecond

	opt := WithRetryWaitMin(min)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, min, cfg.retryWaitMin, "retryWaitMin should be set correctly")
}

func TestWithRetryWaitMax(t *testing.T) {
	cfg := &config{}
	max := 8 * time.Second

	opt := WithRetryWaitMax(max)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, max, cfg.retryWaitMax, "retryWaitMax should be set correctly")
}

func TestWithRetryMax(t *testing.T) {
	cfg := &config{}
	retries := 5

	opt := WithRetryMax(retries)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, retries, cfg.retryMax, "retryMax should be set correctly")
}

func TestWithRequestInterval(t *testing.T) {
	cfg := &config{}
	interval := 250 * time.Millisecond

	opt := WithRequestInterval(interval)
	require.NotNil(t, opt)

	opt(cfg)
	assert.Equal(t, interval, cfg.requestInterval, "requestInterval should be set correctly")
}

func TestPacedTransport(t *testing.T) {
	t.Run("spaces out consecutive requests", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		interval := 50 * time.Millisecond
		client := NewClient(WithRequestInterval(interval))

		start := time.Now()
		for range 3 {
			res, err := client.HTTPClient.Get(server.URL)
			require.NoError(t, err)
			res.Body.Close()
		}
		elapsed := time.Since(start)

		// First request is immediate, the next two wait one interval each.
		assert.GreaterOrEqual(t, elapsed, 2*interval, "three requests should span at least two intervals")
	})

	t.Run("gives up waiting when the context is done", func(t *testing.T) {
		transport := &pacedTransport{interval: time.Hour}
		transport.notBefore = time.Now().Add(time.Hour)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://localhost", nil)
		require.NoError(t, err)

		_, err = transport.RoundTrip(req)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
