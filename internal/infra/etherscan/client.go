// Package etherscan implements the addrwatch.TransferSource interface on top
// of the Etherscan account API (and any compatible explorer exposing the same
// envelope), using a retrying HTTP client.
package etherscan

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/addresswatch/internal/addrwatch"

	"github.com/hashicorp/go-retryablehttp"
)

// defaultEndpoint is the public Etherscan API endpoint used when no
// override is configured.
const defaultEndpoint = "https://api.etherscan.io/api"

var (
	// ErrUnexpectedStatusCode indicates the API answered with a non-OK HTTP status.
	ErrUnexpectedStatusCode = errors.New("unexpected http status code")

	// ErrAPIReturnedError indicates the API accepted the request but rejected it
	// at the application level (bad key, malformed address, rate limiting, ...).
	ErrAPIReturnedError = errors.New("etherscan api error")
)

// apiResponse represents the envelope every Etherscan endpoint wraps its
// payload in. Status is "1" for success and "0" otherwise; on failure the
// Result field usually carries a more specific reason as a JSON string.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// statusOK is the envelope status value reported for successful requests.
const statusOK = "1"

// noTransactionsFoundMessage is the envelope message Etherscan reports when
// a query matches no transactions. The envelope status is "0" in that case
// even though nothing actually failed.
const noTransactionsFoundMessage = "No transactions found"

// emptyResultSet reports whether the envelope describes a query that simply
// matched nothing, which callers must not confuse with an API failure.
func (r apiResponse) emptyResultSet() bool {
	return r.Status != statusOK && r.Message == noTransactionsFoundMessage
}

// Err returns an error if the envelope reports an application-level failure.
// It wraps ErrAPIReturnedError with the envelope message, enriched with the
// reason string from the Result field when one is present.
func (r apiResponse) Err() error {
	if r.Status == statusOK {
		return nil
	}

	detail := r.Message
	if len(r.Result) > 0 {
		var reason string
		if err := json.Unmarshal(r.Result, &reason); err == nil && reason != "" {
			detail = fmt.Sprintf("%s - %s", r.Message, reason)
		}
	}

	return fmt.Errorf("%w: %s", ErrAPIReturnedError, detail)
}

// client implements the addrwatch.TransferSource interface using the
// Etherscan HTTP API.
type client struct {
	httpClient *retryablehttp.Client // underlying HTTP client with retry support
	endpoint   string                // base URL of the explorer API
	apiKey     string                // API key appended to every request
}

// Ensure client implements the addrwatch.TransferSource interface at compile time.
var _ addrwatch.TransferSource = (*client)(nil)

// config holds the optional settings applied by NewClient.
type config struct {
	endpoint string
}

// Option defines a functional option for configuring the client.
type Option func(*config)

// WithEndpoint overrides the API base URL. Useful for Etherscan-compatible
// explorers of other networks and for tests.
// Default: the public Etherscan endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.endpoint = endpoint
	}
}

// NewClient creates a new Etherscan API client using the provided HTTP
// client and API key.
func NewClient(httpClient *retryablehttp.Client, apiKey string, opts ...Option) *client {
	cfg := config{
		endpoint: defaultEndpoint,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &client{
		httpClient: httpClient,
		endpoint:   cfg.endpoint,
		apiKey:     apiKey,
	}
}
