// Package webhook delivers change events to an HTTP endpoint as JSON POST
// requests, retrying failed deliveries with exponential backoff before
// giving up.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/resilience/retry"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrDeliveryFailed indicates the endpoint answered with a non-success status.
var ErrDeliveryFailed = errors.New("webhook delivery failed")

// changePayload is the JSON document posted for every detected change.
type changePayload struct {
	RunID           string    `json:"run_id"`
	Address         string    `json:"address"`
	Hash            string    `json:"hash"`
	BlockNumber     uint64    `json:"block_number"`
	Timestamp       time.Time `json:"timestamp"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	ContractAddress string    `json:"contract_address"`
	Value           string    `json:"value"`
	TokenName       string    `json:"token_name"`
	TokenSymbol     string    `json:"token_symbol"`
}

// newChangePayload flattens a change event into the wire document.
func newChangePayload(event addrwatch.ChangeEvent) changePayload {
	return changePayload{
		RunID:           event.RunID,
		Address:         event.Address,
		Hash:            event.Hash,
		BlockNumber:     event.Transfer.BlockNumber,
		Timestamp:       event.Transfer.Timestamp,
		From:            event.Transfer.From,
		To:              event.Transfer.To,
		ContractAddress: event.Transfer.ContractAddress,
		Value:           event.Transfer.Value,
		TokenName:       event.Transfer.TokenName,
		TokenSymbol:     event.Transfer.TokenSymbol,
	}
}

// Notifier posts change events to a webhook URL.
type Notifier struct {
	httpClient   *retryablehttp.Client
	url          string
	retryOptions []retry.Option
}

// Ensure Notifier implements the addrwatch.ChangeNotifier interface at compile time.
var _ addrwatch.ChangeNotifier = (*Notifier)(nil)

// config holds the optional settings applied by NewNotifier.
type config struct {
	retryOptions []retry.Option
}

// Option defines a functional option for configuring the notifier.
type Option func(*config)

// WithRetryOptions overrides the retry behavior applied to each delivery.
// Default: the retry package defaults.
func WithRetryOptions(opts ...retry.Option) Option {
	return func(c *config) {
		c.retryOptions = opts
	}
}

// NewNotifier creates a notifier posting to the given URL. Delivery retries
// are handled here, so the HTTP client is expected to have its own retries
// disabled.
func NewNotifier(httpClient *retryablehttp.Client, url string, opts ...Option) *Notifier {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Notifier{
		httpClient:   httpClient,
		url:          url,
		retryOptions: cfg.retryOptions,
	}
}

// NotifyChange posts the change event to the webhook URL, retrying failed
// deliveries. Any error left after the retries abort the watch run.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - event: Change event to deliver
//
// Returns:
//   - error: ErrDeliveryFailed when the endpoint keeps rejecting the event,
//     or any encoding or transport error
func (n *Notifier) NotifyChange(ctx context.Context, event addrwatch.ChangeEvent) error {
	body, err := json.Marshal(newChangePayload(event))
	if err != nil {
		return err
	}

	return n.deliver(ctx, body)
}

// NotifyNoTransfers is a no-op: an address without transactions is routine
// and not worth a delivery.
func (n *Notifier) NotifyNoTransfers(ctx context.Context, address string) error {
	return nil
}

// deliver posts the body, wrapping the attempt in the configured retry
// policy. Each failed attempt is logged before the next one starts.
func (n *Notifier) deliver(ctx context.Context, body []byte) error {
	options := append([]retry.Option{
		retry.WithOnRetry(func(attempt uint, err error) {
			logger.Warn(ctx, "webhook delivery failed, retrying", "attempt", attempt, "error", err)
		}),
	}, n.retryOptions...)

	return retry.New(options...).Execute(ctx, func() error {
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		res, err := n.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			return fmt.Errorf("%w: status code %d", ErrDeliveryFailed, res.StatusCode)
		}

		return nil
	})
}
