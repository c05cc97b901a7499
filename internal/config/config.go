// Package config loads the watcher configuration from environment
// variables. Every variable carries the ADDRESSWATCH_ prefix, so the API
// key, for example, is read from ADDRESSWATCH_API_KEY.
package config

import (
	"time"

	"github.com/gabapcia/addresswatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix shared by every environment variable read by Load.
const envPrefix = "ADDRESSWATCH"

// History backends selectable via ADDRESSWATCH_HISTORY_BACKEND.
const (
	HistoryBackendFile  = "file"
	HistoryBackendRedis = "redis"
)

// Config holds every runtime setting of the watcher.
type Config struct {
	// Explorer API access.
	APIKey      string `envconfig:"API_KEY" required:"true"`
	APIEndpoint string `envconfig:"API_ENDPOINT" default:"https://api.etherscan.io/api" validate:"url"`

	// Outbound HTTP behavior, shared by the explorer client and the webhook.
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	HTTPRetryMax    int           `envconfig:"HTTP_RETRY_MAX" default:"2" validate:"min=0"`
	RequestInterval time.Duration `envconfig:"REQUEST_INTERVAL" default:"250ms" validate:"min=0"`

	// State file locations.
	WatchlistPath string `envconfig:"WATCHLIST_PATH" default:"addrs.txt" validate:"required"`
	HistoryPath   string `envconfig:"HISTORY_PATH" default:"latest_txs.txt" validate:"required"`

	// Transfer history backend. The file backend keeps state next to the
	// watch-list; the redis backend shares it between hosts.
	HistoryBackend string `envconfig:"HISTORY_BACKEND" default:"file" validate:"oneof=file redis"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisUsername  string `envconfig:"REDIS_USERNAME"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB"`

	// Optional webhook notified of every detected change, in addition to
	// the standard output notices.
	WebhookURL string `envconfig:"WEBHOOK_URL" validate:"omitempty,url"`

	// Observability.
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED"`
}

// Load reads the configuration from the environment and validates it.
//
// Returns:
//   - Config: The populated configuration
//   - error: Any missing required variable, parse failure or validation error
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
