package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
	"github.com/gabapcia/addresswatch/internal/config"
	"github.com/gabapcia/addresswatch/internal/handlers/cli"
	"github.com/gabapcia/addresswatch/internal/infra/etherscan"
	"github.com/gabapcia/addresswatch/internal/infra/notify/stdout"
	"github.com/gabapcia/addresswatch/internal/infra/notify/webhook"
	filestorage "github.com/gabapcia/addresswatch/internal/infra/storage/file"
	redisstorage "github.com/gabapcia/addresswatch/internal/infra/storage/redis"
	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/telemetry"
	transporthttp "github.com/gabapcia/addresswatch/internal/pkg/transport/http"
	"github.com/gabapcia/addresswatch/internal/watchlist"
)

// serviceName identifies this binary in telemetry resources.
const serviceName = "addresswatch"

// fatal reports a bootstrap failure and exits. The logger may not be up yet
// when the failure happens, so a default one is initialized first.
func fatal(ctx context.Context, msg string, err error) {
	_ = logger.Init()
	logger.Fatal(ctx, msg, "error", err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fatal(ctx, "failed to load configuration", err)
	}

	// Telemetry comes up before the logger so log records reach the OTLP
	// bridge as well.
	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			fatal(ctx, "failed to initialize telemetry", err)
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		fatal(ctx, "failed to initialize logger", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	httpClient := transporthttp.NewClient(
		transporthttp.WithTimeout(cfg.HTTPTimeout),
		transporthttp.WithRetryMax(cfg.HTTPRetryMax),
		transporthttp.WithRequestInterval(cfg.RequestInterval),
	)
	transferSource := etherscan.NewClient(httpClient, cfg.APIKey, etherscan.WithEndpoint(cfg.APIEndpoint))

	watchlistStore, err := filestorage.NewWatchlistStore(cfg.WatchlistPath)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize watch-list store", "error", err)
	}
	registry := watchlist.New(watchlistStore)

	var historyStorage addrwatch.HistoryStorage
	switch cfg.HistoryBackend {
	case config.HistoryBackendRedis:
		redisClient, err := redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal(ctx, "failed to connect to redis", "error", err)
		}
		defer redisClient.Close()

		historyStorage = redisClient
	default:
		historyStore, err := filestorage.NewHistoryStore(cfg.HistoryPath)
		if err != nil {
			logger.Fatal(ctx, "failed to initialize history store", "error", err)
		}

		historyStorage = historyStore
	}

	notifiers := []addrwatch.ChangeNotifier{stdout.NewNotifier(nil)}
	if cfg.WebhookURL != "" {
		// Webhook deliveries are retried by the notifier itself, so its HTTP
		// client runs with retries disabled.
		webhookClient := transporthttp.NewClient(
			transporthttp.WithTimeout(cfg.HTTPTimeout),
			transporthttp.WithRetryMax(0),
		)
		notifiers = append(notifiers, webhook.NewNotifier(webhookClient, cfg.WebhookURL))
	}

	watcher := addrwatch.New(
		transferSource,
		historyStorage,
		addrwatch.WithNotifier(addrwatch.MultiNotifier(notifiers...)),
	)

	if err := cli.Run(ctx, registry, watcher); err != nil {
		logger.Fatal(ctx, "addresswatch terminated with an error", "error", err)
	}
}
