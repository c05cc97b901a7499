package cli

import (
	"context"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/watchlist"

	"github.com/urfave/cli/v3"
)

// runWatchCommand returns a CLI command that performs a single watch run:
// every address on the watch-list is checked once for a new token transfer,
// notices are emitted for what was found, and the updated history is
// persisted before the command exits.
//
// Usage example:
//
//	addresswatch run
//
// A missing watch-list is a fatal error: the command refuses to guess what
// should be watched.
func runWatchCommand(registry watchlist.Service, watcher addrwatch.Service) *cli.Command {
	return &cli.Command{
		Name:        "run",
		Description: "Checks every watched address once for new token transfers and persists the updated history.",
		Usage:       "Performs a single watch run over the configured watch-list.",
		Action: func(ctx context.Context, c *cli.Command) error {
			list, err := registry.Load(ctx)
			if err != nil {
				return err
			}

			report, err := watcher.Run(ctx, list.Addresses())
			if err != nil {
				return err
			}

			logger.Info(ctx, "watch run finished",
				"run_id", report.RunID,
				"checked", report.Checked,
				"changed", report.Changed,
				"no_transfers", report.NoTransfers,
				"duration", report.FinishedAt.Sub(report.StartedAt).String(),
			)

			return nil
		},
	}
}
