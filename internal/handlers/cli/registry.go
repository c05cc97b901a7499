package cli

import (
	"context"

	"github.com/gabapcia/addresswatch/internal/watchlist"

	"github.com/urfave/cli/v3"
)

// startWatchingAddressCommand returns a CLI command that registers an address
// on the watch-list, so future runs check it for new token transfers.
//
// Usage example:
//
//	addresswatch watch --address 0xABC123...
func startWatchingAddressCommand(registry watchlist.Service) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Register an address to be checked for new token transfers on future runs.",
		Usage:       "Adds an address to the watch-list. The address is stored exactly as given.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Account address to start watching",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return registry.StartWatching(ctx, c.String("address"))
		},
	}
}

// stopWatchingAddressCommand returns a CLI command that removes an address
// from the watch-list, so future runs skip it.
//
// Usage example:
//
//	addresswatch unwatch --address 0xABC123...
func stopWatchingAddressCommand(registry watchlist.Service) *cli.Command {
	return &cli.Command{
		Name:        "unwatch",
		Description: "Unregister an address so future runs no longer check it.",
		Usage:       "Removes an address from the watch-list.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Account address to stop watching",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return registry.StopWatching(ctx, c.String("address"))
		},
	}
}
