package cli

import (
	"context"
	"os"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
	"github.com/gabapcia/addresswatch/internal/watchlist"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the addresswatch CLI application.
//
// It registers all available commands, including:
//
//   - `run`: Performs a single watch run over every watched address.
//   - `watch`: Registers an address for monitoring.
//   - `unwatch`: Unregisters an address from monitoring.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - registry: The watchlist service implementation used by address commands.
//   - watcher: The addrwatch service implementation used by the run command.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, registry watchlist.Service, watcher addrwatch.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "addresswatch",
		Description:           "Command-line interface for watching addresses for new token transfers.",
		Usage:                 "addresswatch [command] [flags]",
		Commands: []*cli.Command{
			runWatchCommand(registry, watcher),
			startWatchingAddressCommand(registry),
			stopWatchingAddressCommand(registry),
		},
	}

	return app.Run(ctx, os.Args)
}
