// Package addrwatch implements the core watch cycle: compare the latest
// on-chain token transfer of each watched address against the persisted
// history, emit a ChangeEvent for every difference, and write the updated
// history back.
//
// A run is strictly sequential. Addresses are checked one at a time in
// watch-list order, and the first transport or notification failure aborts
// the remaining work, so one run never observes a half-consistent world.
package addrwatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"

	"github.com/google/uuid"
)

// Service runs complete watch cycles over a set of addresses.
type Service interface {
	// Run executes one full watch cycle: it loads the persisted history,
	// checks every given address in order, and persists the updated
	// history at the end.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout for the whole cycle.
	//   - addresses: the addresses to check, in watch-list order.
	//
	// Returns:
	//   - A RunReport describing how far the run got, even on failure.
	//   - An error if loading, any fetch, any notification, or persisting failed.
	Run(ctx context.Context, addresses []string) (RunReport, error)
}

// service is the concrete implementation of the Service interface.
type service struct {
	transferSource TransferSource
	historyStorage HistoryStorage
	changeNotifier ChangeNotifier

	runID             string
	persistEachChange bool
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// config holds the optional settings applied by New.
type config struct {
	changeNotifier    ChangeNotifier
	runID             string
	persistEachChange bool
}

// Option defines a functional option for configuring the watcher service.
type Option func(*config)

// WithNotifier sets the ChangeNotifier that receives change events and
// no-transfer notices. Default: a no-op notifier.
func WithNotifier(n ChangeNotifier) Option {
	return func(c *config) {
		c.changeNotifier = n
	}
}

// WithRunID fixes the identifier attached to every run of this service
// instance. Default: a fresh UUIDv7 is generated per run.
func WithRunID(id string) Option {
	return func(c *config) {
		c.runID = id
	}
}

// WithPersistEachChange makes the service save the history after every
// accepted change, in addition to the final save at the end of the run.
// A crash mid-run then loses at most the change being processed, at the
// cost of one storage write per changed address. Default: the history is
// written once, at the end of a fully successful run.
func WithPersistEachChange() Option {
	return func(c *config) {
		c.persistEachChange = true
	}
}

// New creates a watcher service backed by the given transfer source and
// history storage, applying any options.
func New(ts TransferSource, hs HistoryStorage, opts ...Option) *service {
	cfg := config{
		changeNotifier: nopChangeNotifier{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		transferSource:    ts,
		historyStorage:    hs,
		changeNotifier:    cfg.changeNotifier,
		runID:             cfg.runID,
		persistEachChange: cfg.persistEachChange,
	}
}

// Run implements the Service interface.
func (s *service) Run(ctx context.Context, addresses []string) (RunReport, error) {
	runID := s.runID
	if runID == "" {
		runID = uuid.Must(uuid.NewV7()).String()
	}
	ctx = logger.Derive(ctx, "run_id", runID)

	report := RunReport{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
	}

	history, err := s.historyStorage.LoadHistory(ctx)
	if err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, fmt.Errorf("loading transfer history: %w", err)
	}
	if history == nil {
		history = make(History)
	}

	logger.Info(ctx, "starting watch run", "addresses", len(addresses), "known_addresses", len(history))

	if err := s.checkAll(ctx, addresses, history, &report); err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, err
	}

	if err := s.historyStorage.SaveHistory(ctx, history); err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, fmt.Errorf("persisting transfer history: %w", err)
	}

	report.FinishedAt = time.Now().UTC()
	logger.Info(ctx, "watch run finished",
		"checked", report.Checked,
		"changed", report.Changed,
		"no_transfers", report.NoTransfers,
	)
	return report, nil
}

// checkAll walks the addresses in order, fetching the latest transfer for
// each and reconciling it against the in-memory history. The history map is
// mutated in place; the report accumulates counters as the loop progresses.
func (s *service) checkAll(ctx context.Context, addresses []string, history History, report *RunReport) error {
	for _, address := range addresses {
		if err := ctx.Err(); err != nil {
			return err
		}

		report.Checked++

		transfer, err := s.transferSource.LatestTransfer(ctx, address)
		switch {
		case errors.Is(err, ErrNoTransfers):
			report.NoTransfers++
			logger.Debug(ctx, "address has no transfers", "address", address)
			if err := s.changeNotifier.NotifyNoTransfers(ctx, address); err != nil {
				return fmt.Errorf("notifying no transfers for %q: %w", address, err)
			}
			continue
		case err != nil:
			return fmt.Errorf("fetching latest transfer for %q: %w", address, err)
		}

		lastKnown, tracked := history[address]
		if tracked && lastKnown == transfer.Hash {
			logger.Debug(ctx, "no new transfers", "address", address, "hash", transfer.Hash)
			continue
		}

		event := ChangeEvent{
			RunID:    report.RunID,
			Address:  address,
			Hash:     transfer.Hash,
			Transfer: transfer,
		}
		if err := s.changeNotifier.NotifyChange(ctx, event); err != nil {
			return fmt.Errorf("notifying change for %q: %w", address, err)
		}

		history[address] = transfer.Hash
		report.Changed++
		logger.Info(ctx, "new transfer observed", "address", address, "hash", transfer.Hash, "previous_hash", lastKnown)

		if s.persistEachChange {
			if err := s.historyStorage.SaveHistory(ctx, history); err != nil {
				return fmt.Errorf("persisting transfer history: %w", err)
			}
		}
	}

	return nil
}
