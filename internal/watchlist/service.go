// Package watchlist manages the set of addresses the watcher monitors:
// the ordered, duplicate-free watch-list itself, its persistence contract,
// and a small registry service for adding and removing entries.
package watchlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/validator"
)

// Service defines the interface for reading and editing the watch-list.
//
// Implementations are responsible for validating input and delegating
// persistence to the configured Storage.
type Service interface {
	// Load returns the current watch-list.
	//
	// Returns:
	//   - The stored WatchList in watch order.
	//   - ErrWatchlistNotFound if no list exists; callers decide whether
	//     that is fatal (a watch run) or recoverable (registration).
	Load(ctx context.Context) (WatchList, error)

	// StartWatching adds an address to the watch-list and persists the
	// updated list. Adding an address that is already watched succeeds
	// without rewriting the list.
	//
	// Returns:
	//   - An error if validation fails or the list cannot be persisted.
	StartWatching(ctx context.Context, address string) error

	// StopWatching removes an address from the watch-list and persists the
	// updated list. Removing an unknown address, or removing from a list
	// that does not exist, succeeds without touching storage.
	//
	// Returns:
	//   - An error if validation fails or the list cannot be persisted.
	StopWatching(ctx context.Context, address string) error
}

// service is the concrete implementation of the Service interface.
// It uses a Storage backend to persist the watch-list.
type service struct {
	storage Storage
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// New creates a new watch-list service using the provided Storage
// implementation.
func New(s Storage) *service {
	return &service{
		storage: s,
	}
}

// watchEntry is the validated form of a single registration request.
type watchEntry struct {
	Address string `validate:"required"` // address to watch, kept verbatim
}

// buildWatchEntry constructs and validates a watchEntry for the given
// address. It returns an error if validation fails.
func buildWatchEntry(address string) (watchEntry, error) {
	entry := watchEntry{
		Address: address,
	}

	return entry, validator.Validate(entry)
}

// Load implements the Service interface.
func (s *service) Load(ctx context.Context) (WatchList, error) {
	return s.storage.LoadWatchlist(ctx)
}

// StartWatching implements the Service interface. A missing watch-list is
// treated as empty, so the first registration creates it.
func (s *service) StartWatching(ctx context.Context, address string) error {
	entry, err := buildWatchEntry(address)
	if err != nil {
		return err
	}

	list, err := s.storage.LoadWatchlist(ctx)
	switch {
	case errors.Is(err, ErrWatchlistNotFound):
		list = NewWatchList()
	case err != nil:
		return fmt.Errorf("loading watch-list: %w", err)
	}

	if !list.Add(entry.Address) {
		logger.Debug(ctx, "address already watched", "address", entry.Address)
		return nil
	}

	logger.Info(ctx, "watching new address", "address", entry.Address)
	return s.storage.SaveWatchlist(ctx, list)
}

// StopWatching implements the Service interface.
func (s *service) StopWatching(ctx context.Context, address string) error {
	entry, err := buildWatchEntry(address)
	if err != nil {
		return err
	}

	list, err := s.storage.LoadWatchlist(ctx)
	switch {
	case errors.Is(err, ErrWatchlistNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("loading watch-list: %w", err)
	}

	if !list.Remove(entry.Address) {
		return nil
	}

	logger.Info(ctx, "stopped watching address", "address", entry.Address)
	return s.storage.SaveWatchlist(ctx, list)
}
