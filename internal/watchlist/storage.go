package watchlist

import (
	"context"
	"errors"
)

// ErrWatchlistNotFound indicates that no watch-list has been stored yet.
//
// For read paths this is a hard failure: a run cannot proceed without
// knowing what to watch. Registration paths treat it as "start from an
// empty list" instead.
var ErrWatchlistNotFound = errors.New("watch-list not found")

// Storage persists the watch-list between invocations.
type Storage interface {
	// LoadWatchlist retrieves the stored watch-list in watch order.
	//
	// Returns:
	//   - The stored WatchList on success.
	//   - ErrWatchlistNotFound if no list was ever stored.
	//   - Any other error if the backend failed.
	LoadWatchlist(ctx context.Context) (WatchList, error)

	// SaveWatchlist replaces the stored watch-list with the given one,
	// preserving its order.
	SaveWatchlist(ctx context.Context, list WatchList) error
}
