package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabapcia/addresswatch/internal/watchlist"
)

// WatchlistStore persists the watch-list as a plain text file with one
// address per line, in watch order.
type WatchlistStore struct {
	path string
}

// Ensure WatchlistStore implements the watchlist.Storage interface at compile time.
var _ watchlist.Storage = (*WatchlistStore)(nil)

// NewWatchlistStore creates a watch-list store backed by the file at path,
// creating the parent directory if it does not exist yet.
func NewWatchlistStore(path string) (*WatchlistStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return nil, err
		}
	}

	return &WatchlistStore{path: path}, nil
}

// LoadWatchlist reads the watch-list file, preserving address order. A
// missing file maps to watchlist.ErrWatchlistNotFound so callers can tell
// "never configured" apart from a read failure.
//
// Parameters:
//   - ctx: Context used for logging
//
// Returns:
//   - watchlist.WatchList: The persisted watch-list
//   - error: watchlist.ErrWatchlistNotFound when the file does not exist,
//     or any other failure reading or parsing it
func (s *WatchlistStore) LoadWatchlist(ctx context.Context) (watchlist.WatchList, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return watchlist.WatchList{}, fmt.Errorf("%w: %s", watchlist.ErrWatchlistNotFound, s.path)
		}
		return watchlist.WatchList{}, err
	}
	defer f.Close()

	return watchlist.Parse(f)
}

// SaveWatchlist writes the watch-list to disk, one address per line,
// replacing the previous file.
//
// Parameters:
//   - ctx: Context used for logging
//   - list: Watch-list to persist
//
// Returns:
//   - error: Any failure writing the file
func (s *WatchlistStore) SaveWatchlist(ctx context.Context, list watchlist.WatchList) error {
	addresses := list.Addresses()

	content := strings.Join(addresses, "\n")
	if len(addresses) > 0 {
		content += "\n"
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), fileMode); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
