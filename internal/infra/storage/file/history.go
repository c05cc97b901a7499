// Package file persists watcher state as plain files: a pretty-printed JSON
// document for the transfer history and a line-oriented text file for the
// watch-list. Both stores write through a temporary file and rename it into
// place so a crash mid-write never leaves a truncated document behind.
//
// The files are not locked. Only one process may run against a given store
// at a time; concurrent runs can overwrite each other's state.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
	"github.com/gabapcia/addresswatch/internal/pkg/logger"
)

// File and directory modes used for everything this package writes.
const (
	fileMode = 0o644
	dirMode  = 0o755
)

// historyIndent is the indentation unit used when writing the history file,
// four spaces, keeping the document easy to inspect and diff by hand.
const historyIndent = "    "

// HistoryStore persists the transfer history as a single JSON file mapping
// each address to the hash of its last known transfer.
type HistoryStore struct {
	path string
}

// Ensure HistoryStore implements the addrwatch.HistoryStorage interface at compile time.
var _ addrwatch.HistoryStorage = (*HistoryStore)(nil)

// NewHistoryStore creates a history store backed by the file at path,
// creating the parent directory if it does not exist yet.
func NewHistoryStore(path string) (*HistoryStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return nil, err
		}
	}

	return &HistoryStore{path: path}, nil
}

// LoadHistory reads the persisted history file. A missing file is not an
// error: the watcher may never have run before, so an empty history is
// returned. A file that exists but does not parse as JSON is discarded the
// same way, with a warning, so a corrupted state file never blocks a run.
//
// Parameters:
//   - ctx: Context used for logging
//
// Returns:
//   - addrwatch.History: The persisted history, or an empty one
//   - error: Any failure reading the file other than it not existing
func (s *HistoryStore) LoadHistory(ctx context.Context) (addrwatch.History, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(addrwatch.History), nil
		}
		return nil, err
	}

	var history addrwatch.History
	if err := json.Unmarshal(data, &history); err != nil {
		logger.Warn(ctx, "discarding unparsable transfer history", "path", s.path, "error", err)
		return make(addrwatch.History), nil
	}

	if history == nil {
		history = make(addrwatch.History)
	}

	return history, nil
}

// SaveHistory writes the full history to disk, replacing whatever was there
// before. The document is pretty-printed so the state file stays readable.
//
// Parameters:
//   - ctx: Context used for logging
//   - history: Complete history to persist
//
// Returns:
//   - error: Any failure encoding or writing the file
func (s *HistoryStore) SaveHistory(ctx context.Context, history addrwatch.History) error {
	data, err := json.MarshalIndent(history, "", historyIndent)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
