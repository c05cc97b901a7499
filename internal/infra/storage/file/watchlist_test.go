package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gabapcia/addresswatch/internal/watchlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatchlistStore(t *testing.T) {
	t.Run("creates the parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state", "addrs.txt")

		store, err := NewWatchlistStore(path)
		require.NoError(t, err)
		require.NotNil(t, store)

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestWatchlistStore_LoadWatchlist(t *testing.T) {
	t.Run("loads addresses in file order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addrs.txt")
		content := "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB\n" +
			"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\n" +
			"0x1111111111111111111111111111111111111111\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store, err := NewWatchlistStore(path)
		require.NoError(t, err)

		list, err := store.LoadWatchlist(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{
			"0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB",
			"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"0x1111111111111111111111111111111111111111",
		}, list.Addresses())
	})

	t.Run("missing file maps to ErrWatchlistNotFound", func(t *testing.T) {
		store, err := NewWatchlistStore(filepath.Join(t.TempDir(), "addrs.txt"))
		require.NoError(t, err)

		_, err = store.LoadWatchlist(context.Background())
		assert.ErrorIs(t, err, watchlist.ErrWatchlistNotFound)
	})

	t.Run("empty file loads as an empty watch-list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addrs.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		store, err := NewWatchlistStore(path)
		require.NoError(t, err)

		list, err := store.LoadWatchlist(context.Background())
		require.NoError(t, err)
		assert.Zero(t, list.Len())
	})

	t.Run("read failures are not reported as a missing watch-list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addrs.txt")
		require.NoError(t, os.Mkdir(path, 0o755))

		store, err := NewWatchlistStore(path)
		require.NoError(t, err)

		_, err = store.LoadWatchlist(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, watchlist.ErrWatchlistNotFound)
	})
}

func TestWatchlistStore_SaveWatchlist(t *testing.T) {
	t.Run("writes one address per line in watch order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addrs.txt")

		store, err := NewWatchlistStore(path)
		require.NoError(t, err)

		list := watchlist.NewWatchList(
			"0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB",
			"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		)
		require.NoError(t, store.SaveWatchlist(context.Background(), list))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB\n0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\n", string(data))
	})

	t.Run("empty watch-list writes an empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addrs.txt")

		store, err := NewWatchlistStore(path)
		require.NoError(t, err)
		require.NoError(t, store.SaveWatchlist(context.Background(), watchlist.NewWatchList()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("round trips through load", func(t *testing.T) {
		store, err := NewWatchlistStore(filepath.Join(t.TempDir(), "addrs.txt"))
		require.NoError(t, err)

		saved := watchlist.NewWatchList(
			"0x1111111111111111111111111111111111111111",
			"0x2222222222222222222222222222222222222222",
			"0x3333333333333333333333333333333333333333",
		)
		require.NoError(t, store.SaveWatchlist(context.Background(), saved))

		loaded, err := store.LoadWatchlist(context.Background())
		require.NoError(t, err)
		assert.Equal(t, saved.Addresses(), loaded.Addresses())
	})

	t.Run("leaves no temporary file behind", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addrs.txt")

		store, err := NewWatchlistStore(path)
		require.NoError(t, err)
		require.NoError(t, store.SaveWatchlist(context.Background(), watchlist.NewWatchList()))

		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})
}
