package redis

import (
	"context"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
)

// historyKeyPrefix is the Redis key namespace used by the transfer history store.
const historyKeyPrefix = "addresswatch"

// historyKey is the Redis hash holding one field per watched address, whose
// value is the hash of the last transfer seen for it.
const historyKey = historyKeyPrefix + ":history"

// LoadHistory implements the addrwatch.HistoryStorage interface using a Redis hash.
//
// A missing key is not an error: the watcher may never have run before, in
// which case an empty history is returned.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//
// Returns:
//   - addrwatch.History: One entry per address with a known transfer
//   - error: Any failure reported by Redis
func (c *client) LoadHistory(ctx context.Context) (addrwatch.History, error) {
	entries, err := c.conn.HGetAll(ctx, historyKey).Result()
	if err != nil {
		return nil, err
	}

	history := make(addrwatch.History, len(entries))
	for address, hash := range entries {
		history[address] = hash
	}

	return history, nil
}

// SaveHistory implements the addrwatch.HistoryStorage interface using a Redis hash.
//
// The stored hash is replaced wholesale, dropping entries for addresses that
// are no longer part of the given history. The delete and the rewrite run in
// a single transactional pipeline so readers never observe the key mid-update.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - history: Complete history to persist
//
// Returns:
//   - error: Any failure reported by Redis
func (c *client) SaveHistory(ctx context.Context, history addrwatch.History) error {
	pipe := c.conn.TxPipeline()

	pipe.Del(ctx, historyKey)
	if len(history) > 0 {
		pipe.HSet(ctx, historyKey, map[string]string(history))
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Compile-time assertion to ensure *client satisfies the addrwatch.HistoryStorage interface
var _ addrwatch.HistoryStorage = new(client)
