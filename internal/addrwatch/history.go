package addrwatch

import "context"

// History maps each watched address to the hash of the most recent token
// transfer known for it. Addresses that have never shown a transfer are
// simply absent from the map.
//
// Keys are the literal address strings from the watch-list: no case folding
// or normalization is applied, so "0xAbC" and "0xabc" are distinct entries.
type History map[string]string

// HistoryStorage persists the transfer history between runs.
//
// Implementations decide where the mapping lives (a local file, Redis, ...)
// but share the same recovery contract: a store that has never been written
// loads as an empty History, not as an error.
type HistoryStorage interface {
	// LoadHistory retrieves the full address-to-hash mapping.
	//
	// Returns:
	//   - The stored History, or an empty one if nothing was stored yet.
	//   - An error only when the backend itself failed; "no data" is not an error.
	LoadHistory(ctx context.Context) (History, error)

	// SaveHistory replaces the stored mapping with the given one in full.
	// Partial updates are not supported: after a successful call the store
	// reflects exactly the provided History.
	SaveHistory(ctx context.Context, history History) error
}
