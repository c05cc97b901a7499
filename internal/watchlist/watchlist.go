package watchlist

import (
	"bufio"
	"io"

	"github.com/gabapcia/addresswatch/internal/pkg/types"
)

// WatchList is an ordered collection of unique addresses to monitor.
//
// Addresses are kept verbatim: no trimming beyond line endings, no case
// folding. Two spellings of the same account ("0xAbC" vs "0xabc") are
// therefore distinct entries, and duplicates keep their first position.
//
// Use NewWatchList or Parse to obtain a usable value; the zero value has
// no backing storage.
type WatchList struct {
	set *types.OrderedSet[string]
}

// NewWatchList builds a WatchList from the given addresses, dropping
// duplicates while preserving first-seen order.
func NewWatchList(addresses ...string) WatchList {
	return WatchList{
		set: types.NewOrderedSet(addresses...),
	}
}

// Parse reads a line-oriented watch-list: one address per line, in file
// order. Blank lines are skipped, line endings (LF or CRLF) are stripped,
// and duplicate lines collapse into the first occurrence.
//
// Returns an error only if reading from r fails.
func Parse(r io.Reader) (WatchList, error) {
	list := NewWatchList()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		address := scanner.Text()
		if address == "" {
			continue
		}
		list.set.Add(address)
	}
	if err := scanner.Err(); err != nil {
		return WatchList{}, err
	}

	return list, nil
}

// Addresses returns the addresses in watch order. The returned slice is a
// copy and safe to modify.
func (w WatchList) Addresses() []string {
	return w.set.ToSlice()
}

// Contains reports whether the given address is on the list.
func (w WatchList) Contains(address string) bool {
	return w.set.Contains(address)
}

// Len returns the number of watched addresses.
func (w WatchList) Len() int {
	return w.set.Len()
}

// Add appends the address to the end of the list. It reports whether the
// list changed; adding an address that is already present is a no-op.
func (w WatchList) Add(address string) bool {
	if w.set.Contains(address) {
		return false
	}
	w.set.Add(address)
	return true
}

// Remove deletes the address from the list. It reports whether the list
// changed; removing an address that is not present is a no-op.
func (w WatchList) Remove(address string) bool {
	if !w.set.Contains(address) {
		return false
	}
	w.set.Delete(address)
	return true
}
