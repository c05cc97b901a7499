// Package stdout prints watch notices as plain text lines, one per event.
// This is the notifier operators read when running the watcher by hand.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gabapcia/addresswatch/internal/addrwatch"
)

// Notifier writes human-readable notices to a writer.
type Notifier struct {
	out io.Writer
}

// Ensure Notifier implements the addrwatch.ChangeNotifier interface at compile time.
var _ addrwatch.ChangeNotifier = (*Notifier)(nil)

// NewNotifier creates a notifier writing to the given writer. A nil writer
// selects standard output.
func NewNotifier(out io.Writer) *Notifier {
	if out == nil {
		out = os.Stdout
	}

	return &Notifier{out: out}
}

// NotifyChange prints a single line announcing the new transaction.
func (n *Notifier) NotifyChange(ctx context.Context, event addrwatch.ChangeEvent) error {
	_, err := fmt.Fprintf(n.out, "New transaction for %s, hash: %s\n", event.Address, event.Hash)
	return err
}

// NotifyNoTransfers prints a single line noting the address has no
// transactions yet.
func (n *Notifier) NotifyNoTransfers(ctx context.Context, address string) error {
	_, err := fmt.Fprintf(n.out, "No transactions for %s\n", address)
	return err
}
