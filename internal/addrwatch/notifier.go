package addrwatch

import "context"

// ChangeEvent describes a newly observed token transfer for a watched
// address. It is emitted whenever the latest transfer hash differs from the
// one recorded in the history, including the first time an address shows
// any activity.
type ChangeEvent struct {
	RunID    string   // identifier of the run that observed the change
	Address  string   // the watched address the transfer involves
	Hash     string   // hash of the newly observed transfer
	Transfer Transfer // full details of the transfer
}

// ChangeNotifier receives the outcomes the watcher considers noteworthy:
// a new transfer for an address, or the absence of any transfers at all.
//
// Notifications are delivered synchronously from the watch loop, in
// watch-list order. An error from either method aborts the run, so
// implementations that only provide best-effort delivery should swallow
// their own failures.
type ChangeNotifier interface {
	// NotifyChange is invoked once per detected transfer change.
	NotifyChange(ctx context.Context, event ChangeEvent) error

	// NotifyNoTransfers is invoked when a watched address has no transfer
	// activity at all.
	NotifyNoTransfers(ctx context.Context, address string) error
}

// nopChangeNotifier is a no-op ChangeNotifier that discards every event.
// It is the default used when no notifier is configured.
type nopChangeNotifier struct{}

// Ensure compile-time compliance with the ChangeNotifier interface.
var _ ChangeNotifier = (*nopChangeNotifier)(nil)

// NotifyChange in nopChangeNotifier does nothing.
func (nopChangeNotifier) NotifyChange(ctx context.Context, event ChangeEvent) error {
	return nil
}

// NotifyNoTransfers in nopChangeNotifier does nothing.
func (nopChangeNotifier) NotifyNoTransfers(ctx context.Context, address string) error {
	return nil
}

// multiNotifier fans notifications out to a list of notifiers in order,
// stopping at the first failure.
type multiNotifier []ChangeNotifier

// Ensure compile-time compliance with the ChangeNotifier interface.
var _ ChangeNotifier = (multiNotifier)(nil)

// MultiNotifier combines several notifiers into one. Each notification is
// delivered to every notifier in the given order; the first error stops the
// fan-out and is returned as-is.
func MultiNotifier(notifiers ...ChangeNotifier) ChangeNotifier {
	return multiNotifier(notifiers)
}

// NotifyChange delivers the event to every wrapped notifier in order.
func (m multiNotifier) NotifyChange(ctx context.Context, event ChangeEvent) error {
	for _, notifier := range m {
		if err := notifier.NotifyChange(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// NotifyNoTransfers delivers the notice to every wrapped notifier in order.
func (m multiNotifier) NotifyNoTransfers(ctx context.Context, address string) error {
	for _, notifier := range m {
		if err := notifier.NotifyNoTransfers(ctx, address); err != nil {
			return err
		}
	}
	return nil
}
