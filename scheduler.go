package lazylist

import "time"

// Scheduler abstracts the host's event queue. Deferred functions must run
// after the current synchronous batch of visibility and layout mutations has
// been committed; delayed functions drive the low-frequency focus poll. App
// implements this interface on top of its update channel.
type Scheduler interface {
	// QueueUpdate enqueues f for execution on the next event-loop tick.
	QueueUpdate(f func())

	// After schedules f to run once, d from now, on the event loop. The
	// returned function cancels the pending call.
	After(d time.Duration, f func()) (cancel func())
}

// syncScheduler is the headless fallback used when no host is attached.
// Deferred work runs inline; without a layout engine underneath there is
// nothing to wait for.
type syncScheduler struct{}

func (syncScheduler) QueueUpdate(f func()) {
	f()
}

func (syncScheduler) After(d time.Duration, f func()) (cancel func()) {
	timer := time.AfterFunc(d, f)
	return func() { timer.Stop() }
}
