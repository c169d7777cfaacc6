package lazylist

import (
	"fmt"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

// stubScheduler records deferred and delayed work so tests can drive the
// "next tick" and the poll timer deterministically.
type stubScheduler struct {
	queued []func()
	timers []*stubTimer
}

type stubTimer struct {
	f       func()
	stopped bool
}

func (s *stubScheduler) QueueUpdate(f func()) {
	s.queued = append(s.queued, f)
}

func (s *stubScheduler) After(d time.Duration, f func()) (cancel func()) {
	t := &stubTimer{f: f}
	s.timers = append(s.timers, t)
	return func() { t.stopped = true }
}

// drain runs queued updates until the queue is empty, including updates queued
// by the updates themselves.
func (s *stubScheduler) drain() {
	for len(s.queued) > 0 {
		queued := s.queued
		s.queued = nil
		for _, f := range queued {
			f()
		}
	}
}

// fire runs all currently pending timers once. Timers re-armed while firing
// become pending for the next call.
func (s *stubScheduler) fire() {
	timers := s.timers
	s.timers = nil
	for _, t := range timers {
		if !t.stopped {
			t.f()
		}
	}
}

func (s *stubScheduler) pendingTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// stubOwner is a minimal global focus owner with the blur-then-focus behavior
// of App.SetFocus.
type stubOwner struct {
	focus Primitive
}

func (o *stubOwner) GetFocus() Primitive {
	return o.focus
}

func (o *stubOwner) SetFocus(p Primitive) {
	if o.focus != nil && o.focus != p {
		o.focus.Blur()
	}
	o.focus = p
	if p != nil {
		p.Focus(func(q Primitive) { o.SetFocus(q) })
	}
}

func makeItems(n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	return items
}

// newTestList builds a ready list with a fixed visible count of 10 so no
// screen and no measurement pass are required.
func newTestList(t *testing.T, size int) (*LazyListBox, *stubScheduler, *stubOwner) {
	t.Helper()
	sched := &stubScheduler{}
	owner := &stubOwner{}
	l := NewLazyListBox().
		SetScheduler(sched).
		SetFocusOwner(owner)
	l.SetAutoCalculateVisibleCount(false)
	l.SetVisibleCount(10)
	require.NoError(t, l.SetItemTemplate(NewTextRowFactory()))
	l.SetData(makeItems(size))
	return l, sched, owner
}

func pressKey(l *LazyListBox, owner *stubOwner, key tcell.Key) {
	l.InputHandler()(tcell.NewEventKey(key, 0, tcell.ModNone), owner.SetFocus)
}

// boundIndices returns the data indices of all visible pool slots, in slot
// order.
func boundIndices(l *LazyListBox) []int {
	var indices []int
	for _, entry := range l.pool.rows {
		if entry.visible {
			indices = append(indices, entry.index)
		}
	}
	return indices
}
