package lazylist

import "time"

// focusPollInterval is how often the machine samples the global focus owner
// while virtual focus is active. Polling at a low frequency bounds overhead;
// external focus loss is therefore detected on the next tick, not instantly.
const focusPollInterval = 200 * time.Millisecond

type focusState uint8

const (
	// focusNone: no virtual focus claim.
	focusNone focusState = iota
	// focusVirtualOnly: virtual focus active, either out of the window or
	// window-visible but real focus not yet applied.
	focusVirtualOnly
	// focusVirtualAndReal: virtual focus active and a pool row currently
	// holds real toolkit focus.
	focusVirtualAndReal
)

// focusMachine reconciles virtual focus (a data index, independent of what is
// physically rendered) with real focus (the pool row holding toolkit focus).
// Virtual focus, once active, survives scrolling and rebinding of pool rows:
// it always denotes a data index, never a pool slot.
type focusMachine struct {
	list *LazyListBox

	state focusState
	// index is the virtually focused data index; valid while state != focusNone.
	index int
	// realRow is the pool entry holding real focus, nil otherwise.
	realRow *poolRow

	// lastOwner is the global focus owner observed by the previous poll tick.
	lastOwner Primitive

	cancelPoll func()
}

func (m *focusMachine) active() bool {
	return m.state != focusNone
}

// virtualIndex returns the virtually focused data index, or -1 when inactive.
func (m *focusMachine) virtualIndex() int {
	if m.state == focusNone {
		return -1
	}
	return m.index
}

// establish activates virtual focus from the idle state. With direction > 0
// (move-down semantics) the window's top visible index is claimed, otherwise
// the bottom visible index.
func (m *focusMachine) establish(direction int) {
	l := m.list
	if len(l.items) == 0 {
		return
	}
	index := l.offset
	if direction < 0 {
		index = min(l.offset+l.visibleCount, len(l.items)) - 1
	}
	m.setIndex(index)
	m.state = focusVirtualOnly
	m.startMonitor()
	l.logger.Debug().Int("index", index).Msg("virtual focus established")
	m.scheduleApply()
}

// move adjusts the virtual index by delta. Out-of-range moves are strict
// no-ops: the index is unchanged and the window does not scroll. When the new
// index leaves the current window, the window offset is nudged by delta, not
// jumped.
func (m *focusMachine) move(delta int) {
	if m.state == focusNone {
		return
	}
	l := m.list
	next := m.index + delta
	if next < 0 || next >= len(l.items) {
		return
	}
	m.setIndex(next)
	if next < l.offset || next >= l.offset+l.visibleCount {
		l.scrollTo(l.offset + delta)
	}
	m.scheduleApply()
}

// focusIndex activates virtual focus on an explicit data index, scrolling
// just far enough to bring it into the window.
func (m *focusMachine) focusIndex(index int) {
	l := m.list
	if index < 0 || index >= len(l.items) {
		return
	}
	m.setIndex(index)
	if m.state == focusNone {
		m.state = focusVirtualOnly
	}
	m.startMonitor()
	if index < l.offset {
		l.scrollTo(index)
	} else if index >= l.offset+l.visibleCount {
		l.scrollTo(index - l.visibleCount + 1)
	}
	m.scheduleApply()
}

func (m *focusMachine) setIndex(index int) {
	changed := m.state == focusNone || m.index != index
	m.index = index
	if changed && m.list.changed != nil {
		m.list.changed(index)
	}
}

// onRowFocus handles a pool row (or one of its descendants) gaining real
// toolkit focus, e.g. through a mouse click or an external SetFocus. The
// virtual index snaps to the row's bound data index.
func (m *focusMachine) onRowFocus(entry *poolRow) {
	if !m.list.focusPreserve {
		return
	}
	if entry.index < 0 {
		return
	}
	m.setIndex(entry.index)
	m.state = focusVirtualAndReal
	m.realRow = entry
	m.startMonitor()
	m.list.logger.Debug().Int("index", entry.index).Msg("real focus gained")
}

// onRowBlur handles the real-focus row losing toolkit focus. The virtual
// claim persists; whether focus left the widget entirely is decided by the
// next poll tick.
func (m *focusMachine) onRowBlur(entry *poolRow) {
	if m.realRow != entry {
		return
	}
	m.realRow = nil
	if m.state == focusVirtualAndReal {
		m.state = focusVirtualOnly
	}
}

// scheduleApply defers real-focus application to the next tick. Applying
// synchronously is unsafe because the host has not yet processed the
// visibility changes of the current batch.
func (m *focusMachine) scheduleApply() {
	m.list.sched.QueueUpdate(m.applyRealFocus)
}

// applyRealFocus grants toolkit focus to the row bound to the virtual index,
// but only if that index is currently window-visible and the row accepts
// focus. Otherwise the machine stays in focusVirtualOnly.
func (m *focusMachine) applyRealFocus() {
	if m.state == focusNone {
		return
	}
	l := m.list
	if m.index < l.offset || m.index >= l.offset+l.visibleCount {
		return
	}
	entry := l.pool.rowAt(m.index)
	if entry == nil || !entry.focusable {
		return
	}
	if m.realRow == entry && entry.row.HasFocus() {
		return
	}
	if l.focusOwner != nil {
		l.focusOwner.SetFocus(entry.row)
	} else {
		if m.realRow != nil && m.realRow != entry {
			m.realRow.row.Blur()
		}
		entry.row.Focus(func(p Primitive) {})
	}
	// State bookkeeping happens in onRowFocus, through the row's focus
	// callback. A row that intercepts Focus leaves the claim virtual-only.
}

// clear drops the virtual focus claim and stops monitoring.
func (m *focusMachine) clear() {
	if m.state == focusNone {
		return
	}
	m.state = focusNone
	m.realRow = nil
	m.stopMonitor()
	m.list.logger.Debug().Msg("virtual focus cleared")
}

// startMonitor begins the periodic external-focus-loss check. The task stops
// itself when virtual focus becomes inactive and is restarted whenever it is
// (re)established.
func (m *focusMachine) startMonitor() {
	if m.cancelPoll != nil || m.list.focusOwner == nil {
		return
	}
	m.lastOwner = m.list.focusOwner.GetFocus()
	m.armPoll()
}

func (m *focusMachine) armPoll() {
	m.cancelPoll = m.list.sched.After(focusPollInterval, func() {
		m.cancelPoll = nil
		m.pollTick()
		if m.state != focusNone {
			m.armPoll()
		}
	})
}

func (m *focusMachine) stopMonitor() {
	if m.cancelPoll != nil {
		m.cancelPoll()
		m.cancelPoll = nil
	}
	m.lastOwner = nil
}

// pollTick samples the global focus owner. An unchanged owner is a no-op. A
// new owner resolving to one of our rows updates the virtual index and keeps
// monitoring. A nil owner, or one outside the widget's subtree, clears
// virtual focus. An owner inside the subtree that is not resolvable to a row
// leaves the state untouched.
func (m *focusMachine) pollTick() {
	if m.state == focusNone {
		return
	}
	l := m.list
	if l.focusOwner == nil {
		return
	}
	current := l.focusOwner.GetFocus()
	if current == m.lastOwner {
		return
	}
	m.lastOwner = current

	if entry := l.resolveRow(current); entry != nil {
		m.setIndex(entry.index)
		m.state = focusVirtualAndReal
		m.realRow = entry
		return
	}
	if current == nil || !l.containsPrimitive(current) {
		l.logger.Debug().Msg("focus left widget subtree")
		m.clear()
	}
}
