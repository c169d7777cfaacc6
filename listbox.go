package lazylist

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// LazyListBox renders an arbitrarily large dataset through a small, fixed
// pool of recycled row primitives. Only the rows of the current window
// physically exist; scrolling rebinds pool slots to new data indices, and
// keyboard navigation moves a virtual focus position over the full dataset.
//
// The dataset is externally owned; the widget keeps a reference and a cached
// length. Replacing it resets all derived state (scroll offset, focus).
type LazyListBox struct {
	*Box

	items []any

	factory  RowFactory
	caps     capabilityCache
	pool     *rowPool
	viewport viewport

	// offset is the first visible data index of the current window.
	offset int
	// visibleCount is the number of simultaneously visible rows.
	visibleCount int

	// primaryBar always exists; overlayBar is an optional second proxy (e.g.
	// for touch/overlay gestures) kept in lockstep with the primary.
	primaryBar *ScrollBar
	overlayBar *ScrollBar
	// syncingBars suppresses value-changed notifications caused by our own
	// synchronization writes. It is a plain re-entrancy flag, not a queue:
	// recursive notifications are dropped.
	syncingBars bool

	focus         focusMachine
	focusPreserve bool

	sched      Scheduler
	focusOwner FocusOwner
	logger     zerolog.Logger

	changed  func(index int)
	selected func(index int, item any)

	// Last inner size seen by Draw, for detecting container resizes.
	lastInnerWidth, lastInnerHeight int

	measurePending bool
	// poolStale forces the next layout pass to rebuild the pool even when
	// the visible count is unchanged. Set when the template changes: rows
	// created by the old factory must not survive it.
	poolStale bool
	ready     bool
	readyFunc func()
}

// NewLazyListBox returns a new, empty lazy list box. A row template must be
// installed with SetItemTemplate before any data is rendered.
func NewLazyListBox() *LazyListBox {
	l := &LazyListBox{
		Box:             NewBox(),
		caps:            make(capabilityCache),
		pool:            newRowPool(),
		viewport:        newViewport(),
		primaryBar:      NewScrollBar(),
		focusPreserve:   true,
		sched:           syncScheduler{},
		logger:          zerolog.Nop(),
		lastInnerWidth:  -1,
		lastInnerHeight: -1,
	}
	l.focus.list = l
	l.primaryBar.SetChangedFunc(func(value float64) {
		l.onBarValue(l.primaryBar, value)
	})
	return l
}

// SetScheduler sets the host scheduler used for deferred focus application
// and the focus poll timer. Defaults to a synchronous fallback.
func (l *LazyListBox) SetScheduler(sched Scheduler) *LazyListBox {
	if sched == nil {
		sched = syncScheduler{}
	}
	l.sched = sched
	return l
}

// SetFocusOwner injects the toolkit's global focus accessor. Without one,
// real focus is granted directly to rows and external focus loss cannot be
// observed.
func (l *LazyListBox) SetFocusOwner(owner FocusOwner) *LazyListBox {
	l.focusOwner = owner
	return l
}

// SetLogger sets the structured logger used for debug traces. Defaults to a
// no-op logger.
func (l *LazyListBox) SetLogger(logger zerolog.Logger) *LazyListBox {
	l.logger = logger
	return l
}

// SetOverlayScrollBar attaches (or, with nil, detaches) the overlay scrollbar
// proxy. A missing overlay is tolerated; that half of the synchronization is
// simply skipped.
func (l *LazyListBox) SetOverlayScrollBar(bar *ScrollBar) *LazyListBox {
	if l.overlayBar != nil {
		l.overlayBar.SetChangedFunc(nil)
	}
	l.overlayBar = bar
	if bar != nil {
		bar.SetChangedFunc(func(value float64) {
			l.onBarValue(bar, value)
		})
		l.syncingBars = true
		l.configureBar(bar)
		bar.SetValue(l.primaryBar.GetValue())
		l.syncingBars = false
	}
	return l
}

// GetPrimaryScrollBar returns the built-in scrollbar drawn at the widget's
// right edge.
func (l *LazyListBox) GetPrimaryScrollBar() *ScrollBar {
	return l.primaryBar
}

// SetChangedFunc sets a handler invoked whenever the virtual focus index
// moves.
func (l *LazyListBox) SetChangedFunc(handler func(index int)) *LazyListBox {
	l.changed = handler
	return l
}

// SetSelectedFunc sets a handler invoked when the virtually focused item is
// activated with Enter.
func (l *LazyListBox) SetSelectedFunc(handler func(index int, item any)) *LazyListBox {
	l.selected = handler
	return l
}

// SetItemTemplate installs the factory producing pooled rows. The template is
// probed once with a throwaway instance: rows must implement ItemConfigurer
// or ItemSetter, otherwise ErrTemplateNotConfigurable is returned and the
// template is rejected. Installing a template resets scroll and focus state
// and rebuilds the pool.
func (l *LazyListBox) SetItemTemplate(factory RowFactory) error {
	if _, err := probeTemplate(factory); err != nil {
		l.logger.Error().Err(err).Msg("item template rejected")
		return err
	}
	l.factory = factory
	clear(l.caps)
	l.viewport.invalidate()
	l.focus.clear()
	l.poolStale = true
	l.ready = false
	l.relayout()
	return nil
}

// SetData replaces the dataset. All derived state is reset: the window moves
// to offset 0 and virtual focus is cleared (stopping the focus poll).
func (l *LazyListBox) SetData(items []any) {
	l.items = items
	l.focus.clear()
	if l.pool.size() == 0 {
		l.relayout()
		return
	}
	l.configureRange()
	l.refreshWindow()
}

// GetItemCount returns the cached dataset length.
func (l *LazyListBox) GetItemCount() int {
	return len(l.items)
}

// Refresh rebinds the current window. Calling it twice with no state change
// produces an identical binding.
func (l *LazyListBox) Refresh() {
	l.refreshWindow()
}

// ScrollToIndex scrolls the window so the given data index is its first
// visible row, clamped to the valid offset range.
func (l *LazyListBox) ScrollToIndex(index int) {
	if l.pool.size() == 0 {
		return
	}
	l.scrollTo(index)
}

// ScrollToEnd scrolls to the last window. It is a no-op on an empty dataset.
func (l *LazyListBox) ScrollToEnd() {
	if len(l.items) == 0 {
		return
	}
	l.scrollTo(l.maxOffset())
}

// SetFocusPreservation enables or disables the virtual focus machinery.
// Disabling clears any active virtual focus and stops the focus poll.
func (l *LazyListBox) SetFocusPreservation(enabled bool) *LazyListBox {
	l.focusPreserve = enabled
	if !enabled {
		l.focus.clear()
	}
	return l
}

// FocusItemAtDataIndex places virtual focus on the given data index,
// scrolling just far enough to make it visible, and applies real focus on the
// next tick. Out-of-range indices are ignored.
func (l *LazyListBox) FocusItemAtDataIndex(index int) {
	if !l.focusPreserve {
		return
	}
	l.focus.focusIndex(index)
}

// GetVirtualFocusedIndex returns the virtually focused data index, or -1 when
// virtual focus is inactive.
func (l *LazyListBox) GetVirtualFocusedIndex() int {
	return l.focus.virtualIndex()
}

// IsListFocused reports whether the list claims focus: either virtual focus
// is active or the widget itself holds toolkit focus.
func (l *LazyListBox) IsListFocused() bool {
	return l.focus.active() || l.HasFocus()
}

// SetAutoCalculateVisibleCount toggles deriving the visible count from the
// available height and the row height. When disabled, the count set through
// SetVisibleCount is used as-is and height measurement is skipped.
func (l *LazyListBox) SetAutoCalculateVisibleCount(enabled bool) *LazyListBox {
	if l.viewport.autoCalc != enabled {
		l.viewport.autoCalc = enabled
		l.relayout()
	}
	return l
}

// SetVisibleCount fixes the visible count used while auto-calculation is
// disabled.
func (l *LazyListBox) SetVisibleCount(count int) *LazyListBox {
	if count < 1 {
		count = 1
	}
	if l.viewport.manualCount != count {
		l.viewport.manualCount = count
		if !l.viewport.autoCalc {
			l.relayout()
		}
	}
	return l
}

// SetManualItemHeight overrides the measured row height. A value of 0 or less
// re-enables measurement.
func (l *LazyListBox) SetManualItemHeight(height int) *LazyListBox {
	if height < 0 {
		height = 0
	}
	if l.viewport.manualHeight != height {
		l.viewport.manualHeight = height
		l.relayout()
	}
	return l
}

// GetItemHeight returns the effective row height in cells.
func (l *LazyListBox) GetItemHeight() int {
	return l.viewport.rowHeight()
}

// GetCalculatedVisibleCount returns the current visible count.
func (l *LazyListBox) GetCalculatedVisibleCount() int {
	return l.visibleCount
}

// GetVisibleRange returns the first and last currently visible data indices,
// or (-1, -1) when nothing is bound.
func (l *LazyListBox) GetVisibleRange() (start, end int) {
	if len(l.items) == 0 || l.visibleCount == 0 {
		return -1, -1
	}
	return l.offset, min(l.offset+l.visibleCount, len(l.items)) - 1
}

// Scroll coordinator.

func (l *LazyListBox) maxOffset() int {
	return max(len(l.items)-l.visibleCount, 0)
}

func (l *LazyListBox) configureBar(bar *ScrollBar) {
	bar.SetRange(0, float64(l.maxOffset()+l.visibleCount))
	bar.SetPageSize(float64(l.visibleCount))
	bar.SetStep(1)
	bar.SetValue(0)
}

// configureRange re-derives both scrollbar proxies from the dataset size and
// visible count, and resets the window offset to 0.
func (l *LazyListBox) configureRange() {
	l.syncingBars = true
	l.configureBar(l.primaryBar)
	if l.overlayBar != nil {
		l.configureBar(l.overlayBar)
	}
	l.syncingBars = false
	l.offset = 0
}

// onBarValue handles a proxy's value-changed notification. Notifications
// raised by our own synchronization writes are suppressed by the guard, not
// queued.
func (l *LazyListBox) onBarValue(source *ScrollBar, value float64) {
	if l.syncingBars {
		return
	}
	target := clampInt(int(math.Round(value)), 0, l.maxOffset())
	if target == l.offset {
		// The proxies must stay bit-equal even when the rounded value lands
		// on the current window; only the refresh is skipped.
		l.syncBars(source, value)
		return
	}
	l.offset = target
	l.syncBars(source, value)
	l.refreshWindow()
}

// syncBars copies the raw value from the originating proxy to the other one
// under the re-entrancy guard.
func (l *LazyListBox) syncBars(source *ScrollBar, value float64) {
	l.syncingBars = true
	if source != l.primaryBar {
		l.primaryBar.SetValue(value)
	}
	if l.overlayBar != nil && source != l.overlayBar {
		l.overlayBar.SetValue(value)
	}
	l.syncingBars = false
}

// scrollTo moves the window offset, clamped to [0, maxOffset], writes both
// proxies under the guard and rebinds the window.
func (l *LazyListBox) scrollTo(index int) {
	target := clampInt(index, 0, l.maxOffset())
	l.syncingBars = true
	l.primaryBar.SetValue(float64(target))
	if l.overlayBar != nil {
		l.overlayBar.SetValue(float64(target))
	}
	l.syncingBars = false
	if target == l.offset && l.pool.size() > 0 && l.pool.slot(0).index == target {
		return
	}
	l.offset = target
	l.refreshWindow()
}

// Render refresher.

// refreshWindow hides all currently bound rows, then binds pool slot i to
// data index offset+i for the first min(visibleCount, dataSize-offset) slots.
// Slots beyond that remain hidden and unbound. If virtual focus is active, a
// deferred check re-applies real focus once the host has committed the
// visibility changes.
func (l *LazyListBox) refreshWindow() {
	if l.pool.size() == 0 {
		return
	}
	l.pool.hideAll()
	itemsToShow := min(l.visibleCount, len(l.items)-l.offset)
	for i := 0; i < itemsToShow; i++ {
		index := l.offset + i
		entry := l.pool.bind(i, index)
		configureRow(entry.row, l.caps.resolve(entry.row), index, l.items[index])
	}
	l.MarkDirty()
	l.logger.Debug().Int("offset", l.offset).Int("bound", max(itemsToShow, 0)).Msg("window rebound")
	if l.focus.active() {
		l.focus.scheduleApply()
	}
}

// Layout pipeline.

// relayout recomputes the visible count and rebuilds the pool when needed.
// Triggered by template change, resize, height override and auto-calc
// changes.
func (l *LazyListBox) relayout() {
	if l.factory == nil {
		return
	}
	if l.viewport.needsMeasure() {
		l.scheduleMeasure()
		return
	}
	l.applyLayout()
}

// scheduleMeasure defers row-height measurement across two queue ticks.
// Layout must settle before a measured size is trustworthy; reading it too
// early is a correctness bug, not just a performance one.
func (l *LazyListBox) scheduleMeasure() {
	if l.measurePending {
		return
	}
	l.measurePending = true
	l.sched.QueueUpdate(func() {
		l.sched.QueueUpdate(func() {
			l.measurePending = false
			_, _, width, _ := l.GetInnerRect()
			l.viewport.measure(l.factory, max(width-1, 1))
			l.logger.Debug().Int("height", l.viewport.rowHeight()).Msg("row height measured")
			l.applyLayout()
		})
	})
}

func (l *LazyListBox) applyLayout() {
	_, _, _, height := l.GetInnerRect()
	count := l.viewport.visibleCount(height)
	if l.poolStale || count != l.visibleCount || l.pool.size() != count+poolBuffer {
		l.visibleCount = count
		l.pool.resize(count+poolBuffer, l.factory, l.focus.onRowFocus, l.focus.onRowBlur)
		l.poolStale = false
		l.logger.Debug().Int("capacity", count+poolBuffer).Msg("pool rebuilt")
		l.configureRange()
		l.refreshWindow()
	} else {
		// Geometry changed without affecting the window. Keep the scroll
		// position, clamped in case the valid offset range shrank.
		l.scrollTo(l.offset)
	}
	l.markReady()
}

func (l *LazyListBox) markReady() {
	if l.ready {
		return
	}
	l.ready = true
	if l.readyFunc != nil {
		l.readyFunc()
	}
}

// isReady reports whether setup (template, height, pool) has completed.
func (l *LazyListBox) isReady() bool {
	return l.ready
}

// setReadyFunc registers a hook fired once setup completes. Used by
// BufferedListBox to replay writes issued before readiness.
func (l *LazyListBox) setReadyFunc(f func()) {
	l.readyFunc = f
	if l.ready && f != nil {
		f()
	}
}

// Focus resolution helpers.

// resolveRow maps a primitive to the pool entry owning it: a direct
// active-set hit, or a scan asking each bound composite row whether the
// primitive is one of its descendants.
func (l *LazyListBox) resolveRow(p Primitive) *poolRow {
	if p == nil {
		return nil
	}
	if entry := l.pool.lookup(p); entry != nil {
		return entry
	}
	for _, entry := range l.pool.active {
		if container, ok := entry.row.(RowContainer); ok && container.ContainsPrimitive(p) {
			return entry
		}
	}
	return nil
}

// containsPrimitive reports whether p belongs to this widget's subtree.
func (l *LazyListBox) containsPrimitive(p Primitive) bool {
	if p == nil {
		return false
	}
	if p == Primitive(l) || p == Primitive(l.primaryBar) {
		return true
	}
	if l.overlayBar != nil && p == Primitive(l.overlayBar) {
		return true
	}
	return l.resolveRow(p) != nil
}

// HasFocus returns whether this primitive or one of its rows has focus.
func (l *LazyListBox) HasFocus() bool {
	if l.Box.HasFocus() {
		return true
	}
	for _, entry := range l.pool.active {
		if entry.row.HasFocus() {
			return true
		}
	}
	return false
}

// Drawing.

// Draw draws this primitive onto the screen.
func (l *LazyListBox) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	if width != l.lastInnerWidth || height != l.lastInnerHeight {
		l.lastInnerWidth = width
		l.lastInnerHeight = height
		l.relayout()
	}
	if width <= 0 || height <= 0 {
		return
	}

	rowWidth := width
	drawBar := width >= 2
	if drawBar {
		rowWidth--
	}

	rowHeight := l.viewport.rowHeight()
	for i := 0; i < l.visibleCount; i++ {
		entry := l.pool.slot(i)
		if entry == nil || !entry.visible {
			continue
		}
		top := y + i*rowHeight
		if top+rowHeight > y+height {
			break
		}
		entry.row.SetRect(x, top, rowWidth, rowHeight)
		entry.row.Draw(screen)
	}

	if drawBar {
		l.primaryBar.SetRect(x+rowWidth, y, 1, height)
		l.primaryBar.Draw(screen)
	}
}

// Input handling.

// InputHandler returns the handler for this primitive.
func (l *LazyListBox) InputHandler() func(event *tcell.EventKey, setFocus func(p Primitive)) {
	return l.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p Primitive)) {
		switch event.Key() {
		case tcell.KeyDown:
			l.moveFocus(1)
		case tcell.KeyUp:
			l.moveFocus(-1)
		case tcell.KeyPgDn:
			l.scrollTo(l.offset + l.visibleCount)
		case tcell.KeyPgUp:
			l.scrollTo(l.offset - l.visibleCount)
		case tcell.KeyHome:
			l.scrollTo(0)
		case tcell.KeyEnd:
			l.ScrollToEnd()
		case tcell.KeyEnter:
			if index := l.focus.virtualIndex(); index >= 0 && l.selected != nil {
				l.selected(index, l.items[index])
			}
		}
	})
}

// moveFocus applies one keyboard navigation step. Navigation is applied on
// every key event; terminals pace auto-repeat themselves, so no cooldown
// timer is layered on top. With focus preservation disabled the keys degrade
// to plain window scrolling.
func (l *LazyListBox) moveFocus(delta int) {
	if len(l.items) == 0 {
		return
	}
	if !l.focusPreserve {
		l.scrollTo(l.offset + delta)
		return
	}
	if !l.focus.active() {
		l.focus.establish(delta)
		return
	}
	l.focus.move(delta)
}

// MouseHandler returns the mouse handler for this primitive.
func (l *LazyListBox) MouseHandler() func(action MouseAction, event *tcell.EventMouse, setFocus func(p Primitive)) (consumed bool, capture Primitive) {
	return l.WrapMouseHandler(func(action MouseAction, event *tcell.EventMouse, setFocus func(p Primitive)) (consumed bool, capture Primitive) {
		x, y := event.Position()
		if !l.InRect(x, y) {
			return false, nil
		}

		// The built-in scrollbar occupies the rightmost inner column.
		if consumed, capture := l.primaryBar.MouseHandler()(action, event, setFocus); consumed {
			return consumed, capture
		}

		switch action {
		case MouseLeftDown, MouseLeftClick:
			if entry := l.rowAtPoint(x, y); entry != nil {
				// Granting toolkit focus drives the real-focus-gained
				// transition through the row's focus callback.
				setFocus(entry.row)
			} else {
				setFocus(l)
			}
			return true, nil
		case MouseScrollUp:
			l.scrollTo(l.offset - 1)
			return true, nil
		case MouseScrollDown:
			l.scrollTo(l.offset + 1)
			return true, nil
		}

		return false, nil
	})
}

// rowAtPoint returns the visible pool entry under the given screen position.
func (l *LazyListBox) rowAtPoint(x, y int) *poolRow {
	innerX, innerY, width, height := l.GetInnerRect()
	if x < innerX || x >= innerX+width || y < innerY || y >= innerY+height {
		return nil
	}
	slot := (y - innerY) / l.viewport.rowHeight()
	entry := l.pool.slot(slot)
	if entry == nil || !entry.visible {
		return nil
	}
	return entry
}

var _ Primitive = &LazyListBox{}
