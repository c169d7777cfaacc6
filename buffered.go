package lazylist

// Initialization status strings reported by
// [BufferedListBox.InitializationStatus].
const (
	StatusWaitingForTemplate = "waiting for template"
	StatusMeasuringHeight    = "measuring item height"
	StatusBuildingPool       = "building pool"
	StatusReady              = "ready"
)

// BufferedListBox is a LazyListBox variant that buffers data operations
// issued before internal setup (height measurement, pool creation) has
// completed and replays them, in order, once the widget signals readiness.
// This prevents lost writes from callers that set data immediately after
// construction.
type BufferedListBox struct {
	*LazyListBox

	pending []func()
}

// NewBufferedListBox returns a new buffered lazy list box.
func NewBufferedListBox() *BufferedListBox {
	b := &BufferedListBox{LazyListBox: NewLazyListBox()}
	b.setReadyFunc(b.replay)
	return b
}

// IsReadyForData reports whether setup has completed and writes are applied
// immediately rather than buffered.
func (b *BufferedListBox) IsReadyForData() bool {
	return b.isReady()
}

// InitializationStatus returns a textual description of the setup phase the
// widget is currently in.
func (b *BufferedListBox) InitializationStatus() string {
	switch {
	case b.factory == nil:
		return StatusWaitingForTemplate
	case b.viewport.needsMeasure() || b.measurePending:
		return StatusMeasuringHeight
	case !b.isReady():
		return StatusBuildingPool
	default:
		return StatusReady
	}
}

// enqueue buffers op when the widget is not ready yet. It reports whether the
// op was buffered.
func (b *BufferedListBox) enqueue(op func()) bool {
	if b.isReady() {
		return false
	}
	b.pending = append(b.pending, op)
	return true
}

func (b *BufferedListBox) replay() {
	pending := b.pending
	b.pending = nil
	for _, op := range pending {
		op()
	}
}

// SetData replaces the dataset, buffering the write until setup completes.
func (b *BufferedListBox) SetData(items []any) {
	if b.enqueue(func() { b.LazyListBox.SetData(items) }) {
		return
	}
	b.LazyListBox.SetData(items)
}

// ScrollToIndex scrolls to the given index, buffering until setup completes.
func (b *BufferedListBox) ScrollToIndex(index int) {
	if b.enqueue(func() { b.LazyListBox.ScrollToIndex(index) }) {
		return
	}
	b.LazyListBox.ScrollToIndex(index)
}

// ScrollToEnd scrolls to the last window, buffering until setup completes.
func (b *BufferedListBox) ScrollToEnd() {
	if b.enqueue(func() { b.LazyListBox.ScrollToEnd() }) {
		return
	}
	b.LazyListBox.ScrollToEnd()
}

// FocusItemAtDataIndex focuses the given index, buffering until setup
// completes.
func (b *BufferedListBox) FocusItemAtDataIndex(index int) {
	if b.enqueue(func() { b.LazyListBox.FocusItemAtDataIndex(index) }) {
		return
	}
	b.LazyListBox.FocusItemAtDataIndex(index)
}
