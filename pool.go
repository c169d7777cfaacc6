package lazylist

// poolBuffer is the number of spare rows allocated beyond the visible window
// so off-by-one window math never runs out of slots.
const poolBuffer = 2

// poolRow is one recyclable row instance. Rows are reused by position: pool
// slot i always renders window offset + i while visible.
type poolRow struct {
	row Row

	// index is the bound data index, or -1 while unbound.
	index int

	visible   bool
	focusable bool
}

// rowPool owns a fixed set of reusable row instances. Instances are created
// and destroyed only on explicit triggers (template change, visible-count
// change); within a session slot identity is stable, which keeps focus and
// keyboard navigation reasoning simple.
type rowPool struct {
	rows []*poolRow

	// active indexes every currently bound row primitive for O(1)
	// "is this node one of ours" checks during focus resolution.
	active map[Primitive]*poolRow
}

func newRowPool() *rowPool {
	return &rowPool{active: make(map[Primitive]*poolRow)}
}

// resize destroys all pooled instances and allocates exactly capacity fresh
// rows, each initially hidden, unbound and focus-disabled. The focus and blur
// callbacks wire every row into the focus state machine.
func (p *rowPool) resize(capacity int, factory RowFactory, onFocus, onBlur func(entry *poolRow)) {
	p.release()
	if capacity <= 0 || factory == nil {
		return
	}
	p.rows = make([]*poolRow, capacity)
	for i := range p.rows {
		entry := &poolRow{row: factory(), index: -1}
		entry.row.SetFocusFunc(func() { onFocus(entry) })
		entry.row.SetBlurFunc(func() { onBlur(entry) })
		p.rows[i] = entry
	}
}

// release destroys all pooled instances and clears bindings.
func (p *rowPool) release() {
	p.rows = nil
	clear(p.active)
}

func (p *rowPool) size() int {
	return len(p.rows)
}

func (p *rowPool) slot(i int) *poolRow {
	if i < 0 || i >= len(p.rows) {
		return nil
	}
	return p.rows[i]
}

// hideAll hides and unbinds every row and clears the active-set index.
func (p *rowPool) hideAll() {
	for _, entry := range p.rows {
		entry.index = -1
		entry.visible = false
		entry.focusable = false
	}
	clear(p.active)
}

// bind attaches pool slot i to the given data index, makes it visible and
// focusable, and registers it in the active-set index.
func (p *rowPool) bind(slot, index int) *poolRow {
	entry := p.slot(slot)
	if entry == nil {
		return nil
	}
	entry.index = index
	entry.visible = true
	entry.focusable = true
	p.active[entry.row] = entry
	return entry
}

// lookup resolves a primitive to its pool entry through the active-set index.
// Only bound, visible rows resolve.
func (p *rowPool) lookup(prim Primitive) *poolRow {
	if prim == nil {
		return nil
	}
	return p.active[prim]
}

// rowAt returns the entry currently bound to the given data index, if any.
func (p *rowPool) rowAt(index int) *poolRow {
	for _, entry := range p.active {
		if entry.index == index {
			return entry
		}
	}
	return nil
}
