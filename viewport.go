package lazylist

// DefaultRowHeight is the row height, in cells, used when measurement yields
// a degenerate (zero or negative) size. One cell is the smallest drawable row.
const DefaultRowHeight = 1

// viewport derives how many rows fit into the available height from a row
// height that is either measured from a throwaway template row or supplied
// manually. When auto-calculation is disabled the visible count is a fixed
// externally set value and measurement is skipped entirely.
type viewport struct {
	autoCalc bool

	// manualHeight overrides measurement when > 0.
	manualHeight int
	// measuredHeight is the settled height of a throwaway row, 0 until
	// measured.
	measuredHeight int

	// manualCount is the fixed visible count used while autoCalc is off.
	manualCount int
}

func newViewport() viewport {
	return viewport{autoCalc: true}
}

// rowHeight returns the effective row height.
func (v *viewport) rowHeight() int {
	if v.manualHeight > 0 {
		return v.manualHeight
	}
	if v.measuredHeight > 0 {
		return v.measuredHeight
	}
	return DefaultRowHeight
}

// needsMeasure reports whether a measurement pass is still required.
func (v *viewport) needsMeasure() bool {
	return v.autoCalc && v.manualHeight <= 0 && v.measuredHeight <= 0
}

// measure creates one throwaway row from the factory and records its settled
// height. A measurement of zero or less falls back to DefaultRowHeight; that
// is a local recovery, never an error. It returns whether the effective row
// height changed.
func (v *viewport) measure(factory RowFactory, width int) bool {
	if factory == nil {
		return false
	}
	row := factory()
	if row == nil {
		return false
	}
	before := v.rowHeight()
	height := row.Height(width)
	if height <= 0 {
		height = DefaultRowHeight
	}
	v.measuredHeight = height
	return v.rowHeight() != before
}

// invalidate drops the measured height, forcing a fresh measurement on the
// next layout pass. Called when the template changes.
func (v *viewport) invalidate() {
	v.measuredHeight = 0
}

// visibleCount returns the number of simultaneously visible rows for the
// given available height.
func (v *viewport) visibleCount(availableHeight int) int {
	if !v.autoCalc {
		return max(v.manualCount, 1)
	}
	return max(availableHeight/v.rowHeight(), 1)
}
