package lazylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// zeroHeightRow reports a degenerate measured height.
type zeroHeightRow struct {
	*Box
}

func (r *zeroHeightRow) Height(width int) int { return 0 }

func (r *zeroHeightRow) ConfigureItem(index int, item any) {}

// tallRow is three cells high.
type tallRow struct {
	*Box
}

func (r *tallRow) Height(width int) int { return 3 }

func (r *tallRow) ConfigureItem(index int, item any) {}

func TestViewportRowHeightPrecedence(t *testing.T) {
	v := newViewport()
	assert.Equal(t, DefaultRowHeight, v.rowHeight())

	v.measuredHeight = 2
	assert.Equal(t, 2, v.rowHeight())

	// A manual override beats the measured value.
	v.manualHeight = 5
	assert.Equal(t, 5, v.rowHeight())

	v.manualHeight = 0
	assert.Equal(t, 2, v.rowHeight())
}

func TestViewportMeasure(t *testing.T) {
	t.Run("records settled height", func(t *testing.T) {
		v := newViewport()
		changed := v.measure(func() Row { return &tallRow{Box: NewBox()} }, 40)
		assert.True(t, changed)
		assert.Equal(t, 3, v.rowHeight())
	})

	t.Run("degenerate height falls back to one cell", func(t *testing.T) {
		v := newViewport()
		v.measure(func() Row { return &zeroHeightRow{Box: NewBox()} }, 40)
		assert.Equal(t, DefaultRowHeight, v.rowHeight())
		assert.False(t, v.needsMeasure())
	})

	t.Run("unchanged height reports false", func(t *testing.T) {
		v := newViewport()
		v.measuredHeight = 3
		changed := v.measure(func() Row { return &tallRow{Box: NewBox()} }, 40)
		assert.False(t, changed)
	})
}

func TestViewportNeedsMeasure(t *testing.T) {
	v := newViewport()
	assert.True(t, v.needsMeasure())

	v.manualHeight = 2
	assert.False(t, v.needsMeasure())

	v.manualHeight = 0
	v.measuredHeight = 1
	assert.False(t, v.needsMeasure())

	v.invalidate()
	assert.True(t, v.needsMeasure())

	v.autoCalc = false
	assert.False(t, v.needsMeasure())
}

func TestViewportVisibleCount(t *testing.T) {
	v := newViewport()
	v.measuredHeight = 3

	assert.Equal(t, 4, v.visibleCount(12))
	assert.Equal(t, 3, v.visibleCount(11))
	// At least one row is always visible, however small the widget.
	assert.Equal(t, 1, v.visibleCount(0))

	v.autoCalc = false
	v.manualCount = 7
	assert.Equal(t, 7, v.visibleCount(12))

	v.manualCount = 0
	assert.Equal(t, 1, v.visibleCount(12))
}
