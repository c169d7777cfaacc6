package lazylist

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestScrollBarClampsValue(t *testing.T) {
	s := NewScrollBar()
	s.SetRange(0, 500)
	s.SetPageSize(10)

	s.SetValue(-5)
	assert.Equal(t, 0.0, s.GetValue())

	s.SetValue(600)
	assert.Equal(t, 490.0, s.GetValue())

	s.SetValue(495)
	assert.Equal(t, 490.0, s.GetValue())

	s.SetValue(123.5)
	assert.Equal(t, 123.5, s.GetValue())
}

func TestScrollBarChangedFiresOncePerEffectiveChange(t *testing.T) {
	s := NewScrollBar()
	s.SetRange(0, 100)
	s.SetPageSize(10)

	var calls int
	var last float64
	s.SetChangedFunc(func(value float64) {
		calls++
		last = value
	})

	s.SetValue(20)
	s.SetValue(20)  // same effective value, no callback
	s.SetValue(200) // clamps to 90
	s.SetValue(95)  // clamps to 90 again, no callback

	assert.Equal(t, 2, calls)
	assert.Equal(t, 90.0, last)
}

func TestScrollBarRangeCollapse(t *testing.T) {
	s := NewScrollBar()
	s.SetRange(0, 100)
	s.SetValue(50)

	// max below min collapses the range to a single point; the value follows.
	s.SetRange(5, 2)

	min, max := s.GetRange()
	assert.Equal(t, 5.0, min)
	assert.Equal(t, 5.0, max)
	assert.Equal(t, 5.0, s.GetValue())
}

func TestScrollBarShrinkingRangeReclampsValue(t *testing.T) {
	s := NewScrollBar()
	s.SetRange(0, 500)
	s.SetPageSize(10)
	s.SetValue(400)

	s.SetRange(0, 100)

	assert.Equal(t, 90.0, s.GetValue())
}

func TestScrollMetrics(t *testing.T) {
	tests := []struct {
		name        string
		trackCells  int
		contentLen  int
		viewportLen int
		offset      int
		wantLen     int
		wantStart   int
	}{
		{name: "no scroll fills track", trackCells: 10, contentLen: 5, viewportLen: 10, offset: 0, wantLen: 80, wantStart: 0},
		{name: "proportional thumb", trackCells: 10, contentLen: 400, viewportLen: 100, offset: 0, wantLen: 20, wantStart: 0},
		{name: "offset at max pins thumb to end", trackCells: 10, contentLen: 400, viewportLen: 100, offset: 300, wantLen: 20, wantStart: 60},
		{name: "half offset centers travel", trackCells: 10, contentLen: 400, viewportLen: 100, offset: 150, wantLen: 20, wantStart: 30},
		{name: "tiny viewport floors at one cell", trackCells: 10, contentLen: 10000, viewportLen: 10, offset: 0, wantLen: 8, wantStart: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := computeScrollMetrics(tt.trackCells, tt.contentLen, tt.viewportLen, tt.offset)
			assert.Equal(t, tt.trackCells*subcell, m.trackLen)
			assert.Equal(t, tt.wantLen, m.thumbLen)
			assert.Equal(t, tt.wantStart, m.thumbStart)
		})
	}

	t.Run("zero track", func(t *testing.T) {
		m := computeScrollMetrics(0, 100, 10, 0)
		assert.Equal(t, 0, m.trackLen)
	})
}

func TestScrollBarKeys(t *testing.T) {
	s := NewScrollBar()
	s.SetRange(0, 100)
	s.SetPageSize(10)
	s.SetStep(2)

	press := func(key tcell.Key) {
		s.InputHandler()(tcell.NewEventKey(key, 0, tcell.ModNone), func(p Primitive) {})
	}

	press(tcell.KeyDown)
	assert.Equal(t, 2.0, s.GetValue())

	press(tcell.KeyPgDn)
	assert.Equal(t, 12.0, s.GetValue())

	press(tcell.KeyEnd)
	assert.Equal(t, 90.0, s.GetValue())

	press(tcell.KeyUp)
	assert.Equal(t, 88.0, s.GetValue())

	press(tcell.KeyPgUp)
	assert.Equal(t, 78.0, s.GetValue())

	press(tcell.KeyHome)
	assert.Equal(t, 0.0, s.GetValue())
}
