package lazylist

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

const subcell = 8

// GlyphSet defines vertical track and fractional thumb glyphs.
type GlyphSet struct {
	TrackVertical rune

	ThumbVerticalLower [8]rune
	ThumbVerticalUpper [8]rune
}

// MinimalGlyphSet returns the minimal glyph set (space track, fractional thumbs).
func MinimalGlyphSet() GlyphSet {
	g := UnicodeGlyphSet()
	g.TrackVertical = ' '
	return g
}

// UnicodeGlyphSet returns a standard-unicode-only glyph set.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		TrackVertical: '│',

		ThumbVerticalLower: [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'},
		ThumbVerticalUpper: [8]rune{'▔', '▔', '▀', '▀', '▀', '▀', '█', '█'},
	}
}

// ScrollBar is a vertical scrollbar primitive exposing a min/max/page/value
// model. Writes through SetValue are clamped to the valid range; a changed
// callback fires whenever the effective value moves. The list-box drives two
// of these (a primary and an optional overlay) and keeps them synchronized.
type ScrollBar struct {
	*Box

	min      float64
	max      float64
	pageSize float64
	step     float64
	value    float64

	changed func(value float64)

	autoHide  bool
	showTrack bool

	trackStyle tcell.Style
	thumbStyle tcell.Style

	glyphSet GlyphSet
}

// NewScrollBar returns a new vertical scrollbar with an empty range.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		step:       1,
		autoHide:   true,
		showTrack:  true,
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault,
		glyphSet:   MinimalGlyphSet(),
	}
}

// SetRange sets the minimum and maximum values.
func (s *ScrollBar) SetRange(min, max float64) *ScrollBar {
	if max < min {
		max = min
	}
	if s.min != min || s.max != max {
		s.min = min
		s.max = max
		s.applyValue(s.value)
		s.MarkDirty()
	}
	return s
}

// GetRange returns the minimum and maximum values.
func (s *ScrollBar) GetRange() (min, max float64) {
	return s.min, s.max
}

// SetPageSize sets the size of the visible page. The greatest settable value
// is max minus the page size.
func (s *ScrollBar) SetPageSize(page float64) *ScrollBar {
	if page < 0 {
		page = 0
	}
	if s.pageSize != page {
		s.pageSize = page
		s.applyValue(s.value)
		s.MarkDirty()
	}
	return s
}

// GetPageSize returns the page size.
func (s *ScrollBar) GetPageSize() float64 {
	return s.pageSize
}

// SetStep sets the increment used by wheel and key interactions.
func (s *ScrollBar) SetStep(step float64) *ScrollBar {
	if step < 1 {
		step = 1
	}
	s.step = step
	return s
}

// SetValue sets the current value, clamped to [min, max-page]. The changed
// callback is invoked when the stored value moves.
func (s *ScrollBar) SetValue(value float64) *ScrollBar {
	s.applyValue(value)
	return s
}

// GetValue returns the current value.
func (s *ScrollBar) GetValue() float64 {
	return s.value
}

// SetChangedFunc sets a handler invoked with the new value whenever the value
// changes, regardless of whether the change came from user input or a
// programmatic write.
func (s *ScrollBar) SetChangedFunc(handler func(value float64)) *ScrollBar {
	s.changed = handler
	return s
}

// SetAutoHide controls whether the scrollbar is hidden when there is nothing
// to scroll.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	if s.autoHide != autoHide {
		s.autoHide = autoHide
		s.MarkDirty()
	}
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	s.MarkDirty()
	return s
}

// SetTrackGlyph sets the track symbol and visibility.
func (s *ScrollBar) SetTrackGlyph(glyph rune, visible bool) *ScrollBar {
	s.glyphSet.TrackVertical = glyph
	s.showTrack = visible
	s.MarkDirty()
	return s
}

// SetThumbStyle sets the thumb style.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	if s.thumbStyle != style {
		s.thumbStyle = style
		s.MarkDirty()
	}
	return s
}

// SetTrackStyle sets the track style.
func (s *ScrollBar) SetTrackStyle(style tcell.Style) *ScrollBar {
	if s.trackStyle != style {
		s.trackStyle = style
		s.MarkDirty()
	}
	return s
}

func (s *ScrollBar) maxValue() float64 {
	m := s.max - s.pageSize
	if m < s.min {
		return s.min
	}
	return m
}

func (s *ScrollBar) applyValue(value float64) {
	if value < s.min {
		value = s.min
	}
	if limit := s.maxValue(); value > limit {
		value = limit
	}
	if s.value == value {
		return
	}
	s.value = value
	s.MarkDirty()
	if s.changed != nil {
		s.changed(s.value)
	}
}

type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

// metrics computes scrollbar geometry in subcell units.
func (s *ScrollBar) metrics(length int) scrollMetrics {
	contentLen := int(math.Round(s.max - s.min))
	viewportLen := int(math.Round(s.pageSize))
	offset := int(math.Round(s.value - s.min))
	return computeScrollMetrics(length, contentLen, viewportLen, offset)
}

func computeScrollMetrics(trackCells, contentLen, viewportLen, offset int) scrollMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 {
		return scrollMetrics{}
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := max(contentLen-viewportLen, 0)
	offset = clampInt(offset, 0, maxOffset)

	if maxOffset == 0 {
		return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: trackLen, thumbStart: 0}
	}

	// Use subcell math so the thumb can move in 1/8-cell steps while staying
	// proportional to viewport/content size.
	thumbLen := min(max((trackLen*viewportLen)/contentLen, subcell), trackLen)
	thumbTravel := max(trackLen-thumbLen, 0)
	thumbStart := (thumbTravel * offset) / maxOffset
	return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

func (s *ScrollBar) shouldDraw(length int, m scrollMetrics) bool {
	if length <= 0 || m.trackLen == 0 || s.max-s.min <= 0 {
		return false
	}
	if s.autoHide && s.maxValue() <= s.min {
		return false
	}
	return true
}

func cellFill(m scrollMetrics, cellIndex int) (start int, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cellIndex * subcell
	cellEnd := cellStart + subcell
	thumbEnd := m.thumbStart + m.thumbLen
	start = max(m.thumbStart, cellStart)
	end := min(thumbEnd, cellEnd)
	if end <= start {
		return 0, 0
	}
	// Convert absolute subcell coverage into cell-local [start,len] used by
	// fractional glyph selection.
	fillLen = min(end-start, subcell)
	start = clampInt(start-cellStart, 0, subcell)
	return start, fillLen
}

func (s *ScrollBar) glyphForVertical(start, fillLen int) (rune, tcell.Style) {
	if fillLen <= 0 {
		if !s.showTrack {
			return ' ', s.trackStyle
		}
		return s.glyphSet.TrackVertical, s.trackStyle
	}
	if fillLen >= subcell {
		return s.glyphSet.ThumbVerticalLower[7], s.thumbStyle
	}
	ix := fillLen - 1
	if start == 0 {
		return s.glyphSet.ThumbVerticalUpper[ix], s.thumbStyle
	}
	return s.glyphSet.ThumbVerticalLower[ix], s.thumbStyle
}

// Draw draws the scrollbar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, _, height := s.GetInnerRect()
	if height <= 0 {
		return
	}
	m := s.metrics(height)
	if !s.shouldDraw(height, m) {
		return
	}

	for cell := 0; cell < m.trackCells; cell++ {
		start, fillLen := cellFill(m, cell)
		glyph, style := s.glyphForVertical(start, fillLen)
		screen.SetContent(x, y+cell, glyph, nil, style)
	}
}

// InputHandler returns the handler for this primitive.
func (s *ScrollBar) InputHandler() func(event *tcell.EventKey, setFocus func(p Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			s.SetValue(s.value - s.step)
		case tcell.KeyDown:
			s.SetValue(s.value + s.step)
		case tcell.KeyPgUp:
			s.SetValue(s.value - s.pageSize)
		case tcell.KeyPgDn:
			s.SetValue(s.value + s.pageSize)
		case tcell.KeyHome:
			s.SetValue(s.min)
		case tcell.KeyEnd:
			s.SetValue(s.maxValue())
		}
	})
}

// MouseHandler returns the mouse handler for this primitive.
func (s *ScrollBar) MouseHandler() func(action MouseAction, event *tcell.EventMouse, setFocus func(p Primitive)) (consumed bool, capture Primitive) {
	return s.WrapMouseHandler(func(action MouseAction, event *tcell.EventMouse, setFocus func(p Primitive)) (consumed bool, capture Primitive) {
		x, y := event.Position()
		if !s.InRect(x, y) {
			return false, nil
		}

		switch action {
		case MouseScrollUp:
			s.SetValue(s.value - s.step)
			return true, nil
		case MouseScrollDown:
			s.SetValue(s.value + s.step)
			return true, nil
		case MouseLeftDown, MouseLeftClick:
			// Page toward the clicked track cell.
			_, innerY, _, height := s.GetInnerRect()
			if height > 0 {
				m := s.metrics(height)
				clicked := (y - innerY) * subcell
				if clicked < m.thumbStart {
					s.SetValue(s.value - s.pageSize)
				} else if clicked >= m.thumbStart+m.thumbLen {
					s.SetValue(s.value + s.pageSize)
				}
			}
			return true, nil
		}

		return false, nil
	})
}

var _ Primitive = &ScrollBar{}
