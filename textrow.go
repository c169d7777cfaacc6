package lazylist

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TextRow is the default pooled row: a single-line label with distinct
// focused and unfocused styles. It implements ItemConfigurer, so rows show
// their data index alongside the item when index display is enabled.
type TextRow struct {
	*Box

	text  string
	index int

	showIndex bool

	style        tcell.Style
	focusedStyle tcell.Style
}

// NewTextRow returns a new text row.
func NewTextRow() *TextRow {
	return &TextRow{
		Box:          NewBox(),
		index:        -1,
		style:        tcell.StyleDefault.Background(Styles.PrimitiveBackgroundColor).Foreground(Styles.PrimaryTextColor),
		focusedStyle: tcell.StyleDefault.Background(Styles.PrimaryTextColor).Foreground(Styles.InverseTextColor),
	}
}

// NewTextRowFactory returns a RowFactory producing TextRow instances, ready
// to be passed to [LazyListBox.SetItemTemplate].
func NewTextRowFactory() RowFactory {
	return func() Row { return NewTextRow() }
}

// ConfigureItem binds a data index and item to this row. Items implementing
// fmt.Stringer render their String() form; plain strings render as-is;
// everything else goes through fmt.Sprint.
func (r *TextRow) ConfigureItem(index int, item any) {
	r.index = index
	text := itemText(item)
	if r.text != text {
		r.text = text
		r.MarkDirty()
	}
}

func itemText(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// SetShowIndex toggles rendering the bound data index in front of the label.
func (r *TextRow) SetShowIndex(show bool) *TextRow {
	if r.showIndex != show {
		r.showIndex = show
		r.MarkDirty()
	}
	return r
}

// SetStyle sets the style used while the row is not focused.
func (r *TextRow) SetStyle(style tcell.Style) *TextRow {
	if r.style != style {
		r.style = style
		r.MarkDirty()
	}
	return r
}

// SetFocusedStyle sets the style used while the row holds focus.
func (r *TextRow) SetFocusedStyle(style tcell.Style) *TextRow {
	if r.focusedStyle != style {
		r.focusedStyle = style
		r.MarkDirty()
	}
	return r
}

// GetText returns the row's current label.
func (r *TextRow) GetText() string {
	return r.text
}

// Height returns the number of screen rows this item occupies.
func (r *TextRow) Height(width int) int {
	return 1
}

// Draw draws this primitive onto the screen.
func (r *TextRow) Draw(screen tcell.Screen) {
	x, y, width, height := r.GetRect()
	if width <= 0 || height <= 0 {
		return
	}

	style := r.style
	if r.HasFocus() {
		style = r.focusedStyle
	}
	fillLine(screen, x, y, width, ' ', style)

	text := r.text
	if r.showIndex && r.index >= 0 {
		text = fmt.Sprintf("%d: %s", r.index, text)
	}
	Print(screen, text, x, y, width, AlignmentLeft, style)
}

var _ Row = &TextRow{}
var _ ItemConfigurer = &TextRow{}
