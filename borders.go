package lazylist

// Borders is a bit mask selecting which of a box's four borders are drawn.
type Borders uint8

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll          = BordersTop | BordersBottom | BordersLeft | BordersRight
)

// Has reports whether all borders in flag are set.
func (b Borders) Has(flag Borders) bool {
	return b&flag == flag
}

// BorderSet defines the glyphs used when a box border is drawn.
type BorderSet struct {
	Top         rune
	Bottom      rune
	Left        rune
	Right       rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

func BorderSetHidden() BorderSet {
	return BorderSet{
		Top:         ' ',
		Bottom:      ' ',
		Left:        ' ',
		Right:       ' ',
		TopLeft:     ' ',
		TopRight:    ' ',
		BottomLeft:  ' ',
		BottomRight: ' ',
	}
}

func BorderSetPlain() BorderSet {
	return BorderSet{
		Top:         '─',
		Bottom:      '─',
		Left:        '│',
		Right:       '│',
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
	}
}

func BorderSetRound() BorderSet {
	return BorderSet{
		Top:         '─',
		Bottom:      '─',
		Left:        '│',
		Right:       '│',
		TopLeft:     '╭',
		TopRight:    '╮',
		BottomLeft:  '╰',
		BottomRight: '╯',
	}
}

func BorderSetDouble() BorderSet {
	return BorderSet{
		Top:         '═',
		Bottom:      '═',
		Left:        '║',
		Right:       '║',
		TopLeft:     '╔',
		TopRight:    '╗',
		BottomLeft:  '╚',
		BottomRight: '╝',
	}
}
