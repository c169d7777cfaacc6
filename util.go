package lazylist

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// StringWidth returns the number of screen cells occupied by the given text.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Print prints a single line of text onto the screen at (x,y), using at most
// maxWidth cells. Text wider than maxWidth is clipped. It returns the number
// of cells actually written.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) int {
	if maxWidth <= 0 || text == "" {
		return 0
	}

	textWidth := StringWidth(text)
	switch alignment {
	case AlignmentCenter:
		if textWidth < maxWidth {
			x += (maxWidth - textWidth) / 2
			maxWidth = textWidth
		}
	case AlignmentRight:
		if textWidth < maxWidth {
			x += maxWidth - textWidth
			maxWidth = textWidth
		}
	}

	printed := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		width := StringWidth(cluster)
		if width < 1 {
			width = 1
		}
		if printed+width > maxWidth {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x+printed, y, runes[0], runes[1:], style)
		printed += width
	}
	return printed
}

// fillLine overwrites a horizontal run of cells with the given rune.
func fillLine(screen tcell.Screen, x, y, width int, r rune, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
