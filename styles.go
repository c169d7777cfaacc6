package lazylist

import "github.com/gdamore/tcell/v2"

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	ContrastBackgroundColor  tcell.Color // Background color for contrasting elements.
	BorderColor              tcell.Color // Box borders.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. labels).
	InverseTextColor         tcell.Color // Text on primary-colored backgrounds.
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors.
var Styles = Theme{
	PrimitiveBackgroundColor: tcell.ColorBlack,
	ContrastBackgroundColor:  tcell.ColorBlue,
	BorderColor:              tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorYellow,
	InverseTextColor:         tcell.ColorBlue,
}
