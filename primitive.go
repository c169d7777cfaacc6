// Package lazylist provides a virtualized list-box primitive for terminal
// user interfaces built on tcell. An arbitrarily large dataset is rendered
// through a small pool of recycled row primitives while keyboard navigation
// tracks a "virtual focus" position over the full dataset, independent of
// which rows are physically on screen.
package lazylist

import "github.com/gdamore/tcell/v2"

// Primitive is the top-most interface for all graphical primitives.
type Primitive interface {
	// Draw draws this primitive onto the screen. Implementers can call the
	// screen's ShowCursor() function but should only do so when they have focus.
	// (They will need to keep track of this themselves.)
	Draw(screen tcell.Screen)

	// GetRect returns the current position of the primitive, x, y, width, and
	// height.
	GetRect() (int, int, int, int)
	// SetRect sets a new position of the primitive.
	SetRect(x, y, width, height int)

	// InputHandler returns a handler which receives key events when this
	// primitive has focus. The setFocus function can be called to redirect
	// focus to a different primitive.
	InputHandler() func(event *tcell.EventKey, setFocus func(p Primitive))
	// MouseHandler returns a handler which receives mouse events. The returned
	// capture primitive (if non-nil) receives follow-up mouse events until the
	// capture is released.
	MouseHandler() func(action MouseAction, event *tcell.EventMouse, setFocus func(p Primitive)) (consumed bool, capture Primitive)

	// HasFocus determines if the primitive has focus. This function must return
	// true also if one of this primitive's child elements has focus.
	HasFocus() bool
	// Focus is called by the application when the primitive receives focus.
	// Implementers may call delegate() to pass the focus on to another primitive.
	Focus(delegate func(p Primitive))
	// Blur is called by the application when the primitive loses focus.
	Blur()
}

// Row is a primitive managed by a list-box pool. Any type embedding *Box and
// reporting a height satisfies it.
type Row interface {
	Primitive

	// Height returns the number of screen rows this item occupies at the given
	// width.
	Height(width int) int

	SetFocusFunc(callback func()) *Box
	SetBlurFunc(callback func()) *Box
}

// RowFactory creates one pooled row instance. The factory is invoked once per
// pool slot whenever the pool is (re)built, plus once for a throwaway
// capability probe and once per height measurement.
type RowFactory func() Row

// RowContainer is an optional interface for composite rows. A row containing
// focusable child primitives implements it so focus events landing on a
// descendant can be resolved back to the owning row.
type RowContainer interface {
	ContainsPrimitive(p Primitive) bool
}

// FocusOwner provides access to the toolkit's global focus. The list-box
// queries it to detect externally driven focus changes and uses it to grant
// real focus to pooled rows. App implements this interface.
type FocusOwner interface {
	GetFocus() Primitive
	SetFocus(p Primitive)
}
