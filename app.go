package lazylist

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// The size of the queued updates channel.
const updatesQueueSize = 100

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than a click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// App is a minimal application host for the primitives in this package: it
// owns the screen, the event loop, the global focus and a queue of deferred
// updates. It implements FocusOwner and Scheduler, so a LazyListBox attached
// to it gets real-focus granting, external-focus polling and next-tick
// deferral for free.
type App struct {
	sync.RWMutex

	// The application's screen. Apart from Run(), this variable should never
	// be set directly.
	screen tcell.Screen

	// The primitive which currently has the keyboard focus.
	focus Primitive

	// The root primitive to be seen on the screen.
	root Primitive

	events  chan tcell.Event
	updates chan func()
	done    chan struct{}

	// A primitive returned by a MouseHandler which captures follow-up mouse
	// events.
	mouseCapturingPrimitive Primitive
	lastMouseX, lastMouseY  int
	mouseDownX, mouseDownY  int
	lastMouseClick          time.Time
	lastMouseButtons        tcell.ButtonMask
}

// NewApp creates and returns a new application host.
func NewApp() *App {
	return &App{
		updates: make(chan func(), updatesQueueSize),
		done:    make(chan struct{}),
	}
}

// SetScreen sets the application's screen before Run is called. Mainly useful
// for simulation screens in tests.
func (a *App) SetScreen(screen tcell.Screen) *App {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
	}
	return a
}

// SetRoot sets the root primitive and focuses it. This function must be
// called at least once or nothing will be displayed.
func (a *App) SetRoot(root Primitive) *App {
	a.Lock()
	a.root = root
	a.Unlock()
	a.SetFocus(root)
	return a
}

// SetFocus sets the focus to a new primitive. Blur() is called on the
// previously focused primitive, Focus() on the new one.
func (a *App) SetFocus(p Primitive) {
	a.Lock()
	if a.focus != nil && a.focus != p {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
}

// GetFocus returns the primitive which has the current focus, or nil.
func (a *App) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate enqueues f for execution on the event loop, after the current
// event has been fully processed. It does not wait for f to run.
func (a *App) QueueUpdate(f func()) {
	select {
	case a.updates <- f:
	case <-a.done:
	}
}

// After schedules f on the event loop once d has elapsed. The returned
// function cancels the pending call.
func (a *App) After(d time.Duration, f func()) (cancel func()) {
	timer := time.AfterFunc(d, func() {
		a.QueueUpdate(f)
	})
	return func() { timer.Stop() }
}

// Run starts the application and thus the event loop. This function returns
// when [App.Stop] was called.
func (a *App) Run() error {
	a.Lock()
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			a.Unlock()
			return err
		}
		if err = screen.Init(); err != nil {
			a.Unlock()
			return err
		}
		a.screen = screen
	}
	screen := a.screen
	a.events = make(chan tcell.Event, 16)
	a.Unlock()

	screen.EnableMouse()

	// We catch panics to clean up because they mess up the terminal.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	// Feed terminal events into the loop.
	go func() {
		for {
			event := screen.PollEvent()
			if event == nil {
				close(a.events)
				return
			}
			select {
			case a.events <- event:
			case <-a.done:
				return
			}
		}
	}()

	a.draw()

	var appErr error
EventLoop:
	for {
		select {
		case event, ok := <-a.events:
			if !ok {
				break EventLoop
			}

			switch event := event.(type) {
			case *tcell.EventKey:
				a.RLock()
				focus := a.focus
				a.RUnlock()
				if focus != nil {
					if handler := focus.InputHandler(); handler != nil {
						handler(event, a.SetFocus)
					}
				}
				a.draw()
			case *tcell.EventResize:
				screen.Sync()
				a.draw()
			case *tcell.EventMouse:
				if a.fireMouseActions(event) {
					a.draw()
				}
				a.lastMouseButtons = event.Buttons()
			case *tcell.EventError:
				appErr = event
				a.Stop()
			}

		case update := <-a.updates:
			update()
			a.draw()

		case <-a.done:
			break EventLoop
		}
	}

	return appErr
}

// Stop stops the application, causing Run() to return.
func (a *App) Stop() {
	a.Lock()
	defer a.Unlock()
	select {
	case <-a.done:
		return
	default:
	}
	close(a.done)
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
}

// Draw queues a redraw of the screen.
func (a *App) Draw() {
	a.QueueUpdate(func() {})
}

func (a *App) draw() {
	a.RLock()
	screen := a.screen
	root := a.root
	a.RUnlock()
	if screen == nil || root == nil {
		return
	}
	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	root.Draw(screen)
	screen.Show()
}

// fireMouseActions analyzes the provided mouse event, derives mouse actions
// from it and forwards them to the root primitive's handler chain.
func (a *App) fireMouseActions(event *tcell.EventMouse) (handled bool) {
	fire := func(action MouseAction) {
		switch action {
		case MouseLeftDown, MouseMiddleDown, MouseRightDown:
			a.mouseDownX, a.mouseDownY = event.Position()
		}

		a.RLock()
		target := a.mouseCapturingPrimitive
		if target == nil {
			target = a.root
		}
		a.RUnlock()
		if target == nil {
			return
		}
		if handler := target.MouseHandler(); handler != nil {
			consumed, capture := handler(action, event, a.SetFocus)
			if consumed {
				handled = true
			}
			a.Lock()
			a.mouseCapturingPrimitive = capture
			a.Unlock()
		}
	}

	x, y := event.Position()
	buttons := event.Buttons()
	clickMoved := x != a.mouseDownX || y != a.mouseDownY
	buttonChanges := buttons ^ a.lastMouseButtons

	if x != a.lastMouseX || y != a.lastMouseY {
		fire(MouseMove)
		a.lastMouseX = x
		a.lastMouseY = y
	}

	for _, buttonEvent := range []struct {
		button                  tcell.ButtonMask
		down, up, click, dclick MouseAction
	}{
		{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
		{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleClick},
		{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightClick},
	} {
		if buttonChanges&buttonEvent.button != 0 {
			if buttons&buttonEvent.button != 0 {
				fire(buttonEvent.down)
			} else {
				fire(buttonEvent.up)
				if !clickMoved {
					if a.lastMouseClick.Add(DoubleClickInterval).Before(time.Now()) {
						fire(buttonEvent.click)
						a.lastMouseClick = time.Now()
					} else {
						fire(buttonEvent.dclick)
						a.lastMouseClick = time.Time{} // reset
					}
				}
			}
		}
	}

	for _, wheelEvent := range []struct {
		button tcell.ButtonMask
		action MouseAction
	}{
		{tcell.WheelUp, MouseScrollUp},
		{tcell.WheelDown, MouseScrollDown},
		{tcell.WheelLeft, MouseScrollLeft},
		{tcell.WheelRight, MouseScrollRight}} {
		if buttons&wheelEvent.button != 0 {
			fire(wheelEvent.action)
		}
	}

	return handled
}

var (
	_ FocusOwner = &App{}
	_ Scheduler  = &App{}
)
