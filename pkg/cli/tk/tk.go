// Package tk is the toolkit for the cli package.
//
// This package defines a Widget protocol, and provides the widgets needed by
// the line editor: a code area for editing, a list box for selecting from
// candidates, and a combo box composing the two.
package tk

import (
	"src.lined.dev/pkg/term"
)

// Widget is the basic component of UI; it knows how to handle events and
// how to render itself.
type Widget interface {
	Renderer
	// MaxHeight returns the maximum height needed to render the widget
	// within the given bound.
	MaxHeight(width, height int) int
	// Handle handles a terminal event. It returns whether the widget has
	// handled the event; an unhandled event is passed on to an outer layer.
	Handle(event term.Event) bool
}

// Renderer wraps the Render method.
type Renderer interface {
	// Render renders onto a region of bound width and height.
	Render(width, height int) *term.Buffer
}

// Bindings is the interface for key bindings.
type Bindings interface {
	// Handle handles a terminal event for the given widget. It returns
	// whether the event was handled.
	Handle(Widget, term.Event) bool
}

// DummyBindings is a Bindings that handles no events.
type DummyBindings struct{}

// Handle always returns false.
func (DummyBindings) Handle(w Widget, event term.Event) bool { return false }

// MapBindings is a Bindings backed by a map. It is mainly useful in tests.
type MapBindings map[term.Event]func(Widget)

// Handle handles the event by calling the function corresponding to the
// event in the map. If there is no corresponding function, it returns false.
func (m MapBindings) Handle(w Widget, event term.Event) bool {
	fn, ok := m[event]
	if ok {
		fn(w)
	}
	return ok
}

// FuncBindings is a Bindings backed by a function.
type FuncBindings func(Widget, term.Event) bool

// Handle handles the event by calling the function.
func (f FuncBindings) Handle(w Widget, event term.Event) bool {
	return f(w, event)
}
