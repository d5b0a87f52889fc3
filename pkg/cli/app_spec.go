package cli

import (
	"src.lined.dev/pkg/cli/tk"
	"src.lined.dev/pkg/term"
	"src.lined.dev/pkg/ui"
)

// AppSpec specifies the configuration and initial state for an App.
type AppSpec struct {
	TTY            TTY
	MaxHeight      func() int
	BeforeReadline []func()
	AfterReadline  []func(string)

	Highlighter Highlighter
	Prompt      Prompt
	RPrompt     Prompt
	// ContPrompt computes the prompt shown before the n-th continuation
	// line of a multi-line buffer (n starts at 1).
	ContPrompt func(n int) ui.Text

	CodeAreaBindings tk.Bindings
	GlobalBindings   tk.Bindings

	// AutoFreshLine makes the App ensure the cursor is at the start of a
	// fresh line before drawing the first prompt.
	AutoFreshLine bool
	// MouseTracking, if not term.MouseOff, is enabled for the duration of
	// each read session.
	MouseTracking term.MouseMode

	CodeAreaState tk.CodeAreaState
	State         State
}

// Highlighter represents a code highlighter whose result can be delivered
// asynchronously.
type Highlighter interface {
	// Get returns the highlighted code and any tips, such as errors.
	Get(code string) (ui.Text, []ui.Text)
	// LateUpdates returns a channel for delivering late updates.
	LateUpdates() <-chan struct{}
}

// A Highlighter implementation that always returns plain text.
type dummyHighlighter struct{}

func (dummyHighlighter) Get(code string) (ui.Text, []ui.Text) {
	return ui.T(code), nil
}

func (dummyHighlighter) LateUpdates() <-chan struct{} { return nil }

// Prompt represents a prompt whose result can be delivered asynchronously.
type Prompt interface {
	// Trigger requests a re-computation of the prompt. The force flag is
	// set when triggered for the first time during a read session.
	Trigger(force bool)
	// Get returns the current prompt.
	Get() ui.Text
	// LateUpdates returns a channel for delivering late updates.
	LateUpdates() <-chan struct{}
}

// NewConstPrompt returns a Prompt that always shows the given text.
func NewConstPrompt(t ui.Text) Prompt {
	return constPrompt{t}
}

type constPrompt struct{ Content ui.Text }

func (constPrompt) Trigger(force bool)           {}
func (p constPrompt) Get() ui.Text               { return p.Content }
func (constPrompt) LateUpdates() <-chan struct{} { return nil }
