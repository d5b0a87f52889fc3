package tk

import (
	"bytes"
	"sync"
	"unicode"
	"unicode/utf8"

	"src.lined.dev/pkg/term"
	"src.lined.dev/pkg/ui"
)

// CodeArea is a Widget for displaying and editing code.
type CodeArea interface {
	Widget
	// CopyState returns a copy of the state.
	CopyState() CodeAreaState
	// MutateState calls the given function while locking the state mutex.
	MutateState(f func(*CodeAreaState))
	// Submit triggers the OnSubmit callback.
	Submit()
}

// CodeAreaSpec specifies the configuration and initial state for CodeArea.
type CodeAreaSpec struct {
	// Key bindings.
	Bindings Bindings
	// A function that highlights the given code and returns any tips it has
	// found, such as errors. If this function is not given, the widget does
	// not highlight the code nor show any tips.
	Highlighter func(code string) (ui.Text, []ui.Text)
	// Prompt callback.
	Prompt func() ui.Text
	// Right-prompt callback.
	RPrompt func() ui.Text
	// A callback returning the prompt to show before continuation lines
	// of a multi-line buffer. The argument is the 1-based number of the
	// continuation line. If this function is not given, continuation lines
	// are aligned under the first line instead.
	ContPrompt func(line int) ui.Text
	// A function that is called on the submit event.
	OnSubmit func()

	// State. When used in NewCodeArea, this field specifies the initial
	// state.
	State CodeAreaState
}

// CodeAreaState keeps the mutable state of the CodeArea widget.
type CodeAreaState struct {
	Buffer      CodeBuffer
	Pending     PendingCode
	HideRPrompt bool
	HideTips    bool
}

// CodeBuffer represents the buffer of the CodeArea widget.
type CodeBuffer struct {
	// Content of the buffer.
	Content string
	// Position of the dot (more commonly known as the cursor), as a byte
	// index into Content.
	Dot int
}

// PendingCode represents pending code, such as during completion.
type PendingCode struct {
	// Beginning index of the text area that the pending code replaces, as
	// a byte index into CodeBuffer.Content.
	From int
	// End index of the text area that the pending code replaces, as a byte
	// index into CodeBuffer.Content.
	To int
	// The content of the pending code.
	Content string
}

// ApplyPending applies pending code to the code buffer, and resets pending
// code.
func (s *CodeAreaState) ApplyPending() {
	s.Buffer, _, _ = patchPending(s.Buffer, s.Pending)
	s.Pending = PendingCode{}
}

// InsertAtDot inserts text at the dot and moves the dot after it.
func (c *CodeBuffer) InsertAtDot(text string) {
	*c = CodeBuffer{
		Content: c.Content[:c.Dot] + text + c.Content[c.Dot:],
		Dot:     c.Dot + len(text),
	}
}

type codeArea struct {
	// Mutex for synchronizing access to State.
	StateMutex sync.RWMutex
	// Configuration and state.
	CodeAreaSpec

	// Whether the widget is in the middle of bracketed pasting.
	pasting bool
	// Buffer for keeping pasted text during bracketed pasting.
	pasteBuffer bytes.Buffer
}

// NewCodeArea creates a new CodeArea from the given spec.
func NewCodeArea(spec CodeAreaSpec) CodeArea {
	if spec.Bindings == nil {
		spec.Bindings = DummyBindings{}
	}
	if spec.Highlighter == nil {
		spec.Highlighter = func(s string) (ui.Text, []ui.Text) { return ui.T(s), nil }
	}
	if spec.Prompt == nil {
		spec.Prompt = func() ui.Text { return nil }
	}
	if spec.RPrompt == nil {
		spec.RPrompt = func() ui.Text { return nil }
	}
	if spec.OnSubmit == nil {
		spec.OnSubmit = func() {}
	}
	return &codeArea{CodeAreaSpec: spec}
}

// Submit emits a submit event with the current code content.
func (w *codeArea) Submit() {
	w.OnSubmit()
}

func (w *codeArea) Render(width, height int) *term.Buffer {
	b := w.render(width)
	truncateToHeight(b, height)
	return b
}

func (w *codeArea) MaxHeight(width, height int) int {
	return len(w.render(width).Lines)
}

func (w *codeArea) render(width int) *term.Buffer {
	view := getView(w)
	bb := term.NewBufferBuilder(width)
	renderView(view, bb)
	return bb.Buffer()
}

// Handle handles KeyEvent's of non-function keys, as well as PasteSetting
// events.
func (w *codeArea) Handle(event term.Event) bool {
	switch event := event.(type) {
	case term.PasteSetting:
		return w.handlePasteSetting(bool(event))
	case term.KeyEvent:
		return w.handleKeyEvent(ui.Key(event))
	}
	return false
}

func (w *codeArea) MutateState(f func(*CodeAreaState)) {
	w.StateMutex.Lock()
	defer w.StateMutex.Unlock()
	f(&w.State)
}

func (w *codeArea) CopyState() CodeAreaState {
	w.StateMutex.RLock()
	defer w.StateMutex.RUnlock()
	return w.State
}

func (w *codeArea) handlePasteSetting(start bool) bool {
	if start {
		w.pasting = true
	} else {
		text := w.pasteBuffer.String()
		w.MutateState(func(s *CodeAreaState) { s.Buffer.InsertAtDot(text) })

		w.pasting = false
		w.pasteBuffer = bytes.Buffer{}
	}
	return true
}

func (w *codeArea) handleKeyEvent(key ui.Key) bool {
	isFuncKey := key.Mod != 0 || key.Rune < 0
	if w.pasting {
		if !isFuncKey {
			w.pasteBuffer.WriteRune(key.Rune)
		}
		// Swallow function keys during pasting; they are most likely part
		// of the pasted text anyway.
		return true
	}

	if w.Bindings.Handle(w, term.KeyEvent(key)) {
		return true
	}

	// Only essential keybindings are implemented here; other keybindings
	// are added via Bindings.
	switch key {
	case ui.K('\n'):
		w.Submit()
		return true
	case ui.K(ui.Backspace), ui.K('H', ui.Ctrl):
		w.MutateState(func(s *CodeAreaState) {
			c := &s.Buffer
			// Remove the rune before the dot.
			_, chop := utf8.DecodeLastRuneInString(c.Content[:c.Dot])
			*c = CodeBuffer{
				Content: c.Content[:c.Dot-chop] + c.Content[c.Dot:],
				Dot:     c.Dot - chop,
			}
		})
		return true
	case ui.K(ui.Left):
		w.MutateState(func(s *CodeAreaState) {
			c := &s.Buffer
			_, chop := utf8.DecodeLastRuneInString(c.Content[:c.Dot])
			c.Dot -= chop
		})
		return true
	case ui.K(ui.Right):
		w.MutateState(func(s *CodeAreaState) {
			c := &s.Buffer
			_, skip := utf8.DecodeRuneInString(c.Content[c.Dot:])
			c.Dot += skip
		})
		return true
	case ui.K(ui.Home), ui.K('A', ui.Ctrl):
		w.MutateState(func(s *CodeAreaState) {
			c := &s.Buffer
			c.Dot = lineStart(c.Content, c.Dot)
		})
		return true
	case ui.K(ui.End), ui.K('E', ui.Ctrl):
		w.MutateState(func(s *CodeAreaState) {
			c := &s.Buffer
			c.Dot = lineEnd(c.Content, c.Dot)
		})
		return true
	case ui.K('U', ui.Ctrl):
		w.MutateState(func(s *CodeAreaState) {
			c := &s.Buffer
			start := lineStart(c.Content, c.Dot)
			*c = CodeBuffer{
				Content: c.Content[:start] + c.Content[c.Dot:],
				Dot:     start,
			}
		})
		return true
	case ui.K('K', ui.Ctrl):
		w.MutateState(func(s *CodeAreaState) {
			c := &s.Buffer
			c.Content = c.Content[:c.Dot] + c.Content[lineEnd(c.Content, c.Dot):]
		})
		return true
	case ui.K('W', ui.Ctrl):
		w.MutateState(func(s *CodeAreaState) {
			c := &s.Buffer
			*c = CodeBuffer{
				Content: c.Content[:wordStart(c.Content, c.Dot)] + c.Content[c.Dot:],
				Dot:     wordStart(c.Content, c.Dot),
			}
		})
		return true
	default:
		if isFuncKey || !unicode.IsGraphic(key.Rune) {
			return false
		}
		w.MutateState(func(s *CodeAreaState) {
			s.Buffer.InsertAtDot(string(key.Rune))
		})
		return true
	}
}

// lineStart returns the index of the start of the logical line dot is on.
func lineStart(content string, dot int) int {
	for i := dot - 1; i >= 0; i-- {
		if content[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// lineEnd returns the index of the end of the logical line dot is on.
func lineEnd(content string, dot int) int {
	for i := dot; i < len(content); i++ {
		if content[i] == '\n' {
			return i
		}
	}
	return len(content)
}

// wordStart returns the index of the start of the whitespace-delimited word
// before dot.
func wordStart(content string, dot int) int {
	i := dot
	for i > 0 && isSpaceByte(content[i-1]) {
		i--
	}
	for i > 0 && !isSpaceByte(content[i-1]) {
		i--
	}
	return i
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' || b == '\n' }
