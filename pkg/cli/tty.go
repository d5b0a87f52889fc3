package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"src.lined.dev/pkg/logutil"
	"src.lined.dev/pkg/sys"
	"src.lined.dev/pkg/term"
	"src.lined.dev/pkg/ui"
)

var logger = logutil.GetLogger("[cli] ")

// TTY is the type the line editor uses to access the terminal.
type TTY interface {
	// Setup sets up the terminal for the duration of a read session. It
	// returns a restore function to undo the setup, and any error during
	// the setup.
	Setup() (restore func(), err error)
	// NotifyFreshLine makes sure the cursor is at the start of a fresh
	// line, writing a line terminator if the terminal cursor is possibly
	// mid-line.
	NotifyFreshLine()
	// Beep rings the terminal bell.
	Beep()
	// SetMouseTracking turns mouse tracking on or off in the given mode.
	SetMouseTracking(mode term.MouseMode) error
	// Size returns the height and width of the terminal.
	Size() (h, w int)

	// ReadEvent reads a terminal event.
	ReadEvent() (term.Event, error)
	// CloseReader releases resources allocated for reading terminal
	// events, unblocking any pending ReadEvent call.
	CloseReader()

	// NotifySignals start relaying signals and returns a channel on which
	// signals are delivered.
	NotifySignals() <-chan os.Signal
	// StopSignals stops the relaying of signals.
	StopSignals()

	// Writer methods for updating the screen.
	term.Writer
}

// SetupFunc configures the terminal and returns a function that restores
// the previous configuration. It is the signature of term.Setup,
// term.SetupExec and term.SetupForDumb.
type SetupFunc func(in, out *os.File) (func() error, error)

// ChooseSetup returns the setup function most appropriate for the
// environment of the given input file: a no-op setup for dumb terminals
// (TERM=dumb or a non-terminal input), and the termios-based setup
// otherwise. The stty-based term.SetupExec is never chosen automatically;
// pass it to NewTTYWithSetup to force it.
func ChooseSetup(in *os.File) SetupFunc {
	if os.Getenv("TERM") == "dumb" || !sys.IsATTY(in.Fd()) {
		return term.SetupForDumb
	}
	return term.Setup
}

type aTTY struct {
	in, out *os.File
	setup   SetupFunc
	r       term.Reader
	w       term.Writer
	sigCh   chan os.Signal

	rawMutex sync.Mutex
}

// NewTTY returns a TTY over the given input and output, using the setup
// chosen by ChooseSetup.
func NewTTY(in, out *os.File) TTY {
	return NewTTYWithSetup(in, out, ChooseSetup(in))
}

// NewTTYWithSetup returns a TTY over the given input and output, with an
// explicit setup function.
func NewTTYWithSetup(in, out *os.File, setup SetupFunc) TTY {
	return &aTTY{in: in, out: out, setup: setup, w: term.NewWriter(out)}
}

func (t *aTTY) Setup() (func(), error) {
	restore, err := t.setup(t.in, t.out)
	if restore == nil {
		return func() {}, err
	}
	return func() {
		if err := restore(); err != nil {
			logger.Println("restore terminal:", err)
		}
	}, err
}

func (t *aTTY) NotifyFreshLine() {
	_, width := sys.WinSize(t.out)
	if width <= 0 {
		t.out.WriteString("\r\n")
		return
	}
	// Write a marker followed by enough spaces to wrap to the next line if
	// and only if the cursor is not at the first column, then return to the
	// first column. The prompt then overwrites the spaces; the marker stays
	// visible at the end of any partial line of earlier output.
	t.out.WriteString(
		"\033[7m%\033[m" + strings.Repeat(" ", width-1) + "\r")
}

func (t *aTTY) Beep() {
	t.out.WriteString("\a")
}

func (t *aTTY) SetMouseTracking(mode term.MouseMode) error {
	return term.SetMouseTracking(t.out, mode)
}

func (t *aTTY) Size() (h, w int) {
	return sys.WinSize(t.out)
}

func (t *aTTY) ReadEvent() (term.Event, error) {
	r, err := t.reader()
	if err != nil {
		return nil, err
	}
	return r.ReadEvent()
}

func (t *aTTY) reader() (term.Reader, error) {
	t.rawMutex.Lock()
	defer t.rawMutex.Unlock()
	if t.r == nil {
		r, err := term.NewReader(t.in)
		if err != nil {
			return nil, fmt.Errorf("set up terminal reader: %w", err)
		}
		t.r = r
	}
	return t.r, nil
}

func (t *aTTY) CloseReader() {
	t.rawMutex.Lock()
	defer t.rawMutex.Unlock()
	if t.r != nil {
		t.r.Close()
		t.r = nil
	}
}

func (t *aTTY) NotifySignals() <-chan os.Signal {
	t.sigCh = sys.NotifySignals()
	return t.sigCh
}

func (t *aTTY) StopSignals() {
	sys.StopSignals(t.sigCh)
	t.sigCh = nil
}

func (t *aTTY) Buffer() *term.Buffer {
	return t.w.Buffer()
}

func (t *aTTY) ResetBuffer() {
	t.w.ResetBuffer()
}

func (t *aTTY) UpdateBuffer(notes ui.Text, buf *term.Buffer, full bool) error {
	return t.w.UpdateBuffer(notes, buf, full)
}

func (t *aTTY) ClearScreen() {
	t.w.ClearScreen()
}

func (t *aTTY) HideCursor() {
	t.w.HideCursor()
}

func (t *aTTY) ShowCursor() {
	t.w.ShowCursor()
}
