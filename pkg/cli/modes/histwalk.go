package modes

import (
	"fmt"

	"src.lined.dev/pkg/cli"
	"src.lined.dev/pkg/cli/tk"
	"src.lined.dev/pkg/histutil"
	"src.lined.dev/pkg/term"
)

// Histwalk is a mode for walking through history entries whose text starts
// with a given prefix. The entry under the walk cursor is shown as a
// preview overlay over the code area; any edit commits it into the real
// buffer.
type Histwalk interface {
	tk.Widget
	// Prev walks to the previous (older) entry. It returns
	// histutil.ErrEndOfHistory if the walk is already at the oldest entry.
	Prev() error
	// Next walks to the next (newer) entry. It returns
	// histutil.ErrEndOfHistory if the walk would move past the newest
	// entry.
	Next() error
	// Accept commits the current entry into the code buffer and closes the
	// mode.
	Accept()
}

// HistwalkSpec specifies the configuration for the histwalk mode.
type HistwalkSpec struct {
	// Key bindings.
	Bindings tk.Bindings
	// The history store to walk.
	Store histutil.Store
	// The prefix to require of position entries.
	Prefix string
}

type histwalk struct {
	app      cli.App
	attached tk.CodeArea
	cursor   histutil.Cursor
	HistwalkSpec
}

// NewHistwalk starts the histwalk mode. It returns an error if the store
// has no entry with the required prefix.
func NewHistwalk(app cli.App, cfg HistwalkSpec) (Histwalk, error) {
	if cfg.Bindings == nil {
		cfg.Bindings = tk.DummyBindings{}
	}
	cursor := cfg.Store.Cursor(cfg.Prefix)
	cursor.Prev()
	if _, err := cursor.Get(); err != nil {
		return nil, err
	}
	w := histwalk{app, app.CodeArea(), cursor, cfg}
	w.updatePending()
	return &w, nil
}

func (w *histwalk) Render(width, height int) *term.Buffer {
	cmd, _ := w.cursor.Get()
	content := modeLine(fmt.Sprintf(" HISTORY #%d ", cmd.Seq), false)
	buf := term.NewBufferBuilder(width).WriteStyled(content).Buffer()
	buf.TrimToLines(0, height)
	return buf
}

func (w *histwalk) MaxHeight(width, height int) int { return 1 }

func (w *histwalk) Handle(event term.Event) bool {
	if w.Bindings.Handle(w, event) {
		return true
	}
	// Any unbound event commits the walked-to entry and is then handled by
	// the code area as an ordinary edit.
	w.Accept()
	return w.attached.Handle(event)
}

func (w *histwalk) Focus() bool { return false }

func (w *histwalk) Prev() error { return w.walk(histutil.Cursor.Prev, histutil.Cursor.Next) }

func (w *histwalk) Next() error { return w.walk(histutil.Cursor.Next, histutil.Cursor.Prev) }

func (w *histwalk) walk(f, undo func(histutil.Cursor)) error {
	f(w.cursor)
	_, err := w.cursor.Get()
	if err == nil {
		w.updatePending()
	} else if err == histutil.ErrEndOfHistory {
		undo(w.cursor)
	}
	return err
}

func (w *histwalk) updatePending() {
	cmd, _ := w.cursor.Get()
	w.attached.MutateState(func(s *tk.CodeAreaState) {
		s.Pending = tk.PendingCode{
			From: len(w.Prefix), To: len(s.Buffer.Content),
			Content: cmd.Text[len(w.Prefix):],
		}
	})
}

func (w *histwalk) Accept() {
	w.attached.MutateState((*tk.CodeAreaState).ApplyPending)
	w.app.PopAddon()
}

func (w *histwalk) Dismiss() {
	w.attached.MutateState(func(s *tk.CodeAreaState) { s.Pending = tk.PendingCode{} })
}
