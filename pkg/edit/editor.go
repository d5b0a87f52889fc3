// Package edit implements an interactive line editor on top of the cli
// package. The cli package implements a general line editor; this package
// glues it together with completion, history walking and multi-line
// continuation.
package edit

import (
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"src.lined.dev/pkg/cli"
	"src.lined.dev/pkg/cli/modes"
	"src.lined.dev/pkg/cli/tk"
	"src.lined.dev/pkg/complete"
	"src.lined.dev/pkg/histutil"
	"src.lined.dev/pkg/logutil"
	"src.lined.dev/pkg/term"
	"src.lined.dev/pkg/ui"
)

var logger = logutil.GetLogger("[edit] ")

// ReaderConfig specifies the configuration for an Editor. The zero value
// is a usable configuration reading from the process's terminal with no
// completion and no history.
type ReaderConfig struct {
	// Name of the application, shown in mode lines.
	Name string
	// TTY to read from and write to. If nil, a TTY over stdin and stderr
	// is used.
	TTY cli.TTY
	// Prompt shown before the first line. If nil, no prompt is shown.
	Prompt cli.Prompt
	// RPrompt shown right-aligned on the first line.
	RPrompt cli.Prompt
	// Highlighter for the code.
	Highlighter cli.Highlighter

	// Completer invoked on the completion trigger (Tab). If nil, the
	// trigger does nothing.
	Completer complete.Completer
	// History store used for history walking and appending. If nil,
	// history keys do nothing and accepted lines are not recorded.
	History histutil.Store
	// CheckComplete reports whether the code is a complete unit. When it
	// returns false on submission, the editor inserts a newline and
	// continues reading instead of returning. If nil, every submission
	// returns.
	CheckComplete func(code string) bool

	// SecondaryPromptPattern is the pattern for the prompt shown before
	// continuation lines of a multi-line buffer. The sequence "%N" expands
	// to the 1-based continuation line number and "%%" to a literal "%".
	// If empty, "> " is used.
	SecondaryPromptPattern string

	// HistoryIgnoreDups drops an accepted line equal to the immediately
	// preceding history entry.
	HistoryIgnoreDups bool
	// HistoryIgnoreSpace drops accepted lines starting with whitespace
	// from history.
	HistoryIgnoreSpace bool
	// HistoryBeep rings the bell when history navigation hits either end
	// of the history.
	HistoryBeep bool
	// HistoryExpand enables csh-style history expansion ("!!", "!$", "!n",
	// "!prefix") on submitted lines.
	HistoryExpand bool
	// HistoryVerify, together with HistoryExpand, places the result of a
	// history expansion back into the buffer for confirmation instead of
	// returning it directly.
	HistoryVerify bool

	// AutoFreshLine makes the editor ensure the prompt starts on a fresh
	// line, writing a line terminator first if there is partial output
	// from a previous command.
	AutoFreshLine bool
	// MouseTracking enables mouse tracking in the given mode for the
	// duration of each read.
	MouseTracking term.MouseMode
	// MaxHeight limits the height the editor may use. Zero or negative
	// means no limit.
	MaxHeight int
}

// Editor is an interactive line editor. It is a thin orchestration layer
// over a cli.App, wiring completion, history walking and multi-line
// continuation into its key handling.
type Editor struct {
	app cli.App
	cfg ReaderConfig
	// History store after applying the dedup policies.
	store histutil.Store
}

// NewEditor creates a new Editor from the given configuration.
func NewEditor(cfg ReaderConfig) *Editor {
	if cfg.TTY == nil {
		cfg.TTY = cli.NewTTY(os.Stdin, os.Stderr)
	}
	ed := &Editor{cfg: cfg}
	if cfg.History != nil {
		ed.store = histutil.NewFilterStore(cfg.History, histutil.AddPolicy{
			IgnoreDups:  cfg.HistoryIgnoreDups,
			IgnoreSpace: cfg.HistoryIgnoreSpace,
		})
	}

	maxHeight := func() int { return -1 }
	if cfg.MaxHeight > 0 {
		maxHeight = func() int { return cfg.MaxHeight }
	}
	ed.app = cli.NewApp(cli.AppSpec{
		TTY:              cfg.TTY,
		MaxHeight:        maxHeight,
		Prompt:           cfg.Prompt,
		RPrompt:          cfg.RPrompt,
		Highlighter:      cfg.Highlighter,
		ContPrompt:       ed.contPrompt,
		AutoFreshLine:    cfg.AutoFreshLine,
		MouseTracking:    cfg.MouseTracking,
		CodeAreaBindings: tk.FuncBindings(ed.handleCodeAreaKey),
		GlobalBindings:   tk.FuncBindings(ed.handleGlobalKey),
	})
	return ed
}

// App returns the underlying cli.App.
func (ed *Editor) App() cli.App { return ed.app }

// ReadLine reads a line interactively. It returns the line on normal
// submission; cli.ErrInterrupted when the read is aborted by Ctrl-C or
// SIGINT; io.EOF when the input is closed or Ctrl-D is pressed on an empty
// buffer. Accepted lines are appended to the history store, subject to its
// policies.
func (ed *Editor) ReadLine() (string, error) {
	line, err := ed.app.ReadCode()
	if err == nil && ed.store != nil {
		if _, addErr := ed.store.AddCmd(line); addErr != nil {
			// History write failures degrade to a warning; the accepted
			// line is still returned.
			logger.Println("add history:", addErr)
		}
	}
	return line, err
}

func (ed *Editor) contPrompt(n int) ui.Text {
	pattern := ed.cfg.SecondaryPromptPattern
	if pattern == "" {
		pattern = "> "
	}
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '%' && i+1 < len(pattern) {
			i++
			switch pattern[i] {
			case 'N':
				sb.WriteString(strconv.Itoa(n))
			case '%':
				sb.WriteByte('%')
			default:
				sb.WriteByte('%')
				sb.WriteByte(pattern[i])
			}
		} else {
			sb.WriteByte(pattern[i])
		}
	}
	return ui.T(sb.String())
}

func (ed *Editor) handleGlobalKey(w tk.Widget, event term.Event) bool {
	switch event {
	case term.K('C', ui.Ctrl):
		ed.app.CommitError(cli.ErrInterrupted)
		return true
	}
	return false
}

func (ed *Editor) handleCodeAreaKey(w tk.Widget, event term.Event) bool {
	key, ok := event.(term.KeyEvent)
	if !ok {
		return false
	}
	switch ui.Key(key) {
	case ui.K(ui.Tab):
		ed.startCompletion()
		return true
	case ui.K(ui.Up):
		ed.startHistwalk()
		return true
	case ui.K('D', ui.Ctrl):
		return ed.handleEOFKey()
	case ui.K('\n'):
		ed.submit()
		return true
	}
	return false
}

// handleEOFKey implements the readline Ctrl-D behavior: end of input on an
// empty buffer, delete-character otherwise.
func (ed *Editor) handleEOFKey() bool {
	state := ed.app.CodeArea().CopyState()
	if state.Buffer.Content == "" {
		ed.app.CommitEOF()
		return true
	}
	ed.app.CodeArea().MutateState(func(s *tk.CodeAreaState) {
		c := &s.Buffer
		if c.Dot < len(c.Content) {
			_, skip := utf8.DecodeRuneInString(c.Content[c.Dot:])
			c.Content = c.Content[:c.Dot] + c.Content[c.Dot+skip:]
		}
	})
	return true
}

// submit handles the submission of the current buffer: continuation when
// the code is incomplete, history expansion, and finally committing.
func (ed *Editor) submit() {
	codeArea := ed.app.CodeArea()
	code := codeArea.CopyState().Buffer.Content
	if ed.cfg.CheckComplete != nil && !ed.cfg.CheckComplete(code) {
		codeArea.MutateState(func(s *tk.CodeAreaState) {
			s.Buffer.InsertAtDot("\n")
		})
		return
	}
	if ed.cfg.HistoryExpand && ed.store != nil {
		expanded, changed, err := histutil.Expand(code, ed.store)
		if err != nil {
			ed.app.Notify(ui.T(err.Error()))
			return
		}
		if changed {
			codeArea.MutateState(func(s *tk.CodeAreaState) {
				s.Buffer = tk.CodeBuffer{Content: expanded, Dot: len(expanded)}
			})
			if ed.cfg.HistoryVerify {
				// Leave the expansion in the buffer for confirmation.
				return
			}
		}
	}
	ed.app.CommitCode()
}

func (ed *Editor) startCompletion() {
	codeArea := ed.app.CodeArea()
	if ed.cfg.Completer == nil {
		return
	}
	buf := codeArea.CopyState().Buffer
	cands := ed.cfg.Completer.Complete(buf.Content, buf.Dot)
	if len(cands) == 0 {
		return
	}
	_, start := complete.CurrentWord(buf.Content, buf.Dot)
	if len(cands) == 1 {
		// A single candidate is accepted in place without showing a menu.
		codeArea.MutateState(func(s *tk.CodeAreaState) {
			s.Pending = tk.PendingCode{
				From: start, To: buf.Dot, Content: cands[0].Value}
			s.ApplyPending()
		})
		return
	}
	items := make([]modes.CompletionItem, len(cands))
	for i, cand := range cands {
		items[i] = modes.CompletionItem{
			ToShow: ui.T(cand.DisplayText()), ToInsert: cand.Value}
	}
	w, err := modes.NewCompletion(ed.app, modes.CompletionSpec{
		Name:    ed.cfg.Name,
		Replace: modes.Replace{From: start, To: buf.Dot},
		Items:   items,
		Bindings: tk.MapBindings{
			term.K(ui.Tab): func(w tk.Widget) {
				w.(tk.ListBox).Select(tk.NextWrap)
			},
			term.K(ui.Tab, ui.Shift): func(w tk.Widget) {
				w.(tk.ListBox).Select(tk.PrevWrap)
			},
			term.K('[', ui.Ctrl): func(tk.Widget) { ed.app.PopAddon() },
		},
	})
	if err != nil {
		ed.app.Notify(ui.T(err.Error()))
		return
	}
	ed.app.PushAddon(w)
}

func (ed *Editor) startHistwalk() {
	if ed.store == nil {
		return
	}
	buf := ed.app.CodeArea().CopyState().Buffer
	w, err := modes.NewHistwalk(ed.app, modes.HistwalkSpec{
		Store:  ed.store,
		Prefix: buf.Content[:buf.Dot],
		Bindings: tk.MapBindings{
			term.K(ui.Up): func(w tk.Widget) {
				ed.notifyWalkError(w.(modes.Histwalk).Prev())
			},
			term.K(ui.Down): func(w tk.Widget) {
				if w.(modes.Histwalk).Next() == histutil.ErrEndOfHistory {
					// Walking past the newest entry restores the original
					// buffer.
					ed.app.PopAddon()
				}
			},
			term.K('[', ui.Ctrl): func(tk.Widget) { ed.app.PopAddon() },
		},
	})
	if err != nil {
		ed.notifyWalkError(err)
		return
	}
	ed.app.PushAddon(w)
	ed.app.Redraw()
}

// notifyWalkError reports hitting the edge of the history, with a bell
// instead of a note if so configured.
func (ed *Editor) notifyWalkError(err error) {
	if err == nil {
		return
	}
	if ed.cfg.HistoryBeep {
		if tty := ed.cfg.TTY; tty != nil {
			tty.Beep()
		}
		return
	}
	ed.app.Notify(ui.T(err.Error(), ui.FgRed))
}
