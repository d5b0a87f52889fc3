package edit_test

import (
	"io"
	"strings"
	"testing"

	"src.lined.dev/pkg/cli"
	. "src.lined.dev/pkg/cli/clitest"
	"src.lined.dev/pkg/complete"
	. "src.lined.dev/pkg/edit"
	"src.lined.dev/pkg/histutil"
	"src.lined.dev/pkg/term"
	"src.lined.dev/pkg/ui"
)

func setupEditor(fns ...func(*ReaderConfig)) (TTYCtrl, *Fixture) {
	tty, ttyCtrl := NewFakeTTY()
	cfg := ReaderConfig{TTY: tty}
	for _, fn := range fns {
		fn(&cfg)
	}
	ed := NewEditor(cfg)
	return ttyCtrl, NewFixture(ed.App(), ttyCtrl, ed.ReadLine)
}

func TestEditor_ReturnsSubmittedLine(t *testing.T) {
	tty, f := setupEditor()

	feedInput(tty, "echo\n")

	line, err := f.Wait()
	if line != "echo" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "echo")
	}
}

func TestEditor_AddsAcceptedLineToHistory(t *testing.T) {
	store := histutil.NewMemStore()
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = store
	})

	feedInput(tty, "echo\n")
	f.Wait()

	cmds, _ := store.AllCmds()
	if len(cmds) != 1 || cmds[0].Text != "echo" {
		t.Errorf("history is %v, want exactly [echo]", cmds)
	}
}

func TestEditor_IgnoreDupsSkipsConsecutiveDuplicates(t *testing.T) {
	store := histutil.NewMemStore("echo")
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = store
		cfg.HistoryIgnoreDups = true
	})

	feedInput(tty, "echo\n")
	f.Wait()

	cmds, _ := store.AllCmds()
	if len(cmds) != 1 {
		t.Errorf("history has %d entries after duplicate, want 1", len(cmds))
	}
}

func TestEditor_IgnoreSpaceSkipsLeadingSpaceLines(t *testing.T) {
	store := histutil.NewMemStore()
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = store
		cfg.HistoryIgnoreSpace = true
	})

	feedInput(tty, " secret\n")
	line, err := f.Wait()
	if line != " secret" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, " secret")
	}

	cmds, _ := store.AllCmds()
	if len(cmds) != 0 {
		t.Errorf("history is %v, want empty", cmds)
	}
}

// Completion.

func TestEditor_CompletionSingleCandidateInsertedDirectly(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.Completer = complete.NewStringsCompleter("restart")
	})

	feedInput(tty, "res")
	tty.Inject(term.K(ui.Tab))
	feedInput(tty, "\n")

	line, err := f.Wait()
	if line != "restart" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "restart")
	}
}

func TestEditor_CompletionMenuAcceptsSelected(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.Completer = complete.NewStringsCompleter("add", "addr", "remove")
	})

	feedInput(tty, "ad")
	tty.Inject(term.K(ui.Tab))
	// The menu starts with the first candidate selected; Tab moves to the
	// next one, Enter accepts it.
	tty.Inject(term.K(ui.Tab))
	tty.Inject(term.K('\n'))
	feedInput(tty, "\n")

	line, err := f.Wait()
	if line != "addr" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "addr")
	}
}

func TestEditor_CompletionMenuDismissedByEscape(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.Completer = complete.NewStringsCompleter("add", "addr")
	})

	feedInput(tty, "ad")
	tty.Inject(term.K(ui.Tab))
	tty.Inject(term.K('[', ui.Ctrl))
	feedInput(tty, "\n")

	line, err := f.Wait()
	if line != "ad" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "ad")
	}
}

func TestEditor_CompletionNoCandidatesLeavesBufferAlone(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.Completer = complete.NewStringsCompleter("add")
	})

	feedInput(tty, "zz")
	tty.Inject(term.K(ui.Tab))
	feedInput(tty, "\n")

	line, err := f.Wait()
	if line != "zz" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "zz")
	}
}

// History walking.

func TestEditor_HistwalkPreviewAndCommit(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = histutil.NewMemStore("echo foo", "put bar")
	})

	tty.Inject(term.K(ui.Up))
	tty.Inject(term.K(ui.Up))
	tty.Inject(term.K('\n'))

	line, err := f.Wait()
	if line != "echo foo" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "echo foo")
	}
}

func TestEditor_HistwalkUsesPrefix(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = histutil.NewMemStore("echo foo", "put bar")
	})

	feedInput(tty, "echo")
	tty.Inject(term.K(ui.Up))
	tty.Inject(term.K('\n'))

	line, err := f.Wait()
	if line != "echo foo" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "echo foo")
	}
}

func TestEditor_HistwalkDownPastNewestRestoresOriginal(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = histutil.NewMemStore("xylophone")
	})

	feedInput(tty, "x")
	tty.Inject(term.K(ui.Up))
	tty.Inject(term.K(ui.Down))
	feedInput(tty, "\n")

	line, err := f.Wait()
	if line != "x" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "x")
	}
}

func TestEditor_HistwalkBeepsAtOldestEntry(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = histutil.NewMemStore("only")
		cfg.HistoryBeep = true
	})

	tty.Inject(term.K(ui.Up))
	tty.Inject(term.K(ui.Up))
	tty.Inject(term.K('\n'))

	f.Wait()
	if n := tty.BeepCount(); n != 1 {
		t.Errorf("bell rung %d times, want once", n)
	}
}

// Multi-line continuation.

func TestEditor_IncompleteCodeContinuesOnNewLine(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.CheckComplete = func(code string) bool {
			return !strings.HasSuffix(code, "{")
		}
	})

	feedInput(tty, "if true {\n")
	feedInput(tty, "}\n")

	line, err := f.Wait()
	if line != "if true {\n}" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)",
			line, err, "if true {\n}")
	}
}

func TestEditor_SecondaryPromptPattern(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.CheckComplete = func(code string) bool {
			return !strings.HasSuffix(code, "{")
		}
		cfg.SecondaryPromptPattern = "%N> "
	})
	defer func() {
		feedInput(tty, "\n")
		f.Wait()
	}()

	feedInput(tty, "if {\nx")

	wantBuf := bb().
		WriteString("if {").Newline().
		WriteString("1> x").SetDotHere().Buffer()
	tty.TestBuffer(t, wantBuf)
}

// History expansion.

func TestEditor_HistoryExpansion(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = histutil.NewMemStore("echo foo")
		cfg.HistoryExpand = true
	})

	feedInput(tty, "!!\n")

	line, err := f.Wait()
	if line != "echo foo" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "echo foo")
	}
}

func TestEditor_HistoryExpansionWithVerify(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = histutil.NewMemStore("echo foo")
		cfg.HistoryExpand = true
		cfg.HistoryVerify = true
	})

	feedInput(tty, "!$\n")
	// The first submission only places the expansion in the buffer.
	tty.TestBuffer(t, bb().WriteString("foo").SetDotHere().Buffer())

	feedInput(tty, "\n")
	line, err := f.Wait()
	if line != "foo" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "foo")
	}
}

func TestEditor_HistoryExpansionNoSuchEvent(t *testing.T) {
	tty, f := setupEditor(func(cfg *ReaderConfig) {
		cfg.History = histutil.NewMemStore()
		cfg.HistoryExpand = true
	})

	feedInput(tty, "!9\n")
	// The failed expansion leaves the buffer as is and shows a note.
	tty.TestNotesBuffer(t, bb().WriteString("no such history event").Buffer())

	tty.Inject(term.K('C', ui.Ctrl))
	_, err := f.Wait()
	if err != cli.ErrInterrupted {
		t.Errorf("ReadLine error is %v, want cli.ErrInterrupted", err)
	}
}

// EOF and interrupts.

func TestEditor_CtrlDOnEmptyBufferIsEOF(t *testing.T) {
	tty, f := setupEditor()

	tty.Inject(term.K('D', ui.Ctrl))

	_, err := f.Wait()
	if err != io.EOF {
		t.Errorf("ReadLine error is %v, want io.EOF", err)
	}
}

func TestEditor_CtrlDOnNonEmptyBufferDeletesRune(t *testing.T) {
	tty, f := setupEditor()

	feedInput(tty, "ab")
	tty.Inject(term.K(ui.Left))
	tty.Inject(term.K('D', ui.Ctrl))
	feedInput(tty, "\n")

	line, err := f.Wait()
	if line != "a" || err != nil {
		t.Errorf("ReadLine -> (%q, %v), want (%q, nil)", line, err, "a")
	}
}

func TestEditor_CtrlCReturnsErrInterrupted(t *testing.T) {
	tty, f := setupEditor()

	feedInput(tty, "partial")
	tty.Inject(term.K('C', ui.Ctrl))

	line, err := f.Wait()
	if line != "" || err != cli.ErrInterrupted {
		t.Errorf("ReadLine -> (%q, %v), want (%q, cli.ErrInterrupted)",
			line, err, "")
	}
}

// Test utilities.

func bb() *term.BufferBuilder {
	return term.NewBufferBuilder(FakeTTYWidth)
}

func feedInput(ttyCtrl TTYCtrl, input string) {
	for _, r := range input {
		ttyCtrl.Inject(term.K(r))
	}
}
