//go:build unix

package term

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"

	"src.lined.dev/pkg/ui"
)

// Opens a pty pair, puts the terminal side in raw mode, and returns the
// control side along with a Reader on the terminal side.
func setupReader(t *testing.T) (*os.File, Reader) {
	t.Helper()
	control, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	restore, err := Setup(tty, tty)
	if err != nil {
		t.Fatal("cannot set up terminal:", err)
	}
	rd, err := NewReader(tty)
	if err != nil {
		t.Fatal("cannot create reader:", err)
	}
	t.Cleanup(func() {
		rd.Close()
		restore()
		tty.Close()
		control.Close()
	})
	return control, rd
}

var readEventTests = []struct {
	name string
	seq  string
	want []Event
}{
	{"simple rune", "x", []Event{K('x')}},
	{"rune above ASCII", "Ω", []Event{K('Ω')}},
	{"ctrl rune", "\001", []Event{K('A', ui.Ctrl)}},
	{"ctrl caret", "\036", []Event{K('6', ui.Ctrl)}},
	{"tab", "\t", []Event{K(ui.Tab)}},
	{"enter", "\n", []Event{K(ui.Enter)}},
	{"backspace", "\177", []Event{K(ui.Backspace)}},

	{"alt rune", "\033a", []Event{K('a', ui.Alt)}},
	{"lone escape", "\033", []Event{K('[', ui.Ctrl)}},

	{"csi up", "\033[A", []Event{K(ui.Up)}},
	{"csi ctrl-right", "\033[1;5C", []Event{K(ui.Right, ui.Ctrl)}},
	{"csi shift-tab", "\033[Z", []Event{K(ui.Tab, ui.Shift)}},
	{"csi delete", "\033[3~", []Event{K(ui.Delete)}},
	{"csi alt-delete", "\033[3;3~", []Event{K(ui.Delete, ui.Alt)}},
	{"g3 home", "\033OH", []Event{K(ui.Home)}},
	{"g3 f1", "\033OP", []Event{K(ui.F1)}},
	{"rxvt alt-csi", "\033\033[A", []Event{K(ui.Up, ui.Alt)}},

	{"cursor position report", "\033[13;10R", []Event{CursorPosition{13, 10}}},
	{"sgr mouse press", "\033[<0;33;222M",
		[]Event{MouseEvent{Pos{222, 33}, true, 0, 0}}},
	{"sgr mouse release", "\033[<1;33;222m",
		[]Event{MouseEvent{Pos{222, 33}, false, 1, 0}}},
	{"x10 mouse press", "\033[M\040\041\042",
		[]Event{MouseEvent{Pos{2, 1}, true, 0, 0}}},
	{"bracketed paste", "\033[200~ab\033[201~",
		[]Event{PasteSetting(true), K('a'), K('b'), PasteSetting(false)}},
}

func TestReader_ReadEvent(t *testing.T) {
	control, rd := setupReader(t)

	for _, test := range readEventTests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := control.WriteString(test.seq); err != nil {
				t.Fatal(err)
			}
			for _, want := range test.want {
				ev, err := rd.ReadEvent()
				if err != nil {
					t.Fatalf("ReadEvent -> error %v", err)
				}
				if ev != want {
					t.Errorf("ReadEvent -> %v, want %v", ev, want)
				}
			}
		})
	}
}

func TestReader_ReadRawEvent(t *testing.T) {
	control, rd := setupReader(t)

	// A raw read does not interpret escape sequences.
	if _, err := control.WriteString("\033"); err != nil {
		t.Fatal(err)
	}
	ev, err := rd.ReadRawEvent()
	if err != nil {
		t.Fatal(err)
	}
	if want := K('\033'); ev != want {
		t.Errorf("ReadRawEvent -> %v, want %v", ev, want)
	}
}

func TestReader_Close(t *testing.T) {
	_, rd := setupReader(t)

	errCh := make(chan error, 1)
	go func() {
		_, err := rd.ReadEvent()
		errCh <- err
	}()
	// Give the read a chance to start.
	time.Sleep(time.Millisecond)
	rd.Close()
	if err := <-errCh; err != ErrStopped {
		t.Errorf("ReadEvent after Close -> error %v, want %v", err, ErrStopped)
	}
}

var malformedSeqTests = []struct {
	name string
	seq  string
}{
	{"unknown csi terminator", "\033[9999X"},
	{"truncated x10 mouse event", "\033[M\040"},
}

func TestReader_MalformedSequenceIsRecoverable(t *testing.T) {
	control, rd := setupReader(t)

	for _, test := range malformedSeqTests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := control.WriteString(test.seq); err != nil {
				t.Fatal(err)
			}
			_, err := rd.ReadEvent()
			if err == nil {
				t.Fatal("ReadEvent -> nil error, want sequence error")
			}
			if !IsReadErrorRecoverable(err) {
				t.Errorf("ReadEvent -> unrecoverable error %v", err)
			}

			// The reader keeps decoding input after the bad sequence.
			if _, err := control.WriteString("x"); err != nil {
				t.Fatal(err)
			}
			ev, err := rd.ReadEvent()
			if err != nil {
				t.Fatalf("ReadEvent after bad sequence -> error %v", err)
			}
			if want := K('x'); ev != want {
				t.Errorf("ReadEvent after bad sequence -> %v, want %v",
					ev, want)
			}
		})
	}
}
