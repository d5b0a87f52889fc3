package store

import (
	"testing"

	"src.lined.dev/pkg/tt"
)

var cmdTexts = []string{"echo foo", "put bar", "put lorem", "echo bar"}

func testStore(t *testing.T) Store {
	t.Helper()
	st := MustTempStore(t)
	for _, text := range cmdTexts {
		if _, err := st.AddCmd(text); err != nil {
			t.Fatalf("AddCmd(%q) -> error %v", text, err)
		}
	}
	return st
}

func TestNextCmdSeq(t *testing.T) {
	st := testStore(t)
	wantSeq := len(cmdTexts) + 1
	seq, err := st.NextCmdSeq()
	if seq != wantSeq || err != nil {
		t.Errorf("NextCmdSeq -> (%v, %v), want (%v, nil)", seq, err, wantSeq)
	}
}

func TestCmd(t *testing.T) {
	st := testStore(t)
	for i, want := range cmdTexts {
		cmd, err := st.Cmd(i + 1)
		if cmd != want || err != nil {
			t.Errorf("Cmd(%v) -> (%q, %v), want (%q, nil)", i+1, cmd, err, want)
		}
	}
	if _, err := st.Cmd(100); err != ErrNoMatchingCmd {
		t.Errorf("Cmd(100) -> error %v, want ErrNoMatchingCmd", err)
	}
}

func TestDelCmd(t *testing.T) {
	st := testStore(t)
	if err := st.DelCmd(2); err != nil {
		t.Errorf("DelCmd(2) -> error %v, want nil", err)
	}
	if _, err := st.Cmd(2); err != ErrNoMatchingCmd {
		t.Errorf("Cmd(2) after deletion -> error %v, want ErrNoMatchingCmd", err)
	}
	// Sequence numbers of deleted commands are not reused.
	seq, err := st.AddCmd("put ipsum")
	if seq != len(cmdTexts)+1 || err != nil {
		t.Errorf("AddCmd after deletion -> (%v, %v), want (%v, nil)",
			seq, err, len(cmdTexts)+1)
	}
}

func TestCmdsWithSeq(t *testing.T) {
	st := testStore(t)
	tt.Test(t, tt.Fn("CmdsWithSeq", st.CmdsWithSeq), tt.Table{
		tt.Args(1, 5).Rets([]Cmd{
			{"echo foo", 1}, {"put bar", 2}, {"put lorem", 3}, {"echo bar", 4},
		}, error(nil)),
		tt.Args(2, 4).Rets([]Cmd{{"put bar", 2}, {"put lorem", 3}}, error(nil)),
		tt.Args(5, 100).Rets([]Cmd(nil), error(nil)),
	})
}

func TestPrevCmd(t *testing.T) {
	st := testStore(t)
	tt.Test(t, tt.Fn("PrevCmd", st.PrevCmd), tt.Table{
		// Going back from beyond the last command.
		tt.Args(100, "").Rets(Cmd{"echo bar", 4}, error(nil)),
		tt.Args(5, "echo").Rets(Cmd{"echo bar", 4}, error(nil)),
		tt.Args(4, "echo").Rets(Cmd{"echo foo", 1}, error(nil)),
		tt.Args(1, "echo").Rets(Cmd{}, ErrNoMatchingCmd),
		tt.Args(5, "put").Rets(Cmd{"put lorem", 3}, error(nil)),
		tt.Args(5, "nomatch").Rets(Cmd{}, ErrNoMatchingCmd),
	})
}

func TestNextCmd(t *testing.T) {
	st := testStore(t)
	tt.Test(t, tt.Fn("NextCmd", st.NextCmd), tt.Table{
		tt.Args(1, "").Rets(Cmd{"echo foo", 1}, error(nil)),
		tt.Args(2, "echo").Rets(Cmd{"echo bar", 4}, error(nil)),
		tt.Args(5, "echo").Rets(Cmd{}, ErrNoMatchingCmd),
	})
}
