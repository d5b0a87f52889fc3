package histutil

import (
	"testing"
)

func allTexts(t *testing.T, s Store) []string {
	t.Helper()
	cmds, err := s.AllCmds()
	if err != nil {
		t.Fatalf("AllCmds -> error %v", err)
	}
	texts := make([]string, len(cmds))
	for i, cmd := range cmds {
		texts[i] = cmd.Text
	}
	return texts
}

func checkTexts(t *testing.T, s Store, want ...string) {
	t.Helper()
	texts := allTexts(t, s)
	if len(texts) != len(want) {
		t.Fatalf("got %v entries %v, want %v", len(texts), texts, want)
	}
	for i := range texts {
		if texts[i] != want[i] {
			t.Errorf("entry %v = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestFilterStore_IgnoreDups(t *testing.T) {
	s := NewFilterStore(NewMemStore(), AddPolicy{IgnoreDups: true})
	s.AddCmd("ls")
	s.AddCmd("ls")
	checkTexts(t, s, "ls")

	// An interposed unrelated command makes the duplicate non-consecutive.
	s.AddCmd("echo")
	s.AddCmd("ls")
	checkTexts(t, s, "ls", "echo", "ls")
}

func TestFilterStore_IgnoreDups_SeedsFromExistingCmds(t *testing.T) {
	s := NewFilterStore(NewMemStore("ls"), AddPolicy{IgnoreDups: true})
	s.AddCmd("ls")
	checkTexts(t, s, "ls")
}

func TestFilterStore_IgnoreSpace(t *testing.T) {
	s := NewFilterStore(NewMemStore(), AddPolicy{IgnoreSpace: true})
	s.AddCmd("ls")
	s.AddCmd(" secret --token=x")
	s.AddCmd("\techo")
	s.AddCmd("echo")
	checkTexts(t, s, "ls", "echo")
}

func TestFilterStore_DroppedCmdHasNegativeSeq(t *testing.T) {
	s := NewFilterStore(NewMemStore(), AddPolicy{IgnoreSpace: true})
	cmd, err := s.AddCmd(" x")
	if err != nil {
		t.Errorf("AddCmd -> error %v, want nil", err)
	}
	if cmd.Seq != -1 {
		t.Errorf("dropped command has Seq %v, want -1", cmd.Seq)
	}
}

func TestFilterStore_NoPolicyKeepsEverything(t *testing.T) {
	s := NewFilterStore(NewMemStore(), AddPolicy{})
	s.AddCmd("ls")
	s.AddCmd("ls")
	s.AddCmd(" x")
	checkTexts(t, s, "ls", "ls", " x")
}
