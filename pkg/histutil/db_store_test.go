package histutil

import (
	"testing"

	"src.lined.dev/pkg/store"
)

func TestDBStore_Cursor(t *testing.T) {
	db := store.MustTempStore(t)
	db.AddCmd("ls")
	db.AddCmd("echo x")
	s, err := NewDBStore(db)
	if err != nil {
		t.Fatalf("NewDBStore -> error %v", err)
	}
	// Commands added after the store was created are invisible to cursors.
	db.AddCmd("ls -l")

	c := s.Cursor("")
	c.Prev()
	checkCursor(t, c, store.Cmd{Text: "echo x", Seq: 2})
	c.Prev()
	checkCursor(t, c, store.Cmd{Text: "ls", Seq: 1})
	c.Prev()
	if _, err := c.Get(); err != ErrEndOfHistory {
		t.Errorf("Get -> error %v, want ErrEndOfHistory", err)
	}
	c.Next()
	checkCursor(t, c, store.Cmd{Text: "ls", Seq: 1})
	c.Next()
	checkCursor(t, c, store.Cmd{Text: "echo x", Seq: 2})
	c.Next()
	if _, err := c.Get(); err != ErrEndOfHistory {
		t.Errorf("Get -> error %v, want ErrEndOfHistory", err)
	}
}

func TestDBStore_AddCmd(t *testing.T) {
	db := store.MustTempStore(t)
	s, err := NewDBStore(db)
	if err != nil {
		t.Fatalf("NewDBStore -> error %v", err)
	}
	cmd, err := s.AddCmd("ls")
	if err != nil {
		t.Errorf("AddCmd -> error %v, want nil", err)
	}
	if cmd != (store.Cmd{Text: "ls", Seq: 1}) {
		t.Errorf("AddCmd -> %v, want {ls 1}", cmd)
	}
}
