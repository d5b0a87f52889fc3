package histutil

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"src.lined.dev/pkg/testutil"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "history")
	entries := []Entry{
		{"ls", time.UnixMilli(1000)},
		{" echo leading space", time.UnixMilli(2000)},
		{"line with\nnewline and \\backslash", time.UnixMilli(3000)},
		{"carriage\rreturn", time.UnixMilli(4000)},
	}
	if err := SaveFile(path, entries); err != nil {
		t.Fatalf("SaveFile -> error %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile -> error %v", err)
	}
	if len(loaded) != len(entries) {
		t.Fatalf("LoadFile -> %v entries, want %v", len(loaded), len(entries))
	}
	for i := range entries {
		if loaded[i] != entries[i] {
			t.Errorf("entry %v = %v, want %v", i, loaded[i], entries[i])
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	entries, err := LoadFile(filepath.Join(testutil.TempDir(t), "no-such-file"))
	if entries != nil || err != nil {
		t.Errorf("LoadFile on missing file -> (%v, %v), want (nil, nil)",
			entries, err)
	}
}

func TestLoadFile_NoTimestampPrefix(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "history")
	testutil.MustWriteFile(path, "ls\necho foo\n")
	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile -> error %v", err)
	}
	if len(entries) != 2 || entries[0].Text != "ls" || entries[1].Text != "echo foo" {
		t.Errorf("LoadFile -> %v, want [ls, echo foo]", entries)
	}
}

func TestLoadFile_Error(t *testing.T) {
	dir := testutil.TempDir(t)
	// Opening a directory as a history file fails on read.
	_, err := LoadFile(dir)
	var fileErr *FileError
	if err == nil || !errors.As(err, &fileErr) {
		t.Errorf("LoadFile on directory -> error %v, want *FileError", err)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "history")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore -> error %v", err)
	}
	s.AddCmd("ls")
	s.AddCmd("echo foo")

	// Commands are appended to the file immediately.
	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore (reload) -> error %v", err)
	}
	checkTexts(t, s2, "ls", "echo foo")

	if err := s.Save(); err != nil {
		t.Errorf("Save -> error %v", err)
	}
	s3, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore (after Save) -> error %v", err)
	}
	checkTexts(t, s3, "ls", "echo foo")
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s, err := NewFileStore(filepath.Join(testutil.TempDir(t), "history"))
	if err != nil {
		t.Fatalf("NewFileStore -> error %v", err)
	}
	checkTexts(t, s)
}
