package histutil

import (
	"time"

	"src.lined.dev/pkg/store"
)

// FileStore is a Store backed by a text history file. Entries are loaded
// once at construction; added commands are appended to the file immediately.
type FileStore struct {
	path  string
	mem   Store
	times []time.Time
}

// NewFileStore loads the named history file and returns a store backed by
// it. A missing file yields an empty store. I/O failures are reported as
// *FileError.
func NewFileStore(path string) (*FileStore, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(entries))
	times := make([]time.Time, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
		times[i] = e.Time
	}
	return &FileStore{path, NewMemStore(texts...), times}, nil
}

func (s *FileStore) AllCmds() ([]store.Cmd, error) { return s.mem.AllCmds() }

func (s *FileStore) Cursor(prefix string) Cursor { return s.mem.Cursor(prefix) }

func (s *FileStore) AddCmd(text string) (store.Cmd, error) {
	cmd, err := s.mem.AddCmd(text)
	if err != nil {
		return cmd, err
	}
	now := time.Now()
	s.times = append(s.times, now)
	return cmd, appendFile(s.path, Entry{Text: text, Time: now})
}

// Save rewrites the whole history file from the in-memory view, preserving
// the timestamps entries were loaded or added with.
func (s *FileStore) Save() error {
	cmds, err := s.mem.AllCmds()
	if err != nil {
		return err
	}
	entries := make([]Entry, len(cmds))
	for i, cmd := range cmds {
		entries[i] = Entry{Text: cmd.Text, Time: s.times[i]}
	}
	return SaveFile(s.path, entries)
}
