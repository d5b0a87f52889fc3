package histutil

import (
	"unicode"

	"src.lined.dev/pkg/store"
)

// AddPolicy controls which commands get added to a history store.
type AddPolicy struct {
	// IgnoreDups drops a command equal to the immediately preceding one.
	IgnoreDups bool
	// IgnoreSpace drops a command whose text starts with whitespace.
	IgnoreSpace bool
}

// NewFilterStore returns a Store that wraps another Store, dropping added
// commands according to the given policy. Dropped commands get a sequence
// number of -1. Duplicate checks compare against the last command that was
// actually stored, so "a a b a" with IgnoreDups stores "a b a".
func NewFilterStore(inner Store, p AddPolicy) Store {
	s := &filterStore{inner: inner, policy: p}
	if cmds, err := inner.AllCmds(); err == nil && len(cmds) > 0 {
		s.last = cmds[len(cmds)-1].Text
		s.hasLast = true
	}
	return s
}

type filterStore struct {
	inner   Store
	policy  AddPolicy
	last    string
	hasLast bool
}

func (s *filterStore) AllCmds() ([]store.Cmd, error) { return s.inner.AllCmds() }

func (s *filterStore) Cursor(prefix string) Cursor { return s.inner.Cursor(prefix) }

func (s *filterStore) AddCmd(text string) (store.Cmd, error) {
	if s.policy.IgnoreSpace && startsWithSpace(text) {
		return store.Cmd{Text: text, Seq: -1}, nil
	}
	if s.policy.IgnoreDups && s.hasLast && text == s.last {
		return store.Cmd{Text: text, Seq: -1}, nil
	}
	cmd, err := s.inner.AddCmd(text)
	if err == nil {
		s.last = text
		s.hasLast = true
	}
	return cmd, err
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}
