package histutil

import (
	"src.lined.dev/pkg/store"
)

// NewDBStore returns a Store backed by a database, with the view of all
// commands frozen at creation.
func NewDBStore(db store.Store) (Store, error) {
	upper, err := db.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	return dbStore{db, upper}, nil
}

type dbStore struct {
	db    store.Store
	upper int
}

func (s dbStore) AllCmds() ([]store.Cmd, error) {
	return s.db.CmdsWithSeq(0, s.upper)
}

func (s dbStore) AddCmd(text string) (store.Cmd, error) {
	seq, err := s.db.AddCmd(text)
	return store.Cmd{Text: text, Seq: seq}, err
}

func (s dbStore) Cursor(prefix string) Cursor {
	return &dbStoreCursor{
		s.db, prefix, s.upper, store.Cmd{Seq: s.upper}, ErrEndOfHistory}
}

type dbStoreCursor struct {
	db     store.Store
	prefix string
	upper  int
	cmd    store.Cmd
	err    error
}

func (c *dbStoreCursor) Prev() {
	if c.cmd.Seq < 0 {
		return
	}
	cmd, err := c.db.PrevCmd(c.cmd.Seq, c.prefix)
	c.set(cmd, err, -1)
}

func (c *dbStoreCursor) Next() {
	if c.cmd.Seq >= c.upper {
		return
	}
	cmd, err := c.db.NextCmd(c.cmd.Seq+1, c.prefix)
	if cmd.Seq < c.upper {
		c.set(cmd, err, c.upper)
	} else {
		// The matched command was added after the cursor was created; treat
		// it as over the edge.
		c.set(store.Cmd{Seq: c.upper}, ErrEndOfHistory, c.upper)
	}
}

func (c *dbStoreCursor) set(cmd store.Cmd, err error, endSeq int) {
	if err == nil {
		c.cmd = cmd
		c.err = nil
	} else if err == store.ErrNoMatchingCmd {
		c.cmd = store.Cmd{Seq: endSeq}
		c.err = ErrEndOfHistory
	} else {
		c.err = err
	}
}

func (c *dbStoreCursor) Get() (store.Cmd, error) {
	return c.cmd, c.err
}
