// Package store implements a durable command-history store, backed by a
// bbolt database file.
//
// The store assigns every added command a monotonically increasing sequence
// number; sequence numbers are never reused, so multiple sessions appending
// to the same store observe a consistent order.
package store

import (
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.lined.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

// ErrNoMatchingCmd is the error returned when a NextCmd or PrevCmd query
// completes with no result.
var ErrNoMatchingCmd = errors.New("no matching command line")

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}

// Store is the interface of the command-history database.
type Store interface {
	// NextCmdSeq returns the sequence number the next added command will get.
	NextCmdSeq() (int, error)
	// AddCmd adds a new command and returns its sequence number.
	AddCmd(text string) (int, error)
	// DelCmd deletes the command with the given sequence number.
	DelCmd(seq int) error
	// Cmd queries the command with the given sequence number.
	Cmd(seq int) (string, error)
	// CmdsWithSeq returns all commands within the range [from, upto).
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	// NextCmd finds the first command at or after the given sequence number
	// with the given prefix.
	NextCmd(from int, prefix string) (Cmd, error)
	// PrevCmd finds the last command before the given sequence number with
	// the given prefix.
	PrevCmd(upto int, prefix string) (Cmd, error)
	// Close waits for any outstanding operation and releases the database
	// file.
	Close() error
}

const bucketCmd = "cmd"

type dbStore struct {
	db *bolt.DB
}

// dbOpenTimeout bounds waiting for the file lock held by another process.
const dbOpenTimeout = time.Second

// NewStore creates a Store backed by the named database file, creating the
// file if it does not yet exist.
func NewStore(dbPath string) (Store, error) {
	db, err := bolt.Open(dbPath, 0644, &bolt.Options{
		Timeout: dbOpenTimeout,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("opened database", dbPath)
	return &dbStore{db}, nil
}

func (s *dbStore) Close() error {
	return s.db.Close()
}
