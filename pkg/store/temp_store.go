package store

import (
	"fmt"
	"os"
	"path/filepath"

	"src.lined.dev/pkg/testutil"
)

// MustTempStore opens a Store backed by a temporary file, and registers
// cleanup functions on c. It panics if the store cannot be created.
func MustTempStore(c testutil.Cleanuper) Store {
	dir, err := os.MkdirTemp("", "test-store")
	if err != nil {
		panic(fmt.Sprintf("create temp dir: %v", err))
	}
	st, err := NewStore(filepath.Join(dir, "db"))
	if err != nil {
		os.RemoveAll(dir)
		panic(fmt.Sprintf("create temp store: %v", err))
	}
	c.Cleanup(func() {
		st.Close()
		os.RemoveAll(dir)
	})
	return st
}
