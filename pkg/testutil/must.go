package testutil

import "os"

// Must panics if the error value is not nil. It is typically used like this:
//
//	testutil.Must(someFunction(...))
//
// where someFunction returns a single error value. This is useful with
// functions like os.Mkdir to succinctly ensure the test fails to proceed if
// a "can't happen" failure does, in fact, happen.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// MustPipe calls os.Pipe and panics if it fails.
func MustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return r, w
}

// MustWriteFile calls os.WriteFile with the default permission and panics if
// it fails.
func MustWriteFile(filename, data string) {
	err := os.WriteFile(filename, []byte(data), 0644)
	if err != nil {
		panic(err)
	}
}

// MustMkdirAll calls os.MkdirAll for each argument and panics if any call
// fails.
func MustMkdirAll(names ...string) {
	for _, name := range names {
		err := os.MkdirAll(name, 0700)
		if err != nil {
			panic(err)
		}
	}
}

// MustCreateEmpty creates empty files, and panics if any creation fails.
func MustCreateEmpty(names ...string) {
	for _, name := range names {
		file, err := os.Create(name)
		if err != nil {
			panic(err)
		}
		file.Close()
	}
}
