// Package logutil provides a shared logging facility.
//
// Logging is off by default; it is turned on for the whole process by calling
// SetOutput or SetOutputFile, typically from a debug flag of the binary.
// Library packages obtain their loggers at init time with GetLogger, so the
// output destination may be changed after loggers have been created.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mutex sync.Mutex
	out   io.Writer = io.Discard
	file  *os.File
)

type muxWriter struct{}

func (muxWriter) Write(p []byte) (int, error) {
	mutex.Lock()
	defer mutex.Unlock()
	return out.Write(p)
}

// GetLogger returns a Logger with the given prefix, writing to the shared
// output destination.
func GetLogger(prefix string) *log.Logger {
	return log.New(muxWriter{}, prefix, log.LstdFlags)
}

// SetOutput redirects the output of all loggers obtained from GetLogger to w.
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	closeFile()
	out = w
}

// SetOutputFile redirects the output of all loggers to the named file,
// creating it if needed. An empty name discards all output.
func SetOutputFile(fname string) error {
	mutex.Lock()
	defer mutex.Unlock()
	closeFile()
	if fname == "" {
		out = io.Discard
		return nil
	}
	f, err := os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	file = f
	out = f
	return nil
}

func closeFile() {
	if file != nil {
		file.Close()
		file = nil
	}
	out = io.Discard
}
