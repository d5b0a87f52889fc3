package term

import (
	"fmt"
	"io"
	"os"
)

// DeviceError is returned when the terminal device cannot be put into the
// requested mode. It is fatal to session start.
type DeviceError struct {
	Op  string
	Err error
}

func (err DeviceError) Error() string {
	return fmt.Sprintf("terminal device: %s: %v", err.Op, err.Err)
}

func (err DeviceError) Unwrap() error { return err.Err }

// Setup puts the terminal in the mode suitable for the reader and writer to
// use, using the platform-native termios binding. It returns a function that
// can be used to restore the original terminal config.
func Setup(in, out *os.File) (func() error, error) {
	return setup(in, out)
}

// SetupExec is like Setup, but changes the terminal mode by running the stty
// binary instead of manipulating termios directly. It is useful in
// environments where the termios binding is unavailable or untrusted.
func SetupExec(in, out *os.File) (func() error, error) {
	return setupExec(in, out)
}

// SetupForDumb prepares a capability-less terminal: no mode change is made
// and no escape sequences will ever be written. The returned restore function
// is a no-op.
func SetupForDumb(in, out *os.File) (func() error, error) {
	return func() error { return nil }, nil
}

const (
	disableWrap  = "\033[?7l"
	enableWrap   = "\033[?7h"
	enablePaste  = "\033[?2004h"
	disablePaste = "\033[?2004l"
)

// setupVT readies the virtual terminal: turns off auto-wrap (the writer does
// its own wrapping) and turns on bracketed paste.
func setupVT(out io.Writer) error {
	_, err := fmt.Fprint(out, disableWrap+enablePaste)
	return err
}

func restoreVT(out io.Writer) error {
	_, err := fmt.Fprint(out, enableWrap+disablePaste)
	return err
}
