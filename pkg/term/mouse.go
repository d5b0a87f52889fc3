package term

import (
	"fmt"
	"io"
)

// MouseMode specifies which mouse events the terminal reports.
type MouseMode int

// Possible values for MouseMode.
const (
	// MouseOff disables mouse reporting.
	MouseOff MouseMode = iota
	// MouseNormal reports button presses and releases.
	MouseNormal
	// MouseButton additionally reports mouse motion while a button is held.
	MouseButton
	// MouseAny reports all mouse motion.
	MouseAny
)

// The DEC private modes for the tracking modes, plus SGR extended reporting
// so that coordinates beyond 223 survive the encoding.
const (
	normalTracking = "\033[?1000"
	buttonTracking = "\033[?1002"
	anyTracking    = "\033[?1003"
	sgrExtension   = "\033[?1006"
)

// SetMouseTracking toggles mouse tracking on the terminal. Enabling a mode
// changes the escape-sequence grammar the terminal sends; the event reader
// recognizes both the SGR and the legacy X10 encodings.
func SetMouseTracking(w io.Writer, mode MouseMode) error {
	var seq string
	switch mode {
	case MouseOff:
		seq = normalTracking + "l" + buttonTracking + "l" + anyTracking + "l" + sgrExtension + "l"
	case MouseNormal:
		seq = normalTracking + "h" + sgrExtension + "h"
	case MouseButton:
		seq = buttonTracking + "h" + sgrExtension + "h"
	case MouseAny:
		seq = anyTracking + "h" + sgrExtension + "h"
	default:
		return fmt.Errorf("invalid mouse mode: %v", mode)
	}
	_, err := io.WriteString(w, seq)
	return err
}
