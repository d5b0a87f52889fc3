//go:build unix

package term

import (
	"os"
	"os/exec"
	"strings"

	"src.lined.dev/pkg/errutil"
)

// The exec-based provider drives the terminal through the stty binary. It is
// slower than the native termios binding and requires stty in PATH, but works
// in environments where issuing ioctls directly is not possible.

func setupExec(in, out *os.File) (func() error, error) {
	saved, err := sttyOutput(in, "-g")
	if err != nil {
		return nil, DeviceError{"query stty", err}
	}
	saved = strings.TrimSpace(saved)

	err = stty(in, "-icanon", "-iexten", "-echo", "icrnl", "min", "1", "time", "0")
	if err != nil {
		return nil, DeviceError{"run stty", err}
	}

	errSetupVT := setupVT(out)

	restore := func() error {
		return errutil.Join(stty(in, saved), restoreVT(out))
	}

	return restore, errSetupVT
}

func stty(in *os.File, args ...string) error {
	cmd := exec.Command("stty", args...)
	cmd.Stdin = in
	return cmd.Run()
}

func sttyOutput(in *os.File, args ...string) (string, error) {
	cmd := exec.Command("stty", args...)
	cmd.Stdin = in
	out, err := cmd.Output()
	return string(out), err
}
