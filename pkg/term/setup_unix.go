//go:build unix

package term

import (
	"os"

	"src.lined.dev/pkg/errutil"
	"src.lined.dev/pkg/sys/eunix"
)

func setup(in, out *os.File) (func() error, error) {
	// On Unix, use the input file for changing termios. All fds pointing to
	// the same terminal are equivalent.

	fd := int(in.Fd())
	term, err := eunix.TermiosForFd(fd)
	if err != nil {
		return nil, DeviceError{"get termios", err}
	}

	savedTermios := term.Copy()

	term.SetICanon(false)
	term.SetIExten(false)
	term.SetEcho(false)
	term.SetVMin(1)
	term.SetVTime(0)

	// Enforcing crnl translation on readline. Assuming user won't set inlcr
	// or -onlcr, otherwise we have to hardcode all of them here.
	term.SetICRNL(true)

	err = term.ApplyToFd(fd)
	if err != nil {
		return nil, DeviceError{"set termios", err}
	}

	errSetupVT := setupVT(out)

	restore := func() error {
		return errutil.Join(savedTermios.ApplyToFd(fd), restoreVT(out))
	}

	return restore, errSetupVT
}
