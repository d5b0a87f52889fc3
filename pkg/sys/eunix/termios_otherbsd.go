//go:build freebsd || netbsd || openbsd || dragonfly

package eunix

import "golang.org/x/sys/unix"

const (
	getAttrIOCTL    = unix.TIOCGETA
	setAttrNowIOCTL = unix.TIOCSETA
)

type termiosFlag = uint32
