//go:build darwin || freebsd || netbsd || openbsd

package utils

import "golang.org/x/sys/unix"

const ioctlReadTermios = unix.TIOCGETA
