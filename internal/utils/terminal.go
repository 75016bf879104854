package utils

import (
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// DefaultTerminalWidth is the fallback terminal width when detection fails.
const DefaultTerminalWidth = 80

// GetTerminalWidth prefers COLUMNS, then the size of the first terminal among
// stdout, stderr and stdin. Falls back to DefaultTerminalWidth.
func GetTerminalWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if width, err := strconv.Atoi(cols); err == nil && width > 0 {
			return width
		}
	}

	fds := []int{int(os.Stdout.Fd()), int(os.Stderr.Fd()), int(os.Stdin.Fd())}
	for _, fd := range fds {
		if winsize, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); err == nil && winsize.Col > 0 {
			return int(winsize.Col)
		}
	}

	return DefaultTerminalWidth
}

// IsInteractiveTerminal reports whether f is attached to a terminal. CI logs
// and pipes are not, which switches output to plain mode.
func IsInteractiveTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	_, err := unix.IoctlGetTermios(int(f.Fd()), ioctlReadTermios)
	return err == nil
}
