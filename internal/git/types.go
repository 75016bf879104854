package git

import (
	"fmt"
	"strings"
)

// GitError describes a git invocation that exited with a non-zero status.
type GitError struct {
	Command  string
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitError) Error() string {
	cmd := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
	if e.Stderr != "" {
		return fmt.Sprintf("%s (exit %d): %s", cmd, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s (exit %d)", cmd, e.ExitCode)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// ChangedFile is one entry of a name-status listing.
type ChangedFile struct {
	Status string
	Path   string
}

func (c ChangedFile) String() string {
	return c.Status + "\t" + c.Path
}
