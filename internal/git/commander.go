package git

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/sqve/git-artifact/internal/logger"
)

// Commander abstracts Git command execution to enable dependency injection and testing.
// Every repository operation goes through this single process-execution primitive.
type Commander interface {
	// Run executes a Git command with the given arguments in the specified working directory.
	// Returns stdout, stderr, and any execution error. A non-zero exit is reported as *GitError.
	Run(workDir string, args ...string) (stdout, stderr []byte, err error)
}

// LiveGitCommander runs the git binary found in PATH.
type LiveGitCommander struct {
	// Env is appended to the inherited environment when non-empty.
	Env []string
}

// NewLiveGitCommander creates a new instance of LiveGitCommander.
func NewLiveGitCommander() *LiveGitCommander {
	return &LiveGitCommander{}
}

// Run executes a Git command, logging the invocation and its duration at debug level.
func (c *LiveGitCommander) Run(workDir string, args ...string) (stdout, stderr []byte, err error) {
	start := time.Now()
	logger.Debug("Executing: git %s in %s", strings.Join(args, " "), workDir)

	cmd := exec.Command("git", args...) // nolint:gosec // Arguments are built by this package
	if workDir != "" {
		cmd.Dir = workDir
	}
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	duration := time.Since(start)

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// git could not be started at all
			return outBuf.Bytes(), errBuf.Bytes(), runErr
		}

		gitErr := &GitError{
			Command:  "git",
			Args:     args,
			Stderr:   strings.TrimSpace(errBuf.String()),
			ExitCode: exitErr.ExitCode(),
			Err:      runErr,
		}
		logger.Debug("git %s failed after %s (exit %d): %s", firstArg(args), duration, gitErr.ExitCode, gitErr.Stderr)
		return outBuf.Bytes(), errBuf.Bytes(), gitErr
	}

	logger.Debug("git %s finished in %s", firstArg(args), duration)
	return outBuf.Bytes(), errBuf.Bytes(), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// DefaultCommander provides a default instance of LiveGitCommander for production use.
var DefaultCommander Commander = NewLiveGitCommander()
