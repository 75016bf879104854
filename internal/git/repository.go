package git

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/sqve/git-artifact/internal/errors"
)

// Repository exposes the git operations an artifact build needs on one
// working tree. All methods run synchronously through the Commander.
type Repository struct {
	path      string
	commander Commander
}

// NewRepository returns a Repository for the working tree at path.
// A nil commander selects DefaultCommander.
func NewRepository(path string, commander Commander) (*Repository, error) {
	if path == "" {
		return nil, errors.New("repository path cannot be empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "resolve path %s", path)
	}
	if commander == nil {
		commander = DefaultCommander
	}

	r := &Repository{path: absPath, commander: commander}
	if _, err := r.output("rev-parse", "--git-dir"); err != nil {
		return nil, apperrors.NewArtifactErrorf(apperrors.ErrCodeConfigInvalid, err, "not a git repository: %s", absPath).
			WithContext("path", absPath)
	}
	return r, nil
}

// Path returns the absolute working tree path.
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) run(args ...string) error {
	_, err := r.output(args...)
	return err
}

func (r *Repository) output(args ...string) (string, error) {
	stdout, _, err := r.commander.Run(r.path, args...)
	if err != nil {
		return "", apperrors.ErrGitOperation(firstArg(args), err)
	}
	return string(stdout), nil
}

// lines splits newline separated output, dropping blank lines.
func lines(out string) []string {
	var result []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

// nulSeparated splits -z output. Paths are returned verbatim.
func nulSeparated(out string) []string {
	var result []string
	for _, p := range strings.Split(out, "\x00") {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func exitCode(err error) int {
	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}
	return -1
}

// GitPath resolves a path inside the repository's git directory, such as
// "info/exclude", to an absolute path.
func (r *Repository) GitPath(name string) (string, error) {
	out, err := r.output("rev-parse", "--git-path", name)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(out)
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.path, path)
	}
	return path, nil
}

// CurrentBranch returns the checked out branch, or "" when HEAD is detached.
func (r *Repository) CurrentBranch() (string, error) {
	stdout, _, err := r.commander.Run(r.path, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		if exitCode(err) == 1 {
			return "", nil
		}
		return "", apperrors.ErrGitOperation("symbolic-ref", err)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// BranchListing returns the raw lines of `git branch`, including the
// "(HEAD detached at ...)" entry when HEAD is detached.
func (r *Repository) BranchListing() ([]string, error) {
	out, err := r.output("branch", "--list", "--no-color")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// LocalBranches returns local branch names.
func (r *Repository) LocalBranches() ([]string, error) {
	out, err := r.output("for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// TagsAtHead returns the tags pointing at HEAD.
func (r *Repository) TagsAtHead() ([]string, error) {
	out, err := r.output("tag", "--points-at", "HEAD")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// CreateTag creates a lightweight tag at HEAD.
func (r *Repository) CreateTag(name string) error {
	return r.run("tag", name)
}

// HeadCommit returns the full hash of HEAD.
func (r *Repository) HeadCommit() (string, error) {
	out, err := r.output("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RefExists reports whether the fully qualified ref exists.
func (r *Repository) RefExists(ref string) (bool, error) {
	_, _, err := r.commander.Run(r.path, "show-ref", "--verify", "--quiet", ref)
	if err != nil {
		if exitCode(err) == 1 {
			return false, nil
		}
		return false, apperrors.ErrGitOperation("show-ref", err)
	}
	return true, nil
}

// BranchExists reports whether a local branch named name exists.
func (r *Repository) BranchExists(name string) (bool, error) {
	return r.RefExists("refs/heads/" + name)
}

// IsBranchOrTag reports whether name is a local branch, a remote-tracking
// branch or a tag.
func (r *Repository) IsBranchOrTag(name string) (bool, error) {
	for _, prefix := range []string{"refs/heads/", "refs/remotes/", "refs/tags/"} {
		ok, err := r.RefExists(prefix + name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// CheckoutNewBranch creates name at HEAD and switches to it. An existing
// branch with the same name is reset.
func (r *Repository) CheckoutNewBranch(name string) error {
	return r.run("checkout", "-q", "-B", name)
}

// Checkout switches to a branch, tag or commit.
func (r *Repository) Checkout(ref string) error {
	return r.run("checkout", "-q", ref)
}

// DeleteBranch force deletes a local branch.
func (r *Repository) DeleteBranch(name string) error {
	return r.run("branch", "-D", name)
}

// StageAll stages additions, modifications and removals across the tree.
func (r *Repository) StageAll() error {
	return r.run("add", "-A")
}

// Unstage removes path from the index, recursively, leaving the working tree alone.
func (r *Repository) Unstage(path string) error {
	return r.run("rm", "-r", "-q", "--cached", "--ignore-unmatch", "--", path)
}

// Commit records the index. Empty commits are allowed.
func (r *Repository) Commit(message string) error {
	return r.run("commit", "-q", "--allow-empty", "--no-verify", "-m", message)
}

// ListIgnoredTracked lists committed files matched by the patterns in excludeFile.
func (r *Repository) ListIgnoredTracked(excludeFile string) ([]string, error) {
	out, err := r.output("ls-files", "-z", "-i", "-c", "--exclude-from="+excludeFile)
	if err != nil {
		return nil, err
	}
	return nulSeparated(out), nil
}

// ListOtherFiles lists untracked files not covered by the standard excludes.
func (r *Repository) ListOtherFiles() ([]string, error) {
	out, err := r.output("ls-files", "-z", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return nulSeparated(out), nil
}

// ListCommittedFiles lists every file in the tree of ref.
func (r *Repository) ListCommittedFiles(ref string) ([]string, error) {
	out, err := r.output("ls-tree", "-r", "-z", "--name-only", ref)
	if err != nil {
		return nil, err
	}
	return nulSeparated(out), nil
}

// ChangedFiles lists paths changed by commit relative to its first parent.
func (r *Repository) ChangedFiles(commit string) ([]ChangedFile, error) {
	out, err := r.output("diff-tree", "-r", "--no-commit-id", "--name-status", "--root", commit)
	if err != nil {
		return nil, err
	}

	var changes []ChangedFile
	for _, line := range lines(out) {
		status, path, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		changes = append(changes, ChangedFile{Status: status, Path: path})
	}
	return changes, nil
}

// Remotes returns the configured remote names.
func (r *Repository) Remotes() ([]string, error) {
	out, err := r.output("remote")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// RemoteExists reports whether a remote called name is configured.
func (r *Repository) RemoteExists(name string) (bool, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return false, err
	}
	for _, remote := range remotes {
		if remote == name {
			return true, nil
		}
	}
	return false, nil
}

// AddRemote configures a remote.
func (r *Repository) AddRemote(name, url string) error {
	return r.run("remote", "add", name, url)
}

// RemoveRemote removes a remote. A missing remote is not an error.
func (r *Repository) RemoveRemote(name string) error {
	exists, err := r.RemoteExists(name)
	if err != nil || !exists {
		return err
	}
	return r.run("remote", "remove", name)
}

// Push sends localBranch to remoteBranch on remote. A non-force push
// rejected by the remote is reported as a push conflict.
func (r *Repository) Push(remote, localBranch, remoteBranch string, force bool) error {
	args := []string{"push", "--quiet"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote, fmt.Sprintf("refs/heads/%s:refs/heads/%s", localBranch, remoteBranch))

	_, stderr, err := r.commander.Run(r.path, args...)
	if err == nil {
		return nil
	}
	if !force && isRejectedPush(stderr) {
		return apperrors.ErrPushConflict(remoteBranch, err)
	}
	return apperrors.ErrGitOperation("push", err)
}

func isRejectedPush(stderr []byte) bool {
	for _, marker := range [][]byte{[]byte("[rejected]"), []byte("non-fast-forward"), []byte("fetch first")} {
		if bytes.Contains(stderr, marker) {
			return true
		}
	}
	return false
}
