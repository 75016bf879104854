package git

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sqve/git-artifact/internal/fs"
	"github.com/sqve/git-artifact/internal/testutil"
)

// TestRepo provides a test git repository with proper configuration
type TestRepo struct {
	t    *testing.T
	Dir  string
	Path string
}

// NewTestRepo creates a new test repository with git config set up and one
// commit containing test.txt. Pass an optional branch name (default "main").
func NewTestRepo(t *testing.T, branchName ...string) *TestRepo {
	t.Helper()

	dir := testutil.TempDir(t)
	repoPath := filepath.Join(dir, "src")

	branch := "main"
	if len(branchName) > 0 && branchName[0] != "" {
		branch = branchName[0]
	}

	r := initRepo(t, dir, repoPath, branch)
	r.WriteFile("test.txt", "test")
	r.Add(".")
	r.Commit("initial")

	return r
}

// NewEmptyRepo creates a configured repository without commits at path.
func NewEmptyRepo(t *testing.T, path string) *TestRepo {
	t.Helper()
	return initRepo(t, filepath.Dir(path), path, "main")
}

func initRepo(t *testing.T, dir, repoPath, branch string) *TestRepo {
	t.Helper()

	if err := os.MkdirAll(repoPath, fs.DirGit); err != nil {
		t.Fatalf("Failed to create repo dir: %v", err)
	}

	testutil.MustExec(t, repoPath, "git", "init", "-q", "-b", branch)

	configs := [][]string{
		{"commit.gpgsign", "false"},
		{"tag.gpgsign", "false"},
		{"user.email", "test@example.com"},
		{"user.name", "Test User"},
	}
	for _, cfg := range configs {
		testutil.MustExec(t, repoPath, "git", "config", cfg[0], cfg[1])
	}

	return &TestRepo{t: t, Dir: dir, Path: repoPath}
}

// NewBareRemote creates an empty bare repository next to the test repos and
// returns its path.
func NewBareRemote(t *testing.T, name string) string {
	t.Helper()
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, name+".git")
	if err := os.MkdirAll(path, fs.DirGit); err != nil {
		t.Fatalf("Failed to create remote dir: %v", err)
	}
	testutil.MustExec(t, path, "git", "init", "-q", "--bare", "-b", "main")
	return path
}

// Git runs git in the repository and returns trimmed stdout.
func (r *TestRepo) Git(args ...string) string {
	r.t.Helper()
	return strings.TrimSpace(testutil.MustExec(r.t, r.Path, "git", args...))
}

// WriteFile writes content to a file in the repository, creating directories.
func (r *TestRepo) WriteFile(name, content string) {
	r.t.Helper()
	testutil.WriteFile(r.t, filepath.Join(r.Path, filepath.FromSlash(name)), content)
}

// Exists reports whether name exists in the working tree.
func (r *TestRepo) Exists(name string) bool {
	return fs.PathExists(filepath.Join(r.Path, filepath.FromSlash(name)))
}

// Add stages a path
func (r *TestRepo) Add(name string) {
	r.t.Helper()
	r.Git("add", name)
}

// Commit creates a commit with the given message
func (r *TestRepo) Commit(message string) {
	r.t.Helper()
	r.Git("commit", "-q", "-m", message)
}

// CommitAll stages everything and commits.
func (r *TestRepo) CommitAll(message string) {
	r.t.Helper()
	r.Add("-A")
	r.Commit(message)
}

// CreateBranch creates a new branch at the current HEAD
func (r *TestRepo) CreateBranch(name string) {
	r.t.Helper()
	r.Git("branch", name)
}

// Checkout switches to a branch, tag or commit
func (r *TestRepo) Checkout(name string) {
	r.t.Helper()
	r.Git("checkout", "-q", name)
}

// Tag creates a lightweight tag at HEAD
func (r *TestRepo) Tag(name string) {
	r.t.Helper()
	r.Git("tag", name)
}

// Head returns the commit hash of HEAD
func (r *TestRepo) Head() string {
	r.t.Helper()
	return r.Git("rev-parse", "HEAD")
}

// Branches returns local branch names, sorted.
func (r *TestRepo) Branches() []string {
	r.t.Helper()
	out := r.Git("for-each-ref", "--format=%(refname:short)", "refs/heads")
	var branches []string
	for _, b := range strings.Split(out, "\n") {
		if b = strings.TrimSpace(b); b != "" {
			branches = append(branches, b)
		}
	}
	sort.Strings(branches)
	return branches
}

// RemoteFiles lists files on branch in the bare repository at remote, sorted.
func RemoteFiles(t *testing.T, remote, branch string) []string {
	t.Helper()
	out := testutil.MustExec(t, remote, "git", "ls-tree", "-r", "--name-only", "refs/heads/"+branch)
	var files []string
	for _, f := range strings.Split(out, "\n") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files
}

// RemoteTree returns "mode type hash\tpath" entries of branch, which compare
// equal exactly when file contents are equal.
func RemoteTree(t *testing.T, remote, branch string) string {
	t.Helper()
	return strings.TrimSpace(testutil.MustExec(t, remote, "git", "ls-tree", "-r", "refs/heads/"+branch))
}

// RemoteBranches lists branches of the bare repository at remote, sorted.
func RemoteBranches(t *testing.T, remote string) []string {
	t.Helper()
	out := testutil.MustExec(t, remote, "git", "for-each-ref", "--format=%(refname:short)", "refs/heads")
	var branches []string
	for _, b := range strings.Split(out, "\n") {
		if b = strings.TrimSpace(b); b != "" {
			branches = append(branches, b)
		}
	}
	sort.Strings(branches)
	return branches
}
