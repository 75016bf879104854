package artifact

import (
	"path/filepath"

	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/fs"
	"github.com/sqve/git-artifact/internal/logger"
)

// VendorDir is never searched for nested repositories.
const VendorDir = "vendor"

// Flattener turns nested repositories into plain directories.
type Flattener struct {
	repo     Repository
	detached []string
}

func NewFlattener(repo Repository) *Flattener {
	return &Flattener{repo: repo}
}

// Find returns the nested repositories below the working tree, relative to
// it. Ignore rules are not consulted.
func (f *Flattener) Find() ([]string, error) {
	root := f.repo.Path()
	gitDirs, err := fs.FindDirs(root, ".git", 1, VendorDir)
	if err != nil {
		return nil, errors.ErrFileSystem("search nested repositories", err)
	}

	repos := make([]string, 0, len(gitDirs))
	for _, dir := range gitDirs {
		rel, err := filepath.Rel(root, filepath.Dir(dir))
		if err != nil {
			return nil, errors.ErrFileSystem("search nested repositories", err)
		}
		repos = append(repos, filepath.ToSlash(rel))
	}
	return repos, nil
}

// Detach deletes the .git directory of every nested repository so that
// staging sees their content as regular files. It must run before the first
// `git add`, which fails on a nested repository without commits. History is
// lost.
func (f *Flattener) Detach() ([]string, error) {
	repos, err := f.Find()
	if err != nil {
		return nil, err
	}

	root := f.repo.Path()
	for _, repo := range repos {
		gitDir := filepath.Join(root, filepath.FromSlash(repo), ".git")
		if err := fs.RemoveAll(gitDir); err != nil {
			return nil, errors.ErrFileSystem("remove nested .git", err).WithContext("path", gitDir)
		}
		logger.Debug("Detached %s", repo)
	}
	f.detached = append(f.detached, repos...)
	return repos, nil
}

// Flatten detaches any nested repository still present and replaces
// gitlinks in the index with the repositories' files. It returns every
// repository flattened by this Flattener.
func (f *Flattener) Flatten() ([]string, error) {
	if _, err := f.Detach(); err != nil {
		return nil, err
	}
	if len(f.detached) == 0 {
		return nil, nil
	}

	for _, repo := range f.detached {
		// A committed nested repository may be recorded as a gitlink.
		if err := f.repo.Unstage(repo); err != nil {
			return nil, err
		}
	}

	if err := f.repo.StageAll(); err != nil {
		return nil, err
	}
	return append([]string(nil), f.detached...), nil
}
