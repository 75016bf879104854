package artifact

import (
	"os"
	"path/filepath"

	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/fs"
	"github.com/sqve/git-artifact/internal/logger"
)

const excludeBackupSuffix = ".bak"

// IgnoreFilter decides which files of the source tree reach the artifact.
type IgnoreFilter struct {
	repo        Repository
	gitignore   string
	excludePath string
	backedUp    bool
}

// NewIgnoreFilter returns a filter for repo. gitignore, when set, replaces
// the working tree's .gitignore for the build.
func NewIgnoreFilter(repo Repository, gitignore string) *IgnoreFilter {
	return &IgnoreFilter{repo: repo, gitignore: gitignore}
}

func (f *IgnoreFilter) workingGitignore() string {
	return filepath.Join(f.repo.Path(), ".gitignore")
}

// DisableExcludes moves .git/info/exclude aside so it cannot hide files from
// the build. A missing exclude file is not an error.
func (f *IgnoreFilter) DisableExcludes() error {
	path, err := f.repo.GitPath("info/exclude")
	if err != nil {
		return err
	}
	f.excludePath = path

	if !fs.FileExists(path) {
		return nil
	}
	if err := fs.RenameWithFallback(path, path+excludeBackupSuffix); err != nil {
		return errors.ErrFileSystem("disable local excludes", err).WithContext("path", path)
	}
	f.backedUp = true
	logger.Debug("Moved %s aside", path)
	return nil
}

// RestoreExcludes puts the local exclude file back. It is safe to call when
// DisableExcludes did nothing.
func (f *IgnoreFilter) RestoreExcludes() error {
	if !f.backedUp {
		return nil
	}
	if err := fs.RenameWithFallback(f.excludePath+excludeBackupSuffix, f.excludePath); err != nil {
		return errors.ErrFileSystem("restore local excludes", err).WithContext("path", f.excludePath)
	}
	f.backedUp = false
	return nil
}

// ReplaceGitignore copies the replacement gitignore over the working tree's
// .gitignore and deletes the replacement. The deleted file is not restored.
func (f *IgnoreFilter) ReplaceGitignore() error {
	if f.gitignore == "" {
		return nil
	}
	target := f.workingGitignore()
	if filepath.Clean(f.gitignore) == target {
		return nil
	}

	if err := fs.CopyFile(f.gitignore, target, fs.FileGit); err != nil {
		return errors.ErrFileSystem("replace .gitignore", err).WithContext("path", f.gitignore)
	}
	if err := os.Remove(f.gitignore); err != nil {
		return errors.ErrFileSystem("remove replacement gitignore", err).WithContext("path", f.gitignore)
	}
	logger.Debug("Replaced .gitignore with %s", f.gitignore)
	return nil
}

// Stage stages the working tree and deletes every file that must not be in
// the artifact: tracked files matched by a replacement gitignore and
// untracked files outside the standard excludes. It returns the deleted
// paths, relative to the working tree.
func (f *IgnoreFilter) Stage() ([]string, error) {
	if err := f.repo.StageAll(); err != nil {
		return nil, err
	}

	var removed []string

	if f.gitignore != "" {
		ignored, err := f.repo.ListIgnoredTracked(f.workingGitignore())
		if err != nil {
			return nil, err
		}
		if err := f.remove(ignored); err != nil {
			return nil, err
		}
		removed = append(removed, ignored...)
	}

	others, err := f.repo.ListOtherFiles()
	if err != nil {
		return nil, err
	}
	if err := f.remove(others); err != nil {
		return nil, err
	}
	removed = append(removed, others...)

	if err := f.repo.StageAll(); err != nil {
		return nil, err
	}
	return removed, nil
}

func (f *IgnoreFilter) remove(paths []string) error {
	for _, p := range paths {
		full := filepath.Join(f.repo.Path(), filepath.FromSlash(p))
		if err := fs.RemoveAll(full); err != nil {
			return errors.ErrFileSystem("remove excluded file", err).WithContext("path", p)
		}
		logger.Debug("Removed %s", p)
	}
	return nil
}
