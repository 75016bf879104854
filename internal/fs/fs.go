package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// Strict permissions (gosec-compliant defaults)
	DirStrict  = 0o750 // rwxr-x--- - gosec-compliant directory
	FileStrict = 0o600 // rw------- - gosec-compliant file

	// Git-compatible permissions (required for git operations)
	DirGit  = 0o755 // rwxr-xr-x - git-compatible directory
	FileGit = 0o644 // rw-r--r-- - git-compatible file
)

// DirectoryExists checks if a directory exists
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FileExists checks if path exists and is a file (not a directory)
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// PathExists checks if any path exists (file or directory). Dangling symlinks
// count as existing.
func PathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CreateDirectory creates a directory with the given permissions, including parent directories
func CreateDirectory(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll removes a path and any children it contains
func RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// RenameWithFallback renames oldpath to newpath, falling back to copy+delete for cross-filesystem moves
func RenameWithFallback(oldpath, newpath string) error {
	// Try direct rename first (fastest, preserves everything)
	if err := os.Rename(oldpath, newpath); err == nil {
		return nil
	}

	srcInfo, err := os.Lstat(oldpath)
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}

	switch {
	case srcInfo.Mode()&os.ModeSymlink != 0:
		linkTarget, err := os.Readlink(oldpath)
		if err != nil {
			return fmt.Errorf("failed to read symlink: %w", err)
		}
		if err := os.Symlink(linkTarget, newpath); err != nil {
			return fmt.Errorf("failed to create symlink: %w", err)
		}
	case srcInfo.IsDir():
		return fmt.Errorf("cross-filesystem directory moves not supported")
	default:
		if err := CopyFile(oldpath, newpath, srcInfo.Mode()); err != nil {
			return fmt.Errorf("failed to copy file: %w", err)
		}
	}

	// Remove source only after successful copy/symlink creation
	if err := os.Remove(oldpath); err != nil {
		_ = os.Remove(newpath)
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}

	return nil
}

// CopyFile copies content from src to dst using streaming I/O and sets given permissions
func CopyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src) // nolint:gosec // Controlled path supplied by the caller
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm) // nolint:gosec // Controlled path inside the source repository
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst) // Clean up partial/corrupt file
		return err
	}
	return out.Close()
}

// WriteFileAtomic writes data to a file atomically by writing to a temp file then renaming
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := fmt.Sprintf("%s.tmp.%d.%d", path, os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// FindDirs returns directories named name below root whose depth (root's
// direct children are depth 0) is at least minDepth. Matches are not
// descended into. Relative paths listed in skip, and everything under them,
// are not searched. Results are absolute and in lexical walk order.
func FindDirs(root, name string, minDepth int, skip ...string) ([]string, error) {
	var found []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if path == root || !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		for _, s := range skip {
			if rel == s || strings.HasPrefix(rel, s+"/") {
				return filepath.SkipDir
			}
		}

		if d.Name() != name {
			return nil
		}

		if strings.Count(rel, "/") >= minDepth {
			found = append(found, path)
		}
		return filepath.SkipDir
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}
