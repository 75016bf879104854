package git

import (
	"regexp"
	"strings"

	"github.com/sqve/git-artifact/internal/errors"
)

var (
	// Git rejects branches with special characters that conflict with ref syntax.
	invalidCharsRegex = regexp.MustCompile(`[~^:?*\[\]\\]`)
	// Consecutive dots create ambiguous ref resolution in Git.
	consecutiveDotsRegex = regexp.MustCompile(`\.\.`)
	// Leading/trailing dots and slashes break Git's hierarchical ref structure.
	invalidStartEndRegex = regexp.MustCompile(`^[./]|[./]$`)
	// Control characters would break terminal output and Git commands.
	controlCharsRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	// Characters replaced when deriving a ref-safe name.
	unsafeBranchCharsRegex = regexp.MustCompile(`[^a-z0-9._-]`)
)

// ValidateBranchName reports why name cannot be used as a branch name, the
// same way `git check-ref-format --branch` would reject it.
func ValidateBranchName(name string) error {
	if name == "" {
		return errors.ErrInvalidBranchName(name, "cannot be empty")
	}

	if strings.ContainsAny(name, " \t") {
		return errors.ErrInvalidBranchName(name, "cannot contain spaces")
	}

	if strings.HasPrefix(name, "-") {
		return errors.ErrInvalidBranchName(name, "cannot start with a dash")
	}

	if invalidCharsRegex.MatchString(name) {
		return errors.ErrInvalidBranchName(name, "contains invalid characters (~^:?*[]\\)")
	}

	if consecutiveDotsRegex.MatchString(name) {
		return errors.ErrInvalidBranchName(name, "cannot contain consecutive dots (..)")
	}

	if invalidStartEndRegex.MatchString(name) {
		return errors.ErrInvalidBranchName(name, "cannot start or end with dots or slashes")
	}

	if strings.Contains(name, "//") || strings.Contains(name, "/.") {
		return errors.ErrInvalidBranchName(name, "cannot contain empty or hidden path components")
	}

	if strings.Contains(name, "@{") {
		return errors.ErrInvalidBranchName(name, "cannot contain '@{'")
	}

	if controlCharsRegex.MatchString(name) {
		return errors.ErrInvalidBranchName(name, "cannot contain control characters")
	}

	if name == "HEAD" || name == "@" {
		return errors.ErrInvalidBranchName(name, "cannot be 'HEAD' or '@'")
	}

	if strings.HasSuffix(name, ".lock") {
		return errors.ErrInvalidBranchName(name, "cannot end with '.lock'")
	}

	return nil
}

// SafeBranchName lower-cases name and replaces every character outside
// [a-z0-9._-] with a dash.
//
// Examples:
//   - "feature/Auth" -> "feature-auth"
//   - "release/1.2" -> "release-1.2"
func SafeBranchName(name string) string {
	return unsafeBranchCharsRegex.ReplaceAllString(strings.ToLower(name), "-")
}
