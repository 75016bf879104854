package artifact

import (
	"regexp"
	"strings"

	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/logger"
)

// detachedRegex matches the `git branch` entry printed for a detached HEAD.
var detachedRegex = regexp.MustCompile(`^\*?\s*\(HEAD detached (?:at|from) ([^)\s]+)\)`)

// ResolveOriginalBranch returns the branch the working tree is on. For a
// detached HEAD it falls back to the ref HEAD was detached from, then to the
// first tag at HEAD. When neither exists a BRANCH_NOT_FOUND error carrying
// the commit hash is returned.
func ResolveOriginalBranch(repo Repository) (string, error) {
	branch, err := repo.CurrentBranch()
	if err != nil {
		return "", err
	}
	if branch != "" {
		return branch, nil
	}

	listing, err := repo.BranchListing()
	if err != nil {
		return "", err
	}
	for _, line := range listing {
		m := detachedRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		// git prints local branches fully qualified here.
		ref := strings.TrimPrefix(m[1], "refs/heads/")
		ok, err := repo.IsBranchOrTag(ref)
		if err != nil {
			return "", err
		}
		if ok {
			logger.Debug("HEAD detached from %s", ref)
			return ref, nil
		}
	}

	tags, err := repo.TagsAtHead()
	if err != nil {
		return "", err
	}
	if len(tags) > 0 {
		logger.Debug("HEAD detached at tag %s", tags[0])
		return tags[0], nil
	}

	commit, err := repo.HeadCommit()
	if err != nil {
		return "", err
	}
	return "", errors.ErrBranchNotFound(commit)
}
