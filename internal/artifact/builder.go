package artifact

import (
	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/logger"
)

// Builder produces the artifact commit on a throwaway branch.
type Builder struct {
	repo        Repository
	filter      *IgnoreFilter
	flattener   *Flattener
	showChanges bool
}

// NewBuilder returns a Builder for repo. gitignore optionally replaces the
// working tree's .gitignore.
func NewBuilder(repo Repository, gitignore string, showChanges bool) *Builder {
	return &Builder{
		repo:        repo,
		filter:      NewIgnoreFilter(repo, gitignore),
		flattener:   NewFlattener(repo),
		showChanges: showChanges,
	}
}

// Build runs every stage up to StageCommitted. It stops at the first
// failure and leaves the working tree for Cleanup.
func (b *Builder) Build(st *State) error {
	steps := []struct {
		stage     Stage
		operation string
		run       func() error
	}{
		{StageBranchCreated, "create branch", func() error {
			logger.Info("Creating branch %s", st.ArtifactBranch)
			return b.repo.CheckoutNewBranch(st.ArtifactBranch)
		}},
		{StageExcludesDisabled, "disable excludes", func() error {
			if err := b.filter.DisableExcludes(); err != nil {
				return err
			}
			return b.filter.ReplaceGitignore()
		}},
		{StageStaged, "stage", func() error {
			if _, err := b.flattener.Detach(); err != nil {
				return err
			}
			logger.Info("Staging files")
			removed, err := b.filter.Stage()
			st.RemovedFiles = removed
			return err
		}},
		{StageFlattened, "flatten", func() error {
			repos, err := b.flattener.Flatten()
			st.FlattenedRepos = repos
			for _, repo := range repos {
				logger.Info("Flattened nested repository %s", repo)
			}
			return err
		}},
		{StageCommitted, "commit", func() error {
			logger.Info("Committing: %s", st.Message)
			if err := b.repo.Commit(st.Message); err != nil {
				return err
			}
			commit, err := b.repo.HeadCommit()
			if err != nil {
				return err
			}
			st.Commit = commit
			if b.showChanges {
				changes, err := b.repo.ChangedFiles(commit)
				if err != nil {
					return err
				}
				st.Changes = changes
			}
			return nil
		}},
	}

	for i, step := range steps {
		logger.Debug("%s", logger.StepFormat(i+1, len(steps), step.stage.String()))
		if err := step.run(); err != nil {
			return errors.WithOperation(err, step.operation)
		}
		if err := st.advance(step.stage); err != nil {
			return err
		}
	}
	return nil
}

// Cleanup returns the working tree to the original ref. Each step runs even
// when an earlier one fails. With deleteBranch false the artifact branch
// stays checked out.
func (b *Builder) Cleanup(st *State, deleteBranch bool) error {
	var errs []error

	if deleteBranch {
		if err := b.restoreBranch(st); err != nil {
			errs = append(errs, err)
		}
	}

	if err := b.filter.RestoreExcludes(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (b *Builder) restoreBranch(st *State) error {
	current, err := b.repo.CurrentBranch()
	if err != nil {
		return err
	}
	if current == st.ArtifactBranch {
		if err := b.repo.Checkout(st.OriginalBranch); err != nil {
			return err
		}
	}

	exists, err := b.repo.BranchExists(st.ArtifactBranch)
	if err != nil || !exists {
		return err
	}
	logger.Debug("Deleting branch %s", st.ArtifactBranch)
	return b.repo.DeleteBranch(st.ArtifactBranch)
}
