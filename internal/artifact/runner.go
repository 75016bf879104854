// Package artifact builds a filtered, flattened snapshot of a repository on
// a throwaway branch and publishes it to a destination remote.
package artifact

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sqve/git-artifact/internal/config"
	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/fs"
	"github.com/sqve/git-artifact/internal/git"
	"github.com/sqve/git-artifact/internal/logger"
	"github.com/sqve/git-artifact/internal/report"
	"github.com/sqve/git-artifact/internal/token"
)

// SkipMessage is printed when a detached HEAD cannot be traced to a branch
// and the run is allowed to skip.
const SkipMessage = "Source branch not found. Deployment skipped."

// Runner executes one build-and-publish run.
type Runner struct {
	cfg       *config.Build
	commander git.Commander
	out       io.Writer
	lookPath  func(string) (string, error)
}

// NewRunner returns a Runner for cfg. A nil commander selects the live git
// binary; a nil out writes the report to stdout.
func NewRunner(cfg *config.Build, commander git.Commander, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		cfg:       cfg,
		commander: commander,
		out:       out,
		lookPath:  exec.LookPath,
	}
}

// Run performs the run and emits its report. A skipped run returns a report
// with Skipped set and a nil error.
func (r *Runner) Run() (*report.Report, error) {
	if _, err := r.lookPath("git"); err != nil {
		return nil, errors.ErrGitNotFound(err)
	}

	repo, err := git.NewRepository(r.cfg.Src, r.commander)
	if err != nil {
		return nil, err
	}

	publisher, err := NewPublisher(r.cfg.Mode, r.cfg.Branch)
	if err != nil {
		return nil, err
	}

	original, err := ResolveOriginalBranch(repo)
	if err != nil {
		if errors.IsArtifactError(err, errors.ErrCodeBranchNotFound) && !r.cfg.FailOnMissingBranch {
			return r.skip(err)
		}
		return nil, err
	}

	st, err := r.resolveState(repo, original)
	if err != nil {
		return nil, err
	}
	for _, warning := range publisher.Warnings() {
		logger.Warning("%s", warning)
		st.warn("%s", warning)
	}

	remote, err := r.resolveRemote()
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(os.Stderr, r.summary(st, remote))

	runErr := r.execute(repo, publisher, st, remote)

	rep := r.newReport(st, remote)
	if err := r.emit(rep); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return rep, runErr
	}

	if r.cfg.DryRun {
		logger.Success("Dry run completed. Nothing was pushed.")
	} else {
		logger.Success("Deployment completed.")
	}
	return rep, nil
}

func (r *Runner) skip(cause error) (*report.Report, error) {
	commit, _ := errors.GetErrorContext(cause)["commit"].(string)
	reason := "HEAD is detached at a commit that no branch or tag points to"

	logger.Info(SkipMessage)
	logger.Info("Current commit: %s", commit)
	logger.Info("Reason: %s", reason)

	rep := &report.Report{
		Success:    true,
		Skipped:    true,
		SkipReason: reason,
		Mode:       string(r.cfg.Mode),
		DryRun:     r.cfg.DryRun,
		Source:     r.cfg.Src,
		Remote:     r.cfg.Remote,
		Commit:     commit,
		Stage:      StageInitial.String(),
		StartedAt:  time.Now(),
		Duration:   "0s",
	}
	if err := r.emit(rep); err != nil {
		return rep, err
	}
	return rep, nil
}

// resolveState expands the branch and message templates and checks the
// resulting names before anything is changed.
func (r *Runner) resolveState(repo Repository, original string) (*State, error) {
	resolver := r.tokens(repo, original)

	destination, err := resolver.Resolve(r.cfg.Branch)
	if err != nil {
		return nil, err
	}
	destination = strings.TrimSpace(destination)
	if err := git.ValidateBranchName(destination); err != nil {
		return nil, err
	}

	message, err := resolver.Resolve(r.cfg.Message)
	if err != nil {
		return nil, err
	}

	st := NewState(original, destination, message)
	if st.ArtifactBranch == st.OriginalBranch {
		return nil, errors.ErrConfigInvalid("branch",
			fmt.Sprintf("artifact branch %s is the branch being built", st.ArtifactBranch))
	}
	logger.Debug("Resolved branch %q to %s", r.cfg.Branch, destination)
	return st, nil
}

// tokens registers the built-in tokens over the current build.
func (r *Runner) tokens(repo Repository, original string) *token.Resolver {
	resolver := token.NewResolver()
	resolver.Register("branch", func(string) (string, error) {
		return original, nil
	})
	resolver.Register("safebranch", func(string) (string, error) {
		return git.SafeBranchName(original), nil
	})
	resolver.Register("tags", func(delimiter string) (string, error) {
		if delimiter == "" {
			delimiter = "-"
		}
		tags, err := repo.TagsAtHead()
		if err != nil {
			return "", err
		}
		return strings.Join(tags, delimiter), nil
	})
	resolver.Register("timestamp", func(format string) (string, error) {
		return token.FormatTime(format, r.cfg.Now), nil
	})
	return resolver
}

// resolveRemote accepts a remote URI as written, or an existing local path
// resolved against the root directory.
func (r *Runner) resolveRemote() (string, error) {
	remote := r.cfg.Remote
	if git.IsRemoteURI(remote) {
		return remote, nil
	}
	path := r.cfg.ResolvePath(remote)
	if remote != "" && fs.PathExists(path) {
		return path, nil
	}
	return "", errors.ErrInvalidRemote(remote)
}

// execute mutates the working tree. Cleanup runs on every exit path.
func (r *Runner) execute(repo Repository, publisher Publisher, st *State, remote string) (err error) {
	builder := NewBuilder(repo, r.cfg.Gitignore, r.cfg.ShowChanges)
	defer func() {
		err = r.cleanup(repo, builder, st, err)
	}()

	if err := repo.RemoveRemote(st.RemoteName); err != nil {
		return err
	}
	if err := repo.AddRemote(st.RemoteName, remote); err != nil {
		return err
	}

	if err := builder.Build(st); err != nil {
		return err
	}

	if r.cfg.DryRun {
		logger.Info("Dry run: not pushing %s", st.ArtifactBranch)
		return st.advance(StageSkippedDryRun)
	}
	if err := publisher.Publish(repo, st); err != nil {
		return errors.WithOperation(err, "publish")
	}
	return st.advance(StagePublished)
}

func (r *Runner) cleanup(repo Repository, builder *Builder, st *State, runErr error) error {
	if runErr != nil {
		st.fail(runErr)
	}

	var errs []error
	if err := builder.Cleanup(st, r.cfg.Cleanup); err != nil {
		errs = append(errs, err)
	}
	if err := repo.RemoveRemote(st.RemoteName); err != nil {
		errs = append(errs, err)
	}

	if cleanupErr := errors.Join(errs...); cleanupErr != nil {
		if st.Err == nil {
			st.fail(cleanupErr)
		} else {
			logger.Warning("Cleanup failed: %v", cleanupErr)
			st.warn("cleanup failed: %v", cleanupErr)
		}
	}

	if err := st.advance(StageCleanedUp); err != nil {
		st.fail(err)
	}
	st.finish()
	return st.Err
}

func (r *Runner) newReport(st *State, remote string) *report.Report {
	rep := &report.Report{
		Success:        st.Result,
		Mode:           string(r.cfg.Mode),
		DryRun:         r.cfg.DryRun,
		Source:         r.cfg.Src,
		Remote:         remote,
		OriginalBranch: st.OriginalBranch,
		Destination:    st.DestinationBranch,
		ArtifactBranch: st.ArtifactBranch,
		Message:        st.Message,
		Commit:         st.Commit,
		Stage:          st.Stage.String(),
		RemovedFiles:   st.RemovedFiles,
		FlattenedRepos: st.FlattenedRepos,
		Warnings:       st.Warnings,
		StartedAt:      st.StartedAt,
		Duration:       st.FinishedAt.Sub(st.StartedAt).Round(time.Millisecond).String(),
	}
	if st.Err != nil {
		rep.Error = st.Err.Error()
		var artifactErr *errors.ArtifactError
		if errors.As(st.Err, &artifactErr) {
			rep.Operation = artifactErr.Operation
		}
	}
	for _, stage := range st.History() {
		rep.Stages = append(rep.Stages, stage.String())
	}
	for _, c := range st.Changes {
		rep.Changes = append(rep.Changes, report.Change{Status: c.Status, Path: c.Path})
	}
	return rep
}

// emit prints the report and copies it to the log file when one is set.
func (r *Runner) emit(rep *report.Report) error {
	if err := report.WriteText(r.out, rep); err != nil {
		return err
	}
	if r.cfg.LogFile == "" {
		return nil
	}
	if err := report.WriteFile(r.cfg.LogFile, rep); err != nil {
		return err
	}
	logger.Debug("Report written to %s", r.cfg.LogFile)
	return nil
}
