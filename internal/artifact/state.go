package artifact

import (
	"fmt"
	"time"

	"github.com/sqve/git-artifact/internal/git"
)

// RemoteName is the transient remote the artifact branch is pushed through.
const RemoteName = "dst"

// ArtifactSuffix is appended to the destination branch to name the local
// artifact branch.
const ArtifactSuffix = "-artifact"

// Stage is a step of the build pipeline.
type Stage int

const (
	StageInitial Stage = iota
	StageBranchCreated
	StageExcludesDisabled
	StageStaged
	StageFlattened
	StageCommitted
	StagePublished
	StageSkippedDryRun
	StageCleanedUp
	StageSucceeded
	StageFailed
)

var stageNames = map[Stage]string{
	StageInitial:          "initial",
	StageBranchCreated:    "branch-created",
	StageExcludesDisabled: "excludes-disabled",
	StageStaged:           "staged",
	StageFlattened:        "flattened",
	StageCommitted:        "committed",
	StagePublished:        "published",
	StageSkippedDryRun:    "skipped-dry-run",
	StageCleanedUp:        "cleaned-up",
	StageSucceeded:        "succeeded",
	StageFailed:           "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// transitions lists the successful path through the pipeline.
var transitions = map[Stage][]Stage{
	StageInitial:          {StageBranchCreated},
	StageBranchCreated:    {StageExcludesDisabled},
	StageExcludesDisabled: {StageStaged},
	StageStaged:           {StageFlattened},
	StageFlattened:        {StageCommitted},
	StageCommitted:        {StagePublished, StageSkippedDryRun},
	StagePublished:        {StageCleanedUp},
	StageSkippedDryRun:    {StageCleanedUp},
	StageCleanedUp:        {StageSucceeded, StageFailed},
}

// State is the mutable record of one pipeline run. It must not be reused.
type State struct {
	OriginalBranch    string
	DestinationBranch string
	ArtifactBranch    string
	RemoteName        string
	Message           string
	Result            bool

	Stage          Stage
	Commit         string
	RemovedFiles   []string
	FlattenedRepos []string
	Changes        []git.ChangedFile
	Warnings       []string
	Err            error

	StartedAt  time.Time
	FinishedAt time.Time
	history    []Stage
}

// NewState returns a State for a run that publishes to destination.
func NewState(original, destination, message string) *State {
	return &State{
		OriginalBranch:    original,
		DestinationBranch: destination,
		ArtifactBranch:    destination + ArtifactSuffix,
		RemoteName:        RemoteName,
		Message:           message,
		Stage:             StageInitial,
		StartedAt:         time.Now(),
		history:           []Stage{StageInitial},
	}
}

// advance moves the run to next. Once a failure is recorded every
// pre-cleanup stage may jump straight to StageCleanedUp.
func (s *State) advance(next Stage) error {
	allowed := false
	for _, candidate := range transitions[s.Stage] {
		if candidate == next {
			allowed = true
			break
		}
	}
	if !allowed && next == StageCleanedUp && s.Err != nil && s.Stage < StageCleanedUp {
		allowed = true
	}
	if !allowed {
		return fmt.Errorf("invalid stage transition from %s to %s", s.Stage, next)
	}

	s.Stage = next
	s.history = append(s.history, next)
	return nil
}

// fail records the first error of the run.
func (s *State) fail(err error) {
	if s.Err == nil {
		s.Err = err
	}
}

// finish moves a cleaned up run to its terminal stage.
func (s *State) finish() {
	next := StageSucceeded
	if s.Err != nil {
		next = StageFailed
	}
	if err := s.advance(next); err != nil {
		s.fail(err)
		s.Stage = StageFailed
		s.history = append(s.history, StageFailed)
	}
	s.Result = s.Err == nil
	s.FinishedAt = time.Now()
}

// History returns every stage the run passed through, in order.
func (s *State) History() []Stage {
	return append([]Stage(nil), s.history...)
}

func (s *State) warn(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
