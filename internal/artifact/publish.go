package artifact

import (
	"github.com/sqve/git-artifact/internal/config"
	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/logger"
	"github.com/sqve/git-artifact/internal/token"
)

// UniqueBranchWarning is emitted when branch mode targets a fixed name.
const UniqueBranchWarning = "Branch mode is used without a token in the destination branch name. " +
	"A second run will be rejected by the remote unless the branch name changes, e.g. --branch=\"[branch]-[timestamp]\"."

// Publisher delivers the artifact branch to the destination remote.
type Publisher interface {
	Mode() config.Mode
	// Warnings returns non-fatal notices about the configured strategy.
	Warnings() []string
	Publish(repo Repository, st *State) error
}

// NewPublisher returns the strategy for mode. branchTemplate is the
// destination branch before token resolution.
func NewPublisher(mode config.Mode, branchTemplate string) (Publisher, error) {
	switch mode {
	case config.ModeForcePush:
		return &pushPublisher{mode: mode, force: true}, nil
	case config.ModeBranch:
		p := &pushPublisher{mode: mode}
		if !token.Exists(branchTemplate) {
			p.warnings = append(p.warnings, UniqueBranchWarning)
		}
		return p, nil
	case config.ModeDiff:
		return nil, errors.ErrNotImplemented("diff mode")
	default:
		return nil, errors.ErrInvalidMode(string(mode), config.ValidModes())
	}
}

type pushPublisher struct {
	mode     config.Mode
	force    bool
	warnings []string
}

func (p *pushPublisher) Mode() config.Mode {
	return p.mode
}

func (p *pushPublisher) Warnings() []string {
	return p.warnings
}

func (p *pushPublisher) Publish(repo Repository, st *State) error {
	if p.force {
		logger.Info("Force pushing %s to %s", st.ArtifactBranch, st.DestinationBranch)
	} else {
		logger.Info("Pushing %s to %s", st.ArtifactBranch, st.DestinationBranch)
	}
	return repo.Push(st.RemoteName, st.ArtifactBranch, st.DestinationBranch, p.force)
}
