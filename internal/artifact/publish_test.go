package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqve/git-artifact/internal/config"
	"github.com/sqve/git-artifact/internal/errors"
)

func TestNewPublisher(t *testing.T) {
	t.Run("force-push", func(t *testing.T) {
		p, err := NewPublisher(config.ModeForcePush, "deploy")
		require.NoError(t, err)
		assert.Equal(t, config.ModeForcePush, p.Mode())
		assert.Empty(t, p.Warnings())
	})

	t.Run("branch with token", func(t *testing.T) {
		p, err := NewPublisher(config.ModeBranch, "[branch]-[timestamp]")
		require.NoError(t, err)
		assert.Empty(t, p.Warnings())
	})

	t.Run("branch without token warns", func(t *testing.T) {
		p, err := NewPublisher(config.ModeBranch, "deploy")
		require.NoError(t, err)
		assert.Equal(t, []string{UniqueBranchWarning}, p.Warnings())
	})

	t.Run("diff is not implemented", func(t *testing.T) {
		_, err := NewPublisher(config.ModeDiff, "deploy")
		require.Error(t, err)
		assert.True(t, errors.IsArtifactError(err, errors.ErrCodeNotImplemented))
		assert.Contains(t, err.Error(), "not implemented")
	})

	t.Run("unknown mode lists valid modes", func(t *testing.T) {
		_, err := NewPublisher(config.Mode("merge"), "deploy")
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "force-push, branch, diff")
	})
}
