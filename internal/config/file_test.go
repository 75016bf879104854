package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sqve/git-artifact/internal/errors"
)

func writeProjectFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644)) //nolint:gosec
}

func TestLoadFromFile(t *testing.T) {
	t.Run("parses every key", func(t *testing.T) {
		dir := t.TempDir()
		writeProjectFile(t, dir, `remote = "git@example.com:org/dist.git"
branch = "[branch]-[timestamp]"
message = "Deploy [branch]"
mode = "branch"
gitignore = ".deployignore"
log = "deploy.yaml"
fail_on_missing_branch = true
show_changes = false
`)

		cfg, err := LoadFromFile(dir)
		require.NoError(t, err)

		assert.Equal(t, "git@example.com:org/dist.git", cfg.Remote)
		assert.Equal(t, "[branch]-[timestamp]", cfg.Branch)
		assert.Equal(t, "Deploy [branch]", cfg.Message)
		assert.Equal(t, "branch", cfg.Mode)
		assert.Equal(t, ".deployignore", cfg.Gitignore)
		assert.Equal(t, "deploy.yaml", cfg.Log)
		require.NotNil(t, cfg.FailOnMissingBranch)
		assert.True(t, *cfg.FailOnMissingBranch)
		require.NotNil(t, cfg.ShowChanges)
		assert.False(t, *cfg.ShowChanges)
	})

	t.Run("missing file", func(t *testing.T) {
		dir := t.TempDir()

		cfg, err := LoadFromFile(dir)
		require.NoError(t, err)
		assert.Equal(t, FileConfig{}, cfg)
		assert.False(t, FileConfigExists(dir))
	})

	t.Run("invalid TOML", func(t *testing.T) {
		dir := t.TempDir()
		writeProjectFile(t, dir, "remote = [unterminated")

		_, err := LoadFromFile(dir)
		require.Error(t, err)
		assert.True(t, apperrors.IsConfigurationError(err))
		assert.True(t, FileConfigExists(dir))
	})
}

func TestApplyDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	yes := true
	FileConfig{Branch: "release", FailOnMissingBranch: &yes}.ApplyDefaults(v)

	assert.Equal(t, "release", v.GetString(KeyBranch))
	assert.Equal(t, DefaultMessage, v.GetString(KeyMessage))
	assert.True(t, v.GetBool(KeyFailOnMissingBranch))

	v.Set(KeyBranch, "override")
	assert.Equal(t, "override", v.GetString(KeyBranch))
}
