package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sqve/git-artifact/internal/errors"
)

func TestLoad(t *testing.T) {
	newRoot := func(t *testing.T) string {
		t.Helper()
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
		return root
	}

	t.Run("defaults", func(t *testing.T) {
		root := newRoot(t)
		v := NewViper()
		v.Set(KeyRoot, root)
		v.Set(KeySrc, "src")
		v.Set(KeyRemote, "../dest.git")

		b, err := Load(v)
		require.NoError(t, err)

		assert.Equal(t, root, b.Root)
		assert.Equal(t, filepath.Join(root, "src"), b.Src)
		assert.Equal(t, "../dest.git", b.Remote)
		assert.Equal(t, DefaultBranch, b.Branch)
		assert.Equal(t, DefaultMessage, b.Message)
		assert.Equal(t, ModeForcePush, b.Mode)
		assert.True(t, b.Cleanup)
		assert.False(t, b.DryRun)
		assert.Empty(t, b.Gitignore)
		assert.WithinDuration(t, time.Now(), b.Now, time.Minute)
	})

	t.Run("explicit values", func(t *testing.T) {
		root := newRoot(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "deploy.gitignore"), []byte("/*\n"), 0o644)) //nolint:gosec

		v := NewViper()
		v.Set(KeyRoot, root)
		v.Set(KeySrc, "src")
		v.Set(KeyRemote, "https://example.com/dist.git")
		v.Set(KeyMode, "branch")
		v.Set(KeyGitignore, "deploy.gitignore")
		v.Set(KeyLog, "logs/deploy.toml")
		v.Set(KeyNoCleanup, true)
		v.Set(KeyDryRun, true)
		v.Set(KeyNow, int64(1700000000))

		b, err := Load(v)
		require.NoError(t, err)

		assert.Equal(t, ModeBranch, b.Mode)
		assert.Equal(t, filepath.Join(root, "deploy.gitignore"), b.Gitignore)
		assert.Equal(t, filepath.Join(root, "logs", "deploy.toml"), b.LogFile)
		assert.False(t, b.Cleanup)
		assert.True(t, b.DryRun)
		assert.Equal(t, int64(1700000000), b.Now.Unix())
	})

	t.Run("project file fills unset values", func(t *testing.T) {
		root := newRoot(t)
		writeProjectFile(t, filepath.Join(root, "src"), "remote = \"../dest.git\"\nmessage = \"From file\"\n")

		v := NewViper()
		v.Set(KeyRoot, root)
		v.Set(KeySrc, "src")

		b, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "../dest.git", b.Remote)
		assert.Equal(t, "From file", b.Message)
	})

	t.Run("environment overrides project file", func(t *testing.T) {
		root := newRoot(t)
		writeProjectFile(t, filepath.Join(root, "src"), "remote = \"../dest.git\"\nbranch = \"file\"\n")
		t.Setenv("GIT_ARTIFACT_BRANCH", "env")

		v := NewViper()
		v.Set(KeyRoot, root)
		v.Set(KeySrc, "src")

		b, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "env", b.Branch)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name  string
			setup func(v *viper.Viper)
			code  string
		}{
			{"missing remote", func(v *viper.Viper) {}, apperrors.ErrCodeConfigMissing},
			{"missing source", func(v *viper.Viper) {
				v.Set(KeyRemote, "x")
				v.Set(KeySrc, "nope")
			}, apperrors.ErrCodeConfigInvalid},
			{"missing gitignore", func(v *viper.Viper) {
				v.Set(KeyRemote, "x")
				v.Set(KeyGitignore, "nope.gitignore")
			}, apperrors.ErrCodeFileSystem},
			{"blank message", func(v *viper.Viper) {
				v.Set(KeyRemote, "x")
				v.Set(KeyMessage, "  ")
			}, apperrors.ErrCodeConfigMissing},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				root := newRoot(t)
				v := NewViper()
				v.Set(KeyRoot, root)
				v.Set(KeySrc, "src")
				tt.setup(v)

				_, err := Load(v)
				require.Error(t, err)
				assert.True(t, apperrors.IsArtifactError(err, tt.code), err.Error())
			})
		}
	})
}

func TestResolvePath(t *testing.T) {
	b := &Build{Root: "/work"}

	assert.Equal(t, "/work", b.ResolvePath(""))
	assert.Equal(t, "/work/dist", b.ResolvePath("dist"))
	assert.Equal(t, "/dest.git", b.ResolvePath("../dest.git"))
	assert.Equal(t, "/abs/path", b.ResolvePath("/abs/path/"))
}

func TestValidModes(t *testing.T) {
	assert.Equal(t, []string{"force-push", "branch", "diff"}, ValidModes())
}
