package artifact

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqve/git-artifact/internal/testutil"
	testgit "github.com/sqve/git-artifact/internal/testutil/git"
)

func TestIgnoreFilterExcludes(t *testing.T) {
	testutil.IsolateGitConfig(t)

	t.Run("moves exclude file aside and restores it", func(t *testing.T) {
		r := testgit.NewTestRepo(t)
		exclude := filepath.Join(r.Path, ".git", "info", "exclude")
		testutil.WriteFile(t, exclude, "secret.txt\n")

		f := NewIgnoreFilter(openRepo(t, r), "")
		require.NoError(t, f.DisableExcludes())
		assert.NoFileExists(t, exclude)
		assert.FileExists(t, exclude+".bak")

		require.NoError(t, f.RestoreExcludes())
		assert.NoFileExists(t, exclude+".bak")
		data, err := os.ReadFile(exclude)
		require.NoError(t, err)
		assert.Equal(t, "secret.txt\n", string(data))

		require.NoError(t, f.RestoreExcludes())
	})

	t.Run("missing exclude file", func(t *testing.T) {
		r := testgit.NewTestRepo(t)
		require.NoError(t, os.RemoveAll(filepath.Join(r.Path, ".git", "info")))

		f := NewIgnoreFilter(openRepo(t, r), "")
		require.NoError(t, f.DisableExcludes())
		require.NoError(t, f.RestoreExcludes())
	})
}

func TestIgnoreFilterStage(t *testing.T) {
	testutil.IsolateGitConfig(t)

	t.Run("repository gitignore", func(t *testing.T) {
		r := testgit.NewTestRepo(t)
		r.WriteFile(".gitignore", "*.log\n")
		r.CommitAll("ignore logs")
		r.WriteFile("build.log", "log")
		r.WriteFile("app.js", "js")

		f := NewIgnoreFilter(openRepo(t, r), "")
		removed, err := f.Stage()
		require.NoError(t, err)
		assert.Empty(t, removed)

		staged := r.Git("diff", "--cached", "--name-only")
		assert.Equal(t, "app.js", staged)
	})

	t.Run("replacement gitignore with allowlist", func(t *testing.T) {
		r := testgit.NewTestRepo(t)
		r.WriteFile("f1", "1")
		r.WriteFile("f2", "2")
		r.WriteFile("cc", "c")
		r.WriteFile("vendor/lib/a.txt", "a")
		r.CommitAll("files")

		replacement := filepath.Join(r.Dir, "deploy.gitignore")
		testutil.WriteFile(t, replacement, "/*\n!f2\n!cc\n!vendor\n")

		f := NewIgnoreFilter(openRepo(t, r), replacement)
		require.NoError(t, f.ReplaceGitignore())
		assert.NoFileExists(t, replacement)

		removed, err := f.Stage()
		require.NoError(t, err)
		sort.Strings(removed)
		assert.Equal(t, []string{"f1", "test.txt"}, removed)

		files := r.Git("ls-files")
		assert.Equal(t, "cc\nf2\nvendor/lib/a.txt", files)
	})
}
