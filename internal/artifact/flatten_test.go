package artifact

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqve/git-artifact/internal/testutil"
	testgit "github.com/sqve/git-artifact/internal/testutil/git"
)

func TestFlattener(t *testing.T) {
	testutil.IsolateGitConfig(t)

	r := testgit.NewTestRepo(t)
	nested := testgit.NewEmptyRepo(t, filepath.Join(r.Path, "lib", "sub"))
	nested.WriteFile("code.txt", "code")
	nested.CommitAll("nested")
	vendored := testgit.NewEmptyRepo(t, filepath.Join(r.Path, "vendor", "pkg"))
	vendored.WriteFile("pkg.txt", "pkg")
	vendored.CommitAll("vendored")

	repo := openRepo(t, r)
	f := NewFlattener(repo)

	found, err := f.Find()
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/sub"}, found)

	require.NoError(t, repo.StageAll())
	assert.Contains(t, r.Git("ls-files", "-s", "lib"), "160000")

	flattened, err := f.Flatten()
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/sub"}, flattened)

	assert.False(t, r.Exists("lib/sub/.git"))
	assert.True(t, r.Exists("lib/sub/code.txt"))
	assert.True(t, r.Exists("vendor/pkg/.git"))
	assert.Equal(t, "lib/sub/code.txt", r.Git("ls-files", "lib"))
}

func TestFlattenerWithoutNestedRepos(t *testing.T) {
	testutil.IsolateGitConfig(t)

	r := testgit.NewTestRepo(t)
	flattened, err := NewFlattener(openRepo(t, r)).Flatten()
	require.NoError(t, err)
	assert.Empty(t, flattened)
}

func TestFlattenerDetachesRepoWithoutCommits(t *testing.T) {
	testutil.IsolateGitConfig(t)

	r := testgit.NewTestRepo(t)
	nested := testgit.NewEmptyRepo(t, filepath.Join(r.Path, "r1"))
	nested.WriteFile("c", "c")

	repo := openRepo(t, r)
	f := NewFlattener(repo)

	detached, err := f.Detach()
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, detached)
	assert.False(t, r.Exists("r1/.git"))

	require.NoError(t, repo.StageAll())

	flattened, err := f.Flatten()
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, flattened)
	assert.Equal(t, "100644 r1/c", stageEntry(r.Git("ls-files", "-s", "r1")))
}

// stageEntry drops the object hash and stage number from an ls-files -s line.
func stageEntry(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return line
	}
	return fields[0] + " " + fields[3]
}
