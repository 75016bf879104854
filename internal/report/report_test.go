package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *Report {
	return &Report{
		Success:        true,
		Mode:           "force-push",
		Source:         "/work/src",
		Remote:         "/work/dest.git",
		OriginalBranch: "main",
		Destination:    "main",
		ArtifactBranch: "main-artifact",
		Message:        "Deployment commit",
		Commit:         "abc123",
		Stage:          "succeeded",
		Stages:         []string{"initial", "branch-created"},
		RemovedFiles:   []string{"build.log"},
		FlattenedRepos: []string{"lib/sub"},
		Changes:        []Change{{Status: "A", Path: "index.html"}},
		Warnings:       []string{"careful"},
		StartedAt:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:       "1.5s",
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("deploy.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("deploy.YML"))
	assert.Equal(t, FormatTOML, FormatForPath("logs/deploy.toml"))
	assert.Equal(t, FormatText, FormatForPath("deploy.log"))
	assert.Equal(t, FormatText, FormatForPath("deploy"))
}

func TestWriteText(t *testing.T) {
	t.Run("successful run", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, WriteText(&b, sampleReport()))
		out := b.String()

		assert.Contains(t, out, "Result: succeeded\n")
		assert.Contains(t, out, "Destination branch: main\n")
		assert.Contains(t, out, "Removed files (1):\n  build.log\n")
		assert.Contains(t, out, "Flattened repositories (1):\n  lib/sub\n")
		assert.Contains(t, out, "Changes (1):\n  A\tindex.html\n")
		assert.Contains(t, out, "Warnings (1):\n  careful\n")
		assert.NotContains(t, out, "Error:")
	})

	t.Run("skipped run", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, WriteText(&b, &Report{Success: true, Skipped: true, SkipReason: "no branch"}))
		assert.Contains(t, b.String(), "Result: skipped\nReason: no branch\n")
	})

	t.Run("failed run", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, WriteText(&b, &Report{Error: "push rejected", Operation: "publish", Stage: "failed"}))
		assert.Contains(t, b.String(), "Result: failed\nError: push rejected\nFailed operation: publish\n")
	})

	t.Run("dry run", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, WriteText(&b, &Report{Success: true, DryRun: true}))
		assert.Contains(t, b.String(), "Result: succeeded (dry run)\n")
	})
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "report.yaml")
		require.NoError(t, WriteFile(path, sampleReport()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, "main", got["destination_branch"])
		assert.Equal(t, true, got["success"])
	})

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(dir, "report.toml")
		require.NoError(t, WriteFile(path, sampleReport()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, toml.Unmarshal(data, &got))
		assert.Equal(t, "force-push", got["mode"])
		assert.Equal(t, "abc123", got["commit"])
	})

	t.Run("text", func(t *testing.T) {
		path := filepath.Join(dir, "report.log")
		require.NoError(t, WriteFile(path, sampleReport()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "Result: succeeded\n"))
	})
}
