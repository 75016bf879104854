// Package report renders the outcome of an artifact run for the terminal
// and for log files.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/fs"
)

// Format selects the log file encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Change is one path touched by the artifact commit.
type Change struct {
	Status string `yaml:"status" toml:"status"`
	Path   string `yaml:"path" toml:"path"`
}

// Report summarizes one run.
type Report struct {
	Success        bool      `yaml:"success" toml:"success"`
	Skipped        bool      `yaml:"skipped,omitempty" toml:"skipped,omitempty"`
	SkipReason     string    `yaml:"skip_reason,omitempty" toml:"skip_reason,omitempty"`
	Error          string    `yaml:"error,omitempty" toml:"error,omitempty"`
	Operation      string    `yaml:"failed_operation,omitempty" toml:"failed_operation,omitempty"`
	Mode           string    `yaml:"mode" toml:"mode"`
	DryRun         bool      `yaml:"dry_run" toml:"dry_run"`
	Source         string    `yaml:"source" toml:"source"`
	Remote         string    `yaml:"remote" toml:"remote"`
	OriginalBranch string    `yaml:"original_branch,omitempty" toml:"original_branch,omitempty"`
	Destination    string    `yaml:"destination_branch,omitempty" toml:"destination_branch,omitempty"`
	ArtifactBranch string    `yaml:"artifact_branch,omitempty" toml:"artifact_branch,omitempty"`
	Message        string    `yaml:"message,omitempty" toml:"message,omitempty"`
	Commit         string    `yaml:"commit,omitempty" toml:"commit,omitempty"`
	Stage          string    `yaml:"stage" toml:"stage"`
	Stages         []string  `yaml:"stages,omitempty" toml:"stages,omitempty"`
	RemovedFiles   []string  `yaml:"removed_files,omitempty" toml:"removed_files,omitempty"`
	FlattenedRepos []string  `yaml:"flattened_repos,omitempty" toml:"flattened_repos,omitempty"`
	Changes        []Change  `yaml:"changes,omitempty" toml:"changes,omitempty"`
	Warnings       []string  `yaml:"warnings,omitempty" toml:"warnings,omitempty"`
	StartedAt      time.Time `yaml:"started_at" toml:"started_at"`
	Duration       string    `yaml:"duration" toml:"duration"`
}

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// Marshal encodes r in the given format.
func Marshal(r *Report, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(r)
	case FormatTOML:
		return toml.Marshal(r)
	case FormatText:
		var b strings.Builder
		if err := WriteText(&b, r); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// WriteFile stores r at path, encoded according to its extension.
func WriteFile(path string, r *Report) error {
	data, err := Marshal(r, FormatForPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); !fs.DirectoryExists(dir) {
		if err := fs.CreateDirectory(dir, fs.DirGit); err != nil {
			return errors.ErrFileSystem("create log directory", err).WithContext("path", dir)
		}
	}
	if err := fs.WriteFileAtomic(path, data, fs.FileGit); err != nil {
		return errors.ErrFileSystem("write log file", err).WithContext("path", path)
	}
	return nil
}

// WriteText writes the human readable report.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder

	status := "failed"
	switch {
	case r.Skipped:
		status = "skipped"
	case r.Success && r.DryRun:
		status = "succeeded (dry run)"
	case r.Success:
		status = "succeeded"
	}

	fmt.Fprintf(&b, "Result: %s\n", status)
	if r.SkipReason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", r.SkipReason)
	}
	if r.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", r.Error)
	}
	if r.Operation != "" {
		fmt.Fprintf(&b, "Failed operation: %s\n", r.Operation)
	}
	writeField(&b, "Mode", r.Mode)
	writeField(&b, "Source", r.Source)
	writeField(&b, "Remote", r.Remote)
	writeField(&b, "Original branch", r.OriginalBranch)
	writeField(&b, "Destination branch", r.Destination)
	writeField(&b, "Artifact branch", r.ArtifactBranch)
	writeField(&b, "Message", r.Message)
	writeField(&b, "Commit", r.Commit)
	writeField(&b, "Stage", r.Stage)
	writeField(&b, "Duration", r.Duration)

	writeList(&b, "Removed files", r.RemovedFiles)
	writeList(&b, "Flattened repositories", r.FlattenedRepos)
	if len(r.Changes) > 0 {
		fmt.Fprintf(&b, "Changes (%d):\n", len(r.Changes))
		for _, c := range r.Changes {
			fmt.Fprintf(&b, "  %s\t%s\n", c.Status, c.Path)
		}
	}
	writeList(&b, "Warnings", r.Warnings)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeField(b *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", name, value)
	}
}

func writeList(b *strings.Builder, name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d):\n", name, len(items))
	for _, item := range items {
		fmt.Fprintf(b, "  %s\n", item)
	}
}
