package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sqve/git-artifact/internal/errors"
	"github.com/sqve/git-artifact/internal/fs"
)

// Mode selects how the artifact branch reaches the destination.
type Mode string

const (
	ModeForcePush Mode = "force-push"
	ModeBranch    Mode = "branch"
	ModeDiff      Mode = "diff"
)

// Build is the resolved, immutable input of a single artifact run.
type Build struct {
	Remote              string
	Branch              string
	Message             string
	Mode                Mode
	Gitignore           string
	DryRun              bool
	Cleanup             bool
	FailOnMissingBranch bool
	ShowChanges         bool
	Now                 time.Time
	LogFile             string
	Root                string
	Src                 string
}

// NewViper returns a viper instance with defaults and GIT_ARTIFACT_* environment
// binding. Flags are bound by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves a Build from v. The project file in the source directory is
// read first and only fills values nothing else has set.
func Load(v *viper.Viper) (*Build, error) {
	root := v.GetString(KeyRoot)
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get current directory")
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve root %s", root)
	}

	b := &Build{Root: root}
	b.Src = b.ResolvePath(v.GetString(KeySrc))
	if !fs.DirectoryExists(b.Src) {
		return nil, errors.ErrConfigInvalid("source directory", fmt.Sprintf("%s does not exist", b.Src))
	}

	fileCfg, err := LoadFromFile(b.Src)
	if err != nil {
		return nil, err
	}
	fileCfg.ApplyDefaults(v)

	b.Remote = strings.TrimSpace(v.GetString(KeyRemote))
	if b.Remote == "" {
		return nil, errors.ErrConfigMissing("remote")
	}

	b.Branch = v.GetString(KeyBranch)
	if strings.TrimSpace(b.Branch) == "" {
		return nil, errors.ErrConfigMissing("branch")
	}
	b.Message = v.GetString(KeyMessage)
	if strings.TrimSpace(b.Message) == "" {
		return nil, errors.ErrConfigMissing("message")
	}
	b.Mode = Mode(strings.TrimSpace(v.GetString(KeyMode)))

	if gitignore := v.GetString(KeyGitignore); gitignore != "" {
		b.Gitignore = b.ResolvePath(gitignore)
		if !fs.FileExists(b.Gitignore) {
			return nil, errors.ErrFileNotFound(b.Gitignore)
		}
	}

	if logFile := v.GetString(KeyLog); logFile != "" {
		b.LogFile = b.ResolvePath(logFile)
	}

	b.DryRun = v.GetBool(KeyDryRun)
	b.Cleanup = !v.GetBool(KeyNoCleanup)
	b.FailOnMissingBranch = v.GetBool(KeyFailOnMissingBranch)
	b.ShowChanges = v.GetBool(KeyShowChanges)

	b.Now = time.Now()
	if now := v.GetInt64(KeyNow); now > 0 {
		b.Now = time.Unix(now, 0)
	}

	return b, nil
}

// ResolvePath makes path absolute relative to Root. An empty path yields Root.
func (b *Build) ResolvePath(path string) string {
	if path == "" {
		return b.Root
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(b.Root, path)
}
