package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	apperrors "github.com/sqve/git-artifact/internal/errors"
)

// FileName is the optional project file read from the source repository root.
const FileName = ".git-artifact.toml"

type FileConfig struct {
	Remote              string `toml:"remote"`
	Branch              string `toml:"branch"`
	Message             string `toml:"message"`
	Mode                string `toml:"mode"`
	Gitignore           string `toml:"gitignore"`
	Log                 string `toml:"log"`
	FailOnMissingBranch *bool  `toml:"fail_on_missing_branch"`
	ShowChanges         *bool  `toml:"show_changes"`
}

// LoadFromFile returns empty config if file missing, error if file invalid.
func LoadFromFile(dir string) (FileConfig, error) {
	var cfg FileConfig
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path) // nolint:gosec // Project file in source repository
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, apperrors.ErrFileSystem("read "+path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, apperrors.NewArtifactErrorf(apperrors.ErrCodeConfigInvalid, err, "failed to parse %s", path).
			WithContext("path", path)
	}

	return cfg, nil
}

func FileConfigExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil
}

// ApplyDefaults registers non-empty file values as viper defaults, so that
// environment variables and flags keep precedence over the project file.
func (c FileConfig) ApplyDefaults(v *viper.Viper) {
	setString := func(key, value string) {
		if value != "" {
			v.SetDefault(key, value)
		}
	}

	setString(KeyRemote, c.Remote)
	setString(KeyBranch, c.Branch)
	setString(KeyMessage, c.Message)
	setString(KeyMode, c.Mode)
	setString(KeyGitignore, c.Gitignore)
	setString(KeyLog, c.Log)

	if c.FailOnMissingBranch != nil {
		v.SetDefault(KeyFailOnMissingBranch, *c.FailOnMissingBranch)
	}
	if c.ShowChanges != nil {
		v.SetDefault(KeyShowChanges, *c.ShowChanges)
	}
}
