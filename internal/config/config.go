package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable the tool reads.
const EnvPrefix = "GIT_ARTIFACT"

// Global holds the global output state for git-artifact
var Global struct {
	Plain bool // Disable colors and symbols
	Debug bool // Enable debug logging
}

// IsPlain returns true if plain output mode is enabled
func IsPlain() bool {
	return Global.Plain
}

// IsDebug returns true if debug logging is enabled
func IsDebug() bool {
	return Global.Debug
}

// LoadFromEnv loads output configuration from environment variables.
// NO_COLOR is honored in addition to GIT_ARTIFACT_PLAIN.
func LoadFromEnv() {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	_ = v.BindEnv("plain")
	_ = v.BindEnv("debug")
	_ = v.BindEnv("no_color", "NO_COLOR")

	if isTruthy(v.GetString("plain")) || v.GetString("no_color") != "" {
		Global.Plain = true
	}
	if isTruthy(v.GetString("debug")) {
		Global.Debug = true
	}
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
