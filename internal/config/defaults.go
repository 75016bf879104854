package config

import "github.com/spf13/viper"

const (
	DefaultBranch  = "[branch]"
	DefaultMessage = "Deployment commit"
	DefaultMode    = ModeForcePush
)

// Keys shared by flags, environment variables and the project file.
const (
	KeyRemote              = "remote"
	KeyBranch              = "branch"
	KeyMessage             = "message"
	KeyMode                = "mode"
	KeyGitignore           = "gitignore"
	KeyDryRun              = "dry-run"
	KeyNoCleanup           = "no-cleanup"
	KeyNow                 = "now"
	KeyLog                 = "log"
	KeyRoot                = "root"
	KeySrc                 = "src"
	KeyShowChanges         = "show-changes"
	KeyFailOnMissingBranch = "fail-on-missing-branch"
)

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBranch, DefaultBranch)
	v.SetDefault(KeyMessage, DefaultMessage)
	v.SetDefault(KeyMode, string(DefaultMode))
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyNoCleanup, false)
	v.SetDefault(KeyNow, int64(0))
	v.SetDefault(KeyShowChanges, false)
	v.SetDefault(KeyFailOnMissingBranch, false)
}

func ValidModes() []string {
	return []string{string(ModeForcePush), string(ModeBranch), string(ModeDiff)}
}
