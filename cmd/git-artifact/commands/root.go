package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sqve/git-artifact/internal/artifact"
	"github.com/sqve/git-artifact/internal/config"
	"github.com/sqve/git-artifact/internal/logger"
	"github.com/sqve/git-artifact/internal/utils"
)

const Version = "v0.1.0"

// Keys of flags that only affect output.
const (
	flagPlain = "plain"
	flagDebug = "debug"
)

// NewRootCmd creates the git-artifact command
func NewRootCmd() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:     "git-artifact <remote>",
		Short:   "Build and publish artifact branches",
		Version: Version,
		Long: `Build a filtered, flattened snapshot of the current repository on a throwaway
branch and push it to a destination repository.

The remote is a URL, an scp-like address or a path to an existing repository.
Branch names and commit messages accept tokens: [branch], [safebranch],
[tags], [tags:<delimiter>], [timestamp] and [timestamp:<format>].`,
		Example: `  git-artifact git@github.com:org/site-dist.git
  git-artifact --mode=branch --branch="[branch]-[timestamp]" ../dist.git
  git-artifact --gitignore=.deployignore --dry-run ../dist.git`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initOutput(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set(config.KeyRemote, args[0])
			}
			return runArtifact(cmd, v)
		},
	}

	addFlags(cmd.Flags())
	bindFlags(v, cmd.Flags())
	cmd.Flags().BoolP("help", "h", false, "Help for git-artifact")

	return cmd
}

func addFlags(flags *pflag.FlagSet) {
	flags.String(config.KeyBranch, config.DefaultBranch, "Destination branch name, may contain tokens")
	flags.String(config.KeyMessage, config.DefaultMessage, "Commit message, may contain tokens")
	flags.String(config.KeyMode, string(config.DefaultMode), "Push strategy: force-push, branch or diff")
	flags.String(config.KeyGitignore, "", "Replacement .gitignore used for the build (deleted after use)")
	flags.Bool(config.KeyDryRun, false, "Build the artifact without pushing it")
	flags.Bool(config.KeyNoCleanup, false, "Keep the artifact branch checked out after the build")
	flags.Int64(config.KeyNow, 0, "Unix timestamp used by [timestamp] (default: current time)")
	flags.String(config.KeyLog, "", "Copy the report to this file (.yaml, .yml and .toml select the format)")
	flags.String(config.KeyRoot, "", "Directory relative paths resolve against (default: current directory)")
	flags.String(config.KeySrc, "", "Source repository (default: root)")
	flags.Bool(config.KeyShowChanges, false, "List the files changed by the artifact commit")
	flags.Bool(config.KeyFailOnMissingBranch, false, "Fail instead of skipping when the source branch cannot be determined")
	flags.Bool(flagPlain, false, "Disable colors and symbols")
	flags.Bool(flagDebug, false, "Enable debug logging")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == flagPlain || f.Name == flagDebug {
			return
		}
		_ = v.BindPFlag(f.Name, f)
	})
}

// initOutput sets plain and debug mode from flags and the environment.
// Output that is not a terminal is always plain.
func initOutput(flags *pflag.FlagSet) {
	config.LoadFromEnv()

	plain := config.IsPlain()
	if p, _ := flags.GetBool(flagPlain); p {
		plain = true
	}
	if !utils.IsInteractiveTerminal(os.Stderr) {
		plain = true
	}

	debug := config.IsDebug()
	if d, _ := flags.GetBool(flagDebug); d {
		debug = true
	}

	logger.Init(plain, debug)
}

func runArtifact(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	logger.Debug("Building %s into %s using %s", cfg.Src, cfg.Remote, cfg.Mode)

	_, err = artifact.NewRunner(cfg, nil, cmd.OutOrStdout()).Run()
	return err
}
