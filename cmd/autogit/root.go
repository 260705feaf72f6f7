package main

import (
	"os"

	"github.com/spf13/cobra"

	"autogit-hq/autogit/pkg/config"
)

var (
	// Global flags
	cfgFile string
	repoDir string
	verbose bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "autogit",
	Short: "SSH git-command gateway with an on-demand mirror cache",
	Long: `Autogit turns a git hosting endpoint into an on-demand mirror cache.

Installed as an SSH forced command, it intercepts git-upload-pack and
git-receive-pack requests, resolves the repository name through a
configured tag table, clones or refreshes a local bare mirror, and hands
the session off to the native git pack command.

Running autogit with no subcommand performs the gateway dispatch; this is
what the SSH server invokes.`,
	Version:      Version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGateway,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&repoDir, "repodir", "", "override the repository root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at info level")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
}

// flagLogLevel returns the log level requested by flags, or "" when the
// configuration file should decide.
func flagLogLevel() string {
	if debug {
		return "debug"
	}
	if verbose {
		return "info"
	}
	return ""
}

// loadConfig initializes the global configuration and applies flag
// overrides.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, err
	}

	cfg := config.GetConfig()
	if repoDir != "" {
		cfg.Autogit.RepoDir = repoDir
	}
	if lvl := flagLogLevel(); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, nil
}
