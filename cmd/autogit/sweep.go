package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"autogit-hq/autogit/pkg/cli"
	"autogit-hq/autogit/pkg/mirror"
	"autogit-hq/autogit/pkg/mirror/sweep"
	"autogit-hq/autogit/pkg/telemetry/logging"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Refresh every materialized mirror once",
	Long: `Run one refresh sweep over all mirrors under the repository root.

Each mirror is refreshed under the same advisory lock the gateway takes,
without blocking: mirrors busy in a live SSH session are skipped and will
be picked up by the next sweep.

Examples:
  # Refresh everything
  autogit sweep

  # With info-level progress
  autogit sweep -v`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.Setup(cfg.Logging)

		store := mirror.NewStore(cfg.Autogit.RepoDir)
		lifecycle, err := mirror.NewLifecycle(store, logger)
		if err != nil {
			return err
		}

		sweeper := sweep.NewSweeper(store, lifecycle, cfg.Daemon.Concurrency, cfg.Daemon.RefreshTimeout, logger, nil)

		res, err := sweeper.Run(cli.SetupSignalHandler())
		if err != nil {
			return err
		}

		fmt.Printf("Swept %d mirrors: %d refreshed, %d failed, %d skipped (%s)\n",
			res.Found, res.Refreshed, res.Failed, res.Skipped, res.Duration.Round(time.Millisecond))

		if res.Failed > 0 {
			return fmt.Errorf("%d mirrors failed to refresh", res.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
