package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"autogit-hq/autogit/pkg/cli"
	"autogit-hq/autogit/pkg/config"
	"autogit-hq/autogit/pkg/mirror"
	"autogit-hq/autogit/pkg/mirror/sweep"
	"autogit-hq/autogit/pkg/telemetry/logging"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run scheduled mirror refresh sweeps",
	Long: `Run refresh sweeps on the configured cron schedule until
interrupted.

When daemon.metrics_listen is set, Prometheus metrics are served at
/metrics on that address. When daemon.watch_config is set, the
configuration file is hot-reloaded on change and the scheduler restarted
with the new settings.

Examples:
  # Hourly sweeps (default schedule)
  autogit daemon

  # With metrics
  AUTOGIT_DAEMON_METRICS_LISTEN=127.0.0.1:9618 autogit daemon`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Logging)

	ctx := cli.SetupSignalHandler()

	// The registry outlives config reloads so counters are continuous.
	var metrics *sweep.Metrics
	if cfg.Daemon.MetricsListen != "" {
		metrics = sweep.NewMetrics(prometheus.NewRegistry())
		go serveMetrics(ctx, cfg.Daemon.MetricsListen, metrics, logger)
	}

	reload := make(chan struct{}, 1)
	if cfg.Daemon.WatchConfig {
		watcher := sweep.NewConfigWatcher(cfgFile, logger)
		go func() {
			err := watcher.Watch(ctx, func() error {
				if err := config.Reload(cfgFile); err != nil {
					return err
				}
				select {
				case reload <- struct{}{}:
				default:
				}
				return nil
			})
			if err != nil {
				logger.Error("config watcher exited", "error", err)
			}
		}()
	}

	// Each iteration runs one scheduler generation; a successful config
	// reload tears the generation down and starts a fresh one.
	for {
		cfg := config.GetConfig()
		if repoDir != "" {
			cfg.Autogit.RepoDir = repoDir
		}

		genCtx, cancel := context.WithCancel(ctx)
		scheduler, err := startSchedulerGeneration(genCtx, cfg, logger, metrics)
		if err != nil {
			cancel()
			return err
		}

		select {
		case <-ctx.Done():
			cancel()
			scheduler.Stop()
			logger.Info("daemon stopped")
			return nil
		case <-reload:
			cancel()
			scheduler.Stop()
			logger.Info("configuration reloaded, restarting scheduler")
		}
	}
}

// startSchedulerGeneration builds the sweeper from the current config and
// starts its cron scheduler.
func startSchedulerGeneration(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *sweep.Metrics) (*sweep.Scheduler, error) {
	store := mirror.NewStore(cfg.Autogit.RepoDir)
	lifecycle, err := mirror.NewLifecycle(store, logger)
	if err != nil {
		return nil, err
	}

	sweeper := sweep.NewSweeper(store, lifecycle, cfg.Daemon.Concurrency, cfg.Daemon.RefreshTimeout, logger, metrics)

	scheduler := sweep.NewScheduler(sweeper, cfg.Daemon.Schedule)
	if err := scheduler.Start(ctx); err != nil {
		return nil, err
	}

	if next := scheduler.NextRun(); next != nil {
		logger.Info("daemon running", "repodir", cfg.Autogit.RepoDir, "next_sweep", next.Format(time.RFC3339))
	}

	return scheduler, nil
}

// serveMetrics serves the Prometheus endpoint until ctx is canceled.
func serveMetrics(ctx context.Context, addr string, metrics *sweep.Metrics, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}()

	logger.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", "error", fmt.Errorf("listen %s: %w", addr, err))
	}
}
