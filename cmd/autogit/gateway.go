package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"autogit-hq/autogit/pkg/cli"
	"autogit-hq/autogit/pkg/config"
	"autogit-hq/autogit/pkg/gateway"
	"autogit-hq/autogit/pkg/mirror"
	"autogit-hq/autogit/pkg/telemetry/logging"
)

// runGateway performs the gateway dispatch: this is what runs when the SSH
// server invokes autogit as a forced command. On success it does not
// return; the process image has been replaced by the requested git pack
// command.
func runGateway(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		logger := logging.Setup(config.LoggingConfig{Level: "warn", Format: "text"})
		exit(logger, gateway.NewConfigurationError(err))
	}

	logger := logging.Setup(cfg.Logging)

	store := mirror.NewStore(cfg.Autogit.RepoDir)
	lifecycle, err := mirror.NewLifecycle(store, logger)
	if err != nil {
		exit(logger, gateway.NewConfigurationError(err))
	}

	dispatcher := gateway.NewDispatcher(cfg, store, lifecycle, logger)
	if err := dispatcher.Run(cmd.Context()); err != nil {
		exit(logger, err)
	}

	// Unreachable after a successful handoff.
	return nil
}

// exit logs the failure with a rendering of its specific kind and
// terminates without handing off. The remote client sees the connection
// close; diagnostics go to the log and to whatever git already wrote on
// stderr.
func exit(logger *slog.Logger, err error) {
	kind, ok := gateway.KindOf(err)
	if !ok {
		logger.Error("gateway failed", "error", err)
		os.Exit(cli.ExitFailure)
	}

	switch kind {
	case gateway.KindNoCommand:
		// An interactive login attempt, not a protocol error.
		logger.Info(err.Error())
	case gateway.KindConfiguration,
		gateway.KindInvalidCommand,
		gateway.KindInvalidRepositoryTag,
		gateway.KindInvalidRepository,
		gateway.KindRepositoryCreateFailed,
		gateway.KindRepositoryUpdateFailed:
		logger.Error(err.Error(), "kind", kind.String())
	default:
		logger.Error(err.Error(), "kind", kind.String())
	}

	os.Exit(cli.ExitCodeFor(err))
}
