package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/atlanticdynamic/mcpdemo/internal/config"
	"github.com/atlanticdynamic/mcpdemo/internal/logging"
	"github.com/atlanticdynamic/mcpdemo/internal/server"
	"github.com/robbyt/go-loglater"
	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/urfave/cli/v3"
)

var serverCmd = &cli.Command{
	Name:  "server",
	Usage: "Start the MCP demo server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to optional TOML configuration file (environment variables take precedence)",
			Aliases: []string{"c"},
		},
	},
	Action: serverAction,
}

// resolveConfig resolves the server configuration from the environment,
// layered over the optional TOML file when --config is set.
func resolveConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.NewFromFile(path, config.Environ())
	}
	return config.NewFromOS()
}

func serverAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Configuration error: %v", err), 1)
	}

	// The startup report is the only stdout output; once the supervisor owns
	// the process all diagnostics go to stderr via the logger.
	fmt.Printf("Starting MCP server (transport: %s)\n", cfg.Transport)
	fmt.Printf("Serving on %s:%d\n", cfg.Host, cfg.Port)

	handler := logging.SetupHandler(
		cmd.Root().String("log-format"),
		cmd.Root().String("log-level"),
		os.Stderr,
	)

	// The collector records every boot and serve log while passing them
	// through, so a failed run can replay the full trail.
	collector := loglater.NewLogCollector(handler)
	logger := slog.New(collector)
	slog.SetDefault(logger)

	srv, err := server.New(cfg,
		server.WithLogger(logger),
		server.WithVersion(cmd.Root().Version),
	)
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to create server: %w", err), 1)
	}

	runnables, err := srv.Runnables()
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to create runnables: %w", err), 1)
	}

	super, err := supervisor.New(
		supervisor.WithRunnables(runnables...),
		supervisor.WithLogHandler(collector),
		supervisor.WithContext(ctx),
	)
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to create supervisor: %w", err), 1)
	}

	if err := super.Run(); err != nil {
		// Replay the recorded trail so the exit error arrives with context.
		if playErr := collector.PlayLogs(logging.SetupHandlerText("debug", os.Stderr)); playErr != nil {
			logger.Error("Failed to replay boot logs", "error", playErr)
		}
		return cli.Exit(fmt.Errorf("failed to run server: %w", err), 1)
	}

	logger.Info("Server shutdown complete")
	return nil
}
