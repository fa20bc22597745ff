package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/RouteAudit/internal/config"
	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/logging"
)

// app carries state shared by every subcommand once the root has run.
type app struct {
	envFile  string
	logLevel string
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "routeaudit",
		Short:         "Reconcile a supervisor route map against the missing employee roster",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file to load before reading configuration (empty to skip)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(newAnalyzeCmd(a))
	cmd.AddCommand(newInspectCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newRunsCmd(a))
	return cmd
}

// init loads the env file and configuration, then installs the logger.
// Logs go to stderr so reports written to stdout stay clean.
func (a *app) init(cmd *cobra.Command) error {
	envLoaded := false
	if a.envFile != "" {
		// Overload lets the file win over the inherited environment.
		err := godotenv.Overload(a.envFile)
		switch {
		case err == nil:
			envLoaded = true
		case errors.Is(err, fs.ErrNotExist):
		default:
			return withCode(exitUsage, fmt.Errorf("load %s: %w", a.envFile, err))
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return withCode(exitUsage, err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if envLoaded {
		slog.Debug("loaded env file", "path", a.envFile)
	}
	slog.Debug("configuration loaded", "config", cfg.String())
	return nil
}

// Execute runs the CLI and exits with the matching status code.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		}
		os.Exit(code)
	}
}
