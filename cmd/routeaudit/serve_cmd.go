package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/store"
	"github.com/JonMunkholm/RouteAudit/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload form and the analysis API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr()
			}
			return runServe(cmd.Context(), a, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: SERVER_HOST:SERVER_PORT)")
	return cmd
}

func runServe(ctx context.Context, a *app, addr string) error {
	cfg := a.cfg

	slog.Info("configuration loaded",
		"addr", addr,
		"history", cfg.Database.Enabled(),
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"schemas", core.SchemaCount(),
	)

	// Run history is optional; a nil RunStore disables the history endpoints.
	var runs web.RunStore
	if cfg.Database.Enabled() {
		pool, err := connectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		runs = store.New(pool)
	} else {
		slog.Info("run history disabled: DATABASE_URL not set")
	}

	limiter := core.NewAnalysisLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime)
	server := web.NewServer(cfg, limiter, runs)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-sigCtx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Let in-flight analyses finish before closing connections
	if status := limiter.Status(); status.Active > 0 {
		slog.Info("waiting for analyses to complete", "active", status.Active)
		if err := limiter.WaitForDrain(shutdownCtx); err != nil {
			slog.Warn("analyses did not complete in time", "error", err)
		} else {
			slog.Info("all analyses completed")
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
