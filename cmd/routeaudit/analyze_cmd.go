package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/loader"
	"github.com/JonMunkholm/RouteAudit/internal/report"
	"github.com/JonMunkholm/RouteAudit/internal/store"
)

type analyzeOptions struct {
	routePath   string
	rosterPath  string
	routeSheet  string
	rosterSheet string
	format      string
	out         string
	top         int
	maxRows     int
	save        bool
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze ROUTE_MAP MISSING_ROSTER",
		Short: "Analyze a route map against a missing roster (.csv or .xlsx)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.routePath, opts.rosterPath = args[0], args[1]
			if !cmd.Flags().Changed("top") {
				opts.top = a.cfg.Report.TopSupervisors
			}
			if !cmd.Flags().Changed("max-rows") {
				opts.maxRows = a.cfg.Report.MaxRows
			}
			return runAnalyze(cmd.Context(), a, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.routeSheet, "route-sheet", "", "Worksheet of the route map workbook (default: first sheet)")
	cmd.Flags().StringVar(&opts.rosterSheet, "roster-sheet", "", "Worksheet of the missing roster workbook (default: first sheet)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, json, xlsx, html (default: from --out extension, else text)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().IntVar(&opts.top, "top", core.DefaultTopSupervisors, "Number of supervisors to rank (overrides REPORT_TOP_SUPERVISORS)")
	cmd.Flags().IntVar(&opts.maxRows, "max-rows", 0, "Reject datasets with more rows, 0 for unlimited (overrides REPORT_MAX_ROWS)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Store the run in the history database (requires DATABASE_URL)")

	return cmd
}

func runAnalyze(ctx context.Context, a *app, opts analyzeOptions, stdout io.Writer) error {
	start := time.Now()

	format, err := outputFormat(opts.format, opts.out)
	if err != nil {
		return withCode(exitUsage, err)
	}
	if format == report.FormatXLSX && opts.out == "" {
		return withCode(exitUsage, fmt.Errorf("xlsx output requires --out"))
	}
	if opts.top <= 0 {
		return withCode(exitUsage, fmt.Errorf("--top must be positive"))
	}
	if opts.maxRows < 0 {
		return withCode(exitUsage, fmt.Errorf("--max-rows must be non-negative"))
	}

	maxBytes := a.cfg.Upload.MaxFileSize
	route, err := loader.Load(opts.routePath, loader.Options{Sheet: opts.routeSheet, MaxBytes: maxBytes})
	if err != nil {
		return withCode(exitValidation, fmt.Errorf("load route map: %w", err))
	}
	roster, err := loader.Load(opts.rosterPath, loader.Options{Sheet: opts.rosterSheet, MaxBytes: maxBytes})
	if err != nil {
		return withCode(exitValidation, fmt.Errorf("load missing roster: %w", err))
	}

	rep, err := core.Analyze(route, roster, core.Options{TopSupervisors: opts.top, MaxRows: opts.maxRows})
	if err != nil {
		return withCode(exitValidation, err)
	}
	for _, warn := range rep.Warnings {
		slog.Warn("empty dataset", "dataset", warn.Dataset)
	}

	var run report.RunInfo
	if opts.save {
		st, closeStore, err := openStore(ctx, a)
		if err != nil {
			return err
		}
		defer closeStore()

		saved, err := st.SaveRun(store.WithClient(ctx, store.Client{Source: "cli"}), rep)
		if err != nil {
			return withCode(exitDB, err)
		}
		run = report.RunInfo{ID: saved.ID.String(), CreatedAt: saved.CreatedAt}
	}

	if err := emitReport(stdout, opts.out, rep, format, run); err != nil {
		return err
	}

	slog.Info("analysis complete",
		"route_file", rep.RouteName,
		"roster_file", rep.RosterName,
		"rows", rep.Route.TotalVisits+rep.Roster.TotalEntries,
		"overlap", len(rep.Reconciliation.Overlap),
		"missing_only", len(rep.Reconciliation.MissingOnly),
		"alerts", len(rep.Alerts),
		"run_id", run.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// outputFormat resolves --format, falling back to the --out extension and
// then to text.
func outputFormat(flag, out string) (report.Format, error) {
	if flag == "" {
		if f, err := report.ParseFormat(strings.TrimPrefix(filepath.Ext(out), ".")); err == nil {
			return f, nil
		}
		return report.FormatText, nil
	}
	f, err := report.ParseFormat(flag)
	if err != nil {
		return "", fmt.Errorf("invalid --format: %w", err)
	}
	return f, nil
}

// emitReport writes the report to path, or to stdout when path is empty.
func emitReport(stdout io.Writer, path string, rep *core.Report, format report.Format, run report.RunInfo) error {
	if path == "" {
		if err := report.Write(stdout, rep, format, run); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("create %s: %w", path, err))
	}
	if err := report.Write(f, rep, format, run); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	slog.Info("report written", "path", path, "format", string(format))
	return nil
}
