package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/RouteAudit/internal/report"
	"github.com/JonMunkholm/RouteAudit/internal/store"
)

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List, show and delete stored analysis runs",
	}
	cmd.AddCommand(newRunsListCmd(a))
	cmd.AddCommand(newRunsShowCmd(a))
	cmd.AddCommand(newRunsDeleteCmd(a))
	return cmd
}

func newRunsListCmd(a *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer closeStore()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return withCode(exitDB, err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}
			return writeRunTable(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")
	return cmd
}

func newRunsShowCmd(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Render a stored run's report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParseRunID(args[0])
			if err != nil {
				return withCode(exitUsage, err)
			}
			f, err := outputFormat(format, out)
			if err != nil {
				return withCode(exitUsage, err)
			}
			if f == report.FormatXLSX && out == "" {
				return withCode(exitUsage, fmt.Errorf("xlsx output requires --out"))
			}

			st, closeStore, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer closeStore()

			run, err := st.GetRun(cmd.Context(), id)
			if err != nil {
				return withCode(exitDB, err)
			}
			info := report.RunInfo{ID: run.ID.String(), CreatedAt: run.CreatedAt}
			return emitReport(cmd.OutOrStdout(), out, run.Report, f, info)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json, xlsx, html")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the report to this file instead of stdout")
	return cmd
}

func newRunsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete RUN_ID",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.ParseRunID(args[0])
			if err != nil {
				return withCode(exitUsage, err)
			}

			st, closeStore, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := st.DeleteRun(cmd.Context(), id); err != nil {
				return withCode(exitDB, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted run %s\n", id)
			return nil
		},
	}
}

func writeRunTable(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No stored runs.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tROUTE MAP\tMISSING ROSTER\tVISITS\tOVERLAP\tMISSING ONLY\tALERTS\tCOMPLIANCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d%%\n",
			r.ID, r.CreatedAt.UTC().Format("2006-01-02 15:04"), r.Source, r.RouteFile, r.RosterFile,
			r.TotalVisits, r.OverlapCount, r.MissingOnlyCount, r.AlertCount, r.ComplianceRate)
	}
	return tw.Flush()
}
