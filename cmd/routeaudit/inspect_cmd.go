package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/loader"
)

func newInspectCmd(a *app) *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "inspect KIND FILE",
		Short: "Check one file against the route_map or missing_roster columns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, ok := core.Get(args[0])
			if !ok {
				keys := make([]string, 0, core.SchemaCount())
				for _, s := range core.All() {
					keys = append(keys, s.Key)
				}
				return withCode(exitUsage, fmt.Errorf("unknown dataset %q (want one of: %s)", args[0], strings.Join(keys, ", ")))
			}

			ds, err := loader.Load(args[1], loader.Options{Sheet: sheet, MaxBytes: a.cfg.Upload.MaxFileSize})
			if err != nil {
				return withCode(exitValidation, err)
			}
			in, err := core.Inspect(schema, ds)
			if err != nil {
				return withCode(exitValidation, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", in.Dataset, schema.Label)
			fmt.Fprintf(out, "Rows: %d\n", in.Rows)
			fmt.Fprintf(out, "Unique employees: %d\n", in.UniqueEmployees)
			fmt.Fprintf(out, "Columns: %s\n", strings.Join(in.Columns, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet of a workbook (default: first sheet)")
	return cmd
}
