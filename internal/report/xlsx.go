package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/RouteAudit/internal/core"
)

// Sheet names of the workbook rendering, in order.
const (
	SheetSummary     = "Summary"
	SheetSupervisors = "Supervisors"
	SheetRouteGov    = "Visits by Governorate"
	SheetRouteJob    = "Visits by Job"
	SheetRosterTitle = "Missing by Title"
	SheetRosterGov   = "Missing by Governorate"
	SheetMissingOnly = "Missing Only"
	SheetCompliance  = "Compliance"
	SheetDaily       = "Daily Compliance"
	SheetAlerts      = "Alerts"
)

type sheet struct {
	name   string
	header []string
	rows   [][]any
}

// WriteXLSX renders the report as a workbook with one sheet per table.
func WriteXLSX(w io.Writer, r *core.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, s := range workbookSheets(r) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	widths := make([]int, len(s.header))
	put := func(row int, values []any) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(s.name, cell, v); err != nil {
				return fmt.Errorf("set %s!%s: %w", s.name, cell, err)
			}
			if col < len(widths) {
				widths[col] = max(widths[col], len(fmt.Sprint(v)))
			}
		}
		return nil
	}

	header := make([]any, len(s.header))
	for i, h := range s.header {
		header[i] = h
	}
	if err := put(1, header); err != nil {
		return err
	}
	if len(s.header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style %s header: %w", s.name, err)
		}
	}

	for i, values := range s.rows {
		if err := put(i+2, values); err != nil {
			return err
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, float64(min(width+2, 60))); err != nil {
			return fmt.Errorf("set %s column width: %w", s.name, err)
		}
	}

	return f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func workbookSheets(r *core.Report) []sheet {
	summary := sheet{
		name:   SheetSummary,
		header: []string{"Metric", "Value"},
		rows: [][]any{
			{"Route map", r.RouteName},
			{"Missing roster", r.RosterName},
			{"Total visits recorded", r.Route.TotalVisits},
			{"Unique supervisors", r.Route.UniqueSupervisors},
			{"Unique shops visited", r.Route.UniqueShops},
			{"Entries in missing list", r.Roster.TotalEntries},
			{"Unique employees in missing list", r.Roster.UniqueEmployees},
			{"Employees in both lists", len(r.Reconciliation.Overlap)},
			{"Employees only in missing list", len(r.Reconciliation.MissingOnly)},
			{"Completed visits", r.Compliance.CompletedVisits},
			{"Missed visits", r.Compliance.MissedVisits},
			{"Compliance rate (%)", r.Compliance.Rate},
			{"Active staff", r.Compliance.ActiveStaff},
		},
	}
	for _, id := range r.Reconciliation.Overlap {
		summary.rows = append(summary.rows, []any{"Overlap code", string(id)})
	}
	for _, warn := range r.Warnings {
		summary.rows = append(summary.rows, []any{"Warning", warn.String()})
	}

	missing := sheet{
		name:   SheetMissingOnly,
		header: []string{core.ColEmployeeCode, core.ColEmployeeName, core.ColTitle, core.ColGovernorateName},
	}
	if r.Reconciliation.NoEntries {
		missing.rows = append(missing.rows, []any{NoMissingOnlyMessage})
	}
	for _, m := range r.Reconciliation.MissingOnlyRecords {
		missing.rows = append(missing.rows, []any{string(m.EmployeeID), m.EmployeeName, m.Title, m.GovernorateName})
	}

	compliance := sheet{
		name:   SheetCompliance,
		header: []string{core.ColGovernorate, "Visits", "Completed", "Rate (%)"},
	}
	for _, g := range r.Compliance.Governorates {
		compliance.rows = append(compliance.rows, []any{g.Name, g.Visits, g.Completed, g.Rate})
	}

	daily := sheet{
		name:   SheetDaily,
		header: []string{"Date", "Visits", "Completed", "Rate (%)"},
	}
	for _, d := range r.Compliance.Daily {
		daily.rows = append(daily.rows, []any{d.Date, d.Visits, d.Completed, d.Rate})
	}

	alerts := sheet{
		name:   SheetAlerts,
		header: []string{"Type", "Employee Code", "Employee", "Details", "Location"},
	}
	for _, a := range r.Alerts {
		alerts.rows = append(alerts.rows, []any{string(a.Type), string(a.EmployeeID), a.EmployeeName, a.Details, a.Location})
	}

	return []sheet{
		summary,
		groupSheet(SheetSupervisors, r.Route.TopSupervisors, "Visits", core.ColCode, core.ColName),
		groupSheet(SheetRouteGov, r.Route.VisitsByGovernorate, "Visits", core.ColGovernorate),
		groupSheet(SheetRouteJob, r.Route.VisitsByJob, "Visits", core.ColJob),
		groupSheet(SheetRosterTitle, r.Roster.ByTitle, "Count", core.ColTitle),
		groupSheet(SheetRosterGov, r.Roster.ByGovernorate, "Count", core.ColGovernorateName),
		missing,
		compliance,
		daily,
		alerts,
	}
}

func groupSheet(name string, agg core.AggregationResult, countLabel string, keyLabels ...string) sheet {
	s := sheet{name: name, header: append(append([]string{}, keyLabels...), countLabel)}
	for _, g := range agg {
		row := make([]any, 0, len(keyLabels)+1)
		for i := range keyLabels {
			if i < len(g.Key) {
				row = append(row, g.Key[i])
			} else {
				row = append(row, "")
			}
		}
		s.rows = append(s.rows, append(row, g.Count))
	}
	return s
}
