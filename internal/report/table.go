package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/RouteAudit/internal/core"
)

// table is a small markdown pipe table. Columns flagged numeric are
// right-aligned, the rest left-aligned.
type table struct {
	header  []string
	numeric []bool
	rows    [][]string
}

func newTable(header ...string) *table {
	return &table{header: header, numeric: make([]bool, len(header))}
}

// groupTable lays out an aggregation with one column per key part plus a
// count column.
func groupTable(agg core.AggregationResult, countLabel string, keyLabels ...string) *table {
	t := newTable(append(append([]string{}, keyLabels...), countLabel)...)
	t.numeric[len(keyLabels)] = true
	for _, g := range agg {
		row := make([]string, 0, len(keyLabels)+1)
		for i := range keyLabels {
			if i < len(g.Key) {
				row = append(row, g.Key[i])
			} else {
				row = append(row, "")
			}
		}
		t.add(append(row, fmt.Sprint(g.Count))...)
	}
	return t
}

// missingOnlyTable lists the roster rows of employees with no visits.
func missingOnlyTable(rec core.ReconciliationResult) *table {
	t := newTable(core.ColEmployeeCode, core.ColEmployeeName, core.ColTitle, core.ColGovernorateName)
	for _, m := range rec.MissingOnlyRecords {
		t.add(string(m.EmployeeID), m.EmployeeName, m.Title, m.GovernorateName)
	}
	return t
}

func governorateTable(govs []core.GovernorateCompliance) *table {
	t := newTable(core.ColGovernorate, "Visits", "Completed", "Rate")
	t.numeric[1], t.numeric[2], t.numeric[3] = true, true, true
	for _, g := range govs {
		t.add(g.Name, fmt.Sprint(g.Visits), fmt.Sprint(g.Completed), fmt.Sprintf("%d%%", g.Rate))
	}
	return t
}

func dailyTable(days []core.DailyCompliance) *table {
	t := newTable("Date", "Visits", "Completed", "Rate")
	t.numeric[1], t.numeric[2], t.numeric[3] = true, true, true
	for _, d := range days {
		t.add(d.Date, fmt.Sprint(d.Visits), fmt.Sprint(d.Completed), fmt.Sprintf("%d%%", d.Rate))
	}
	return t
}

func (t *table) isNumeric(col int) bool {
	return col < len(t.numeric) && t.numeric[col]
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	w := make([]int, len(t.header))
	for i, h := range t.header {
		w[i] = max(utf8.RuneCountInString(h), 3)
	}
	for _, row := range t.rows {
		for i := range w {
			if i < len(row) {
				w[i] = max(w[i], utf8.RuneCountInString(escapePipes(row[i])))
			}
		}
	}
	return w
}

func (t *table) write(w io.Writer) error {
	widths := t.widths()

	line := func(cells []string) string {
		var b strings.Builder
		b.WriteString("|")
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = escapePipes(cells[i])
			}
			pad := strings.Repeat(" ", width-utf8.RuneCountInString(cell))
			if t.numeric[i] {
				b.WriteString(" " + pad + cell + " |")
			} else {
				b.WriteString(" " + cell + pad + " |")
			}
		}
		return b.String()
	}

	var rule strings.Builder
	rule.WriteString("|")
	for i, width := range widths {
		if t.numeric[i] {
			rule.WriteString(strings.Repeat("-", width+1) + ":|")
		} else {
			rule.WriteString(":" + strings.Repeat("-", width+1) + "|")
		}
	}

	if _, err := fmt.Fprintln(w, line(t.header)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, rule.String()); err != nil {
		return err
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(w, line(row)); err != nil {
			return err
		}
	}
	return nil
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
