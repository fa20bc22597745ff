package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/RouteAudit/internal/core"
)

const rule = "============================================================"

// NoMissingOnlyMessage is printed when every roster employee has visits.
const NoMissingOnlyMessage = "No missing employees found who did not report visits."

// WriteText renders the report as plain text with markdown tables.
func WriteText(w io.Writer, r *core.Report) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw}

	p.section(fmt.Sprintf("ROUTE MAP ANALYSIS (%s)", r.RouteName))
	p.routeStats(r.Route)

	p.blank()
	p.section(fmt.Sprintf("MISSING LIST ANALYSIS (%s)", r.RosterName))
	p.rosterStats(r.Roster)

	p.blank()
	p.section("CROSS-REFERENCE ANALYSIS")
	p.reconciliation(r.Reconciliation)

	p.blank()
	p.section("VISIT COMPLIANCE")
	p.compliance(r.Compliance)

	p.blank()
	p.section("ALERTS")
	p.alerts(r.Alerts)

	if len(r.Warnings) > 0 {
		p.blank()
		p.section("WARNINGS")
		for _, warn := range r.Warnings {
			p.printf("- %s\n", warn)
		}
	}

	p.blank()
	p.printf("%s\nAnalysis complete.\n%s\n", rule, rule)

	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// printer keeps the first write error so rendering code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) blank() {
	p.printf("\n")
}

func (p *printer) section(title string) {
	p.printf("%s\n           %s\n%s\n", rule, title, rule)
}

func (p *printer) table(t *table) {
	if p.err != nil {
		return
	}
	p.err = t.write(p.w)
}

func (p *printer) routeStats(s core.RouteStats) {
	p.printf("1. Total Visits Recorded: %d\n", s.TotalVisits)
	p.printf("2. Unique Supervisors in Route Map: %d\n", s.UniqueSupervisors)
	p.printf("3. Unique Shops Visited: %d\n", s.UniqueShops)

	p.printf("\n4. Top %d Supervisors by Visit Count:\n", len(s.TopSupervisors))
	p.table(groupTable(s.TopSupervisors, "Visits", core.ColCode, core.ColName))

	p.printf("\n5. Visits per Governorate:\n")
	p.table(groupTable(s.VisitsByGovernorate, "Visits", core.ColGovernorate))

	p.printf("\n6. Visits by Job Title:\n")
	p.table(groupTable(s.VisitsByJob, "Visits", core.ColJob))
}

func (p *printer) rosterStats(s core.RosterStats) {
	p.printf("1. Total Entries in Missing List: %d\n", s.TotalEntries)
	p.printf("2. Unique Employees in Missing List: %d\n", s.UniqueEmployees)

	p.printf("\n3. Missing Employees by Job Title:\n")
	p.table(groupTable(s.ByTitle, "Count", core.ColTitle))

	p.printf("\n4. Missing Employees by Governorate:\n")
	p.table(groupTable(s.ByGovernorate, "Count", core.ColGovernorateName))
}

func (p *printer) reconciliation(rec core.ReconciliationResult) {
	p.printf("1. Employees found in BOTH Route Map and Missing List (Requires Investigation): %d\n", len(rec.Overlap))
	if len(rec.Overlap) > 0 {
		p.printf("   Codes: %s\n", joinIDs(rec.Overlap))
	}

	p.printf("\n2. Employees found ONLY in Missing List (Did not report visits): %d\n", len(rec.MissingOnly))
	if rec.NoEntries {
		p.printf("   %s\n", NoMissingOnlyMessage)
		return
	}

	p.table(missingOnlyTable(rec))
}

func (p *printer) compliance(c core.Compliance) {
	p.printf("1. Completed Visits: %d of %d (%d%%)\n", c.CompletedVisits, c.TotalVisits, c.Rate)
	p.printf("2. Missed Visits: %d\n", c.MissedVisits)
	p.printf("3. Active Staff: %d\n", c.ActiveStaff)

	if len(c.Governorates) > 0 {
		p.printf("\n4. Compliance by Governorate:\n")
		p.table(governorateTable(c.Governorates))
	}
	if len(c.Daily) > 0 {
		p.printf("\n5. %s:\n", dailyTitle(c))
		p.table(dailyTable(c.RecentDays(core.TrendDays)))
	}
}

// dailyTitle names the daily table, noting when older days are left out.
func dailyTitle(c core.Compliance) string {
	if len(c.Daily) > core.TrendDays {
		return fmt.Sprintf("Daily Compliance (last %d of %d days)", core.TrendDays, len(c.Daily))
	}
	return "Daily Compliance"
}

func (p *printer) alerts(alerts []core.Alert) {
	if len(alerts) == 0 {
		p.printf("No alerts.\n")
		return
	}

	t := newTable("Type", "Employee", "Details", "Location")
	for _, a := range alerts {
		who := a.EmployeeName
		if a.EmployeeID != "" {
			who = fmt.Sprintf("%s (%s)", a.EmployeeName, a.EmployeeID)
		}
		t.add(string(a.Type), who, a.Details, a.Location)
	}
	p.table(t)
}

func joinIDs(ids []core.EmployeeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
