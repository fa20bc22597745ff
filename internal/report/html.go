package report

//go:generate templ generate -path .

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/RouteAudit/internal/core"
)

// WriteHTML renders the full HTML page to w.
func WriteHTML(w io.Writer, r *core.Report, run RunInfo) error {
	return Page(r, run).Render(context.Background(), w)
}

func runLine(run RunInfo) string {
	return fmt.Sprintf("Run %s, %s", run.ID, run.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
}

func completedLine(c core.Compliance) string {
	return fmt.Sprintf("Completed visits: %d of %d (%d%%)", c.CompletedVisits, c.TotalVisits, c.Rate)
}

// alertClass keys row styling on the first word of the alert type.
func alertClass(t core.AlertType) string {
	return "alert-" + strings.SplitN(string(t), " ", 2)[0]
}

func alertEmployee(a core.Alert) string {
	if a.EmployeeID == "" {
		return a.EmployeeName
	}
	return a.EmployeeName + " (" + string(a.EmployeeID) + ")"
}
