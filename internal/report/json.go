package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/JonMunkholm/RouteAudit/internal/core"
)

// envelope wraps a report with optional run metadata for JSON output.
type envelope struct {
	RunID     string       `json:"runId,omitempty"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
	Report    *core.Report `json:"report"`
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r *core.Report, run RunInfo) error {
	env := envelope{RunID: run.ID, Report: r}
	if !run.CreatedAt.IsZero() {
		t := run.CreatedAt.UTC()
		env.CreatedAt = &t
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
