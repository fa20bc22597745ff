package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/logging"
	"github.com/JonMunkholm/RouteAudit/internal/report"
	"github.com/JonMunkholm/RouteAudit/internal/store"
	"github.com/JonMunkholm/RouteAudit/internal/web/templates"
)

// handleIndex serves the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.IndexPage(core.All()))
}

// handleRunsPage lists stored runs.
func (s *Server) handleRunsPage(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		respondError(w, r, store.ErrHistoryDisabled, 0)
		return
	}

	runs, err := s.runs.ListRuns(r.Context(), parseIntParam(r, "limit", store.DefaultListLimit))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	render(w, r, templates.RunsPage(runs))
}

// handleRunPage renders a stored report as HTML.
func (s *Server) handleRunPage(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	render(w, r, report.Page(run.Report, report.RunInfo{ID: run.ID.String(), CreatedAt: run.CreatedAt}))
}

func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}
