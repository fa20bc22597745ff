package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/dataset"
	"github.com/JonMunkholm/RouteAudit/internal/loader"
	"github.com/JonMunkholm/RouteAudit/internal/logging"
	"github.com/JonMunkholm/RouteAudit/internal/report"
	"github.com/JonMunkholm/RouteAudit/internal/store"
)

// Multipart field names for the analysis upload.
const (
	fieldRoute       = "route"
	fieldMissing     = "missing"
	fieldRouteSheet  = "route_sheet"
	fieldRosterSheet = "missing_sheet"
	fieldTop         = "top"
	fieldMaxRows     = "max_rows"
)

// maxMemory is how much of a multipart form is buffered in memory before
// spilling to temporary files.
const maxMemory = 32 << 20

var (
	errNoFile         = errors.New("no file provided")
	errUnknownDataset = errors.New("unknown dataset")
	errInvalidParam   = errors.New("invalid parameter")
)

// handleHealth reports liveness, history availability and limiter load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"history": s.runs != nil,
		"limiter": s.limiter.Status(),
	})
}

// SchemaInfo describes a registered dataset schema for API clients.
type SchemaInfo struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Columns  []string `json:"columns"`
	Required []string `json:"required"`
}

// handleListSchemas returns the expected columns of both datasets.
func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas := core.All()
	out := make([]SchemaInfo, 0, len(schemas))
	for _, sc := range schemas {
		info := SchemaInfo{Key: sc.Key, Label: sc.Label, Columns: sc.Columns(), Required: []string{}}
		for _, spec := range sc.FieldSpecs {
			if spec.Required {
				info.Required = append(info.Required, spec.Name)
			}
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAnalyze runs the audit over an uploaded route map and missing roster.
// The report is rendered in the format named by ?format= (json by default)
// and stored in run history when a database is configured.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	format, err := report.ParseFormat(queryDefault(r, "format", string(report.FormatJSON)))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.limiter.Release()

	// Two files per request
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		respondError(w, r, fmt.Errorf("parse upload: %w", err), statusOr(err, http.StatusBadRequest))
		return
	}
	defer r.MultipartForm.RemoveAll()

	route, err := s.formDataset(r, fieldRoute, fieldRouteSheet)
	if err != nil {
		respondError(w, r, err, statusOr(err, http.StatusBadRequest))
		return
	}
	roster, err := s.formDataset(r, fieldMissing, fieldRosterSheet)
	if err != nil {
		respondError(w, r, err, statusOr(err, http.StatusBadRequest))
		return
	}

	opts, err := s.analyzeOptions(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	logger := logging.WithFields(r.Context(), "route_file", route.Name, "roster_file", roster.Name)

	rep, err := core.Analyze(route, roster, opts)
	if err != nil {
		respondError(w, r, err, statusOr(err, http.StatusUnprocessableEntity))
		return
	}
	for _, warn := range rep.Warnings {
		logger.Warn("empty dataset", "dataset", warn.Dataset)
	}

	var run report.RunInfo
	if s.runs != nil && r.FormValue("save") != "false" {
		saved, err := s.runs.SaveRun(WithRequestMetadata(r.Context(), r), rep)
		if err != nil {
			// The analysis succeeded; losing its history entry is not fatal.
			logger.Error("save run failed", "error", err)
		} else {
			run = report.RunInfo{ID: saved.ID.String(), CreatedAt: saved.CreatedAt}
			w.Header().Set("X-Run-ID", run.ID)
		}
	}

	logger.Info("analysis complete",
		"rows", rep.Route.TotalVisits+rep.Roster.TotalEntries,
		"overlap", len(rep.Reconciliation.Overlap),
		"missing_only", len(rep.Reconciliation.MissingOnly),
		"alerts", len(rep.Alerts),
		"run_id", run.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	s.writeReport(w, r, rep, format, run)
}

// handleInspect checks a single uploaded file against one dataset schema.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	schema, ok := core.Get(kind)
	if !ok {
		respondError(w, r, fmt.Errorf("%w: %q", errUnknownDataset, kind), http.StatusBadRequest)
		return
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.limiter.Release()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		respondError(w, r, fmt.Errorf("parse upload: %w", err), statusOr(err, http.StatusBadRequest))
		return
	}
	defer r.MultipartForm.RemoveAll()

	ds, err := s.formDataset(r, "file", "sheet")
	if err != nil {
		respondError(w, r, err, statusOr(err, http.StatusBadRequest))
		return
	}

	inspection, err := core.Inspect(schema, ds)
	if err != nil {
		respondError(w, r, err, statusOr(err, http.StatusUnprocessableEntity))
		return
	}
	writeJSON(w, http.StatusOK, inspection)
}

// handleListRuns returns recent stored runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		respondError(w, r, store.ErrHistoryDisabled, 0)
		return
	}

	runs, err := s.runs.ListRuns(r.Context(), parseIntParam(r, "limit", store.DefaultListLimit))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// handleGetRun returns one stored run. Without ?format= the run record is
// returned as JSON; with it, the stored report is rendered in that format.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	if f := r.URL.Query().Get("format"); f != "" {
		format, err := report.ParseFormat(f)
		if err != nil {
			respondError(w, r, err, http.StatusBadRequest)
			return
		}
		s.writeReport(w, r, run.Report, format, report.RunInfo{ID: run.ID.String(), CreatedAt: run.CreatedAt})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleDeleteRun removes a stored run.
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		respondError(w, r, store.ErrHistoryDisabled, 0)
		return
	}

	id, err := store.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	if err := s.runs.DeleteRun(r.Context(), id); err != nil {
		respondError(w, r, err, 0)
		return
	}

	logging.FromContext(r.Context()).Info("run deleted", "run_id", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// loadRun resolves the {runID} URL parameter, writing the error response
// itself when the run cannot be loaded.
func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (*store.Run, bool) {
	if s.runs == nil {
		respondError(w, r, store.ErrHistoryDisabled, 0)
		return nil, false
	}

	id, err := store.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		respondError(w, r, err, 0)
		return nil, false
	}
	run, err := s.runs.GetRun(r.Context(), id)
	if err != nil {
		respondError(w, r, err, 0)
		return nil, false
	}
	return run, true
}

// formDataset loads the uploaded file in field, reading the worksheet named
// by sheetField when the upload is a workbook.
func (s *Server) formDataset(r *http.Request, field, sheetField string) (dataset.Dataset, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return dataset.Dataset{}, fmt.Errorf("%w: %s", errNoFile, field)
		}
		return dataset.Dataset{}, fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	return loadUpload(file, header, loader.Options{
		Sheet:    r.FormValue(sheetField),
		MaxBytes: s.cfg.Upload.MaxFileSize,
	})
}

func loadUpload(file multipart.File, header *multipart.FileHeader, opts loader.Options) (dataset.Dataset, error) {
	format, err := loader.FormatOf(header.Filename)
	if err != nil {
		return dataset.Dataset{}, err
	}
	return loader.LoadReader(header.Filename, file, format, opts)
}

// writeReport renders rep in format. Binary and text renderings are sent
// as attachments named after the route file.
func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, rep *core.Report, format report.Format, run report.RunInfo) {
	w.Header().Set("Content-Type", format.ContentType())
	if format == report.FormatXLSX || format == report.FormatText {
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", downloadName(rep.RouteName, format)))
	}

	if err := report.Write(w, rep, format, run); err != nil {
		// Headers are already sent; log only.
		logging.FromContext(r.Context()).Error("write report", "format", format, "error", err)
	}
}

// analyzeOptions starts from the configured report defaults and applies the
// top and max_rows form values when present.
func (s *Server) analyzeOptions(r *http.Request) (core.Options, error) {
	opts := core.Options{
		TopSupervisors: s.cfg.Report.TopSupervisors,
		MaxRows:        s.cfg.Report.MaxRows,
	}
	if v := r.FormValue(fieldTop); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("%w: top must be a positive integer, got %q", errInvalidParam, v)
		}
		opts.TopSupervisors = n
	}
	if v := r.FormValue(fieldMaxRows); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("%w: max_rows must be a non-negative integer, got %q", errInvalidParam, v)
		}
		opts.MaxRows = n
	}
	return opts, nil
}

// downloadName derives "route-audit-<route file stem>.<ext>".
func downloadName(routeName string, format report.Format) string {
	stem := routeName
	if i := strings.LastIndex(stem, "."); i > 0 {
		stem = stem[:i]
	}
	stem = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, stem)
	if stem == "" {
		return "route-audit." + format.Extension()
	}
	return "route-audit-" + stem + "." + format.Extension()
}

// statusOr returns the status derived from err, or fallback when err has no
// specific mapping.
func statusOr(err error, fallback int) int {
	if status := statusFor(err); status != http.StatusInternalServerError {
		return status
	}
	return fallback
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

func queryDefault(r *http.Request, name, defaultVal string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultVal
}
