package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/RouteAudit/internal/config"
	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/store"
)

const routeCSV = `Sub Div.,Job,Code,Name,DATE,Shop Code,Shop Name,Area,Governorate,District,Comment,Check
Retail,Supervisor,A-1168,Ahmed Adel,27-Oct-25,S-1,Metro,East,Alexandria,Sidi Gaber,,TRUE
Retail,Supervisor,A-1168,Ahmed Adel,27-Oct-25,S-2,Seoudi,East,Alexandria,Sidi Gaber,,FALSE
`

const rosterCSV = `&&&,TITLE,EMPLOYEE CODE,EMPLOYEE NAME,GOVERNORATE NAME
k1,Supervisor,A-1168,Ahmed Adel,Alexandria
k2,Manager,A-1001,Mohamed Saeed Khedr Ahmed,Sidi Bishr
k2,Manager,A-1001,Mohamed Saeed Khedr Ahmed,Sidi Bishr
`

// fakeRuns is an in-memory RunStore.
type fakeRuns struct {
	mu      sync.Mutex
	runs    map[uuid.UUID]*store.Run
	clients []store.Client
	saveErr error
}

func newFakeRuns() *fakeRuns {
	return &fakeRuns{runs: make(map[uuid.UUID]*store.Run)}
}

func (f *fakeRuns) SaveRun(ctx context.Context, r *core.Report) (*store.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.clients = append(f.clients, store.ClientFromContext(ctx))
	run := &store.Run{
		ID:               uuid.New(),
		CreatedAt:        time.Date(2025, 10, 27, 9, 30, 0, 0, time.UTC),
		RouteFile:        r.RouteName,
		RosterFile:       r.RosterName,
		TotalVisits:      r.Route.TotalVisits,
		MissingOnlyCount: len(r.Reconciliation.MissingOnly),
		Report:           r,
	}
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakeRuns) ListRuns(_ context.Context, limit int) ([]store.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []store.Run{}
	for _, r := range f.runs {
		listed := *r
		listed.Report = nil
		out = append(out, listed)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRuns) GetRun(_ context.Context, id uuid.UUID) (*store.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.runs[id]
	if !ok {
		return nil, store.ErrRunNotFound
	}
	return r, nil
}

func (f *fakeRuns) DeleteRun(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.runs[id]; !ok {
		return store.ErrRunNotFound
	}
	delete(f.runs, id)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, RequestTimeout: 10 * time.Second, ShutdownTimeout: time.Second},
		Upload:   config.UploadConfig{MaxFileSize: 1 << 20, MaxConcurrent: 2, MaxWaitTime: 50 * time.Millisecond},
		Security: config.SecurityConfig{EnableCSP: true},
		Report:   config.ReportConfig{TopSupervisors: 5},
		Logging:  config.LoggingConfig{Level: "info", Format: "text"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, runs RunStore) *Server {
	t.Helper()
	limiter := core.NewAnalysisLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime)
	s := NewServer(cfg, limiter, runs)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

type upload struct {
	field, filename, content string
}

func multipartRequest(t *testing.T, target string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e), rec.Body.String())
	return e
}

type analyzeEnvelope struct {
	RunID  string      `json:"runId"`
	Report core.Report `json:"report"`
}

func TestAnalyze_JSON(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := serve(s, multipartRequest(t, "/api/analyze",
		upload{"route", "route.csv", routeCSV},
		upload{"missing", "missing.csv", rosterCSV},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("X-Run-ID"))

	var env analyzeEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Empty(t, env.RunID)

	rep := env.Report
	assert.Equal(t, "route.csv", rep.RouteName)
	assert.Equal(t, 2, rep.Route.TotalVisits)
	assert.Equal(t, []core.EmployeeID{"A-1168"}, rep.Reconciliation.Overlap)
	assert.Equal(t, []core.EmployeeID{"A-1001"}, rep.Reconciliation.MissingOnly)
	require.Len(t, rep.Reconciliation.MissingOnlyRecords, 1)
	assert.Equal(t, "Mohamed Saeed Khedr Ahmed", rep.Reconciliation.MissingOnlyRecords[0].EmployeeName)
	assert.Equal(t, 50, rep.Compliance.Rate)
	assert.Len(t, rep.Alerts, 3)
}

func TestAnalyze_SavesRun(t *testing.T) {
	runs := newFakeRuns()
	s := newTestServer(t, testConfig(), runs)

	req := multipartRequest(t, "/api/analyze",
		upload{"route", "route.csv", routeCSV},
		upload{"missing", "missing.csv", rosterCSV},
	)
	req.Header.Set("User-Agent", "audit-test")
	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	runID := rec.Header().Get("X-Run-ID")
	require.NotEmpty(t, runID)

	var env analyzeEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, runID, env.RunID)

	require.Len(t, runs.clients, 1)
	assert.Equal(t, "http", runs.clients[0].Source)
	assert.Equal(t, "192.0.2.1", runs.clients[0].IP)
	assert.Equal(t, "audit-test", runs.clients[0].UserAgent)
}

func TestAnalyze_SaveFailureStillReturnsReport(t *testing.T) {
	runs := newFakeRuns()
	runs.saveErr = assert.AnError
	s := newTestServer(t, testConfig(), runs)

	rec := serve(s, multipartRequest(t, "/api/analyze",
		upload{"route", "route.csv", routeCSV},
		upload{"missing", "missing.csv", rosterCSV},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Run-ID"))
}

func TestAnalyze_TextFormat(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := serve(s, multipartRequest(t, "/api/analyze?format=text",
		upload{"route", "route.csv", routeCSV},
		upload{"missing", "missing.csv", rosterCSV},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="route-audit-route.md"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "CROSS-REFERENCE ANALYSIS")
	assert.Contains(t, rec.Body.String(), "Mohamed Saeed Khedr Ahmed")
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		files    []upload
		status   int
		wantCode string
	}{
		{
			name:     "missing roster file",
			target:   "/api/analyze",
			files:    []upload{{"route", "route.csv", routeCSV}},
			status:   http.StatusBadRequest,
			wantCode: "FILE004",
		},
		{
			name:   "unsupported extension",
			target: "/api/analyze",
			files: []upload{
				{"route", "route.pdf", routeCSV},
				{"missing", "missing.csv", rosterCSV},
			},
			status:   http.StatusUnsupportedMediaType,
			wantCode: "FILE006",
		},
		{
			name:   "missing required column",
			target: "/api/analyze",
			files: []upload{
				{"route", "route.csv", routeCSV},
				{"missing", "missing.csv", "&&&,EMPLOYEE CODE,EMPLOYEE NAME,GOVERNORATE NAME\nk,A-1,X,Cairo\n"},
			},
			status:   http.StatusUnprocessableEntity,
			wantCode: "VAL004",
		},
		{
			name:   "empty file",
			target: "/api/analyze",
			files: []upload{
				{"route", "route.csv", ""},
				{"missing", "missing.csv", rosterCSV},
			},
			status:   http.StatusBadRequest,
			wantCode: "FILE005",
		},
		{
			name:   "utf-16 roster",
			target: "/api/analyze",
			files: []upload{
				{"route", "route.csv", routeCSV},
				{"missing", "missing.csv", "\xFF\xFE&\x00&\x00&\x00"},
			},
			status:   http.StatusBadRequest,
			wantCode: "FILE003",
		},
		{
			name:   "non-positive top",
			target: "/api/analyze?top=0",
			files: []upload{
				{"route", "route.csv", routeCSV},
				{"missing", "missing.csv", rosterCSV},
			},
			status:   http.StatusBadRequest,
			wantCode: "VAL009",
		},
		{
			name:   "non-numeric top",
			target: "/api/analyze?top=many",
			files: []upload{
				{"route", "route.csv", routeCSV},
				{"missing", "missing.csv", rosterCSV},
			},
			status:   http.StatusBadRequest,
			wantCode: "VAL009",
		},
		{
			name:   "negative max_rows",
			target: "/api/analyze?max_rows=-1",
			files: []upload{
				{"route", "route.csv", routeCSV},
				{"missing", "missing.csv", rosterCSV},
			},
			status:   http.StatusBadRequest,
			wantCode: "VAL009",
		},
		{
			name:   "unknown format",
			target: "/api/analyze?format=pdf",
			files: []upload{
				{"route", "route.csv", routeCSV},
				{"missing", "missing.csv", rosterCSV},
			},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, testConfig(), nil)

			rec := serve(s, multipartRequest(t, tt.target, tt.files...))

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			}
		})
	}
}

func TestAnalyze_RowLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Report.MaxRows = 1
	s := newTestServer(t, cfg, nil)

	rec := serve(s, multipartRequest(t, "/api/analyze",
		upload{"route", "route.csv", routeCSV},
		upload{"missing", "missing.csv", rosterCSV},
	))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "VAL007", decodeError(t, rec).Code)
}

const threeSupervisorsCSV = `Sub Div.,Job,Code,Name,DATE,Shop Code,Shop Name,Area,Governorate,District,Comment,Check
Retail,Supervisor,A-1168,Ahmed Adel,27-Oct-25,S-1,Metro,East,Alexandria,Sidi Gaber,,TRUE
Retail,Supervisor,A-1168,Ahmed Adel,27-Oct-25,S-2,Seoudi,East,Alexandria,Sidi Gaber,,TRUE
Retail,Supervisor,A-1201,Sara Nabil,27-Oct-25,S-3,Carrefour,East,Cairo,Maadi,,TRUE
Retail,Supervisor,A-1310,Omar Fathy,27-Oct-25,S-4,Spinneys,East,Giza,Dokki,,FALSE
`

func TestAnalyze_RequestOptionsOverrideConfig(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		cfgMaxRows int
		status     int
		wantTop    int
		wantError  string
	}{
		{name: "config default", target: "/api/analyze", status: http.StatusOK, wantTop: 3},
		{name: "top narrows ranking", target: "/api/analyze?top=1", status: http.StatusOK, wantTop: 1},
		{name: "max_rows caps rows", target: "/api/analyze?max_rows=1", status: http.StatusRequestEntityTooLarge, wantError: "VAL007"},
		{name: "max_rows zero lifts config cap", target: "/api/analyze?max_rows=0", cfgMaxRows: 1, status: http.StatusOK, wantTop: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Report.MaxRows = tt.cfgMaxRows
			s := newTestServer(t, cfg, nil)

			rec := serve(s, multipartRequest(t, tt.target,
				upload{"route", "route.csv", threeSupervisorsCSV},
				upload{"missing", "missing.csv", rosterCSV},
			))

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Code)
				return
			}
			var env analyzeEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			require.Len(t, env.Report.Route.TopSupervisors, tt.wantTop)
			assert.Equal(t, []string{"A-1168", "Ahmed Adel"}, env.Report.Route.TopSupervisors[0].Key)
		})
	}
}

func TestAnalyze_OptionsFromFormFields(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range []upload{{"route", "route.csv", threeSupervisorsCSV}, {"missing", "missing.csv", rosterCSV}} {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("top", "2"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env analyzeEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Len(t, env.Report.Route.TopSupervisors, 2)
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxFileSize = 64
	s := newTestServer(t, cfg, nil)

	rec := serve(s, multipartRequest(t, "/api/analyze",
		upload{"route", "route.csv", routeCSV},
		upload{"missing", "missing.csv", rosterCSV},
	))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "FILE001", decodeError(t, rec).Code)
}

func TestAnalyze_Busy(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxConcurrent = 1
	s := newTestServer(t, cfg, nil)

	require.True(t, s.limiter.TryAcquire())
	defer s.limiter.Release()

	rec := serve(s, multipartRequest(t, "/api/analyze",
		upload{"route", "route.csv", routeCSV},
		upload{"missing", "missing.csv", rosterCSV},
	))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "UPL002", decodeError(t, rec).Code)
}

func TestInspect(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := serve(s, multipartRequest(t, "/api/inspect/route_map", upload{"file", "route.csv", routeCSV}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got core.Inspection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, core.RouteMapKey, got.Schema)
	assert.Equal(t, 2, got.Rows)
	assert.Equal(t, 1, got.UniqueEmployees)

	rec = serve(s, multipartRequest(t, "/api/inspect/payroll", upload{"file", "route.csv", routeCSV}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VAL008", decodeError(t, rec).Code)
}

func TestListSchemas(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/schemas", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []SchemaInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, core.MissingRosterKey, got[0].Key)
	assert.Contains(t, got[0].Required, core.ColEmployeeCode)
	assert.Equal(t, core.RouteMapKey, got[1].Key)
}

func TestRuns_HistoryDisabled(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	for _, path := range []string{"/api/runs", "/api/runs/" + uuid.NewString()} {
		rec := serve(s, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "RUN002", decodeError(t, rec).Code, path)
	}
}

func TestRuns_Lifecycle(t *testing.T) {
	runs := newFakeRuns()
	s := newTestServer(t, testConfig(), runs)

	rec := serve(s, multipartRequest(t, "/api/analyze",
		upload{"route", "route.csv", routeCSV},
		upload{"missing", "missing.csv", rosterCSV},
	))
	require.Equal(t, http.StatusOK, rec.Code)
	runID := rec.Header().Get("X-Run-ID")

	// List
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []store.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, runID, listed[0].ID.String())
	assert.Nil(t, listed[0].Report)

	// Get as record
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/runs/"+runID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got store.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Report)
	assert.Equal(t, 2, got.Report.Route.TotalVisits)

	// Get rendered
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/runs/"+runID+"?format=text", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "VISIT COMPLIANCE")

	// HTML page
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/runs/"+runID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Run "+runID)

	// History page
	rec = serve(s, httptest.NewRequest(http.MethodGet, "/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/runs/`+runID+`">2025-10-27 09:30</a>`)
	assert.Contains(t, body, "<td>route.csv</td>")

	// Delete
	rec = serve(s, httptest.NewRequest(http.MethodDelete, "/api/runs/"+runID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/runs/"+runID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "RUN001", decodeError(t, rec).Code)
}

func TestRuns_InvalidID(t *testing.T) {
	s := newTestServer(t, testConfig(), newFakeRuns())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/runs/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "RUN003", decodeError(t, rec).Code)
}

func TestRunPage_ErrorRendersHTML(t *testing.T) {
	s := newTestServer(t, testConfig(), newFakeRuns())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/runs/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Analysis run not found")
	assert.Contains(t, rec.Body.String(), "RUN001")
}

func TestRunsPage_Empty(t *testing.T) {
	s := newTestServer(t, testConfig(), newFakeRuns())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/runs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No stored runs.")
	assert.NotContains(t, rec.Body.String(), "<table>")
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/api/analyze?format=html"`)
	assert.Contains(t, body, `name="missing"`)
	assert.Contains(t, body, `name="top"`)
	assert.Contains(t, body, core.ColEmployeeCode)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Status  string             `json:"status"`
		History bool               `json:"history"`
		Limiter core.LimiterStatus `json:"limiter"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.False(t, got.History)
	assert.Equal(t, 2, got.Limiter.Available)
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, contentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2, AnalyzeLimit: 1}
	s := newTestServer(t, cfg, nil)

	for i := 0; i < 2; i++ {
		rec := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Accept", "application/json")
	rec := serve(s, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE001", decodeError(t, rec).Code)
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "route-audit-Route Map W44.xlsx", downloadName("Route Map W44.xlsx", "xlsx"))
	assert.Equal(t, "route-audit-a_b.md", downloadName(`a"b.csv`, "text"))
	assert.Equal(t, "route-audit.json", downloadName("", "json"))
}
