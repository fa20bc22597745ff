package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and request id, then
// returned to the client as a coded user message from core.MapError. JSON
// clients get an ErrorResponse; browsers get an HTML error alert.

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/loader"
	"github.com/JonMunkholm/RouteAudit/internal/report"
	"github.com/JonMunkholm/RouteAudit/internal/store"
	"github.com/JonMunkholm/RouteAudit/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the matching user message.
// A zero statusCode derives the status from the error.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	if statusCode == 0 {
		statusCode = statusFor(err)
	}
	ue := core.NewUserError(err)
	userMsg := ue.User

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", ue.Technical.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
	} else {
		respondErrorHTML(w, r, userMsg, statusCode)
	}
}

// writeError responds with a plain message for failures that have no
// underlying error value, such as middleware rejections.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondError(w, r, errors.New(message), status)
}

// statusFor maps known error kinds to HTTP status codes.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case core.IsMissingColumn(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrTooManyRows),
		errors.Is(err, loader.ErrFileTooLarge),
		errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, loader.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, loader.ErrEmptyFile),
		errors.Is(err, loader.ErrEncoding),
		errors.Is(err, report.ErrUnknownFormat),
		errors.Is(err, store.ErrInvalidRunID),
		errors.Is(err, errNoFile),
		errors.Is(err, errUnknownDataset),
		errors.Is(err, errInvalidParam):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTooManyAnalyses):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrRunNotFound),
		errors.Is(err, store.ErrHistoryDisabled):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML renders the error alert page.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
		slog.Error("render error page", "error", err)
	}
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}

	// API routes default to JSON unless a browser explicitly asks for HTML
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return !strings.Contains(r.Header.Get("Accept"), "text/html")
	}

	return false
}
