// Package report renders a core.Report for people and machines.
//
// Renderings are pure functions of the report: the same report always
// produces the same bytes. Run metadata (id, timestamp) is passed in
// separately by callers that have it.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/RouteAudit/internal/core"
)

// Format names an output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// ErrUnknownFormat is returned for a format name Write does not support.
var ErrUnknownFormat = errors.New("unknown report format")

// RunInfo identifies a stored analysis run. The zero value means the report
// was not persisted.
type RunInfo struct {
	ID        string
	CreatedAt time.Time
}

// ParseFormat accepts a format name case-insensitively. "md" and
// "markdown" are synonyms for text, whose tables are markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "md", "markdown":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of a rendering.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Extension returns the file extension for a rendering, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return "md"
	default:
		return string(f)
	}
}

// Write renders r in the given format.
func Write(w io.Writer, r *core.Report, format Format, run RunInfo) error {
	switch format {
	case FormatText:
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, r, run)
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatHTML:
		return WriteHTML(w, r, run)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
