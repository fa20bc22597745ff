package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/RouteAudit/internal/core"
)

// DefaultListLimit bounds ListRuns when the caller passes no limit.
const DefaultListLimit = 50

// Run is a stored analysis. Report is nil in listings.
type Run struct {
	ID               uuid.UUID    `json:"id"`
	CreatedAt        time.Time    `json:"createdAt"`
	Source           string       `json:"source"`
	ClientIP         string       `json:"clientIp,omitempty"`
	UserAgent        string       `json:"userAgent,omitempty"`
	RouteFile        string       `json:"routeFile"`
	RosterFile       string       `json:"rosterFile"`
	TotalVisits      int          `json:"totalVisits"`
	RosterEntries    int          `json:"rosterEntries"`
	OverlapCount     int          `json:"overlapCount"`
	MissingOnlyCount int          `json:"missingOnlyCount"`
	AlertCount       int          `json:"alertCount"`
	ComplianceRate   int          `json:"complianceRate"`
	Report           *core.Report `json:"report,omitempty"`
}

const runColumns = `id, created_at, source, client_ip, user_agent, route_file, roster_file,
	total_visits, roster_entries, overlap_count, missing_only_count, alert_count, compliance_rate`

// SaveRun stores a report. Client details are taken from ctx.
func (s *Store) SaveRun(ctx context.Context, r *core.Report) (*Run, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	client := ClientFromContext(ctx)
	run := summarize(r)
	run.ID = uuid.New()
	run.Source = client.Source
	run.ClientIP = client.IP
	run.UserAgent = client.UserAgent
	run.Report = r

	var createdAt pgtype.Timestamptz
	err = s.q.QueryRow(ctx, `
		INSERT INTO analysis_runs (id, source, client_ip, user_agent, route_file, roster_file,
			total_visits, roster_entries, overlap_count, missing_only_count, alert_count,
			compliance_rate, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`,
		pgtype.UUID{Bytes: run.ID, Valid: true},
		run.Source,
		optionalText(run.ClientIP),
		optionalText(run.UserAgent),
		run.RouteFile,
		run.RosterFile,
		run.TotalVisits,
		run.RosterEntries,
		run.OverlapCount,
		run.MissingOnlyCount,
		run.AlertCount,
		run.ComplianceRate,
		body,
	).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}

	run.CreatedAt = createdAt.Time
	return &run, nil
}

// ListRuns returns the most recent runs first, without their reports.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.q.Query(ctx,
		`SELECT `+runColumns+` FROM analysis_runs ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run including its report.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+runColumns+`, report FROM analysis_runs WHERE id = $1`,
		pgtype.UUID{Bytes: id, Valid: true})

	var body []byte
	run, err := scanRun(row, &body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	var report core.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("decode run %s report: %w", id, err)
	}
	run.Report = &report
	return run, nil
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(ctx context.Context, id uuid.UUID) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM analysis_runs WHERE id = $1`, pgtype.UUID{Bytes: id, Valid: true})
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// ParseRunID parses a run id from user input.
func ParseRunID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidRunID, s)
	}
	return id, nil
}

// summarize copies the headline counts of a report into a Run.
func summarize(r *core.Report) Run {
	return Run{
		RouteFile:        r.RouteName,
		RosterFile:       r.RosterName,
		TotalVisits:      r.Route.TotalVisits,
		RosterEntries:    r.Roster.TotalEntries,
		OverlapCount:     len(r.Reconciliation.Overlap),
		MissingOnlyCount: len(r.Reconciliation.MissingOnly),
		AlertCount:       len(r.Alerts),
		ComplianceRate:   r.Compliance.Rate,
	}
}

func scanRun(row pgx.Row, extra ...any) (*Run, error) {
	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
		clientIP  pgtype.Text
		userAgent pgtype.Text
		run       Run
	)

	dest := []any{
		&id, &createdAt, &run.Source, &clientIP, &userAgent, &run.RouteFile, &run.RosterFile,
		&run.TotalVisits, &run.RosterEntries, &run.OverlapCount, &run.MissingOnlyCount,
		&run.AlertCount, &run.ComplianceRate,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	run.ID = uuid.UUID(id.Bytes)
	run.CreatedAt = createdAt.Time
	if clientIP.Valid {
		run.ClientIP = clientIP.String
	}
	if userAgent.Valid {
		run.UserAgent = userAgent.String
	}
	return &run, nil
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
