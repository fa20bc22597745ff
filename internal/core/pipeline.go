package core

import (
	"fmt"

	"github.com/JonMunkholm/RouteAudit/internal/dataset"
)

// DefaultTopSupervisors is how many supervisors the route statistics rank.
const DefaultTopSupervisors = 5

// Options tunes a pipeline run.
type Options struct {
	// TopSupervisors limits the supervisor ranking; <= 0 keeps all.
	TopSupervisors int
	// MaxRows caps rows per dataset; 0 means unlimited.
	MaxRows int
}

// DefaultOptions returns the options used when the caller has no preference.
func DefaultOptions() Options {
	return Options{TopSupervisors: DefaultTopSupervisors}
}

// RouteStats describes the route map on its own.
type RouteStats struct {
	TotalVisits         int               `json:"totalVisits"`
	UniqueSupervisors   int               `json:"uniqueSupervisors"`
	UniqueShops         int               `json:"uniqueShops"`
	TopSupervisors      AggregationResult `json:"topSupervisors"`
	VisitsByGovernorate AggregationResult `json:"visitsByGovernorate"`
	VisitsByJob         AggregationResult `json:"visitsByJob"`
}

// RosterStats describes the missing roster on its own.
type RosterStats struct {
	TotalEntries    int               `json:"totalEntries"`
	UniqueEmployees int               `json:"uniqueEmployees"`
	ByTitle         AggregationResult `json:"byTitle"`
	ByGovernorate   AggregationResult `json:"byGovernorate"`
}

// Report is the structured outcome of one pipeline run.
type Report struct {
	RouteName      string                `json:"routeName"`
	RosterName     string                `json:"rosterName"`
	Route          RouteStats            `json:"route"`
	Roster         RosterStats           `json:"roster"`
	Reconciliation ReconciliationResult  `json:"reconciliation"`
	Compliance     Compliance            `json:"compliance"`
	Alerts         []Alert               `json:"alerts"`
	Warnings       []EmptyDatasetWarning `json:"warnings,omitempty"`
}

// Analyze runs the whole pipeline over a route map and a missing roster.
// Schema problems in either dataset are reported before any aggregation.
func Analyze(route, roster dataset.Dataset, opts Options) (*Report, error) {
	routeDS, err := Conform(RouteMapSchema, route)
	if err != nil {
		return nil, err
	}
	rosterDS, err := Conform(MissingRosterSchema, roster)
	if err != nil {
		return nil, err
	}

	if err := checkRowLimit(routeDS, opts.MaxRows); err != nil {
		return nil, err
	}
	if err := checkRowLimit(rosterDS, opts.MaxRows); err != nil {
		return nil, err
	}

	report := &Report{
		RouteName:  datasetLabel(RouteMapSchema, routeDS),
		RosterName: datasetLabel(MissingRosterSchema, rosterDS),
	}
	if routeDS.Empty() {
		report.Warnings = append(report.Warnings, EmptyDatasetWarning{Dataset: report.RouteName})
	}
	if rosterDS.Empty() {
		report.Warnings = append(report.Warnings, EmptyDatasetWarning{Dataset: report.RosterName})
	}

	if report.Route, err = AnalyzeRoute(routeDS, opts); err != nil {
		return nil, fmt.Errorf("route statistics: %w", err)
	}
	if report.Roster, err = AnalyzeRoster(rosterDS); err != nil {
		return nil, fmt.Errorf("roster statistics: %w", err)
	}

	routeIDs, err := DistinctIdentifiers(routeDS, ColCode, ColName)
	if err != nil {
		return nil, fmt.Errorf("route identifiers: %w", err)
	}
	missingIDs, err := DistinctIdentifiers(rosterDS, ColEmployeeCode, ColEmployeeName)
	if err != nil {
		return nil, fmt.Errorf("roster identifiers: %w", err)
	}

	visits := VisitsFrom(routeDS)
	report.Reconciliation = Reconcile(routeIDs, missingIDs, RosterFrom(rosterDS))
	report.Compliance = ComplianceOf(visits)
	report.Alerts = BuildAlerts(visits, report.Reconciliation)

	return report, nil
}

// AnalyzeRoute computes route map statistics over a conformed route map.
func AnalyzeRoute(ds dataset.Dataset, opts Options) (RouteStats, error) {
	var (
		s   RouteStats
		err error
	)
	s.TotalVisits = CountRows(ds)

	if s.UniqueSupervisors, err = CountDistinct(ds, ColCode, ColName); err != nil {
		return RouteStats{}, err
	}
	if s.UniqueShops, err = CountDistinct(ds, ColShopCode, ColShopName); err != nil {
		return RouteStats{}, err
	}

	bySupervisor, err := GroupCounts(ds, ColCode, ColName)
	if err != nil {
		return RouteStats{}, err
	}
	s.TopSupervisors = bySupervisor.Top(opts.TopSupervisors)

	if s.VisitsByGovernorate, err = GroupCounts(ds, ColGovernorate); err != nil {
		return RouteStats{}, err
	}
	if s.VisitsByJob, err = GroupCounts(ds, ColJob); err != nil {
		return RouteStats{}, err
	}
	return s, nil
}

// AnalyzeRoster computes missing roster statistics over a conformed roster.
func AnalyzeRoster(ds dataset.Dataset) (RosterStats, error) {
	var (
		s   RosterStats
		err error
	)
	s.TotalEntries = CountRows(ds)

	if s.UniqueEmployees, err = CountDistinct(ds, ColEmployeeCode, ColEmployeeName); err != nil {
		return RosterStats{}, err
	}
	if s.ByTitle, err = GroupCounts(ds, ColTitle); err != nil {
		return RosterStats{}, err
	}
	if s.ByGovernorate, err = GroupCounts(ds, ColGovernorateName); err != nil {
		return RosterStats{}, err
	}
	return s, nil
}

// Inspection is a quick look at a single dataset against its schema.
type Inspection struct {
	Schema          string   `json:"schema"`
	Dataset         string   `json:"dataset"`
	Rows            int      `json:"rows"`
	UniqueEmployees int      `json:"uniqueEmployees"`
	Columns         []string `json:"columns"`
}

// Inspect conforms ds to s and reports its size and identifier count.
func Inspect(s Schema, ds dataset.Dataset) (*Inspection, error) {
	conformed, err := Conform(s, ds)
	if err != nil {
		return nil, err
	}
	ids, err := DistinctIdentifiers(conformed, s.IDColumn, s.NameColumn)
	if err != nil {
		return nil, err
	}
	return &Inspection{
		Schema:          s.Key,
		Dataset:         datasetLabel(s, conformed),
		Rows:            CountRows(conformed),
		UniqueEmployees: len(ids),
		Columns:         conformed.Header,
	}, nil
}

func checkRowLimit(ds dataset.Dataset, max int) error {
	if max > 0 && ds.Len() > max {
		return fmt.Errorf("%w: %s has %d rows (limit %d)", ErrTooManyRows, ds.Name, ds.Len(), max)
	}
	return nil
}
