package core

import (
	"strings"
	"time"
)

// EmployeeID is the canonical string form of an employee code and the join
// key between the route map and the missing roster.
// Identical text means identical employee; no case folding is applied.
type EmployeeID string

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldIdentifier
	FieldDate
	FieldBool
)

// FieldSpec describes a single column of a dataset.
type FieldSpec struct {
	Name     string    // Canonical column name used everywhere after Conform
	Aliases  []string  // Alternate header spellings accepted on load
	Type     FieldType // Expected data type
	Required bool      // Column must exist in the header
	Leading  bool      // Column is identified by position 0, whatever its header text
}

// Schema describes one of the reconciled datasets.
type Schema struct {
	Key        string // Unique identifier: "route_map"
	Label      string // Display name: "Route Map"
	IDColumn   string // Employee identifier column
	NameColumn string // Employee name column
	FieldSpecs []FieldSpec
}

// Columns returns the canonical column names in schema order.
func (s Schema) Columns() []string {
	cols := make([]string, len(s.FieldSpecs))
	for i, spec := range s.FieldSpecs {
		cols[i] = spec.Name
	}
	return cols
}

// VisitRecord is one row of the route map.
type VisitRecord struct {
	Division     string     `json:"division"`
	Job          string     `json:"job"`
	EmployeeID   EmployeeID `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	VisitDate    time.Time  `json:"visitDate"` // Zero if the cell could not be parsed
	ShopCode     string     `json:"shopCode"`
	ShopName     string     `json:"shopName"`
	Area         string     `json:"area"`
	Governorate  string     `json:"governorate"`
	District     string     `json:"district"`
	Comment      string     `json:"comment,omitempty"`
	Checked      bool       `json:"checked"`
}

// MissingRecord is one row of the missing roster.
type MissingRecord struct {
	CompositeKey    string     `json:"compositeKey"` // Opaque, never used for matching
	Title           string     `json:"title"`
	EmployeeID      EmployeeID `json:"employeeId"`
	EmployeeName    string     `json:"employeeName"`
	GovernorateName string     `json:"governorateName"`
}

// GroupCount is the number of rows sharing one combination of group columns.
type GroupCount struct {
	Key   []string `json:"key"`
	Count int      `json:"count"`
}

// Label joins the key values for display.
func (g GroupCount) Label() string {
	return strings.Join(g.Key, " / ")
}

// AggregationResult is a sequence of group counts sorted by count descending.
// Ties keep the order in which groups first appeared in the source.
type AggregationResult []GroupCount

// Total returns the sum of all group counts.
func (a AggregationResult) Total() int {
	total := 0
	for _, g := range a {
		total += g.Count
	}
	return total
}

// Top returns at most n leading groups. n <= 0 returns all groups.
func (a AggregationResult) Top(n int) AggregationResult {
	if n <= 0 || n >= len(a) {
		return a
	}
	return a[:n]
}

// ReconciliationResult is the outcome of cross-referencing the two datasets.
type ReconciliationResult struct {
	Overlap            []EmployeeID    `json:"overlap"`
	MissingOnly        []EmployeeID    `json:"missingOnly"`
	MissingOnlyRecords []MissingRecord `json:"missingOnlyRecords"`

	// NoEntries is true when no roster employee lacks visits, so callers can
	// say so explicitly instead of rendering an empty table.
	NoEntries bool `json:"noEntries"`
}

// Partition splits the union of two identifier sets into three disjoint parts.
type Partition struct {
	Overlap     []EmployeeID `json:"overlap"`
	MissingOnly []EmployeeID `json:"missingOnly"`
	RouteOnly   []EmployeeID `json:"routeOnly"`
}
