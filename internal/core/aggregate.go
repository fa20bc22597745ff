package core

// aggregate.go computes grouped and distinct counts over a dataset.
//
// None of these functions modify or reorder the source rows. Every result
// is freshly allocated, so calling the same aggregation twice on the same
// dataset yields identical output in identical order.

import (
	"sort"
	"strconv"
	"strings"

	"github.com/JonMunkholm/RouteAudit/internal/dataset"
)


// CountRows returns the total number of rows, without deduplication.
func CountRows(ds dataset.Dataset) int {
	return ds.Len()
}

// CountDistinct returns the number of distinct combinations of the given
// columns, using exact value equality.
func CountDistinct(ds dataset.Dataset, columns ...string) (int, error) {
	values, err := DistinctValues(ds, columns...)
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

// DistinctValues returns the distinct combinations of the given columns in
// the order they first appear.
func DistinctValues(ds dataset.Dataset, columns ...string) ([][]string, error) {
	pos, err := keyPositions(ds, columns)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(ds.Rows))
	var out [][]string
	for _, row := range ds.Rows {
		key := tuple(row, pos)
		k := tupleKey(key)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

// GroupCounts counts rows per distinct combination of the given columns.
// Groups are sorted by count descending; ties keep first-appearance order.
func GroupCounts(ds dataset.Dataset, columns ...string) (AggregationResult, error) {
	pos, err := keyPositions(ds, columns)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	out := AggregationResult{}
	for _, row := range ds.Rows {
		key := tuple(row, pos)
		k := tupleKey(key)
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, GroupCount{Key: key, Count: 1})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out, nil
}

// DistinctIdentifiers returns the employee identifiers of ds, taken from the
// distinct (id, name) pairs and reduced to unique ids in first-appearance
// order. Blank identifiers are not employees and are left out.
func DistinctIdentifiers(ds dataset.Dataset, idColumn, nameColumn string) ([]EmployeeID, error) {
	pairs, err := DistinctValues(ds, idColumn, nameColumn)
	if err != nil {
		return nil, err
	}

	seen := make(map[EmployeeID]struct{}, len(pairs))
	ids := make([]EmployeeID, 0, len(pairs))
	for _, p := range pairs {
		id := EmployeeID(dataset.CoerceIdentifier(p[0]))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func keyPositions(ds dataset.Dataset, columns []string) ([]int, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	return RequireColumns(ds, columns...)
}

func tuple(row []string, pos []int) []string {
	key := make([]string, len(pos))
	for i, p := range pos {
		key[i] = dataset.Cell(row, p)
	}
	return key
}

// tupleKey encodes values as a map key. Each value carries its length, so
// no cell content can make two different tuples collide.
func tupleKey(values []string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}
