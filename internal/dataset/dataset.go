// Package dataset holds the in-memory tabular form shared by the loader,
// the aggregation core and the reporters.
//
// Every cell is kept as a string. Nothing is type-inferred, so identifier
// columns such as "A-1168" or "00123" keep their exact textual form from
// load to reconciliation.
package dataset

import "strings"

// Dataset is a named table with a header row and data rows.
// Rows may be shorter than the header; missing cells read as "".
type Dataset struct {
	Name   string
	Header []string
	Rows   [][]string
}

// New builds a Dataset. The header and rows are used as given.
func New(name string, header []string, rows [][]string) Dataset {
	return Dataset{Name: name, Header: header, Rows: rows}
}

// Len returns the number of data rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// Empty reports whether the dataset has no data rows.
func (d Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// Index returns the header index for the dataset.
func (d Dataset) Index() HeaderIndex {
	return MakeHeaderIndex(d.Header)
}

// Column returns the position of a column, or -1 if the header has no such column.
func (d Dataset) Column(name string) int {
	if pos, ok := d.Index().Lookup(name); ok {
		return pos
	}
	return -1
}

// HeaderIndex maps column names (lowercase) to their position in a row.
// When a header repeats a name, the first occurrence wins.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are cleaned and lowercased for case-insensitive lookup.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, seen := idx[key]; seen {
			continue
		}
		idx[key] = i
	}
	return idx
}

// Lookup returns the position of name in the index.
func (idx HeaderIndex) Lookup(name string) (int, bool) {
	pos, ok := idx[strings.ToLower(strings.TrimSpace(name))]
	return pos, ok
}

// Cell safely retrieves a cell by position. Out-of-range positions read as "".
func Cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// IsEmptyRow reports whether every cell in the row is blank.
func IsEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
