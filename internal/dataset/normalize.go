package dataset

// normalize.go cleans a freshly loaded dataset before any column is
// referenced by name.
//
// Spreadsheet exports routinely carry header artifacts:
//   - Leading/trailing whitespace ("DATE ", "Comment ")
//   - Excel formula prefixes (="Code")
//   - Surrounding quotes
//
// Header names are cleaned in full. Data cells are left untouched except
// for the identifier columns named by the caller, which are trimmed so that
// " A-1168" and "A-1168" denote the same employee. No other rewriting of
// identifiers happens: case, prefixes and leading zeros are preserved.

import "strings"

// Normalize returns a copy of ds with every header name cleaned and the
// cells of the given identifier columns trimmed of surrounding whitespace.
// The input dataset is not modified.
func Normalize(ds Dataset, idColumns ...string) Dataset {
	header := make([]string, len(ds.Header))
	for i, h := range ds.Header {
		header[i] = CleanCell(h)
	}

	idx := MakeHeaderIndex(header)
	var idPos []int
	for _, col := range idColumns {
		if pos, ok := idx.Lookup(col); ok {
			idPos = append(idPos, pos)
		}
	}

	rows := make([][]string, len(ds.Rows))
	for i, row := range ds.Rows {
		cp := make([]string, len(row))
		copy(cp, row)
		for _, pos := range idPos {
			if pos < len(cp) {
				cp[pos] = CoerceIdentifier(cp[pos])
			}
		}
		rows[i] = cp
	}

	return Dataset{Name: ds.Name, Header: header, Rows: rows}
}

// CoerceIdentifier returns the canonical string form of an identifier cell.
// Only surrounding whitespace is removed.
func CoerceIdentifier(s string) string {
	return strings.TrimSpace(s)
}

// CleanCell removes common spreadsheet artifacts from a header value:
//   - Trims whitespace
//   - Removes Excel formula prefix (="...")
//   - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}
