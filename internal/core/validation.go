package core

// validation.go binds a raw dataset to its schema before aggregation.
//
// Conform happens exactly once per dataset, at the start of the pipeline:
//  1. Header names are cleaned (whitespace, spreadsheet artifacts)
//  2. Alias headers are renamed to their canonical column name
//  3. The leading column, if the schema names one, takes its canonical name
//  4. Required columns are checked; all missing ones are reported together
//  5. Identifier cells are trimmed, keeping their exact textual form

import (
	"strings"

	"github.com/JonMunkholm/RouteAudit/internal/dataset"
)

// Conform returns a copy of ds whose header uses the schema's canonical
// column names. It fails with a *MissingColumnError listing every required
// column that could not be found.
func Conform(s Schema, ds dataset.Dataset) (dataset.Dataset, error) {
	header := make([]string, len(ds.Header))
	for i, h := range ds.Header {
		header[i] = dataset.CleanCell(h)
	}
	idx := dataset.MakeHeaderIndex(header)

	var missing []string
	for _, spec := range s.FieldSpecs {
		if spec.Leading {
			if len(header) > 0 && !s.knownHeader(header[0]) {
				header[0] = spec.Name
			}
			continue
		}

		pos, ok := resolveColumn(idx, spec)
		if !ok {
			if spec.Required {
				missing = append(missing, spec.Name)
			}
			continue
		}
		header[pos] = spec.Name
	}

	if len(missing) > 0 {
		return dataset.Dataset{}, &MissingColumnError{Dataset: datasetLabel(s, ds), Columns: missing}
	}

	return dataset.Normalize(dataset.New(ds.Name, header, ds.Rows), s.IDColumn), nil
}

// RequireColumns checks that every named column exists in ds.
func RequireColumns(ds dataset.Dataset, columns ...string) ([]int, error) {
	idx := ds.Index()
	pos := make([]int, len(columns))
	var missing []string
	for i, col := range columns {
		p, ok := idx.Lookup(col)
		if !ok {
			missing = append(missing, col)
			continue
		}
		pos[i] = p
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Dataset: ds.Name, Columns: missing}
	}
	return pos, nil
}

// resolveColumn finds a spec's column by canonical name, then by alias.
func resolveColumn(idx dataset.HeaderIndex, spec FieldSpec) (int, bool) {
	if pos, ok := idx.Lookup(spec.Name); ok {
		return pos, true
	}
	for _, alias := range spec.Aliases {
		if pos, ok := idx.Lookup(alias); ok {
			return pos, true
		}
	}
	return 0, false
}

// knownHeader reports whether h names a non-leading column of the schema.
func (s Schema) knownHeader(h string) bool {
	for _, spec := range s.FieldSpecs {
		if spec.Leading {
			continue
		}
		if strings.EqualFold(spec.Name, h) {
			return true
		}
		for _, alias := range spec.Aliases {
			if strings.EqualFold(alias, h) {
				return true
			}
		}
	}
	return false
}

func datasetLabel(s Schema, ds dataset.Dataset) string {
	if ds.Name != "" {
		return ds.Name
	}
	return s.Label
}
