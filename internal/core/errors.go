package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoColumns is returned when an aggregation is asked to group by nothing.
	ErrNoColumns = errors.New("no key columns given")

	// ErrTooManyRows is returned when a dataset exceeds Options.MaxRows.
	ErrTooManyRows = errors.New("dataset exceeds row limit")
)

// MissingColumnError reports required columns absent from a dataset after
// normalization. It is fatal: every downstream aggregation depends on a fixed
// column set.
type MissingColumnError struct {
	Dataset string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	name := e.Dataset
	if name == "" {
		name = "dataset"
	}
	return fmt.Sprintf("%s: missing required column(s): %s", name, strings.Join(e.Columns, ", "))
}

// IsMissingColumn reports whether err is or wraps a MissingColumnError.
func IsMissingColumn(err error) bool {
	var mce *MissingColumnError
	return errors.As(err, &mce)
}

// EmptyDatasetWarning marks a dataset with zero data rows. Aggregation still
// proceeds and yields zero or empty results; the warning is reported, not raised.
type EmptyDatasetWarning struct {
	Dataset string `json:"dataset"`
}

func (w EmptyDatasetWarning) String() string {
	return fmt.Sprintf("%s has no data rows", w.Dataset)
}
