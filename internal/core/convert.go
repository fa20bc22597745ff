package core

// convert.go provides type conversion for route map cells.
//
// These functions handle the messy reality of spreadsheet exports:
//   - Multiple date formats (US, EU, ISO, etc.)
//   - Excel serial dates, which workbooks return for General-formatted cells
//   - Various boolean representations (TRUE/False, yes/no, 1/0)
//
// Identifier cells are never converted here; they stay strings.

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// Serial range accepted as an Excel date (1954-10-03 to 2119-01-08), so
// plain numbers such as years are not read as dates.
const (
	minExcelSerial = 20000
	maxExcelSerial = 80000
)

// Date layouts split by year format for proper 2-digit year handling
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06", "2-Jan-06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006", "2-Jan-2006",
		"2006-01-02 15:04:05", "2006-01-02T15:04:05Z07:00",
		"20060102",
	}
)

// ParseDate parses a visit date cell.
// Supports multiple date formats and handles 2-digit years with pivot.
// Returns false for empty or unrecognized input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Try 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, true
		}
	}

	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= minExcelSerial && serial <= maxExcelSerial {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseBool converts a check cell to a bool.
// Accepts various representations: true/false, yes/no, t/f, y/n, 1/0.
// The second result is false when the cell is empty or unrecognized.
func ParseBool(s string) (bool, bool) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch s {
	case "true", "t", "yes", "y", "1":
		return true, true
	case "false", "f", "no", "n", "0":
		return false, true
	default:
		return false, false
	}
}
