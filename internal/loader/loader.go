// Package loader reads route maps and missing rosters from CSV files and
// Excel workbooks into untyped datasets.
//
// The loader never interprets cell values. Every cell stays text, which
// keeps identifiers such as "00123" or "A-1168" exactly as exported.
// Fully blank rows are dropped; the first non-blank row is the header.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/RouteAudit/internal/dataset"
)

// Format identifies a supported input encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyFile is returned when a source has no header row.
	ErrEmptyFile = errors.New("empty file: no header row")
)

// Options tunes how a source is read.
type Options struct {
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
	// MaxBytes caps the raw source size; 0 means unlimited.
	MaxBytes int64
}

// FormatOf picks a format from a file name's extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Load reads the file at path. The dataset is named after the file.
func Load(path string, opts Options) (dataset.Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return dataset.Dataset{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return LoadReader(filepath.Base(path), f, format, opts)
}

// LoadReader reads a dataset of the given format from r.
func LoadReader(name string, r io.Reader, format Format, opts Options) (dataset.Dataset, error) {
	var (
		ds  dataset.Dataset
		err error
	)
	switch format {
	case FormatCSV:
		ds, err = readCSV(name, r, opts.MaxBytes)
	case FormatXLSX:
		ds, err = readXLSX(name, r, opts)
	default:
		return dataset.Dataset{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("%s: %w", name, err)
	}

	slog.Debug("dataset loaded",
		"name", name,
		"format", string(format),
		"columns", len(ds.Header),
		"rows", ds.Len(),
	)
	return ds, nil
}

func readCSV(name string, r io.Reader, maxBytes int64) (dataset.Dataset, error) {
	src, counter := wrapForStreaming(r, maxBytes)

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		header []string
		rows   [][]string
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrEncoding) {
				return dataset.Dataset{}, err
			}
			return dataset.Dataset{}, fmt.Errorf("invalid csv: %w", err)
		}
		if dataset.IsEmptyRow(record) {
			continue
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return dataset.Dataset{}, ErrEmptyFile
	}

	slog.Debug("csv parsed", "name", name, "bytes", counter.BytesRead())
	return dataset.New(name, header, rows), nil
}

func readXLSX(name string, r io.Reader, opts Options) (dataset.Dataset, error) {
	if opts.MaxBytes > 0 {
		r = &countingReader{r: r, limit: opts.MaxBytes}
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return dataset.Dataset{}, err
		}
		return dataset.Dataset{}, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return dataset.Dataset{}, ErrEmptyFile
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return dataset.Dataset{}, fmt.Errorf("invalid workbook: sheet %q not found", sheet)
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("invalid workbook: read sheet %q: %w", sheet, err)
	}

	var (
		header []string
		rows   [][]string
	)
	for _, record := range all {
		if dataset.IsEmptyRow(record) {
			continue
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return dataset.Dataset{}, ErrEmptyFile
	}
	return dataset.New(name, header, rows), nil
}
