package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "missing column error maps to VAL004",
			err:         &MissingColumnError{Dataset: "Route Map", Columns: []string{"Code"}},
			wantCode:    "VAL004",
			wantMessage: "Required column is missing from the file",
		},
		{
			name:        "wrapped missing column error still maps",
			err:         fmt.Errorf("analyze: %w", &MissingColumnError{Columns: []string{"TITLE"}}),
			wantCode:    "VAL004",
			wantMessage: "Required column is missing from the file",
		},
		{
			name:        "row limit maps to VAL007",
			err:         fmt.Errorf("%w: route.csv has 11 rows (limit 10)", ErrTooManyRows),
			wantCode:    "VAL007",
			wantMessage: "File has more rows than this server accepts",
		},
		{
			name:        "non UTF-8 csv maps to FILE003",
			err:         errors.New("route.csv: encoding error: UTF-16 byte order mark"),
			wantCode:    "FILE003",
			wantMessage: "File is not UTF-8 text",
		},
		{
			name:        "busy limiter maps to UPL002",
			err:         ErrTooManyAnalyses,
			wantCode:    "UPL002",
			wantMessage: "System is busy processing other analyses",
		},
		{
			name:        "cancelled context maps to UPL004",
			err:         context.Canceled,
			wantCode:    "UPL004",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    "DB004",
			wantMessage: "Unable to connect to database",
		},
		{
			name:        "run not found maps to RUN001",
			err:         errors.New("run not found"),
			wantCode:    "RUN001",
			wantMessage: "Analysis run not found",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("UNSUPPORTED FILE FORMAT: .pdf"),
			wantCode:    "FILE006",
			wantMessage: "File format is not supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := &MissingColumnError{Dataset: "Missing Roster", Columns: []string{"TITLE"}}
	result := FormatUserError(err)

	expected := "Required column is missing from the file (Code: VAL004). Check that the header row contains every expected column"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "known error is user facing", err: errors.New("empty file"), want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := errors.New("invalid csv: record on line 3: wrong number of fields")
		userErr := NewUserError(techErr)

		if userErr.Error() != "File is not a valid CSV" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, techErr) {
			t.Error("Unwrap() should return original error")
		}
	})
}
