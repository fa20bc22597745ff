package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"ISO", "2025-10-27", time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), true},
		{"US", "10/27/2025", time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), true},
		{"export day-month-year", "27-Oct-25", time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), true},
		{"long month", "27-Oct-2025", time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), true},
		{"datetime", "2025-10-27 08:30:00", time.Date(2025, 10, 27, 8, 30, 0, 0, time.UTC), true},
		{"compact", "20251027", time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), true},
		{"two digit year far future rolls back", "1/2/99", time.Date(1999, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"whitespace", "  2025-10-27  ", time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), true},
		{"excel serial", "45957", time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), true},
		{"excel serial with time", "45957.5", time.Date(2025, 10, 27, 12, 0, 0, 0, time.UTC), true},
		{"plain year is not a serial", "2025", time.Time{}, false},
		{"negative number", "-45957", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
		ok    bool
	}{
		{"TRUE", true, true},
		{"False", false, true},
		{"yes", true, true},
		{"N", false, true},
		{"1", true, true},
		{"0", false, true},
		{" t ", true, true},
		{"", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBool(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseBool(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
