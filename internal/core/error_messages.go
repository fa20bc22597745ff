package core

// error_messages.go maps technical errors to coded, user-facing messages.
//
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis. Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL004 - Missing column: Required column is missing from the file
//	         Action: Check the header row against the expected columns
//	         Patterns: "missing required column"
//
//	VAL007 - Too many rows: Dataset exceeds the configured row limit
//	         Patterns: "exceeds row limit"
//
//	VAL008 - Unknown dataset: Dataset kind is not route_map or missing_roster
//	         Patterns: "unknown dataset"
//
//	VAL009 - Invalid parameter: A request option such as top or max_rows is out of range
//	         Patterns: "invalid parameter"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the upload size limit
//	          Patterns: "file too large", "request body too large"
//
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Patterns: "invalid csv"
//
//	FILE003 - Encoding error: CSV is UTF-16 or binary rather than UTF-8 text
//	          Patterns: "encoding error"
//
//	FILE004 - No file: A required file was not provided
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The file has no header row
//	          Patterns: "empty file"
//
//	FILE006 - Unsupported format: Only .csv and .xlsx are accepted
//	          Patterns: "unsupported file format"
//
//	FILE007 - Invalid workbook: The .xlsx file could not be read
//	          Patterns: "invalid workbook"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many analyses in progress
//	         Patterns: "too many concurrent analyses"
//
//	UPL004 - Request cancelled
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Run History Errors (RUN001-RUN099)
//
//	RUN001 - Run not found: No stored analysis has that id
//	         Patterns: "run not found"
//
//	RUN002 - History disabled: No database is configured
//	         Patterns: "run history disabled"
//
//	RUN003 - Invalid run id: The id is not a UUID
//	         Patterns: "invalid run id"
//
// # Database Errors (DB004-DB007)
//
//	DB004 - Connection refused    Patterns: "connection refused"
//	DB005 - Connection reset      Patterns: "connection reset"
//	DB006 - Timeout               Patterns: "timeout"
//	DB007 - Deadlock              Patterns: "deadlock"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests   Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the application logs
// for the original technical error when users report ERR000.
//
// Patterns are matched case-insensitively using strings.Contains and the
// first matching pattern wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Validation
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from the file",
			Action:  "Check that the header row contains every expected column",
			Code:    "VAL004",
		},
	},
	{
		pattern: "exceeds row limit",
		msg: UserMessage{
			Message: "File has more rows than this server accepts",
			Action:  "Split the file or ask an administrator to raise REPORT_MAX_ROWS",
			Code:    "VAL007",
		},
	},
	{
		pattern: "unknown dataset",
		msg: UserMessage{
			Message: "Unknown dataset kind",
			Action:  "Use route_map or missing_roster",
			Code:    "VAL008",
		},
	},
	{
		pattern: "invalid parameter",
		msg: UserMessage{
			Message: "A request parameter is not valid",
			Action:  "Use a positive top and a non-negative max_rows",
			Code:    "VAL009",
		},
	},

	// Files
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "File format is not supported",
			Action:  "Upload a .csv or .xlsx file",
			Code:    "FILE006",
		},
	},
	{
		pattern: "invalid workbook",
		msg: UserMessage{
			Message: "The workbook could not be read",
			Action:  "Re-save the file as .xlsx or export it to CSV",
			Code:    "FILE007",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File is not UTF-8 text",
			Action:  "Save the file as CSV UTF-8 (comma delimited)",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "A required file was not provided",
			Action:  "Attach both the route map and the missing roster",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file with a header row",
			Code:    "FILE005",
		},
	},

	// Analysis requests
	{
		pattern: "too many concurrent analyses",
		msg: UserMessage{
			Message: "System is busy processing other analyses",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	// Run history
	{
		pattern: "run not found",
		msg: UserMessage{
			Message: "Analysis run not found",
			Action:  "Check the run id or list recent runs",
			Code:    "RUN001",
		},
	},
	{
		pattern: "run history disabled",
		msg: UserMessage{
			Message: "Run history is not enabled on this server",
			Action:  "Set DATABASE_URL to keep analysis history",
			Code:    "RUN002",
		},
	},
	{
		pattern: "invalid run id",
		msg: UserMessage{
			Message: "Run id is not valid",
			Action:  "Use the id returned by the analysis",
			Code:    "RUN003",
		},
	},

	// Database connectivity
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},

	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback with code ERR000 is returned.
//
// Example:
//
//	err := &MissingColumnError{Dataset: "Route Map", Columns: []string{"Code"}}
//	msg := MapError(err)
//	// msg.Code == "VAL004"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern, as opposed to
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
