package core

// error_messages.go maps technical errors to user-facing messages with a
// code that can be quoted to support.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large           Patterns: "request body too large", "file too large"
//	FILE002 - Invalid CSV              Patterns: "invalid csv"
//	FILE004 - No file                  Patterns: "no file provided"
//	FILE005 - Empty file               Patterns: "empty file"
//	FILE006 - No columns               Patterns: "no columns"
//
// # Value Errors (VAL001-VAL099)
//
// Raised when a value does not convert under its inferred type (preview):
//
//	VAL001 - Invalid date              Patterns: "invalid date"
//	VAL002 - Invalid number            Patterns: "invalid number"
//	VAL003 - Invalid boolean           Patterns: "invalid boolean"
//
// # Schema Errors (SCH001-SCH099)
//
//	SCH001 - Schema not found          Patterns: "schema not found"
//	SCH002 - Invalid schema ID         Patterns: "invalid schema id"
//	SCH003 - Missing table name        Patterns: "table name is required"
//
// # Database Errors (DB004-DB099)
//
//	DB004 - Connection refused         Patterns: "connection refused"
//	DB005 - Connection reset           Patterns: "connection reset"
//	DB007 - Deadlock                   Patterns: "deadlock"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - System busy               Patterns: "too many concurrent"
//	REQ002 - Request cancelled         Patterns: "context canceled"
//	REQ003 - Request timeout           Patterns: "context deadline exceeded", "timeout"
//	REQ004 - Invalid parameter         Patterns: "invalid query parameter"
//	RATE001 - Rate limited             Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoColumns is returned when an operation needs at least one column.
var ErrNoColumns = errors.New("no columns to describe")

// ErrNoFile is returned when a request carries no CSV data.
var ErrNoFile = errors.New("no file provided")

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
	// File errors
	{"request body too large", UserMessage{"File exceeds the maximum size limit", "Split the file into smaller chunks", "FILE001"}},
	{"file too large", UserMessage{"File exceeds the maximum size limit", "Split the file into smaller chunks", "FILE001"}},
	{"invalid csv", UserMessage{"File is not a valid CSV", "Check quoting and the field delimiter", "FILE002"}},
	{"no file provided", UserMessage{"No CSV data was provided", "Send the CSV file as the request body", "FILE004"}},
	{"empty file", UserMessage{"The file is empty", "Provide a CSV file with at least one record", "FILE005"}},
	{"no columns", UserMessage{"The schema has no columns", "Provide a CSV file with at least one column", "FILE006"}},

	// Value errors
	{"invalid date", UserMessage{"Value does not match the inferred date format", "Check the value against the column's format", "VAL001"}},
	{"invalid number", UserMessage{"Value does not fit the inferred numeric type", "Check the value for stray characters or overflow", "VAL002"}},
	{"invalid boolean", UserMessage{"Value is not a recognized boolean", "Use one of the configured true or false tokens", "VAL003"}},

	// Schema errors
	{"schema not found", UserMessage{"Schema not found", "It may have been inferred on another server; infer the file again", "SCH001"}},
	{"invalid schema id", UserMessage{"Schema ID is malformed", "Use the ID returned by the infer request", "SCH002"}},
	{"table name is required", UserMessage{"A table name is required", "Pass a table name for the generated DDL", "SCH003"}},

	// Database errors
	{"connection refused", UserMessage{"Unable to connect to database", "Please try again in a few moments", "DB004"}},
	{"connection reset", UserMessage{"Database connection was interrupted", "Please try again", "DB005"}},
	{"deadlock", UserMessage{"Database was busy with conflicting operations", "Please try again", "DB007"}},

	// Request errors
	{"too many concurrent", UserMessage{"System is busy processing other files", "Please wait a moment and try again", "REQ001"}},
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "REQ002"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Try a smaller file or try again later", "REQ003"}},
	{"timeout", UserMessage{"Request timed out", "Try a smaller file or try again later", "REQ003"}},
	{"invalid query parameter", UserMessage{"A request parameter is invalid", "Check the query string of the request", "REQ004"}},
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
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

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
