package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"empty file", ErrEmptyFile, "FILE005"},
		{"wrapped csv error", fmt.Errorf("invalid csv: %w", errors.New("bare \" in non-quoted field")), "FILE002"},
		{"no file", ErrNoFile, "FILE004"},
		{"no columns", ErrNoColumns, "FILE006"},
		{"body too large", errors.New("http: request body too large"), "FILE001"},
		{"bad date", errors.New(`invalid date "2023-13-01": expected yyyy-MM-dd`), "VAL001"},
		{"bad number", errors.New(`invalid number "x" for SHORT_INT`), "VAL002"},
		{"bad boolean", errors.New(`invalid boolean "maybe"`), "VAL003"},
		{"not found", fmt.Errorf("lookup: %w", ErrNotFound), "SCH001"},
		{"bad id", errors.New("invalid schema id: invalid UUID length: 3"), "SCH002"},
		{"busy", ErrTooManyRequests, "REQ001"},
		{"cancelled", context.Canceled, "REQ002"},
		{"deadline", context.DeadlineExceeded, "REQ003"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB004"},
		{"bad parameter", errors.New(`invalid query parameter "rows": not a number`), "REQ004"},
		{"rate limited", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("INVALID CSV"), "FILE002"},
		{"unknown error", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError(%v) code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrEmptyFile)
	want := "The file is empty (Code: FILE005). Provide a CSV file with at least one record"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"known error", ErrNotFound, true},
		{"unknown error", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
