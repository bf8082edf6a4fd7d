package core

// reader.go turns a CSV stream into named columns for inference.
//
// The stream is decoded before CSV parsing:
//   - a leading byte order mark is removed (UTF-16 files with a BOM are
//     transcoded to UTF-8)
//   - invalid UTF-8 sequences are replaced with U+FFFD
//
// Rows shorter than the widest row are padded with empty strings, so every
// column has one value per data row.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

// ErrEmptyFile is returned when the input holds no records at all.
var ErrEmptyFile = errors.New("empty file: no records found")

// ReadOptions controls how ReadColumns interprets the input.
type ReadOptions struct {
	// HasHeader means the first record (after SkipRows) names the columns.
	// Otherwise default names are used.
	HasHeader bool

	// SkipRows is the number of records to discard before the header.
	SkipRows int

	// Comma is the field delimiter (default ',').
	Comma rune

	// MaxRows limits how many data rows are read. Zero reads everything.
	MaxRows int
}

// DefaultReadOptions returns options for a comma-separated file with a header.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{HasHeader: true, Comma: ','}
}

// NewCSVReader wraps r with BOM handling and UTF-8 repair and returns a
// csv.Reader tolerant of ragged rows.
func NewCSVReader(r io.Reader, comma rune) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	if comma != 0 {
		cr.Comma = comma
	}
	return cr
}

// ReadColumns reads the whole input and returns one Column per field.
// It also returns the data row count.
func ReadColumns(r io.Reader, opts ReadOptions) ([]schema.Column, int, error) {
	cr := NewCSVReader(r, opts.Comma)

	var header []string
	var rows [][]string
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("invalid csv: %w", err)
		}
		if line < opts.SkipRows {
			continue
		}
		if opts.HasHeader && header == nil {
			header = rec
			continue
		}
		if opts.MaxRows > 0 && len(rows) >= opts.MaxRows {
			break
		}
		rows = append(rows, rec)
	}

	if header == nil && len(rows) == 0 {
		return nil, 0, ErrEmptyFile
	}

	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := make([]schema.Column, width)
	for j := range columns {
		columns[j] = schema.Column{
			Name:   columnName(header, j),
			Values: make([]string, len(rows)),
		}
	}
	for i, row := range rows {
		for j, v := range row {
			columns[j].Values[i] = v
		}
	}

	return columns, len(rows), nil
}

// columnName returns the trimmed header name for position j, or a default
// "Column N" name when the header is missing or blank there.
func columnName(header []string, j int) string {
	if j < len(header) {
		if name := strings.TrimSpace(header[j]); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Column %d", j+1)
}

// ParseDelimiter accepts a single character or one of the names "tab",
// "comma", "semicolon" and "pipe".
func ParseDelimiter(v string) (rune, error) {
	switch strings.ToLower(v) {
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}

	c, size := utf8.DecodeRuneInString(v)
	if v == "" || size != len(v) || c == utf8.RuneError || c == '"' || c == '\r' || c == '\n' {
		return 0, fmt.Errorf("unsupported delimiter %q", v)
	}
	return c, nil
}
