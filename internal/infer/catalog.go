package infer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

// Default catalogs. Labels use the familiar yyyy/MM/dd pattern letters;
// layouts are the Go equivalents used for parsing. Go's "15" also reads a
// one-digit hour, so HH here behaves like H when parsing.
var (
	defaultDateTimeFormats = []schema.Format{
		{Label: "yyyy-MM-dd'T'HH:mm:ss", Layout: "2006-01-02T15:04:05"},
		{Label: "yyyy-MM-dd HH:mm:ss", Layout: "2006-01-02 15:04:05"},
		{Label: "yyyy-MM-dd'T'HH:mm", Layout: "2006-01-02T15:04"},
		{Label: "yyyy-MM-dd HH:mm", Layout: "2006-01-02 15:04"},
		{Label: "MM/dd/yyyy HH:mm:ss", Layout: "01/02/2006 15:04:05"},
		{Label: "M/d/yyyy H:mm", Layout: "1/2/2006 15:04"},
		{Label: "M/d/yyyy h:mm a", Layout: "1/2/2006 3:04 PM"},
		{Label: "dd-MMM-yyyy HH:mm:ss", Layout: "02-Jan-2006 15:04:05"},
	}

	defaultTimeFormats = []schema.Format{
		{Label: "HH:mm:ss", Layout: "15:04:05"},
		{Label: "HH:mm", Layout: "15:04"},
		{Label: "hh:mm:ss a", Layout: "03:04:05 PM"},
		{Label: "h:mm a", Layout: "3:04 PM"},
		{Label: "h:mma", Layout: "3:04PM"},
	}

	defaultDateFormats = []schema.Format{
		{Label: "yyyy-MM-dd", Layout: "2006-01-02"},
		{Label: "yyyyMMdd", Layout: "20060102"},
		{Label: "MM/dd/yyyy", Layout: "01/02/2006"},
		{Label: "M/d/yyyy", Layout: "1/2/2006"},
		{Label: "dd/MM/yyyy", Layout: "02/01/2006"},
		{Label: "yyyy/MM/dd", Layout: "2006/01/02"},
		{Label: "dd-MMM-yyyy", Layout: "02-Jan-2006"},
		{Label: "dd.MM.yyyy", Layout: "02.01.2006"},
		{Label: "MMM d, yyyy", Layout: "Jan 2, 2006"},
		{Label: "d MMM yyyy", Layout: "2 Jan 2006"},
		{Label: "M/d/yy", Layout: "1/2/06"},
	}
)

// DefaultCatalogs returns fresh copies of the built-in format catalogs.
func DefaultCatalogs() Catalogs {
	return Catalogs{
		DateTime: append([]schema.Format(nil), defaultDateTimeFormats...),
		Time:     append([]schema.Format(nil), defaultTimeFormats...),
		Date:     append([]schema.Format(nil), defaultDateFormats...),
	}
}

// ParseCatalogs decodes a YAML catalog document:
//
//	date_time:
//	  - {label: "yyyy-MM-dd HH:mm:ss", layout: "2006-01-02 15:04:05"}
//	time:
//	  - {label: "HH:mm", layout: "15:04"}
//	date:
//	  - {label: "dd/MM/yyyy", layout: "02/01/2006"}
//
// A section that is absent or empty keeps the built-in default.
func ParseCatalogs(data []byte) (Catalogs, error) {
	var file Catalogs
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Catalogs{}, fmt.Errorf("parse format catalog: %w", err)
	}

	cat := DefaultCatalogs()
	if len(file.DateTime) > 0 {
		cat.DateTime = file.DateTime
	}
	if len(file.Time) > 0 {
		cat.Time = file.Time
	}
	if len(file.Date) > 0 {
		cat.Date = file.Date
	}
	return cat, nil
}

// LoadCatalogs reads a YAML catalog file from disk.
func LoadCatalogs(path string) (Catalogs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalogs{}, fmt.Errorf("read format catalog: %w", err)
	}
	return ParseCatalogs(data)
}
