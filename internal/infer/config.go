package infer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

// TextThreshold is the default length (in characters) above which a single
// value marks its column as free-form Text.
const TextThreshold = 250

// Catalogs holds the ordered candidate formats for each temporal kind.
// Order is precedence: when several formats fit a column, the earliest wins.
type Catalogs struct {
	DateTime []schema.Format `yaml:"date_time" json:"dateTime"`
	Time     []schema.Format `yaml:"time" json:"time"`
	Date     []schema.Format `yaml:"date" json:"date"`
}

// Config is everything the engine needs to classify a column.
// It is copied into the Engine at construction; later edits have no effect.
type Config struct {
	// MissingIndicators are tokens treated as "no value" (exact match).
	// Empty and blank strings are always missing regardless of this list.
	MissingIndicators []string

	// TrueTokens and FalseTokens are the case-sensitive spellings that
	// make a column Boolean. The two sets must be disjoint.
	TrueTokens  []string
	FalseTokens []string

	Catalogs Catalogs

	// TextThreshold overrides the default Text length boundary when > 0.
	TextThreshold int
}

// DefaultConfig returns the stock token sets and format catalogs.
func DefaultConfig() Config {
	return Config{
		MissingIndicators: []string{"NaN", "*", "NA", "null"},
		TrueTokens:        []string{"T", "t", "Y", "y", "TRUE", "true", "True"},
		FalseTokens:       []string{"F", "f", "N", "n", "FALSE", "false", "False"},
		Catalogs:          DefaultCatalogs(),
		TextThreshold:     TextThreshold,
	}
}

// Validate checks that the configuration is usable.
// Returns an error describing all validation failures.
func (c Config) Validate() error {
	var errs []string

	trues := toSet(c.TrueTokens)
	for _, f := range c.FalseTokens {
		if _, ok := trues[f]; ok {
			errs = append(errs, fmt.Sprintf("token %q is both a true and a false token", f))
		}
	}

	if c.TextThreshold < 0 {
		errs = append(errs, fmt.Sprintf("text threshold (%d) must not be negative", c.TextThreshold))
	}

	errs = append(errs, validateCatalog("date_time", c.Catalogs.DateTime)...)
	errs = append(errs, validateCatalog("time", c.Catalogs.Time)...)
	errs = append(errs, validateCatalog("date", c.Catalogs.Date)...)

	if len(errs) > 0 {
		return fmt.Errorf("invalid inference config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateCatalog(name string, formats []schema.Format) []string {
	var errs []string
	seen := make(map[string]bool, len(formats))
	for i, f := range formats {
		if f.Label == "" {
			errs = append(errs, fmt.Sprintf("%s catalog entry %d has no label", name, i))
		}
		if strings.ContainsFunc(f.Label, unicode.IsControl) {
			errs = append(errs, fmt.Sprintf("%s catalog label %q contains control characters", name, f.Label))
		}
		if f.Layout == "" {
			errs = append(errs, fmt.Sprintf("%s catalog entry %d (%s) has no layout", name, i, f.Label))
		}
		if f.Label != "" && seen[f.Label] {
			errs = append(errs, fmt.Sprintf("%s catalog label %q is duplicated", name, f.Label))
		}
		seen[f.Label] = true
	}
	return errs
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
