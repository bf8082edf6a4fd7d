// Package infer classifies raw CSV columns into schema field types.
//
// Classification runs an ordered chain of rules over a column's present
// values (blank and missing-indicator values removed). Every present value
// must satisfy a rule for it to match; the first matching rule wins:
//
//	BOOLEAN, SHORT_INT, INTEGER, LONG_INT, FLOAT,
//	LOCAL_DATE_TIME, LOCAL_TIME, LOCAL_DATE, TEXT, CATEGORY
//
// Temporal rules additionally discover which format from a configured
// catalog the column uses, and carry that format in the result.
package infer

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

// rule is one step of the decision chain. raw is the column as supplied,
// present the values left after dropping blanks and missing indicators.
type rule struct {
	name  string
	apply func(raw, present []string) (schema.FieldType, bool)
}

// Engine infers field types. It holds only read-only configuration and is
// safe for concurrent use.
type Engine struct {
	missing   map[string]struct{}
	trues     map[string]struct{}
	falses    map[string]struct{}
	catalogs  Catalogs
	threshold int
	logger    *slog.Logger
	rules     []rule
}

// New builds an Engine from cfg. A nil logger uses slog.Default().
func New(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	threshold := cfg.TextThreshold
	if threshold <= 0 {
		threshold = TextThreshold
	}

	e := &Engine{
		missing:   toSet(cfg.MissingIndicators),
		trues:     toSet(cfg.TrueTokens),
		falses:    toSet(cfg.FalseTokens),
		catalogs:  cfg.Catalogs,
		threshold: threshold,
		logger:    logger,
	}

	e.rules = []rule{
		{"boolean", every(e.isBoolean, schema.Boolean)},
		{"short_int", every(isShort, schema.ShortInt)},
		{"integer", every(isInteger, schema.Integer)},
		{"long_int", every(isLong, schema.LongInt)},
		{"float", every(isFloat, schema.Float)},
		{"local_date_time", e.temporal(schema.LocalDateTime, e.catalogs.DateTime)},
		{"local_time", e.temporal(schema.LocalTime, e.catalogs.Time)},
		{"local_date", e.temporal(schema.LocalDate, e.catalogs.Date)},
		{"text", e.longText},
	}
	return e
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.name
	}
	return names
}

// InferFieldTypes classifies each column independently. The result is
// aligned with columns and keeps each column name verbatim.
func (e *Engine) InferFieldTypes(columns []schema.Column) []schema.Field {
	fields := make([]schema.Field, len(columns))
	for i, col := range columns {
		fields[i] = schema.Field{Name: col.Name, Type: e.Infer(col.Values)}
	}
	return fields
}

// Infer classifies a single column of raw values. It always returns a
// type; columns with no usable data are Category.
func (e *Engine) Infer(values []string) schema.FieldType {
	present := e.present(values)
	if len(present) == 0 {
		return schema.Of(schema.Category)
	}

	for _, r := range e.rules {
		if ft, ok := r.apply(values, present); ok {
			return ft
		}
	}
	return schema.Of(schema.Category)
}

// IsMissing reports whether v counts as "no value".
func (e *Engine) IsMissing(v string) bool {
	if strings.TrimSpace(v) == "" {
		return true
	}
	_, ok := e.missing[v]
	return ok
}

func (e *Engine) present(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !e.IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

func (e *Engine) isBoolean(s string) bool {
	_, ok := e.ParseBool(s)
	return ok
}

// every turns a per-value predicate into an all-values rule.
func every(pred func(string) bool, kind schema.Kind) func(raw, present []string) (schema.FieldType, bool) {
	return func(_, present []string) (schema.FieldType, bool) {
		if allMatch(present, pred) {
			return schema.Of(kind), true
		}
		return schema.FieldType{}, false
	}
}

func (e *Engine) temporal(kind schema.Kind, catalog []schema.Format) func(raw, present []string) (schema.FieldType, bool) {
	return func(_, present []string) (schema.FieldType, bool) {
		f, ok := e.discoverFormat(kind, present, catalog)
		if !ok {
			return schema.FieldType{}, false
		}
		return schema.Temporal(kind, f), true
	}
}

// longText checks the unfiltered column: one overlong value is enough.
func (e *Engine) longText(raw, _ []string) (schema.FieldType, bool) {
	for _, v := range raw {
		if utf8.RuneCountInString(v) > e.threshold {
			return schema.Of(schema.Text), true
		}
	}
	return schema.FieldType{}, false
}

// ParseBool maps a configured boolean token to its value.
// ok is false for anything outside the true and false token sets.
func (e *Engine) ParseBool(s string) (value, ok bool) {
	if _, found := e.trues[s]; found {
		return true, true
	}
	if _, found := e.falses[s]; found {
		return false, true
	}
	return false, false
}
