// Package schema holds the inert data model shared by the inference engine
// and its callers: raw columns going in, typed fields coming out.
package schema

import "fmt"

// Kind identifies one variant of the closed FieldType set.
//
// The declaration order below is the precedence used during inference
// for everything except Category, which is the fallback.
type Kind int

const (
	Category Kind = iota
	Boolean
	ShortInt
	Integer
	LongInt
	Float
	LocalDateTime
	LocalTime
	LocalDate
	Text
)

var kindNames = map[Kind]string{
	Category:      "CATEGORY",
	Boolean:       "BOOLEAN",
	ShortInt:      "SHORT_INT",
	Integer:       "INTEGER",
	LongInt:       "LONG_INT",
	Float:         "FLOAT",
	LocalDateTime: "LOCAL_DATE_TIME",
	LocalTime:     "LOCAL_TIME",
	LocalDate:     "LOCAL_DATE",
	Text:          "TEXT",
}

// Kinds returns every kind in precedence order.
func Kinds() []Kind {
	return []Kind{Category, Boolean, ShortInt, Integer, LongInt, Float, LocalDateTime, LocalTime, LocalDate, Text}
}

// String returns the wire name of the kind, e.g. "SHORT_INT".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTemporal reports whether values of this kind carry a Format payload.
func (k Kind) IsTemporal() bool {
	return k == LocalDate || k == LocalTime || k == LocalDateTime
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown field kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves a wire name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return Category, fmt.Errorf("unknown field kind %q", name)
}

// Format is one temporal format candidate.
//
// Label is the human pattern reported to callers ("yyyy-MM-dd"); Layout is
// the Go reference layout ("2006-01-02") a loader uses to re-parse values.
type Format struct {
	Label  string `json:"label" yaml:"label"`
	Layout string `json:"layout" yaml:"layout"`
}

// FieldType is the inferred semantic type of a column.
// Format is only set for temporal kinds.
type FieldType struct {
	Kind   Kind    `json:"kind"`
	Format *Format `json:"format,omitempty"`
}

// Of returns the payload-free FieldType for k.
func Of(k Kind) FieldType {
	return FieldType{Kind: k}
}

// Temporal returns a temporal FieldType carrying the winning format.
func Temporal(k Kind, f Format) FieldType {
	return FieldType{Kind: k, Format: &f}
}

// Pattern returns the format label for temporal types and "" otherwise.
func (t FieldType) Pattern() string {
	if t.Format == nil {
		return ""
	}
	return t.Format.Label
}

// Equal compares kind and format payload.
func (t FieldType) Equal(o FieldType) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Format == nil || o.Format == nil {
		return t.Format == nil && o.Format == nil
	}
	return *t.Format == *o.Format
}

func (t FieldType) String() string {
	if t.Format != nil {
		return t.Kind.String() + "(" + t.Format.Label + ")"
	}
	return t.Kind.String()
}

// Column is a named, ordered sequence of raw textual values.
type Column struct {
	Name   string
	Values []string
}

// Field is a column name paired with its inferred type.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}
