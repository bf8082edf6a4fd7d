package core

// convert.go re-parses raw CSV values under an inferred field type.
//
// A downstream loader needs each value in the exact representation the
// schema promises: temporal values are parsed with the layout discovered
// during inference, numbers with the width that was chosen. All conversions
// return pgtype values with Valid=false for missing input, allowing the
// database to handle NULLs appropriately.

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/csvschema/internal/infer"
	"github.com/JonMunkholm/csvschema/internal/schema"
)

// microsecondsPerDay bounds pgtype.Time values.
const microsecondsPerDay = int64(24 * time.Hour / time.Microsecond)

// Converter turns raw strings into typed pgtype values. It shares the
// engine's notion of missing values and boolean tokens.
type Converter struct {
	engine *infer.Engine
}

// NewConverter returns a Converter bound to engine.
func NewConverter(engine *infer.Engine) *Converter {
	return &Converter{engine: engine}
}

// Convert parses raw as a value of type ft. Missing values convert to an
// invalid (NULL) value of the right pgtype without error.
func (c *Converter) Convert(ft schema.FieldType, raw string) (any, error) {
	missing := c.engine.IsMissing(raw)

	switch ft.Kind {
	case schema.Boolean:
		if missing {
			return pgtype.Bool{}, nil
		}
		b, ok := c.engine.ParseBool(raw)
		if !ok {
			return pgtype.Bool{}, fmt.Errorf("invalid boolean %q", raw)
		}
		return pgtype.Bool{Bool: b, Valid: true}, nil

	case schema.ShortInt:
		if missing {
			return pgtype.Int2{}, nil
		}
		n, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return pgtype.Int2{}, fmt.Errorf("invalid number %q for %s", raw, ft.Kind)
		}
		return pgtype.Int2{Int16: int16(n), Valid: true}, nil

	case schema.Integer:
		if missing {
			return pgtype.Int4{}, nil
		}
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return pgtype.Int4{}, fmt.Errorf("invalid number %q for %s", raw, ft.Kind)
		}
		return pgtype.Int4{Int32: int32(n), Valid: true}, nil

	case schema.LongInt:
		if missing {
			return pgtype.Int8{}, nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return pgtype.Int8{}, fmt.Errorf("invalid number %q for %s", raw, ft.Kind)
		}
		return pgtype.Int8{Int64: n, Valid: true}, nil

	case schema.Float:
		if missing {
			return pgtype.Float4{}, nil
		}
		f, err := infer.ParseFloat(raw)
		if err != nil {
			return pgtype.Float4{}, fmt.Errorf("invalid number %q for %s", raw, ft.Kind)
		}
		return pgtype.Float4{Float32: f, Valid: true}, nil

	case schema.LocalDate:
		if missing {
			return pgtype.Date{}, nil
		}
		t, err := parseTemporal(ft, raw)
		if err != nil {
			return pgtype.Date{}, err
		}
		return pgtype.Date{Time: t, Valid: true}, nil

	case schema.LocalTime:
		if missing {
			return pgtype.Time{}, nil
		}
		t, err := parseTemporal(ft, raw)
		if err != nil {
			return pgtype.Time{}, err
		}
		us := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
			int64(t.Minute())*int64(time.Minute/time.Microsecond) +
			int64(t.Second())*int64(time.Second/time.Microsecond) +
			int64(t.Nanosecond())/int64(time.Microsecond)
		return pgtype.Time{Microseconds: us, Valid: true}, nil

	case schema.LocalDateTime:
		if missing {
			return pgtype.Timestamp{}, nil
		}
		t, err := parseTemporal(ft, raw)
		if err != nil {
			return pgtype.Timestamp{}, err
		}
		return pgtype.Timestamp{Time: t, Valid: true}, nil

	default:
		if missing {
			return pgtype.Text{}, nil
		}
		return pgtype.Text{String: raw, Valid: true}, nil
	}
}

// ConvertRow converts a record under fields. Values beyond the record's
// length are treated as missing. The returned slice is aligned with fields;
// errs holds one entry per field (nil on success).
func (c *Converter) ConvertRow(fields []schema.Field, record []string) (values []any, errs []error) {
	values = make([]any, len(fields))
	errs = make([]error, len(fields))
	for j, f := range fields {
		raw := ""
		if j < len(record) {
			raw = record[j]
		}
		values[j], errs[j] = c.Convert(f.Type, raw)
	}
	return values, errs
}

func parseTemporal(ft schema.FieldType, raw string) (time.Time, error) {
	if ft.Format == nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %s has no format", raw, ft.Kind)
	}
	t, err := infer.ParseTime(ft.Format.Layout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", raw, ft.Format.Label)
	}
	return t, nil
}

// FormatValue renders a converted value in a normalized text form.
// The second result is false for NULL values.
func FormatValue(v any) (string, bool) {
	switch x := v.(type) {
	case pgtype.Bool:
		return strconv.FormatBool(x.Bool), x.Valid
	case pgtype.Int2:
		return strconv.FormatInt(int64(x.Int16), 10), x.Valid
	case pgtype.Int4:
		return strconv.FormatInt(int64(x.Int32), 10), x.Valid
	case pgtype.Int8:
		return strconv.FormatInt(x.Int64, 10), x.Valid
	case pgtype.Float4:
		return strconv.FormatFloat(float64(x.Float32), 'g', -1, 32), x.Valid
	case pgtype.Date:
		return x.Time.Format("2006-01-02"), x.Valid
	case pgtype.Time:
		if !x.Valid {
			return "", false
		}
		us := x.Microseconds % microsecondsPerDay
		t := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(us) * time.Microsecond)
		return t.Format("15:04:05.999999"), true
	case pgtype.Timestamp:
		return x.Time.Format("2006-01-02T15:04:05.999999"), x.Valid
	case pgtype.Text:
		return x.String, x.Valid
	default:
		return fmt.Sprint(v), v != nil
	}
}
