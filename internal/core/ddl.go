package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

// ErrNoTable is returned when CreateTableSQL gets a blank table name.
var ErrNoTable = errors.New("table name is required")

// PgType returns the PostgreSQL column type a loader should use for ft.
func PgType(ft schema.FieldType) string {
	switch ft.Kind {
	case schema.Boolean:
		return "boolean"
	case schema.ShortInt:
		return "smallint"
	case schema.Integer:
		return "integer"
	case schema.LongInt:
		return "bigint"
	case schema.Float:
		return "real"
	case schema.LocalDate:
		return "date"
	case schema.LocalTime:
		return "time"
	case schema.LocalDateTime:
		return "timestamp"
	default:
		// Category and Text
		return "text"
	}
}

// CreateTableSQL renders a CREATE TABLE statement for fields.
// A dotted table name is treated as schema.table.
func CreateTableSQL(table string, fields []schema.Field) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", ErrNoTable
	}
	if len(fields) == 0 {
		return "", ErrNoColumns
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(pgx.Identifier(strings.Split(table, ".")).Sanitize())
	b.WriteString(" (\n")
	for i, f := range fields {
		b.WriteString("    ")
		b.WriteString(pgx.Identifier{f.Name}.Sanitize())
		b.WriteString(" ")
		b.WriteString(PgType(f.Type))
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		if f.Type.Format != nil {
			fmt.Fprintf(&b, " -- %s", commentText(f.Type.Format.Label))
		}
		b.WriteString("\n")
	}
	b.WriteString(");\n")
	return b.String(), nil
}

// commentText keeps s on a single SQL comment line.
func commentText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// TableName derives a table name from a file name: the extension is
// dropped, letters are lowercased and every other rune becomes '_'.
func TableName(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '_'
	}, base)
	name = strings.Trim(name, "_")

	if name == "" {
		return "imported"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "t_" + name
	}
	return name
}
