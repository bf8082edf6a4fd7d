package core

import (
	"testing"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

func TestConverter_Preview(t *testing.T) {
	c := NewConverter(newTestEngine(t))

	fields := []schema.Field{
		{Name: "n", Type: schema.Of(schema.ShortInt)},
		{Name: "d", Type: schema.Temporal(schema.LocalDate, isoDate)},
	}
	columns := []schema.Column{
		{Name: "n", Values: []string{"1", "NaN", "99999", "4"}},
		{Name: "d", Values: []string{"2023-01-01", "", "2023-01-03", "01/04/2023"}},
	}

	res := c.Preview(fields, columns, 10, 5)

	if len(res.Rows) != 4 {
		t.Fatalf("got %d rows, want 4 (capped to available)", len(res.Rows))
	}
	if res.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", res.ErrorCount)
	}
	if res.Rows[0].LineNumber != 5 || res.Rows[3].LineNumber != 8 {
		t.Errorf("line numbers start %d end %d, want 5 and 8", res.Rows[0].LineNumber, res.Rows[3].LineNumber)
	}

	tests := []struct {
		name string
		row  int
		col  int
		want PreviewCell
	}{
		{"converted int", 0, 0, PreviewCell{Value: "1"}},
		{"missing int", 1, 0, PreviewCell{Null: true}},
		{"missing date", 1, 1, PreviewCell{Null: true}},
		{"overflow", 2, 0, PreviewCell{Value: "99999", Error: `invalid number "99999" for SHORT_INT`}},
		{"wrong date format", 3, 1, PreviewCell{Value: "01/04/2023", Error: `invalid date "01/04/2023": expected yyyy-MM-dd`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := res.Rows[tt.row].Cells[tt.col]; got != tt.want {
				t.Errorf("cell = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConverter_Preview_DefaultRows(t *testing.T) {
	c := NewConverter(newTestEngine(t))

	values := make([]string, DefaultPreviewRows+5)
	for i := range values {
		values[i] = "x"
	}
	fields := []schema.Field{{Name: "v", Type: schema.Of(schema.Category)}}
	columns := []schema.Column{{Name: "v", Values: values}}

	if got := len(c.Preview(fields, columns, 0, 2).Rows); got != DefaultPreviewRows {
		t.Errorf("rows = %d, want %d", got, DefaultPreviewRows)
	}
}
