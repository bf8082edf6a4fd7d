package core

import "github.com/JonMunkholm/csvschema/internal/schema"

// maxPreviewRows caps Preview regardless of what the caller asks for.
const maxPreviewRows = 1000

// Preview converts the first rows of columns under fields. firstLine is the
// 1-based record number of the first data row, used for LineNumber.
// A non-positive rows selects DefaultPreviewRows.
func (c *Converter) Preview(fields []schema.Field, columns []schema.Column, rows, firstLine int) *PreviewResult {
	if rows <= 0 {
		rows = DefaultPreviewRows
	}
	if rows > maxPreviewRows {
		rows = maxPreviewRows
	}

	total := 0
	if len(columns) > 0 {
		total = len(columns[0].Values)
	}
	if rows > total {
		rows = total
	}

	res := &PreviewResult{
		Fields: fields,
		Rows:   make([]PreviewRow, 0, rows),
	}

	record := make([]string, len(columns))
	for i := 0; i < rows; i++ {
		for j, col := range columns {
			record[j] = col.Values[i]
		}

		values, errs := c.ConvertRow(fields, record)
		row := PreviewRow{
			LineNumber: firstLine + i,
			Cells:      make([]PreviewCell, len(fields)),
		}
		for j := range fields {
			if errs[j] != nil {
				row.Cells[j] = PreviewCell{Value: record[j], Error: errs[j].Error()}
				res.ErrorCount++
				continue
			}
			text, valid := FormatValue(values[j])
			if !valid {
				row.Cells[j] = PreviewCell{Null: true}
				continue
			}
			row.Cells[j] = PreviewCell{Value: text}
		}
		res.Rows = append(res.Rows, row)
	}

	return res
}
