package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csvschema/internal/core"
	"github.com/JonMunkholm/csvschema/internal/schema"
)

const ordersCSV = `id,placed,amount,paid,status
1,2023-01-15,10.50,Y,open
2,2023-02-20,7,N,closed
3,2023-03-05,,Y,open
`

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCLI executes the root command and returns stdout and the error.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInfer_Table(t *testing.T) {
	path := writeCSV(t, "orders.csv", ordersCSV)

	out, err := runCLI(t, "", "infer", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"FILE", "#", "COLUMN", "TYPE", "FORMAT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"orders.csv", "2", "placed", "LOCAL_DATE", "yyyy-MM-dd"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"orders.csv", "4", "paid", "BOOLEAN"}, strings.Fields(lines[4]))
}

func TestInfer_JSON(t *testing.T) {
	path := writeCSV(t, "orders.csv", ordersCSV)

	out, err := runCLI(t, "", "-o", "json", "infer", path)
	require.NoError(t, err)

	var results []core.SchemaResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].RowCount)

	kinds := make([]schema.Kind, len(results[0].Fields))
	for i, f := range results[0].Fields {
		kinds[i] = f.Type.Kind
	}
	assert.Equal(t, []schema.Kind{schema.ShortInt, schema.LocalDate, schema.Float, schema.Boolean, schema.Category}, kinds)
}

func TestInfer_Stdin(t *testing.T) {
	out, err := runCLI(t, "a;b\n1;x\n2;y\n", "-o", "json", "infer", "--no-header", "-d", "semicolon", "-")
	require.NoError(t, err)

	var results []core.SchemaResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "stdin.csv", results[0].Name)
	assert.Equal(t, 3, results[0].RowCount)
	assert.Equal(t, "Column 1", results[0].Fields[0].Name)
	assert.Equal(t, schema.Category, results[0].Fields[0].Type.Kind)
}

func TestInfer_MissingIndicators(t *testing.T) {
	path := writeCSV(t, "scores.csv", "score\n1\n-\n3\n")

	out, err := runCLI(t, "", "-o", "json", "--missing=-", "infer", path)
	require.NoError(t, err)

	var results []core.SchemaResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, schema.ShortInt, results[0].Fields[0].Type.Kind)
}

func TestInfer_CatalogFile(t *testing.T) {
	catalog := writeCSV(t, "formats.yaml", "date:\n  - label: dd.MM.yyyy\n    layout: 02.01.2006\n")
	path := writeCSV(t, "dates.csv", "day\n15.01.2023\n20.02.2023\n")

	out, err := runCLI(t, "", "-o", "json", "--catalog", catalog, "infer", path)
	require.NoError(t, err)

	var results []core.SchemaResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, "LOCAL_DATE(dd.MM.yyyy)", results[0].Fields[0].Type.String())
}

func TestInfer_Errors(t *testing.T) {
	empty := writeCSV(t, "empty.csv", "")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no args", []string{"infer"}, "requires at least 1 arg"},
		{"missing file", []string{"infer", filepath.Join(t.TempDir(), "nope.csv")}, "no such file"},
		{"empty file", []string{"infer", empty}, "empty file"},
		{"bad delimiter", []string{"infer", "-d", "ab", empty}, "--delimiter"},
		{"bad output", []string{"-o", "yaml", "infer", empty}, "unsupported output format"},
		{"bad catalog", []string{"--catalog", filepath.Join(t.TempDir(), "x.yaml"), "infer", empty}, "--catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_ErrorOutput(t *testing.T) {
	empty := writeCSV(t, "empty.csv", "")

	t.Run("table adds remedy for known errors", func(t *testing.T) {
		var out, errOut bytes.Buffer
		code := run([]string{"--log-level=error", "infer", empty}, &out, &errOut)

		assert.Equal(t, 1, code)
		assert.Empty(t, out.String())
		lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Error: "))
		assert.Contains(t, lines[0], "empty file")
		assert.Equal(t, "The file is empty (Code: FILE005). Provide a CSV file with at least one record", lines[1])
	})

	t.Run("table leaves unknown errors alone", func(t *testing.T) {
		var out, errOut bytes.Buffer
		code := run([]string{"--log-level=error", "infer", filepath.Join(t.TempDir(), "nope.csv")}, &out, &errOut)

		assert.Equal(t, 1, code)
		lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "no such file")
	})

	t.Run("json", func(t *testing.T) {
		var out, errOut bytes.Buffer
		code := run([]string{"-o", "json", "infer", empty}, &out, &errOut)

		assert.Equal(t, 1, code)
		var got map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "FILE005", got["code"])
		assert.Equal(t, "The file is empty", got["message"])
		assert.Equal(t, "Provide a CSV file with at least one record", got["action"])
		assert.Contains(t, got["error"], "empty file")
	})
}

func TestRun_Success(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 0, run([]string{"version"}, &out, &errOut))
	assert.Contains(t, out.String(), "csvschema version")
}

func TestDDL(t *testing.T) {
	path := writeCSV(t, "Orders 2023.csv", ordersCSV)

	out, err := runCLI(t, "", "ddl", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `CREATE TABLE "orders_2023" (`), out)
	assert.Contains(t, out, `"placed" date, -- yyyy-MM-dd`)
	assert.Contains(t, out, `"amount" real,`)

	out, err = runCLI(t, "", "ddl", "--table", "staging.orders", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `CREATE TABLE "staging"."orders" (`), out)
}

func TestPreview(t *testing.T) {
	path := writeCSV(t, "orders.csv", ordersCSV)

	out, err := runCLI(t, "", "-o", "json", "preview", "-n", "2", path)
	require.NoError(t, err)

	var res core.PreviewResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 2, res.Rows[0].LineNumber)
	assert.Equal(t, "true", res.Rows[0].Cells[3].Value)

	out, err = runCLI(t, "", "preview", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PLACED (LOCAL_DATE(YYYY-MM-DD))")
	assert.Contains(t, lines[3], "NULL")
}

func TestFormats(t *testing.T) {
	out, err := runCLI(t, "", "-o", "json", "formats")
	require.NoError(t, err)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.NotEmpty(t, entries)
	assert.Contains(t, entries, map[string]string{"kind": "LOCAL_DATE", "label": "yyyy-MM-dd", "layout": "2006-01-02"})
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "csvschema version dev (commit: none)\n", out)
}
