package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// ReadColumns Tests
// ----------------------------------------------------------------------------

func TestReadColumns(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		opts      ReadOptions
		wantNames []string
		wantVals  [][]string
		wantRows  int
	}{
		{
			name:      "header and rows",
			input:     "id,name\n1,alice\n2,bob\n",
			opts:      DefaultReadOptions(),
			wantNames: []string{"id", "name"},
			wantVals:  [][]string{{"1", "2"}, {"alice", "bob"}},
			wantRows:  2,
		},
		{
			name:      "no header uses default names",
			input:     "1,alice\n2,bob\n",
			opts:      ReadOptions{Comma: ','},
			wantNames: []string{"Column 1", "Column 2"},
			wantVals:  [][]string{{"1", "2"}, {"alice", "bob"}},
			wantRows:  2,
		},
		{
			name:      "ragged rows are padded",
			input:     "a,b,c\n1\n1,2,3,4\n",
			opts:      DefaultReadOptions(),
			wantNames: []string{"a", "b", "c", "Column 4"},
			wantVals:  [][]string{{"1", "1"}, {"", "2"}, {"", "3"}, {"", "4"}},
			wantRows:  2,
		},
		{
			name:      "blank header names get defaults",
			input:     " id , ,x\n1,2,3\n",
			opts:      DefaultReadOptions(),
			wantNames: []string{"id", "Column 2", "x"},
			wantVals:  [][]string{{"1"}, {"2"}, {"3"}},
			wantRows:  1,
		},
		{
			name:      "utf-8 bom is stripped",
			input:     "\xef\xbb\xbfid\n7\n",
			opts:      DefaultReadOptions(),
			wantNames: []string{"id"},
			wantVals:  [][]string{{"7"}},
			wantRows:  1,
		},
		{
			name:      "skip rows before header",
			input:     "report generated today\nid\n1\n",
			opts:      ReadOptions{HasHeader: true, SkipRows: 1, Comma: ','},
			wantNames: []string{"id"},
			wantVals:  [][]string{{"1"}},
			wantRows:  1,
		},
		{
			name:      "semicolon delimiter",
			input:     "a;b\n1;2\n",
			opts:      ReadOptions{HasHeader: true, Comma: ';'},
			wantNames: []string{"a", "b"},
			wantVals:  [][]string{{"1"}, {"2"}},
			wantRows:  1,
		},
		{
			name:      "max rows",
			input:     "n\n1\n2\n3\n",
			opts:      ReadOptions{HasHeader: true, Comma: ',', MaxRows: 2},
			wantNames: []string{"n"},
			wantVals:  [][]string{{"1", "2"}},
			wantRows:  2,
		},
		{
			name:      "header only",
			input:     "a,b\n",
			opts:      DefaultReadOptions(),
			wantNames: []string{"a", "b"},
			wantVals:  [][]string{{}, {}},
			wantRows:  0,
		},
		{
			name:      "quoted field with newline",
			input:     "note\n\"two\nlines\"\n",
			opts:      DefaultReadOptions(),
			wantNames: []string{"note"},
			wantVals:  [][]string{{"two\nlines"}},
			wantRows:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, err := ReadColumns(strings.NewReader(tt.input), tt.opts)
			if err != nil {
				t.Fatalf("ReadColumns() error = %v", err)
			}
			if rows != tt.wantRows {
				t.Errorf("rows = %d, want %d", rows, tt.wantRows)
			}
			if len(cols) != len(tt.wantNames) {
				t.Fatalf("got %d columns, want %d", len(cols), len(tt.wantNames))
			}
			for i, col := range cols {
				if col.Name != tt.wantNames[i] {
					t.Errorf("column %d name = %q, want %q", i, col.Name, tt.wantNames[i])
				}
				if !reflect.DeepEqual(col.Values, tt.wantVals[i]) {
					t.Errorf("column %d values = %q, want %q", i, col.Values, tt.wantVals[i])
				}
			}
		})
	}
}

func TestReadColumns_Empty(t *testing.T) {
	_, _, err := ReadColumns(strings.NewReader(""), DefaultReadOptions())
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
}

func TestReadColumns_InvalidCSV(t *testing.T) {
	_, _, err := ReadColumns(strings.NewReader("a\n\"unterminated\n"), DefaultReadOptions())
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}
	if got := MapError(err).Code; got != "FILE002" {
		t.Errorf("MapError code = %q, want FILE002", got)
	}
}

func TestReadColumns_InvalidUTF8Replaced(t *testing.T) {
	cols, _, err := ReadColumns(strings.NewReader("name\nab\xffc\n"), DefaultReadOptions())
	if err != nil {
		t.Fatalf("ReadColumns() error = %v", err)
	}
	if got := cols[0].Values[0]; got != "ab\uFFFDc" {
		t.Errorf("value = %q, want replacement character", got)
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input   string
		want    rune
		wantErr bool
	}{
		{"tab", '\t', false},
		{`\t`, '\t', false},
		{"COMMA", ',', false},
		{"pipe", '|', false},
		{";", ';', false},
		{"§", '§', false},
		{"", 0, true},
		{"::", 0, true},
		{`"`, 0, true},
		{"\n", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDelimiter(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDelimiter(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDelimiter(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDelimiter(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
