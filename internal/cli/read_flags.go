package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvschema/internal/core"
)

// readFlags are the CSV parsing flags shared by commands that read files.
type readFlags struct {
	noHeader  bool
	delimiter string
	skip      int
	maxRows   int
}

func (rf *readFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&rf.noHeader, "no-header", false, "First record is data, not column names")
	cmd.Flags().StringVarP(&rf.delimiter, "delimiter", "d", ",", "Field delimiter: a character or tab, comma, semicolon, pipe")
	cmd.Flags().IntVar(&rf.skip, "skip", 0, "Records to skip before the header")
	cmd.Flags().IntVar(&rf.maxRows, "max-rows", 0, "Only read this many data rows (0 reads all)")
}

func (rf *readFlags) options() (core.ReadOptions, error) {
	opts := core.DefaultReadOptions()
	comma, err := core.ParseDelimiter(rf.delimiter)
	if err != nil {
		return opts, fmt.Errorf("--delimiter: %w", err)
	}
	if rf.skip < 0 || rf.maxRows < 0 {
		return opts, errors.New("--skip and --max-rows must not be negative")
	}
	opts.Comma = comma
	opts.HasHeader = !rf.noHeader
	opts.SkipRows = rf.skip
	opts.MaxRows = rf.maxRows
	return opts, nil
}

// openCSV opens path for reading; "-" reads standard input.
func openCSV(cmd *cobra.Command, path string) (io.ReadCloser, string, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin.csv", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, filepath.Base(path), nil
}
