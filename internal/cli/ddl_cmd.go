package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvschema/internal/core"
)

func newDDLCmd(ef *engineFlags) *cobra.Command {
	var (
		rf    readFlags
		table string
	)

	cmd := &cobra.Command{
		Use:   "ddl <file>",
		Short: "Print a PostgreSQL CREATE TABLE statement for a CSV file",
		Example: `  csvschema ddl orders.csv
  csvschema ddl --table staging.orders orders.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ef.newService(cmd)
			if err != nil {
				return err
			}
			opts, err := rf.options()
			if err != nil {
				return err
			}

			res, err := inferFile(cmd, svc, args[0], opts)
			if err != nil {
				return err
			}
			ddl, err := svc.DDL(cmd.Context(), res.ID, table)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"name": res.Name, "ddl": ddl})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), ddl)
			return err
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&table, "table", "t", "", "Table name, optionally schema-qualified (default derived from the file name)")
	return cmd
}

func newPreviewCmd(ef *engineFlags) *cobra.Command {
	var (
		rf   readFlags
		rows int
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the first rows of a CSV file converted under its inferred schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ef.newService(cmd)
			if err != nil {
				return err
			}
			opts, err := rf.options()
			if err != nil {
				return err
			}

			r, name, err := openCSV(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			res, err := svc.Preview(cmd.Context(), core.InferRequest{Name: name, Options: opts}, r, rows)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), res)
			}

			headers := []string{"line"}
			for _, f := range res.Fields {
				headers = append(headers, fmt.Sprintf("%s (%s)", f.Name, f.Type))
			}
			var table [][]string
			for _, row := range res.Rows {
				line := []string{fmt.Sprint(row.LineNumber)}
				for _, c := range row.Cells {
					line = append(line, cellText(c))
				}
				table = append(table, line)
			}
			if err := printTable(cmd.OutOrStdout(), headers, table); err != nil {
				return err
			}
			if res.ErrorCount > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d value(s) failed to convert\n", res.ErrorCount)
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().IntVarP(&rows, "rows", "n", core.DefaultPreviewRows, "Rows to convert")
	return cmd
}

func cellText(c core.PreviewCell) string {
	switch {
	case c.Error != "":
		return "!" + c.Value
	case c.Null:
		return "NULL"
	}
	return c.Value
}
