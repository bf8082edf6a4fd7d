package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvschema/internal/core"
)

func newInferCmd(ef *engineFlags) *cobra.Command {
	var rf readFlags

	cmd := &cobra.Command{
		Use:   "infer <file>...",
		Short: "Infer the column types of one or more CSV files",
		Long:  "Infer the column types of one or more CSV files. Use - to read standard input.",
		Example: `  csvschema infer orders.csv
  csvschema infer -d semicolon --no-header export.csv
  cat orders.csv | csvschema infer -o json -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ef.newService(cmd)
			if err != nil {
				return err
			}
			opts, err := rf.options()
			if err != nil {
				return err
			}

			results := make([]*core.SchemaResult, 0, len(args))
			for _, path := range args {
				res, err := inferFile(cmd, svc, path, opts)
				if err != nil {
					return err
				}
				results = append(results, res)
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), results)
			}

			var rows [][]string
			for _, res := range results {
				for i, f := range res.Fields {
					rows = append(rows, []string{
						res.Name,
						strconv.Itoa(i + 1),
						f.Name,
						f.Type.Kind.String(),
						f.Type.Pattern(),
					})
				}
			}
			return printTable(cmd.OutOrStdout(), []string{"file", "#", "column", "type", "format"}, rows)
		},
	}

	rf.register(cmd)
	return cmd
}

// inferFile reads one file and infers its schema.
func inferFile(cmd *cobra.Command, svc *core.Service, path string, opts core.ReadOptions) (*core.SchemaResult, error) {
	r, name, err := openCSV(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return svc.InferCSV(cmd.Context(), core.InferRequest{Name: name, Options: opts}, r)
}
