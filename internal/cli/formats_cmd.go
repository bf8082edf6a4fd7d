package cli

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

func newFormatsCmd(ef *engineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the date and time formats tried during inference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ef.engineConfig()
			if err != nil {
				return err
			}

			type entry struct {
				Kind   schema.Kind `json:"kind"`
				Label  string      `json:"label"`
				Layout string      `json:"layout"`
			}
			var entries []entry
			for _, group := range []struct {
				kind    schema.Kind
				formats []schema.Format
			}{
				{schema.LocalDate, cfg.Catalogs.Date},
				{schema.LocalTime, cfg.Catalogs.Time},
				{schema.LocalDateTime, cfg.Catalogs.DateTime},
			} {
				for _, f := range group.formats {
					entries = append(entries, entry{Kind: group.kind, Label: f.Label, Layout: f.Layout})
				}
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Kind.String(), e.Label, e.Layout}
			}
			return printTable(cmd.OutOrStdout(), []string{"kind", "label", "layout"}, rows)
		},
	}
}
