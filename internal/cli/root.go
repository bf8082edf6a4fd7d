// Package cli implements the csvschema command-line tool.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvschema/internal/core"
	"github.com/JonMunkholm/csvschema/internal/infer"
	"github.com/JonMunkholm/csvschema/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

// run executes args and reports a failure on stdout (JSON) or stderr
// (table). Errors with a known code get a second line with the remedy.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	output, _ := rootCmd.PersistentFlags().GetString("output")
	if output == "json" {
		msg := core.MapError(err)
		_ = printJSON(stdout, map[string]string{
			"error":   err.Error(),
			"message": msg.Message,
			"action":  msg.Action,
			"code":    msg.Code,
		})
		return 1
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if core.IsUserFacing(err) {
		fmt.Fprintln(stderr, core.FormatUserError(err))
	}
	return 1
}

// engineFlags configure the inference engine for every subcommand.
type engineFlags struct {
	logLevel      string
	catalog       string
	missing       []string
	textThreshold int
	workers       int
}

func newRootCmd() *cobra.Command {
	var (
		output string
		ef     engineFlags
	)

	rootCmd := &cobra.Command{
		Use:           "csvschema",
		Short:         "Infer column types for CSV files",
		Long:          "Infer a typed schema (integers, floats, booleans, dates, times, text) for the columns of CSV files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("CSVSCHEMA_OUTPUT"); v != "" {
					output = v
				}
			}
			return validateOutputFormat(output)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&ef.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&ef.catalog, "catalog", "", "YAML file overriding the date/time format catalogs")
	rootCmd.PersistentFlags().StringSliceVar(&ef.missing, "missing", nil, "Values treated as missing (default NaN,*,NA,null)")
	rootCmd.PersistentFlags().IntVar(&ef.textThreshold, "text-threshold", 0, "Length above which a column is TEXT (default 250)")
	rootCmd.PersistentFlags().IntVar(&ef.workers, "workers", 0, "Columns classified in parallel (default one per CPU)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInferCmd(&ef))
	rootCmd.AddCommand(newDDLCmd(&ef))
	rootCmd.AddCommand(newPreviewCmd(&ef))
	rootCmd.AddCommand(newFormatsCmd(&ef))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"version": version,
					"commit":  commit,
				})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "csvschema version %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}

// engineConfig builds the engine configuration from defaults and flags.
func (ef *engineFlags) engineConfig() (infer.Config, error) {
	cfg := infer.DefaultConfig()
	if ef.catalog != "" {
		catalogs, err := infer.LoadCatalogs(ef.catalog)
		if err != nil {
			return cfg, fmt.Errorf("--catalog: %w", err)
		}
		cfg.Catalogs = catalogs
	}
	if len(ef.missing) > 0 {
		cfg.MissingIndicators = ef.missing
	}
	if ef.textThreshold > 0 {
		cfg.TextThreshold = ef.textThreshold
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newService wires an in-memory service. Logs go to the command's stderr so
// table and JSON output stay clean.
func (ef *engineFlags) newService(cmd *cobra.Command) (*core.Service, error) {
	cfg, err := ef.engineConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(ef.logLevel, "text", cmd.ErrOrStderr())
	cmd.SetContext(logging.NewContext(cmd.Context(), logger))

	engine := infer.New(cfg, logger)
	return core.NewService(engine, core.NewMemoryStore(), core.ServiceConfig{Workers: ef.workers}), nil
}
