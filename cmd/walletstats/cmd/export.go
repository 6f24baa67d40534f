package cmd

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/walletstats/internal/logger"
	"github.com/rustyeddy/walletstats/journal"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the report as JSON, CSV, SQLite or XLSX",
	Long: `Build the report and write it with one of the exporters:

  json    - the stats and chart_data document used by the dashboard
  csv     - a directory with summary.csv and one file per series
  sqlite  - tables keyed by run ID; runs accumulate across exports
  xlsx    - a workbook with a Summary sheet and one sheet per series

Examples:
  walletstats export --format json
  walletstats export --format sqlite --out wallet.sqlite`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "export format: "+strings.Join(journal.Formats, ", "))
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default inside the output directory)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "" {
		cfg.Export.Type = exportFormat
	}
	if exportOut != "" {
		cfg.Export.Path = exportOut
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r, err := buildReport(cmd)
	if err != nil {
		return err
	}

	path := cfg.ExportPath()
	ex, err := journal.Open(cfg.Export.Type, path)
	if err != nil {
		return err
	}
	if err := ex.Export(r); err != nil {
		_ = ex.Close()
		return fmt.Errorf("export %s: %w", cfg.Export.Type, err)
	}
	if err := ex.Close(); err != nil {
		return err
	}

	log := logger.FromContext(cmd.Context())
	log.Info().Str("format", cfg.Export.Type).Str("path", path).Str("run_id", r.RunID).Msg("report exported")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %s: %s (run %s)\n", cfg.Export.Type, path, r.RunID)
	return nil
}
