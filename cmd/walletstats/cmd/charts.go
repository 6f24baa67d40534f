package cmd

import (
	"fmt"

	"github.com/rustyeddy/walletstats/charts"
	"github.com/rustyeddy/walletstats/internal/logger"
	"github.com/spf13/cobra"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Draw PNG charts",
	Long: `Draw the balance trend, cumulative PNL, monthly PNL, transaction
type and drawdown charts into the output directory.

Example:
  walletstats charts -i wallet.csv -o report`,
	Args: cobra.NoArgs,
	RunE: runCharts,
}

func init() {
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(cmd *cobra.Command, args []string) error {
	r, err := buildReport(cmd)
	if err != nil {
		return err
	}

	opts := charts.Options{
		Width:  cfg.Output.Charts.Width,
		Height: cfg.Output.Charts.Height,
		DPI:    cfg.Output.Charts.DPI,
	}
	paths, err := charts.Render(cfg.Output.Dir, r, opts)
	if err != nil {
		return fmt.Errorf("draw charts: %w", err)
	}

	log := logger.FromContext(cmd.Context())
	log.Info().Int("charts", len(paths)).Str("dir", cfg.Output.Dir).Msg("charts written")

	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintf(out, "✓ Chart: %s\n", p)
	}
	return nil
}
