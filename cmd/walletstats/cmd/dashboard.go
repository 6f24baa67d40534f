package cmd

import (
	"fmt"

	"github.com/rustyeddy/walletstats/dashboard"
	"github.com/rustyeddy/walletstats/internal/logger"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Write the interactive HTML dashboard",
	Long: `Render the report as a single HTML page with metric cards and
charts. The page is written to <output-dir>/<dashboard>.

Example:
  walletstats dashboard -i wallet.csv -o report`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	r, err := buildReport(cmd)
	if err != nil {
		return err
	}

	path := cfg.DashboardPath()
	if err := dashboard.WriteFile(path, r); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}

	log := logger.FromContext(cmd.Context())
	log.Info().Str("path", path).Msg("dashboard written")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Dashboard: %s\n", path)
	return nil
}
