package cmd

import (
	"fmt"

	"github.com/rustyeddy/walletstats/journal"
	"github.com/rustyeddy/walletstats/report"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the wallet summary",
	Long: `Load the wallet history and print growth, flows, realised PNL and
drawdown figures.

Examples:
  walletstats summary -i wallet.csv
  walletstats summary --org >> journal.org`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var summaryOrg bool

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryOrg, "org", false, "print an Org-mode block instead of text")
}

func runSummary(cmd *cobra.Command, args []string) error {
	r, err := buildReport(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summaryOrg {
		fmt.Fprint(out, journal.FormatSummaryOrg(r))
		return nil
	}
	report.PrintSummary(out, r)
	return nil
}
