package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/rustyeddy/walletstats/config"
	"github.com/rustyeddy/walletstats/journal"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List reports stored in a SQLite export",
	Long: `Query report runs recorded by "export --format sqlite".

Without arguments every run is listed, newest first. With a run ID the
run's summary is printed as an Org-mode block.

Examples:
  walletstats runs --db report/wallet.sqlite
  walletstats runs 01HZX3Q7K9ABCDEF0123456789`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

var (
	runsDBPath string
	runsOrg    bool
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVarP(&runsDBPath, "db", "d", "", "path to SQLite export (default <output-dir>/wallet.sqlite)")
	runsCmd.Flags().BoolVar(&runsOrg, "org", false, "print every run as an Org-mode block")
}

func runRuns(cmd *cobra.Command, args []string) error {
	path := runsDBPath
	if path == "" {
		c := *cfg
		c.Export = config.ExportConfig{Type: "sqlite"}
		path = c.ExportPath()
	}

	// opening a missing file would create an empty database
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("sqlite export %s not found; run \"walletstats export --format sqlite\" first", path)
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		run, err := j.GetRun(args[0])
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}
		fmt.Fprint(out, journal.FormatRunsOrg([]journal.Run{run}))
		return nil
	}

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if runsOrg {
		fmt.Fprint(out, journal.FormatRunsOrg(runs))
		return nil
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tGENERATED\tSOURCE\tRECORDS\tEND BALANCE\tGROWTH %")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.8f\t%.2f\n",
			r.RunID, r.Generated.UTC().Format("2006-01-02 15:04:05"), r.Source,
			r.Stats.TotalRecords, r.Stats.EndBalance, r.Stats.GrowthPct)
	}
	return tw.Flush()
}
