package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rustyeddy/walletstats/config"
	"github.com/rustyeddy/walletstats/internal/logger"
	"github.com/rustyeddy/walletstats/report"
	"github.com/rustyeddy/walletstats/stats"
	"github.com/rustyeddy/walletstats/wallet"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "walletstats",
	Short: "Analyze an exchange wallet transaction history",
	Long: `Walletstats reads a wallet history export (CSV, optionally .xz
compressed) and derives balance, flow and PNL analytics from it.

It provides tools for:
  - Printing a summary of growth, flows, PNL and drawdown
  - Rendering an interactive HTML dashboard
  - Drawing PNG charts
  - Exporting the report as JSON, CSV, SQLite or XLSX

Settings come from a config file (--config), WALLETSTATS_* environment
variables (a .env file is loaded when present) and flags, in that order.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

var (
	cfgFile     string
	inputPath   string
	outputDir   string
	warmup      int
	strictOrder bool
	logLevel    string

	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	pf.StringVarP(&inputPath, "input", "i", "", "wallet history CSV (default wallet.csv)")
	pf.StringVarP(&outputDir, "output-dir", "o", "", "directory for rendered files (default report)")
	pf.IntVar(&warmup, "warmup", stats.DefaultWarmupOffset, "leading records skipped when locating the trough")
	pf.BoolVar(&strictOrder, "strict-order", false, "fail on out-of-order timestamps instead of sorting")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadSettings layers defaults, config file, environment and flags.
func loadSettings(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		c = loaded
	}
	if err := c.ApplyEnv(nil); err != nil {
		return err
	}

	pf := cmd.Flags()
	if pf.Changed("input") {
		c.Input.Path = inputPath
	}
	if pf.Changed("output-dir") {
		c.Output.Dir = outputDir
	}
	if pf.Changed("warmup") {
		c.Analysis.WarmupOffset = warmup
	}
	if pf.Changed("strict-order") {
		c.Input.StrictOrder = strictOrder
	}
	if pf.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	cfg = c

	l := logger.New(cfg.Log.Level)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx, l))
	return nil
}

// buildReport loads the configured history and runs every derivation.
// Nothing is written by it.
func buildReport(cmd *cobra.Command) (*report.Report, error) {
	log := logger.FromContext(cmd.Context())

	records, err := wallet.Load(cfg.Input.Path, wallet.LoadOptions{
		StrictOrder: cfg.Input.StrictOrder,
		Logger:      &log,
	})
	if err != nil {
		return nil, err
	}

	agg := stats.New(stats.Options{WarmupOffset: cfg.Analysis.WarmupOffset})
	r, err := report.Build(records, agg, report.Options{
		Source: cfg.Input.Path,
		MixTop: cfg.Analysis.MixTop,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("run_id", r.RunID).
		Int("records", r.Stats.TotalRecords).
		Int("warmup_offset", r.WarmupOffset).
		Msg("report built")
	return r, nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var missing *wallet.MissingInputError
	if errors.As(err, &missing) {
		fmt.Fprintf(w, "Hint: %s\n", missing.Hint())
	}
	var short *stats.EmptyTroughWindowError
	if errors.As(err, &short) {
		fmt.Fprintln(w, "Hint: lower --warmup for short histories")
	}
}
