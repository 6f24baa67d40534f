package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the walletstats CLI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "walletstats version %s\n", version)
		fmt.Fprintln(out, "Wallet transaction history analytics")
		fmt.Fprintln(out, "https://github.com/rustyeddy/walletstats")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
