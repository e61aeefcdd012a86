package main

import (
	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept [flags] [dir]",
	Short: "Record current pipeline output as the new baselines",
	Long: `Accept runs the lowering pipeline over every tree vector in a project and
records the dumps and diagnostics as the baseline files future verify runs
compare against. A vector with zero diagnostics gets no diagnostics file;
a stale one is deleted`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAccept,
}

func init() {
	acceptCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	acceptCmd.Flags().Bool("no-cache", false, "re-verify vectors with fresh receipts")
	acceptCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	acceptCmd.Flags().String("fixtures", "", "vector directory (overrides razor.toml)")
	acceptCmd.Flags().String("baselines", "", "baseline directory (overrides razor.toml)")
}

func runAccept(cmd *cobra.Command, args []string) error {
	return runSuite(cmd, args, true)
}
