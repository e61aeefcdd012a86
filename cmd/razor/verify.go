package main

import (
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] [dir]",
	Short: "Verify tree vectors against recorded baselines",
	Long: `Verify runs the lowering pipeline over every tree vector in a project and
compares the dumps and diagnostics against the recorded baseline files`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	verifyCmd.Flags().Bool("no-cache", false, "re-verify vectors with fresh receipts")
	verifyCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	verifyCmd.Flags().String("fixtures", "", "vector directory (overrides razor.toml)")
	verifyCmd.Flags().String("baselines", "", "baseline directory (overrides razor.toml)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	return runSuite(cmd, args, false)
}
