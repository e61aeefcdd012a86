// Package main implements the razor CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ajaybhargavb/Razor/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "razor",
	Short: "Razor syntax tree toolkit",
	Long:  `Razor builds, lowers and verifies immutable syntax trees for template documents`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 256, "maximum number of diagnostics to collect per document")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|phase|detail|debug)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to a file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to a file on exit")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
