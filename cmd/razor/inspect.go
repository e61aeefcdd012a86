package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajaybhargavb/Razor/internal/diagfmt"
	"github.com/ajaybhargavb/Razor/internal/fixture"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <file.tree>",
	Short: "Parse a tree vector and print its debug dump",
	Long:  `Inspect decodes a tree vector file and prints the resulting syntax tree without running any lowering passes`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "text", "output format (text|json)")
	inspectCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

// runInspect executes the "inspect" command: it decodes the vector, prints
// decode diagnostics to stderr, and writes the tree dump to stdout.
func runInspect(cmd *cobra.Command, args []string) error {
	vectorPath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	doc, err := fixture.LoadFile(vectorPath, pipeline.ParseOptions{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return fmt.Errorf("failed to load vector: %w", err)
	}

	if err := printDiagnostics(cmd, doc, format, withNotes); err != nil {
		return err
	}

	switch format {
	case "text":
		return ir.Dump(os.Stdout, doc.Root)
	case "json":
		return diagfmt.TreeJSON(os.Stdout, doc.Root)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
