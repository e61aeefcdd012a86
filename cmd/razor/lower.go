package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajaybhargavb/Razor/internal/diagfmt"
	"github.com/ajaybhargavb/Razor/internal/fixture"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
	"github.com/ajaybhargavb/Razor/internal/source"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] <file.tree>",
	Short: "Run the lowering pipeline over a tree vector",
	Long:  `Lower decodes a tree vector, runs the lowering passes over the tree and prints the result`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().String("format", "text", "output format (text|json)")
	lowerCmd.Flags().Bool("runtime", false, "use the runtime profile (skip design-time restructuring)")
	lowerCmd.Flags().StringSlice("disable", nil, "disable the named pass (repeatable)")
	lowerCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

// runLower executes the "lower" command: it decodes the vector, runs the
// configured passes over the tree, prints diagnostics to stderr and writes
// the lowered dump to stdout. The process exits non-zero when the document
// collected errors.
func runLower(cmd *cobra.Command, args []string) error {
	vectorPath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	runtimeProfile, err := cmd.Flags().GetBool("runtime")
	if err != nil {
		return fmt.Errorf("failed to get runtime flag: %w", err)
	}

	disabledNames, err := cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return fmt.Errorf("failed to get disable flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer profCleanup()

	file, err := source.Load(vectorPath)
	if err != nil {
		return fmt.Errorf("failed to load vector: %w", err)
	}

	passes := assemblePasses(!runtimeProfile, func(name string) bool {
		return slices.Contains(disabledNames, name)
	})

	result, err := pipeline.Process(cmd.Context(), file, &pipeline.ProcessRequest{
		Parser: fixture.Loader{},
		Passes: passes,
		Options: pipeline.ParseOptions{
			DesignTime:     !runtimeProfile,
			MaxDiagnostics: maxDiagnostics,
		},
	})
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}

	doc := result.Document
	if err := printDiagnostics(cmd, doc, format, withNotes); err != nil {
		return err
	}

	switch format {
	case "text":
		dumpStart := time.Now()
		if err := ir.Dump(os.Stdout, result.Root); err != nil {
			return err
		}
		result.Timings.Set(pipeline.StageDump, time.Since(dumpStart))
	case "json":
		if err := diagfmt.TreeJSON(os.Stdout, result.Root); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if showTimings {
		printStageTimings(os.Stderr, result.Timings, result.PassTimings)
	}

	if doc.Bag.HasErrors() {
		// Suppress cobra usage output; the diagnostics are already printed.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
