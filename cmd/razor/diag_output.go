package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajaybhargavb/Razor/internal/diagfmt"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
)

// printDiagnostics renders the document's diagnostics to stderr in the
// same family as the payload format: pretty text normally, JSON when the
// payload is JSON so tooling reads one format end to end.
func printDiagnostics(cmd *cobra.Command, doc *pipeline.Document, format string, withNotes bool) error {
	if !doc.Bag.HasErrors() && !doc.Bag.HasWarnings() {
		return nil
	}

	if format == "json" {
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     withNotes,
		}
		if err := diagfmt.JSON(os.Stderr, doc.Bag, doc.File, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
		return nil
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	diagfmt.Pretty(os.Stderr, doc.Bag, doc.File, diagfmt.PrettyOpts{
		Color:     useColor,
		ShowNotes: withNotes,
	})
	return nil
}
