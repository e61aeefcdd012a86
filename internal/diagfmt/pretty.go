package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	accentColor  = color.New(color.Bold)
)

// Pretty renders diagnostics in a human-readable form, one entry per
// diagnostic:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	  <source line>
//	     ^~~~
//
// Expects bag.Sort() to have run when stable ordering matters. Notes
// follow their diagnostic, indented, when opts.ShowNotes is set. Color is
// opt-in.
func Pretty(w io.Writer, bag *diag.Bag, file *source.File, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		printDiagnostic(w, d, file, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, file *source.File, opts PrettyOpts) {
	label := severityLabel(d.Severity)
	if opts.Color {
		label = severityColor(d.Severity).Sprint(label)
	}
	code := d.Code.ID()
	if opts.Color {
		code = accentColor.Sprint(code)
	}

	fmt.Fprintf(w, "%s: %s %s: %s\n", location(d.Primary, file, opts), label, code, d.Message)
	if !opts.NoPreview {
		printPreview(w, d.Primary, file)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s: %s\n", location(n.Span, file, opts), n.Msg)
		}
	}
}

// location renders "<path>:<line>:<col>", or byte offsets when no file is
// available to resolve against.
func location(sp source.Span, file *source.File, opts PrettyOpts) string {
	if file == nil {
		return sp.String()
	}
	start, _ := file.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", file.FormatPath(opts.PathMode.name(), opts.BaseDir), start.Line, start.Col)
}

// printPreview writes the offending source line with a caret marker under
// the span. Multi-line spans are marked to the end of their first line.
func printPreview(w io.Writer, sp source.Span, file *source.File) {
	if file == nil {
		return
	}
	start, end := file.Resolve(sp)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		width = len(line) - int(start.Col) + 1
	}
	if width < 1 {
		width = 1
	}

	fmt.Fprintf(w, "  %s\n", line)
	fmt.Fprintf(w, "  %s^%s\n", strings.Repeat(" ", int(start.Col)-1), strings.Repeat("~", width-1))
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
