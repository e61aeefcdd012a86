package pipeline

import (
	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/source"
)

// DefaultMaxDiagnostics bounds a document bag when ParseOptions leaves
// MaxDiagnostics at zero.
const DefaultMaxDiagnostics = 256

// ParseOptions configures how a producer builds a document tree.
type ParseOptions struct {
	// DesignTime selects the design-time profile: downstream passes
	// restructure class declarations so generated code type-checks even
	// when directive symbols are unresolved.
	DesignTime bool
	// MaxDiagnostics bounds the document bag. Zero means the default.
	MaxDiagnostics int
}

// Document is one source document moving through the pipeline: the file it
// came from, the options it was parsed under, the tree the producer built,
// and the diagnostics collected so far. Passes read Root via the runner and
// append to Bag; they never modify File or Options.
type Document struct {
	File    *source.File
	Options ParseOptions
	Root    ir.Node
	Bag     *diag.Bag
}

// Reporter adapts the document bag to the diag.Reporter contract, so
// passes emit through the same seam producers do.
func (d *Document) Reporter() diag.Reporter {
	return diag.BagReporter{Bag: d.Bag}
}

// Parser produces a document tree from file content. Implementations never
// fail on malformed input: what cannot be parsed becomes missing tokens
// plus diagnostics in the document bag.
type Parser interface {
	Parse(file *source.File, opts ParseOptions) *Document
}
