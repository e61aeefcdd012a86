package pipeline

import "github.com/ajaybhargavb/Razor/internal/ir"

// Pass transforms a document tree into a new tree. Execute never mutates
// the input tree and must be referentially transparent: the same input
// tree yields the same output tree, so pipeline runs are reproducible.
// Diagnostics a pass produces go into doc.Bag.
type Pass interface {
	// Name identifies the pass in progress events and timing reports.
	Name() string
	// Priority orders passes across the whole pipeline; lower runs first.
	// Equal priorities keep registration order.
	Priority() int
	// Execute returns the output tree for the given input tree.
	Execute(doc *Document, root ir.Node) ir.Node
}
