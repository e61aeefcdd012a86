package ir

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/source"
)

// Node is one element of an immutable document tree. Exactly two
// implementations exist: *Block for interior nodes and *Token for
// terminals. Accessors are pure; nothing mutates a node after
// construction — rewriting builds new parents around old children.
type Node interface {
	Kind() Kind
	// Pos is the absolute start offset into the originating text.
	Pos() uint32
	// End is the absolute end offset, exclusive. End == Pos + FullWidth.
	End() uint32
	// FullWidth is the node's extent including attached trivia.
	FullWidth() uint32
	Span() source.Span
	// Children returns the ordered child sequence (nil for tokens).
	// The slice aliases internal storage; callers must not modify it.
	Children() []Node
	// Annotations returns the node's annotation set, order-stable.
	Annotations() []Annotation
	Diagnostics() []diag.Diagnostic
	// FullText reconstructs the exact text the node was derived from,
	// trivia included. For relocated subtrees this is the original text
	// of each piece, concatenated in tree order.
	FullText() string

	node()
}

// Block is an interior node: a kind tag over an ordered child sequence.
// Its range is derived from the children at construction time.
type Block struct {
	kind     Kind
	pos      uint32
	width    uint32
	children []Node
	anns     []Annotation
	diags    []diag.Diagnostic
}

// NewBlock builds an interior node over children. The range is derived:
// the block starts where its first child starts and spans the children's
// summed full widths.
func NewBlock(kind Kind, children ...Node) *Block {
	b := &Block{kind: kind, children: children}
	if len(children) > 0 {
		b.pos = children[0].Pos()
		b.width = sumWidths(children)
	}
	return b
}

// NewBlockAt builds a childless, zero-width block anchored at pos.
// Synthesized containers (an empty directive holder) use this form.
func NewBlockAt(kind Kind, pos uint32) *Block {
	return &Block{kind: kind, pos: pos}
}

func (b *Block) Kind() Kind { return b.kind }

func (b *Block) Pos() uint32 { return b.pos }

func (b *Block) End() uint32 { return b.pos + b.width }

func (b *Block) FullWidth() uint32 { return b.width }

func (b *Block) Span() source.Span { return source.Span{Start: b.pos, End: b.End()} }

func (b *Block) Children() []Node { return b.children }

func (b *Block) Annotations() []Annotation { return b.anns }

func (b *Block) Diagnostics() []diag.Diagnostic { return b.diags }

func (*Block) node() {}

func (b *Block) FullText() string {
	var sb strings.Builder
	writeFullText(&sb, b)
	return sb.String()
}

// WithChildren returns a copy of b over the given children, range
// re-derived. Annotations and diagnostics carry over. A childless result
// keeps b's anchor position at zero width.
func (b *Block) WithChildren(children ...Node) *Block {
	nb := &Block{kind: b.kind, pos: b.pos, children: children, anns: b.anns, diags: b.diags}
	if len(children) > 0 {
		nb.pos = children[0].Pos()
		nb.width = sumWidths(children)
	}
	return nb
}

// WithAnnotation returns a copy of b carrying the annotation. At most one
// annotation per kind is kept: an existing annotation of the same kind is
// replaced in place, so the set stays order-stable.
func (b *Block) WithAnnotation(a Annotation) *Block {
	nb := *b
	nb.anns = replaceAnnotation(b.anns, a)
	return &nb
}

// WithDiagnostics returns a copy of b with the diagnostics appended.
func (b *Block) WithDiagnostics(diags ...diag.Diagnostic) *Block {
	nb := *b
	nb.diags = append(append([]diag.Diagnostic(nil), b.diags...), diags...)
	return &nb
}

func writeFullText(sb *strings.Builder, n Node) {
	if t, ok := n.(*Token); ok {
		t.writeFullText(sb)
		return
	}
	for _, c := range n.Children() {
		writeFullText(sb, c)
	}
}

func sumWidths(children []Node) uint32 {
	var total uint64
	for _, c := range children {
		total += uint64(c.FullWidth())
	}
	width, err := safecast.Conv[uint32](total)
	if err != nil {
		panic(fmt.Errorf("tree width overflow: %w", err))
	}
	return width
}

func replaceAnnotation(anns []Annotation, a Annotation) []Annotation {
	out := make([]Annotation, len(anns))
	copy(out, anns)
	for i := range out {
		if out[i].Kind == a.Kind {
			out[i] = a
			return out
		}
	}
	return append(out, a)
}
