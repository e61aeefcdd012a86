package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/source"
)

// CheckTree runs the positional invariants every tree must satisfy,
// producer output and pass output alike:
// 1) every node's range arithmetic holds: Pos + FullWidth == End
// 2) every interior node's width is the sum of its children's widths
// 3) missing tokens are zero-width
// Relocated subtrees keep their original-text anchors, so child
// contiguity is deliberately NOT checked here; see CheckParsedTree.
func CheckTree(root ir.Node) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}
	return checkNode(root, false)
}

// CheckParsedTree runs CheckTree plus the stricter invariants producer
// output must satisfy:
// 4) children tile the parent's range: first child starts at the parent's
// start, each child starts where the previous one ended, the last child
// ends at the parent's end
// 5) the root covers the file content exactly and every node's full text
// is the literal content slice it spans
func CheckParsedTree(root ir.Node, sf *source.File) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if err := checkNode(root, true); err != nil {
		return err
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Pos() != 0 || root.End() != lenContent {
		return fmt.Errorf("root %v does not cover content [0..%d)", root.Span(), lenContent)
	}
	return checkText(root, sf.Content)
}

func checkNode(n ir.Node, strict bool) error {
	// 1) range arithmetic
	if n.Pos()+n.FullWidth() != n.End() {
		return fmt.Errorf("%s %v: Pos+FullWidth = %d, End = %d",
			n.Kind(), n.Span(), n.Pos()+n.FullWidth(), n.End())
	}

	if t, ok := n.(*ir.Token); ok {
		// 3) missing tokens synthesize no text
		if t.IsMissing() && t.FullWidth() != 0 {
			return fmt.Errorf("missing token at %d has width %d", t.Pos(), t.FullWidth())
		}
		return nil
	}

	// 2) width is the sum of child widths
	var sum uint64
	for _, c := range n.Children() {
		sum += uint64(c.FullWidth())
	}
	if sum != uint64(n.FullWidth()) {
		return fmt.Errorf("%s %v: child widths sum to %d, FullWidth = %d",
			n.Kind(), n.Span(), sum, n.FullWidth())
	}

	// 4) contiguity, producer output only
	if strict {
		next := n.Pos()
		for i, c := range n.Children() {
			if c.Pos() != next {
				return fmt.Errorf("%s %v: child %d (%s) starts at %d, want %d",
					n.Kind(), n.Span(), i, c.Kind(), c.Pos(), next)
			}
			next = c.End()
		}
		if next != n.End() {
			return fmt.Errorf("%s %v: children end at %d, parent ends at %d",
				n.Kind(), n.Span(), next, n.End())
		}
	}

	for _, c := range n.Children() {
		if err := checkNode(c, strict); err != nil {
			return err
		}
	}
	return nil
}

func checkText(n ir.Node, content []byte) error {
	want := string(content[n.Pos():n.End()])
	if got := n.FullText(); got != want {
		return fmt.Errorf("%s %v: FullText %q, content slice %q", n.Kind(), n.Span(), got, want)
	}
	for _, c := range n.Children() {
		if err := checkText(c, content); err != nil {
			return err
		}
	}
	return nil
}
