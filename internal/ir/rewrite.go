package ir

import (
	"fmt"
)

// Visitor is the traversal seam for tree passes. Rewrite drives it:
// tokens dispatch to VisitToken, interior nodes to VisitBlock, and trivia
// to VisitTrivia when a pass opts into trivia walking. Legs return the
// node to substitute; returning the input keeps the subtree as-is.
//
// Implementations embed BaseVisitor for the legs they do not care about
// and route unhandled block kinds through RewriteChildren, which preserves
// tree well-formedness. The framework does not validate post-conditions:
// returning a node of incompatible shape is the pass's own bug.
type Visitor interface {
	VisitBlock(b *Block) Node
	VisitToken(t *Token) Node
	VisitTrivia(tr Trivia) Trivia
}

// Rewrite is the polymorphic entry point: it dispatches n to the visitor
// leg matching its shape. Traversal driven through Rewrite is strictly
// pre-order, left-to-right, and synchronous.
func Rewrite(v Visitor, n Node) Node {
	switch t := n.(type) {
	case *Token:
		return v.VisitToken(t)
	case *Block:
		return v.VisitBlock(t)
	default:
		panic(fmt.Errorf("ir: unknown node implementation %T", n))
	}
}

// RewriteChildren is the default interior behavior: visit each child in
// order and rebuild b substituting every child whose visit result differs.
// Identity-aware: when no child changes, b itself is returned and no node
// is reallocated. A nil visit result removes the child from the rebuilt
// node.
func RewriteChildren(v Visitor, b *Block) Node {
	var out []Node
	changed := false
	for i, c := range b.children {
		nc := Rewrite(v, c)
		if nc != c && !changed {
			changed = true
			out = make([]Node, 0, len(b.children))
			out = append(out, b.children[:i]...)
		}
		if changed && nc != nil {
			out = append(out, nc)
		}
	}
	if !changed {
		return b
	}
	return b.WithChildren(out...)
}

// BaseVisitor supplies the identity token leg and the fail-loud trivia
// leg most passes want. PassName labels unimplemented-capability failures.
type BaseVisitor struct {
	PassName string
}

// VisitToken returns the token unchanged.
func (BaseVisitor) VisitToken(t *Token) Node { return t }

// VisitTrivia is deliberately unimplemented: a pass that wants trivia
// walking must override it. Reaching this leg means the pass was driven
// over a tree or mode outside its declared support.
func (b BaseVisitor) VisitTrivia(Trivia) Trivia {
	panic(&UnimplementedError{Pass: b.passName(), Leg: "VisitTrivia"})
}

func (b BaseVisitor) passName() string {
	if b.PassName == "" {
		return "visitor"
	}
	return b.PassName
}

// NopVisitor rebuilds every node with unchanged children. Because
// substitution is identity-aware, the result of Rewrite(NopVisitor{...}, n)
// is n itself; the type exists to pin that contract down in tests and to
// serve as the template for concrete passes.
type NopVisitor struct {
	BaseVisitor
}

func (v NopVisitor) VisitBlock(b *Block) Node {
	return RewriteChildren(v, b)
}

// UnimplementedError reports a traversal leg a concrete pass deliberately
// does not support. It is raised as a panic and must never be swallowed:
// it signals a programming error, not a source problem.
type UnimplementedError struct {
	Pass string
	Leg  string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s: %s is not implemented", e.Pass, e.Leg)
}
