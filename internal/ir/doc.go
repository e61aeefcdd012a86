// Package ir defines the intermediate tree a document compiles through:
// the node model, the visitor/rewriter that transforms it, and the
// deterministic printer that dumps it for baseline comparison.
//
// # Node model
//
// A tree is built once by a producer (see internal/fixture for the vector
// loader, internal/pipeline for the producer contract) and never mutated
// afterwards. Interior nodes are *Block values — a Kind tag over an
// ordered child sequence; terminals are *Token values carrying literal
// content, leading trivia and an explicit missing marker for error
// recovery. Every node knows its half-open range into the originating
// text: Pos, End and FullWidth with End == Pos + FullWidth always.
//
// Producers emit trees whose children tile the parent's range exactly;
// passes may relocate or synthesize nodes, after which ranges stay
// anchored to the text each node was derived from. Cross-cutting
// metadata rides on nodes as annotations, at most one per kind; the
// SpanContext annotation correlates a node with the code-generation
// strategy and edit behavior of its span. Diagnostics are plain data
// collected on nodes and in bags, never control flow.
//
// # Rewriting
//
// Rewrite(v, n) drives a Visitor over a tree in strict pre-order,
// left-to-right. RewriteChildren supplies the default interior behavior:
// rebuild the node substituting changed children, identity-aware so
// untouched subtrees are never reallocated. Passes embed BaseVisitor and
// override only the legs they need; a leg a pass deliberately does not
// support fails loudly with *UnimplementedError rather than silently
// skipping.
//
// # Dumping
//
// Printer serializes a tree to the whitespace-significant text form the
// baseline harness records and compares: one line per node, 4-space
// indentation per depth level, a one-time full-text anchor on the root,
// and every line break in emitted strings replaced by the literal marker
// "LF". The format is a bit-exact external contract — change it only
// together with every recorded baseline.
package ir
