package ir

import (
	"fmt"
	"strings"
)

// SpanContext pairs the code-generation strategy that produced a span with
// the edit behavior governing how incremental edits re-parse it. Attached
// to nodes as an AnnSpanContext annotation and read-only afterwards.
type SpanContext struct {
	Generator   ChunkGenerator
	EditHandler EditHandler
}

// SpanContextOf returns the SpanContext annotation on n, if present.
func SpanContextOf(n Node) (SpanContext, bool) {
	a, ok := FindAnnotation(n, AnnSpanContext)
	if !ok {
		return SpanContext{}, false
	}
	sc, ok := a.Data.(SpanContext)
	return sc, ok
}

// WithSpanContext attaches sc to b as its AnnSpanContext annotation.
func WithSpanContext(b *Block, sc SpanContext) *Block {
	return b.WithAnnotation(Annotation{Kind: AnnSpanContext, Data: sc})
}

// ChunkGenerator describes the code-generation behavior a span maps to.
// Implementations are small value descriptors; String is what dumps emit
// inside "Gen<...>".
type ChunkGenerator interface {
	fmt.Stringer
	chunkGenerator()
}

// MarkupGenerator emits literal markup.
type MarkupGenerator struct{}

func (MarkupGenerator) chunkGenerator() {}

func (MarkupGenerator) String() string { return "Markup" }

// ExpressionGenerator emits an evaluated, encoded expression.
type ExpressionGenerator struct{}

func (ExpressionGenerator) chunkGenerator() {}

func (ExpressionGenerator) String() string { return "Expr" }

// StatementGenerator emits a code statement verbatim.
type StatementGenerator struct{}

func (StatementGenerator) chunkGenerator() {}

func (StatementGenerator) String() string { return "Stmt" }

// DirectiveTokenGenerator emits a directive operand for design-time
// type-checking.
type DirectiveTokenGenerator struct {
	Directive string
}

func (DirectiveTokenGenerator) chunkGenerator() {}

func (g DirectiveTokenGenerator) String() string {
	if g.Directive == "" {
		return "DirectiveToken"
	}
	return "DirectiveToken {" + g.Directive + "}"
}

// AcceptedChars describes which typed characters an edit handler absorbs
// without forcing a structural re-parse.
type AcceptedChars uint8

const (
	AcceptNone          AcceptedChars = 0
	AcceptNewLine       AcceptedChars = 1 << 0
	AcceptWhitespace    AcceptedChars = 1 << 1
	AcceptNonWhitespace AcceptedChars = 1 << 2
	AcceptAny                         = AcceptNewLine | AcceptWhitespace | AcceptNonWhitespace
)

func (a AcceptedChars) String() string {
	switch a {
	case AcceptNone:
		return "None"
	case AcceptAny:
		return "Any"
	}
	parts := make([]string, 0, 3)
	if a&AcceptNewLine != 0 {
		parts = append(parts, "NewLine")
	}
	if a&AcceptWhitespace != 0 {
		parts = append(parts, "Whitespace")
	}
	if a&AcceptNonWhitespace != 0 {
		parts = append(parts, "NonWhitespace")
	}
	return strings.Join(parts, "|")
}

// EditHandler describes how incremental edits inside a span are re-parsed.
type EditHandler struct {
	Name    string
	Accepts AcceptedChars
}

func (h EditHandler) String() string {
	name := h.Name
	if name == "" {
		name = "Span"
	}
	return fmt.Sprintf("%s;Accepts:%s", name, h.Accepts)
}
