package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajaybhargavb/Razor/internal/diag"
)

// newlineReplacer rewrites every platform line break into the literal
// two-character marker "LF", keeping dumps byte-identical across
// line-ending conventions.
var newlineReplacer = strings.NewReplacer("\r\n", "LF", "\r", "LF", "\n", "LF")

// Printer renders a tree to the deterministic dump format recorded
// baselines compare against. It is a read-only visitor: every leg returns
// its input unchanged and the only effect is writing to w.
//
// One Printer serializes one tree: the full-text anchor is emitted for
// exactly the first node visited and never again.
type Printer struct {
	w        io.Writer
	depth    int
	rootSeen bool
	err      error
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the dump of root to w.
func Dump(w io.Writer, root Node) error {
	return NewPrinter(w).Print(root)
}

// DumpString returns the dump of root as a string.
func DumpString(root Node) string {
	var sb strings.Builder
	_ = Dump(&sb, root)
	return sb.String()
}

// Print drives the printer over root and returns the first write error.
func (p *Printer) Print(root Node) error {
	Rewrite(p, root)
	return p.err
}

// VisitBlock emits one structural line per interior node:
//
//	indent Kind - [start..end) - FullWidth: n
//
// followed by " - Gen<generator> - editHandler" when a SpanContext
// annotation is attached, and by the one-time " - [fullText]" anchor on
// the first node overall. Children are then walked one level deeper.
func (p *Printer) VisitBlock(b *Block) Node {
	p.printIndent()
	p.printf("%s - %s - FullWidth: %d", b.Kind(), b.Span(), b.FullWidth())
	if sc, ok := SpanContextOf(b); ok {
		p.printf(" - Gen<%s> - %s", sc.Generator, sc.EditHandler)
	}
	if !p.rootSeen {
		p.rootSeen = true
		p.printf(" - [%s]", newlineReplacer.Replace(b.FullText()))
	}
	p.printf("\n")

	p.depth++
	for _, c := range b.children {
		Rewrite(p, c)
	}
	p.depth--
	return b
}

// VisitToken emits the token line: content (or "<Missing>"), a
// semicolon, and the token's diagnostics joined by comma in "<id><span>"
// form.
func (p *Printer) VisitToken(t *Token) Node {
	p.rootSeen = true
	p.printIndent()
	content := t.Content()
	if t.IsMissing() {
		content = "<Missing>"
	} else {
		content = newlineReplacer.Replace(content)
	}
	p.printf("%s;%s\n", content, diag.JoinRefs(t.Diagnostics()))
	return t
}

// VisitTrivia is not supported by the dump format; driving the printer
// over trivia is a programming error.
func (p *Printer) VisitTrivia(Trivia) Trivia {
	panic(&UnimplementedError{Pass: "ir.Printer", Leg: "VisitTrivia"})
}

func (p *Printer) printIndent() {
	for i := 0; i < p.depth; i++ {
		p.printf("    ")
	}
}

func (p *Printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
