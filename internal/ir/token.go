package ir

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/source"
)

// Token is a terminal node: literal content plus any leading trivia, or an
// explicit missing marker synthesized during error recovery. Missing tokens
// are zero-width and carry no trivia.
type Token struct {
	pos     uint32
	content string
	missing bool
	leading []Trivia
	anns    []Annotation
	diags   []diag.Diagnostic
}

// NewToken builds a token whose content starts at pos.
func NewToken(pos uint32, content string) *Token {
	return &Token{pos: pos, content: content}
}

// NewTokenWith builds a token preceded by leading trivia. pos is the start
// of the first trivia piece; the content follows the trivia.
func NewTokenWith(pos uint32, leading []Trivia, content string) *Token {
	return &Token{pos: pos, content: content, leading: leading}
}

// NewMissingToken synthesizes a zero-width missing token at pos.
func NewMissingToken(pos uint32) *Token {
	return &Token{pos: pos, missing: true}
}

func (t *Token) Kind() Kind { return KindToken }

func (t *Token) Pos() uint32 { return t.pos }

func (t *Token) End() uint32 { return t.pos + t.FullWidth() }

func (t *Token) FullWidth() uint32 {
	if t.missing {
		return 0
	}
	total := uint64(0)
	for _, tr := range t.leading {
		total += uint64(tr.Width())
	}
	total += uint64(len(t.content))
	width, err := safecast.Conv[uint32](total)
	if err != nil {
		panic(fmt.Errorf("token width overflow: %w", err))
	}
	return width
}

func (t *Token) Span() source.Span { return source.Span{Start: t.pos, End: t.End()} }

func (t *Token) Children() []Node { return nil }

func (t *Token) Annotations() []Annotation { return t.anns }

func (t *Token) Diagnostics() []diag.Diagnostic { return t.diags }

// Content returns the semantic text, "" for missing tokens.
func (t *Token) Content() string { return t.content }

func (t *Token) IsMissing() bool { return t.missing }

// Leading returns the trivia attached ahead of the content.
// The slice aliases internal storage; callers must not modify it.
func (t *Token) Leading() []Trivia { return t.leading }

func (t *Token) FullText() string {
	if t.missing {
		return ""
	}
	if len(t.leading) == 0 {
		return t.content
	}
	var sb strings.Builder
	t.writeFullText(&sb)
	return sb.String()
}

func (t *Token) writeFullText(sb *strings.Builder) {
	for _, tr := range t.leading {
		sb.WriteString(tr.Text)
	}
	sb.WriteString(t.content)
}

func (*Token) node() {}

// WithDiagnostics returns a copy of t with the diagnostics appended.
func (t *Token) WithDiagnostics(diags ...diag.Diagnostic) *Token {
	nt := *t
	nt.diags = append(append([]diag.Diagnostic(nil), t.diags...), diags...)
	return &nt
}

// WithAnnotation returns a copy of t carrying the annotation, replacing
// any existing annotation of the same kind.
func (t *Token) WithAnnotation(a Annotation) *Token {
	nt := *t
	nt.anns = replaceAnnotation(t.anns, a)
	return &nt
}
