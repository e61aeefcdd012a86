package lower

import (
	"strings"

	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
)

// DirectiveClassifierPass attaches a span context to every markup,
// expression, statement, and directive-token block that does not carry
// one yet: which chunk generator produces its code and how incremental
// edits inside it re-parse. Directive tokens are tagged with the name of
// their innermost enclosing directive.
//
// Runs after DesignTimeDirectivePass so hoisted directive tokens are
// classified in their final holder position.
type DirectiveClassifierPass struct{}

// Name implements pipeline.Pass.
func (DirectiveClassifierPass) Name() string { return "directive-classifier" }

// Priority implements pipeline.Pass.
func (DirectiveClassifierPass) Priority() int { return PriorityDirectiveClassifier }

// Execute implements pipeline.Pass.
func (p DirectiveClassifierPass) Execute(doc *pipeline.Document, root ir.Node) ir.Node {
	v := &directiveClassifier{BaseVisitor: ir.BaseVisitor{PassName: p.Name()}}
	return ir.Rewrite(v, root)
}

type directiveClassifier struct {
	ir.BaseVisitor
	directive string // name of the innermost enclosing directive
}

func (v *directiveClassifier) VisitBlock(b *ir.Block) ir.Node {
	if b.Kind() == ir.KindDirective {
		prev := v.directive
		v.directive = directiveName(b)
		rebuilt := ir.RewriteChildren(v, b)
		v.directive = prev
		return rebuilt
	}

	rebuilt := ir.RewriteChildren(v, b)
	block, ok := rebuilt.(*ir.Block)
	if !ok {
		return rebuilt
	}
	if _, ok := ir.SpanContextOf(block); ok {
		return rebuilt
	}

	switch b.Kind() {
	case ir.KindMarkup:
		return ir.WithSpanContext(block, ir.SpanContext{
			Generator:   ir.MarkupGenerator{},
			EditHandler: ir.EditHandler{Name: "Markup", Accepts: ir.AcceptAny},
		})
	case ir.KindExpression:
		return ir.WithSpanContext(block, ir.SpanContext{
			Generator:   ir.ExpressionGenerator{},
			EditHandler: ir.EditHandler{Name: "ImplicitExpression", Accepts: ir.AcceptNonWhitespace},
		})
	case ir.KindStatement:
		return ir.WithSpanContext(block, ir.SpanContext{
			Generator:   ir.StatementGenerator{},
			EditHandler: ir.EditHandler{Name: "Statement", Accepts: ir.AcceptAny},
		})
	case ir.KindDirectiveToken:
		return ir.WithSpanContext(block, ir.SpanContext{
			Generator:   ir.DirectiveTokenGenerator{Directive: v.directive},
			EditHandler: ir.EditHandler{Name: "DirectiveToken", Accepts: ir.AcceptNonWhitespace},
		})
	}
	return rebuilt
}

// directiveName extracts the directive keyword from the first real token
// of a directive block, without its "@" sigil.
func directiveName(b *ir.Block) string {
	for _, c := range b.Children() {
		if t, ok := c.(*ir.Token); ok && !t.IsMissing() {
			return strings.TrimPrefix(t.Content(), "@")
		}
	}
	return ""
}
