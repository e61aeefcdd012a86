package lower

import (
	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
)

// ReservedObjectFieldName is the fixed identifier of the synthesized
// suppression field. The double underscore keeps it out of user
// namespaces.
const ReservedObjectFieldName = "__o"

// DesignTimeDirectivePass restructures every class declaration for
// design-time compilation: directive tokens anywhere inside the class are
// hoisted, in encounter order, under one synthesized directive holder
// inserted as the first child, and a synthesized always-null object field
// declaration follows as the second child. Hoisting them into one place
// lets the code generator suppress unresolved-symbol warnings for exactly
// that region; the field guarantees the class body is never empty.
//
// Nested classes are processed independently: a directive token belongs to
// the holder of its innermost enclosing class. Directive tokens outside
// any class are left in place and reported. A class already shaped
// [holder, field, ...] is left unchanged, which makes the pass idempotent.
type DesignTimeDirectivePass struct{}

// Name implements pipeline.Pass.
func (DesignTimeDirectivePass) Name() string { return "design-time-directive" }

// Priority implements pipeline.Pass.
func (DesignTimeDirectivePass) Priority() int { return PriorityDesignTimeDirective }

// Execute implements pipeline.Pass.
func (p DesignTimeDirectivePass) Execute(doc *pipeline.Document, root ir.Node) ir.Node {
	v := &designTimeVisitor{
		BaseVisitor: ir.BaseVisitor{PassName: p.Name()},
		doc:         doc,
	}
	return ir.Rewrite(v, root)
}

type designTimeVisitor struct {
	ir.BaseVisitor
	doc *pipeline.Document
}

func (v *designTimeVisitor) VisitBlock(b *ir.Block) ir.Node {
	switch b.Kind() {
	case ir.KindClass:
		return v.lowerClass(b)
	case ir.KindDirectiveToken:
		// Reached outside any class scope; hoisting has nowhere to put it.
		v.reportOrphan(b)
	}
	return ir.RewriteChildren(v, b)
}

// lowerClass rebuilds one class declaration. The accumulator is scoped to
// this call, finalized only after the whole subtree has been walked, so
// no in-progress child list is ever shared across recursion levels.
func (v *designTimeVisitor) lowerClass(class *ir.Block) ir.Node {
	if alreadyLowered(class) {
		// Only nested classes may still need work; hoisted tokens stay.
		return mapChildren(class, v.rescan)
	}

	var hoisted []ir.Node
	rest := make([]ir.Node, 0, len(class.Children()))
	for _, c := range class.Children() {
		kept, collected := v.strip(c)
		hoisted = append(hoisted, collected...)
		if kept != nil {
			rest = append(rest, kept)
		}
	}

	children := make([]ir.Node, 0, len(rest)+2)
	children = append(children, newDirectiveHolder(hoisted, class.Pos()))
	children = append(children, newSuppressionField(class.Pos()))
	children = append(children, rest...)
	return class.WithChildren(children...)
}

// strip walks one subtree of a class being lowered, removing every
// directive token and collecting them in encounter order. Nested classes
// are lowered independently and keep their own directive tokens.
func (v *designTimeVisitor) strip(n ir.Node) (ir.Node, []ir.Node) {
	b, ok := n.(*ir.Block)
	if !ok {
		return n, nil
	}
	switch b.Kind() {
	case ir.KindDirectiveToken:
		return nil, []ir.Node{b}
	case ir.KindClass:
		return v.lowerClass(b), nil
	}

	var collected []ir.Node
	var out []ir.Node
	changed := false
	for i, c := range b.Children() {
		kept, got := v.strip(c)
		collected = append(collected, got...)
		if kept != c && !changed {
			changed = true
			out = make([]ir.Node, 0, len(b.Children()))
			out = append(out, b.Children()[:i]...)
		}
		if changed && kept != nil {
			out = append(out, kept)
		}
	}
	if !changed {
		return b, collected
	}
	return b.WithChildren(out...), collected
}

// rescan descends into an already-lowered class looking for nested
// classes only. Holder subtrees are final; nothing inside them is
// re-hoisted or reported.
func (v *designTimeVisitor) rescan(n ir.Node) ir.Node {
	b, ok := n.(*ir.Block)
	if !ok {
		return n
	}
	switch b.Kind() {
	case ir.KindClass:
		return v.lowerClass(b)
	case ir.KindDirectiveHolder:
		return b
	}
	return mapChildren(b, v.rescan)
}

// mapChildren rebuilds b substituting each child with f(child).
// Identity-aware like ir.RewriteChildren; a nil result removes the child.
func mapChildren(b *ir.Block, f func(ir.Node) ir.Node) ir.Node {
	var out []ir.Node
	changed := false
	for i, c := range b.Children() {
		nc := f(c)
		if nc != c && !changed {
			changed = true
			out = make([]ir.Node, 0, len(b.Children()))
			out = append(out, b.Children()[:i]...)
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

func (v *designTimeVisitor) reportOrphan(b *ir.Block) {
	if v.doc == nil || v.doc.Bag == nil {
		return
	}
	diag.ReportWarning(v.doc.Reporter(), diag.LowerOrphanDirective, b.Span(),
		"directive token outside a class declaration is not hoisted").Emit()
}

func alreadyLowered(class *ir.Block) bool {
	ch := class.Children()
	return len(ch) >= 2 &&
		ch[0].Kind() == ir.KindDirectiveHolder &&
		ch[1].Kind() == ir.KindField
}

// newDirectiveHolder wraps the hoisted directive tokens. A class with no
// directive tokens still gets a holder, anchored zero-width at the class
// position.
func newDirectiveHolder(hoisted []ir.Node, classPos uint32) *ir.Block {
	if len(hoisted) == 0 {
		return ir.NewBlockAt(ir.KindDirectiveHolder, classPos)
	}
	return ir.NewBlock(ir.KindDirectiveHolder, hoisted...)
}

// newSuppressionField synthesizes the always-null object field that keeps
// the class body non-empty. All tokens anchor at the class position; the
// declaration reads "internal static object __o = null;".
func newSuppressionField(pos uint32) *ir.Block {
	space := []ir.Trivia{{Kind: ir.TriviaSpace, Text: " "}}
	return ir.NewBlock(ir.KindField,
		ir.NewToken(pos, "internal"),
		ir.NewTokenWith(pos, space, "static"),
		ir.NewTokenWith(pos, space, "object"),
		ir.NewTokenWith(pos, space, ReservedObjectFieldName),
		ir.NewTokenWith(pos, space, "="),
		ir.NewTokenWith(pos, space, "null"),
		ir.NewToken(pos, ";"),
	)
}
