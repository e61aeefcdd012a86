package lower

import (
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
)

// DocumentClassifierPass marks the primary namespace, class, and method
// blocks: the declarations code generation injects generated members
// into. The first block of each kind in pre-order wins; later ones are
// user-authored nested declarations and stay unmarked.
type DocumentClassifierPass struct{}

// Name implements pipeline.Pass.
func (DocumentClassifierPass) Name() string { return "document-classifier" }

// Priority implements pipeline.Pass.
func (DocumentClassifierPass) Priority() int { return PriorityDocumentClassifier }

// Execute implements pipeline.Pass.
func (p DocumentClassifierPass) Execute(doc *pipeline.Document, root ir.Node) ir.Node {
	v := &documentClassifier{BaseVisitor: ir.BaseVisitor{PassName: p.Name()}}
	return ir.Rewrite(v, root)
}

type documentClassifier struct {
	ir.BaseVisitor
	namespaceSeen bool
	classSeen     bool
	methodSeen    bool
}

func (v *documentClassifier) VisitBlock(b *ir.Block) ir.Node {
	// Claim the mark on entry so the pre-order first block of each kind
	// wins regardless of what the recursion below rebuilds.
	var mark ir.AnnotationKind
	marked := false
	switch b.Kind() {
	case ir.KindNamespace:
		if !v.namespaceSeen {
			v.namespaceSeen = true
			mark, marked = ir.AnnPrimaryNamespace, true
		}
	case ir.KindClass:
		if !v.classSeen {
			v.classSeen = true
			mark, marked = ir.AnnPrimaryClass, true
		}
	case ir.KindMethod:
		if !v.methodSeen {
			v.methodSeen = true
			mark, marked = ir.AnnPrimaryMethod, true
		}
	}

	rebuilt := ir.RewriteChildren(v, b)
	if !marked {
		return rebuilt
	}
	block, ok := rebuilt.(*ir.Block)
	if !ok {
		return rebuilt
	}
	return block.WithAnnotation(ir.Annotation{Kind: mark})
}
