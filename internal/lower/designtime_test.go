package lower

import (
	"testing"

	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
	"github.com/ajaybhargavb/Razor/internal/testkit"
)

var space = []ir.Trivia{{Kind: ir.TriviaSpace, Text: " "}}

// classWithTwoDirectives builds the tree for
// "class C { @inject Foo x; @inject Bar y; stuff }".
func classWithTwoDirectives() *ir.Block {
	dirX := ir.NewBlock(ir.KindDirective,
		ir.NewTokenWith(9, space, "@inject"),
		ir.NewBlock(ir.KindDirectiveToken,
			ir.NewTokenWith(17, space, "Foo"),
			ir.NewTokenWith(21, space, "x"),
		),
		ir.NewToken(23, ";"),
	)
	dirY := ir.NewBlock(ir.KindDirective,
		ir.NewTokenWith(24, space, "@inject"),
		ir.NewBlock(ir.KindDirectiveToken,
			ir.NewTokenWith(32, space, "Bar"),
			ir.NewTokenWith(36, space, "y"),
		),
		ir.NewToken(38, ";"),
	)
	return ir.NewBlock(ir.KindClass,
		ir.NewToken(0, "class"),
		ir.NewTokenWith(5, space, "C"),
		ir.NewTokenWith(7, space, "{"),
		dirX,
		dirY,
		ir.NewBlock(ir.KindStatement, ir.NewTokenWith(39, space, "stuff")),
		ir.NewTokenWith(45, space, "}"),
	)
}

func testDoc() *pipeline.Document {
	return &pipeline.Document{Bag: diag.NewBag(16)}
}

func countKind(n ir.Node, kind ir.Kind) int {
	count := 0
	if n.Kind() == kind {
		count++
	}
	for _, c := range n.Children() {
		count += countKind(c, kind)
	}
	return count
}

func TestDesignTimeHoistsDirectiveTokens(t *testing.T) {
	out := DesignTimeDirectivePass{}.Execute(testDoc(), classWithTwoDirectives())

	class, ok := out.(*ir.Block)
	if !ok || class.Kind() != ir.KindClass {
		t.Fatalf("expected a class block, got %T %v", out, out.Kind())
	}
	ch := class.Children()
	if len(ch) != 9 {
		t.Fatalf("expected 9 children, got %d", len(ch))
	}

	// Holder first, field second, original body after.
	holder, ok := ch[0].(*ir.Block)
	if !ok || holder.Kind() != ir.KindDirectiveHolder {
		t.Fatalf("child 0 = %v, want DirectiveHolder", ch[0].Kind())
	}
	if got := len(holder.Children()); got != 2 {
		t.Fatalf("holder has %d children, want 2", got)
	}
	// Encounter order: the Foo token was met before the Bar token.
	if got := holder.Children()[0].FullText(); got != " Foo x" {
		t.Errorf("first hoisted token text = %q, want %q", got, " Foo x")
	}
	if got := holder.Children()[1].FullText(); got != " Bar y" {
		t.Errorf("second hoisted token text = %q, want %q", got, " Bar y")
	}

	field, ok := ch[1].(*ir.Block)
	if !ok || field.Kind() != ir.KindField {
		t.Fatalf("child 1 = %v, want Field", ch[1].Kind())
	}
	if got := field.FullText(); got != "internal static object __o = null;" {
		t.Errorf("field text = %q, want %q", got, "internal static object __o = null;")
	}
	if got := field.Pos(); got != class.Pos() {
		t.Errorf("field anchored at %d, want class position %d", got, class.Pos())
	}

	// Directive blocks remain, emptied of their tokens, in original order.
	wantKinds := []ir.Kind{ir.KindToken, ir.KindToken, ir.KindToken, ir.KindDirective, ir.KindDirective, ir.KindStatement, ir.KindToken}
	for i, want := range wantKinds {
		if got := ch[i+2].Kind(); got != want {
			t.Errorf("child %d = %v, want %v", i+2, got, want)
		}
	}
	for _, c := range ch[2:] {
		if n := countKind(c, ir.KindDirectiveToken); n != 0 {
			t.Errorf("%v still contains %d directive tokens", c.Kind(), n)
		}
	}

	if err := testkit.CheckTree(out); err != nil {
		t.Errorf("lowered tree invariants: %v", err)
	}
}

func TestDesignTimeInsertsEmptyHolder(t *testing.T) {
	class := ir.NewBlock(ir.KindClass,
		ir.NewToken(4, "class"),
		ir.NewTokenWith(9, space, "D"),
		ir.NewTokenWith(11, space, "{"),
		ir.NewTokenWith(13, space, "}"),
	)

	out := DesignTimeDirectivePass{}.Execute(testDoc(), class)
	ch := out.Children()
	if len(ch) != 6 {
		t.Fatalf("expected 6 children, got %d", len(ch))
	}
	holder := ch[0]
	if holder.Kind() != ir.KindDirectiveHolder {
		t.Fatalf("child 0 = %v, want DirectiveHolder", holder.Kind())
	}
	if got := holder.FullWidth(); got != 0 {
		t.Errorf("empty holder width = %d, want 0", got)
	}
	if got := holder.Pos(); got != 4 {
		t.Errorf("empty holder anchored at %d, want 4", got)
	}
	if ch[1].Kind() != ir.KindField {
		t.Errorf("child 1 = %v, want Field", ch[1].Kind())
	}
	// Original body keeps its relative order.
	if got := ch[2].FullText(); got != "class" {
		t.Errorf("child 2 text = %q, want %q", got, "class")
	}
}

func TestDesignTimeNestedClassScoping(t *testing.T) {
	inner := ir.NewBlock(ir.KindClass,
		ir.NewToken(10, "class"),
		ir.NewTokenWith(15, space, "Inner"),
		ir.NewBlock(ir.KindDirectiveToken, ir.NewTokenWith(21, space, "Baz"), ir.NewTokenWith(25, space, "z")),
	)
	outer := ir.NewBlock(ir.KindClass,
		ir.NewToken(0, "class"),
		ir.NewTokenWith(5, space, "Outer"),
		inner,
		ir.NewBlock(ir.KindDirectiveToken, ir.NewTokenWith(27, space, "Foo"), ir.NewTokenWith(31, space, "x")),
	)

	out := DesignTimeDirectivePass{}.Execute(testDoc(), outer)
	ch := out.Children()

	outerHolder := ch[0].(*ir.Block)
	if got := len(outerHolder.Children()); got != 1 {
		t.Fatalf("outer holder has %d tokens, want 1", got)
	}
	if got := outerHolder.Children()[0].FullText(); got != " Foo x" {
		t.Errorf("outer holder token = %q, want %q", got, " Foo x")
	}

	// The nested class keeps its own directive token in its own holder.
	var lowered *ir.Block
	for _, c := range ch[2:] {
		if b, ok := c.(*ir.Block); ok && b.Kind() == ir.KindClass {
			lowered = b
			break
		}
	}
	if lowered == nil {
		t.Fatal("nested class missing from lowered output")
	}
	innerHolder := lowered.Children()[0].(*ir.Block)
	if innerHolder.Kind() != ir.KindDirectiveHolder {
		t.Fatalf("nested child 0 = %v, want DirectiveHolder", innerHolder.Kind())
	}
	if got := len(innerHolder.Children()); got != 1 {
		t.Fatalf("nested holder has %d tokens, want 1", got)
	}
	if got := innerHolder.Children()[0].FullText(); got != " Baz z" {
		t.Errorf("nested holder token = %q, want %q", got, " Baz z")
	}
}

func TestDesignTimeIsIdempotent(t *testing.T) {
	doc := testDoc()
	pass := DesignTimeDirectivePass{}

	once := pass.Execute(doc, classWithTwoDirectives())
	twice := pass.Execute(doc, once)

	// A lowered class with no nested classes is returned as-is.
	if twice != once {
		t.Error("second run rebuilt an already-lowered tree")
	}
	if got := ir.DumpString(twice); got != ir.DumpString(once) {
		t.Error("second run changed the dump")
	}
}

func TestDesignTimeReportsOrphanDirectiveToken(t *testing.T) {
	doc := testDoc()
	root := ir.NewBlock(ir.KindDocument,
		ir.NewBlock(ir.KindDirectiveToken, ir.NewToken(0, "Foo"), ir.NewTokenWith(3, space, "x")),
	)

	out := DesignTimeDirectivePass{}.Execute(doc, root)
	if out != root {
		t.Error("expected the tree unchanged")
	}
	diags := doc.Bag.Items()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Code != diag.LowerOrphanDirective {
		t.Errorf("diagnostic code = %v, want LowerOrphanDirective", diags[0].Code)
	}
}
