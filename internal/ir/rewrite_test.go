package ir

import (
	"strings"
	"testing"
)

// replaceContent swaps every token whose content equals from.
type replaceContent struct {
	BaseVisitor
	from, to string
}

func (v replaceContent) VisitBlock(b *Block) Node {
	return RewriteChildren(v, b)
}

func (v replaceContent) VisitToken(t *Token) Node {
	if t.Content() == v.from {
		return NewToken(t.Pos(), v.to)
	}
	return t
}

// dropContent removes every token whose content equals from.
type dropContent struct {
	BaseVisitor
	from string
}

func (v dropContent) VisitBlock(b *Block) Node {
	return RewriteChildren(v, b)
}

func (v dropContent) VisitToken(t *Token) Node {
	if t.Content() == v.from {
		return nil
	}
	return t
}

// collector records the visit order without changing anything.
type collector struct {
	BaseVisitor
	seen *[]string
}

func (v collector) VisitBlock(b *Block) Node {
	*v.seen = append(*v.seen, b.Kind().String())
	return RewriteChildren(v, b)
}

func (v collector) VisitToken(t *Token) Node {
	*v.seen = append(*v.seen, t.Content())
	return t
}

func sampleTree() *Block {
	return NewBlock(KindDocument,
		NewBlock(KindMarkup, NewToken(0, "<p>")),
		NewBlock(KindExpression, NewToken(3, "@x")),
	)
}

func TestNopVisitorReturnsInputTree(t *testing.T) {
	tree := sampleTree()
	got := Rewrite(NopVisitor{BaseVisitor{PassName: "nop"}}, tree)
	if got != tree {
		t.Error("expected the input tree back, got a reallocated one")
	}
	if got.FullText() != tree.FullText() {
		t.Errorf("FullText() = %q, want %q", got.FullText(), tree.FullText())
	}
}

func TestRewriteSubstitutesChangedChild(t *testing.T) {
	markup := NewBlock(KindMarkup, NewToken(0, "<p>"))
	expr := NewBlock(KindExpression, NewToken(3, "@x"))
	tree := NewBlock(KindDocument, markup, expr)

	got := Rewrite(replaceContent{from: "@x", to: "@y"}, tree)

	nb, ok := got.(*Block)
	if !ok {
		t.Fatalf("expected *Block, got %T", got)
	}
	if nb == tree {
		t.Fatal("expected a rebuilt root")
	}
	// The untouched sibling subtree is the same allocation.
	if nb.Children()[0] != markup {
		t.Error("untouched subtree was reallocated")
	}
	if nb.Children()[1] == expr {
		t.Error("changed subtree was not substituted")
	}
	if got.FullText() != "<p>@y" {
		t.Errorf("FullText() = %q, want %q", got.FullText(), "<p>@y")
	}
	// The original tree is unchanged.
	if tree.FullText() != "<p>@x" {
		t.Errorf("input FullText() = %q, want %q", tree.FullText(), "<p>@x")
	}
}

func TestRewriteRemovesNilResults(t *testing.T) {
	tree := NewBlock(KindStatement,
		NewToken(0, "if"),
		NewToken(2, "drop"),
		NewToken(6, "(x)"),
	)

	got := Rewrite(dropContent{from: "drop"}, tree)

	nb, ok := got.(*Block)
	if !ok {
		t.Fatalf("expected *Block, got %T", got)
	}
	if len(nb.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(nb.Children()))
	}
	if got.FullText() != "if(x)" {
		t.Errorf("FullText() = %q, want %q", got.FullText(), "if(x)")
	}
}

func TestRewriteVisitsPreOrderLeftToRight(t *testing.T) {
	tree := NewBlock(KindDocument,
		NewBlock(KindMarkup, NewToken(0, "a"), NewToken(1, "b")),
		NewToken(2, "c"),
	)

	var seen []string
	Rewrite(collector{seen: &seen}, tree)

	want := "Document Markup a b c"
	if got := strings.Join(seen, " "); got != want {
		t.Errorf("visit order = %q, want %q", got, want)
	}
}

func TestBaseVisitorTriviaPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		err, ok := r.(*UnimplementedError)
		if !ok {
			t.Fatalf("expected *UnimplementedError, got %T", r)
		}
		want := "design-time-directive: VisitTrivia is not implemented"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	}()

	v := BaseVisitor{PassName: "design-time-directive"}
	v.VisitTrivia(Trivia{Kind: TriviaSpace, Text: " "})
}

func TestBaseVisitorDefaultPassName(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(*UnimplementedError)
		if !ok {
			t.Fatalf("expected *UnimplementedError, got %T", r)
		}
		if err.Pass != "visitor" {
			t.Errorf("Pass = %q, want %q", err.Pass, "visitor")
		}
		if err.Leg != "VisitTrivia" {
			t.Errorf("Leg = %q, want %q", err.Leg, "VisitTrivia")
		}
	}()

	BaseVisitor{}.VisitTrivia(Trivia{})
}
