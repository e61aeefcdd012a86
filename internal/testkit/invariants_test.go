package testkit

import (
	"strings"
	"testing"

	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/source"
)

func TestCheckParsedTreeAcceptsTiledTree(t *testing.T) {
	root := ir.NewBlock(ir.KindDocument,
		ir.NewBlock(ir.KindMarkup, ir.NewToken(0, "<p>")),
		ir.NewBlock(ir.KindExpression, ir.NewToken(3, "@x")),
	)
	sf := source.NewVirtualFile("mem:doc", []byte("<p>@x"))

	if err := CheckParsedTree(root, sf); err != nil {
		t.Errorf("CheckParsedTree() = %v, want nil", err)
	}
}

func TestCheckParsedTreeRejectsGap(t *testing.T) {
	// Children at [0..1) and [5..6): a 4-byte gap.
	root := ir.NewBlock(ir.KindDocument,
		ir.NewToken(0, "a"),
		ir.NewToken(5, "b"),
	)
	sf := source.NewVirtualFile("mem:doc", []byte("ab"))

	err := CheckParsedTree(root, sf)
	if err == nil {
		t.Fatal("expected an error for non-contiguous children")
	}
	if !strings.Contains(err.Error(), "starts at 5, want 1") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckTreeAcceptsRelocatedTree(t *testing.T) {
	// A lowered shape: children keep original-text anchors and are not
	// contiguous anymore.
	root := ir.NewBlock(ir.KindClass,
		ir.NewBlock(ir.KindDirectiveHolder, ir.NewBlock(ir.KindDirectiveToken, ir.NewToken(9, "Foo"))),
		ir.NewToken(0, "class"),
	)

	if err := CheckTree(root); err != nil {
		t.Errorf("CheckTree() = %v, want nil", err)
	}
}

func TestCheckParsedTreeRejectsContentMismatch(t *testing.T) {
	root := ir.NewBlock(ir.KindDocument, ir.NewToken(0, "xy"))
	sf := source.NewVirtualFile("mem:doc", []byte("ab"))

	err := CheckParsedTree(root, sf)
	if err == nil {
		t.Fatal("expected an error for mismatched content")
	}
	if !strings.Contains(err.Error(), "FullText") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckTreeNilRoot(t *testing.T) {
	if err := CheckTree(nil); err == nil {
		t.Error("expected an error for a nil root")
	}
}
