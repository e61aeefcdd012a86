package fixture_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/fixture"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
	"github.com/ajaybhargavb/Razor/internal/source"
	"github.com/ajaybhargavb/Razor/internal/testkit"
)

func load(t *testing.T, vector string) *pipeline.Document {
	t.Helper()
	f := source.NewVirtualFile(t.Name()+fixture.Ext, []byte(vector))
	return fixture.Loader{}.Parse(f, pipeline.ParseOptions{})
}

// outline flattens a tree back to "depth:Kind" lines for shape checks.
func outline(n ir.Node) []string {
	var lines []string
	var walk func(n ir.Node, depth int)
	walk = func(n ir.Node, depth int) {
		lines = append(lines, fmt.Sprintf("%d:%s", depth, n.Kind()))
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return lines
}

func TestLoaderBuildsTree(t *testing.T) {
	doc := load(t, `# a two-region document
Document
  Markup
    "<p>"
  Expression
    "@x"
`)

	want := []string{
		"0:Document",
		"1:Markup",
		"2:Token",
		"1:Expression",
		"2:Token",
	}
	if diff := cmp.Diff(want, outline(doc.Root)); diff != "" {
		t.Fatalf("tree shape mismatch (-want +got):\n%s", diff)
	}
	if got := string(doc.File.Content); got != "<p>@x" {
		t.Errorf("reassembled text = %q, want %q", got, "<p>@x")
	}
	if doc.Root.End() != 5 {
		t.Errorf("root End() = %d, want 5", doc.Root.End())
	}
	if doc.Bag.Len() != 0 {
		t.Errorf("clean vector produced %d diagnostics", doc.Bag.Len())
	}
	if err := testkit.CheckParsedTree(doc.Root, doc.File); err != nil {
		t.Errorf("CheckParsedTree: %v", err)
	}
}

func TestLoaderAssignsOffsetsWithTrivia(t *testing.T) {
	doc := load(t, `Document
  Class
    "class"
    " " "C"
`)

	class := doc.Root.Children()[0].(*ir.Block)
	name := class.Children()[1].(*ir.Token)
	if name.Pos() != 5 || name.End() != 7 {
		t.Errorf("second token range = [%d..%d), want [5..7)", name.Pos(), name.End())
	}
	if got := name.Content(); got != "C" {
		t.Errorf("second token content = %q, want %q", got, "C")
	}
	if got := doc.Root.FullText(); got != "class C" {
		t.Errorf("FullText() = %q, want %q", got, "class C")
	}
	if err := testkit.CheckParsedTree(doc.Root, doc.File); err != nil {
		t.Errorf("CheckParsedTree: %v", err)
	}
}

func TestLoaderMissingTokenWithDiagnostic(t *testing.T) {
	doc := load(t, `Document
  Class
    "class"
    missing
      diag RZ1005 "expected an identifier"
`)

	class := doc.Root.Children()[0].(*ir.Block)
	tok := class.Children()[1].(*ir.Token)
	if !tok.IsMissing() {
		t.Fatal("second token should be missing")
	}
	if tok.Pos() != 5 || tok.FullWidth() != 0 {
		t.Errorf("missing token at [%d), width %d, want [5) width 0", tok.Pos(), tok.FullWidth())
	}
	diags := tok.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("missing token carries %d diagnostics, want 1", len(diags))
	}
	if got := diags[0].Ref(); got != "RZ1005[5..5)" {
		t.Errorf("diagnostic ref = %q, want %q", got, "RZ1005[5..5)")
	}
	if doc.Bag.Len() != 1 {
		t.Errorf("bag holds %d diagnostics, want 1", doc.Bag.Len())
	}
}

func TestLoaderBlockDiagnosticDefaultsToNodeSpan(t *testing.T) {
	doc := load(t, `Document
  Statement
    "foo();"
    diag warning RZ2001
`)

	stmt := doc.Root.Children()[0].(*ir.Block)
	diags := stmt.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("statement carries %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning", d.Severity)
	}
	if d.Primary != source.NewSpan(0, 6) {
		t.Errorf("span = %v, want [0..6)", d.Primary)
	}
	if d.Message != diag.LowerOrphanDirective.Title() {
		t.Errorf("message = %q, want the catalog title", d.Message)
	}
}

func TestLoaderExplicitDiagnosticSpan(t *testing.T) {
	doc := load(t, `Document
  Expression
    "@qux()"
      diag RZ1004 [0..4) "partial"
`)

	expr := doc.Root.Children()[0].(*ir.Block)
	tok := expr.Children()[0].(*ir.Token)
	diags := tok.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("token carries %d diagnostics, want 1", len(diags))
	}
	if got := diags[0].Ref(); got != "RZ1004[0..4)" {
		t.Errorf("diagnostic ref = %q, want %q", got, "RZ1004[0..4)")
	}
}

func TestLoaderUnknownKindBecomesMissingToken(t *testing.T) {
	doc := load(t, `Document
  Bogus
    "zap"
`)

	kids := doc.Root.Children()
	if len(kids) != 1 {
		t.Fatalf("document has %d children, want 1", len(kids))
	}
	tok, ok := kids[0].(*ir.Token)
	if !ok || !tok.IsMissing() {
		t.Fatalf("unknown kind should decode as a missing token, got %T", kids[0])
	}
	if len(tok.Diagnostics()) != 1 {
		t.Errorf("synthesized token carries %d diagnostics, want 1", len(tok.Diagnostics()))
	}
	if doc.Root.FullWidth() != 0 {
		t.Errorf("subtree under the unknown kind must be dropped, width = %d", doc.Root.FullWidth())
	}
	if doc.Bag.Len() != 1 {
		t.Errorf("bag holds %d diagnostics, want 1", doc.Bag.Len())
	}
	if items := doc.Bag.Items(); items[0].Code != diag.ParseUnknownKind {
		t.Errorf("code = %v, want ParseUnknownKind", items[0].Code)
	}
}

func TestLoaderSecondRootSkipped(t *testing.T) {
	doc := load(t, `Document
  "a"
Markup
  "b"
`)

	if doc.Root.Kind() != ir.KindDocument {
		t.Errorf("root kind = %s, want Document", doc.Root.Kind())
	}
	if got := doc.Root.FullText(); got != "a" {
		t.Errorf("root text = %q, want %q", got, "a")
	}
	if doc.Bag.Len() != 1 {
		t.Fatalf("bag holds %d diagnostics, want 1", doc.Bag.Len())
	}
	item := doc.Bag.Items()[0]
	if item.Code != diag.ParseUnexpectedLine {
		t.Errorf("code = %v, want ParseUnexpectedLine", item.Code)
	}
	if want := "vector line 3"; !strings.Contains(item.Message, want) {
		t.Errorf("message %q does not name the offending line %q", item.Message, want)
	}
}

func TestLoaderEmptyVector(t *testing.T) {
	doc := load(t, "# only a comment\n")

	if doc.Root.Kind() != ir.KindDocument || doc.Root.FullWidth() != 0 {
		t.Errorf("empty vector root = %s width %d, want empty Document", doc.Root.Kind(), doc.Root.FullWidth())
	}
	if doc.Bag.Len() != 1 || doc.Bag.Items()[0].Code != diag.ParseEmptyDocument {
		t.Errorf("want exactly one ParseEmptyDocument diagnostic, got %v", doc.Bag.Items())
	}
}

func TestLoaderNilFile(t *testing.T) {
	doc := fixture.Loader{}.Parse(nil, pipeline.ParseOptions{})
	if doc.Root == nil || doc.File == nil || doc.Bag == nil {
		t.Fatal("Parse(nil) must still produce a complete document")
	}
	if doc.Bag.Items()[0].Code != diag.ParseEmptyDocument {
		t.Errorf("code = %v, want ParseEmptyDocument", doc.Bag.Items()[0].Code)
	}
}

func TestLoaderBadTokenLiteral(t *testing.T) {
	doc := load(t, `Document
  "unterminated
`)

	tok, ok := doc.Root.Children()[0].(*ir.Token)
	if !ok || !tok.IsMissing() {
		t.Fatal("bad literal should decode as a missing token")
	}
	if doc.Bag.Items()[0].Code != diag.ParseBadTokenText {
		t.Errorf("code = %v, want ParseBadTokenText", doc.Bag.Items()[0].Code)
	}
}

func TestLoaderClampsIndentJumps(t *testing.T) {
	doc := load(t, `Document
      Markup
        "x"
`)

	want := []string{"0:Document", "1:Markup", "2:Token"}
	if diff := cmp.Diff(want, outline(doc.Root)); diff != "" {
		t.Fatalf("tree shape mismatch (-want +got):\n%s", diff)
	}
	if doc.Bag.Len() != 2 {
		t.Errorf("bag holds %d diagnostics, want 2 indent reports", doc.Bag.Len())
	}
	for _, item := range doc.Bag.Items() {
		if item.Code != diag.ParseBadIndent {
			t.Errorf("code = %v, want ParseBadIndent", item.Code)
		}
	}
}

func TestLoaderParseOptionsFlowThrough(t *testing.T) {
	f := source.NewVirtualFile("opts.tree", []byte("Document\n  \"a\"\n"))
	opts := pipeline.ParseOptions{DesignTime: true, MaxDiagnostics: 3}
	doc := fixture.Loader{}.Parse(f, opts)

	if !doc.Options.DesignTime {
		t.Error("DesignTime option was dropped")
	}
	if doc.Bag.Cap() != 3 {
		t.Errorf("bag cap = %d, want 3", doc.Bag.Cap())
	}
}

func TestLoadFileDesignTimeVector(t *testing.T) {
	doc, err := fixture.LoadFile(filepath.Join("testdata", "design_time.tree"), pipeline.ParseOptions{DesignTime: true})
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	want := "class C { @inject Foo x; @inject Bar y; stuff }"
	if got := string(doc.File.Content); got != want {
		t.Errorf("reassembled text = %q, want %q", got, want)
	}
	if doc.Bag.Len() != 0 {
		t.Errorf("clean vector produced %d diagnostics", doc.Bag.Len())
	}
	if err := testkit.CheckParsedTree(doc.Root, doc.File); err != nil {
		t.Errorf("CheckParsedTree: %v", err)
	}
}
