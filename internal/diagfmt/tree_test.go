package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/source"
)

// sampleTree builds a small document over the text "<p>@x":
// markup with a span context, an expression whose token went missing.
func sampleTree() ir.Node {
	markup := ir.NewBlock(ir.KindMarkup, ir.NewToken(0, "<p>"))
	markup = ir.WithSpanContext(markup, ir.SpanContext{
		Generator:   ir.MarkupGenerator{},
		EditHandler: ir.EditHandler{Name: "Markup", Accepts: ir.AcceptAny},
	})

	missing := ir.NewMissingToken(5).WithDiagnostics(
		diag.NewError(diag.ParseMissingToken, source.NewSpan(5, 5), "missing token"),
	)
	expr := ir.NewBlock(ir.KindExpression, ir.NewToken(3, "@x"), missing)

	return ir.NewBlock(ir.KindDocument, markup, expr)
}

func TestBuildTreeOutputShape(t *testing.T) {
	got := BuildTreeOutput(sampleTree())

	want := TreeNodeOutput{
		Kind:      "Document",
		Span:      "[0..5)",
		FullWidth: 5,
		Children: []TreeNodeOutput{
			{
				Kind:        "Markup",
				Span:        "[0..3)",
				FullWidth:   3,
				Generator:   "Markup",
				EditHandler: "Markup;Accepts:Any",
				Children: []TreeNodeOutput{
					{Kind: "Token", Span: "[0..3)", FullWidth: 3, Content: "<p>"},
				},
			},
			{
				Kind:      "Expression",
				Span:      "[3..5)",
				FullWidth: 2,
				Children: []TreeNodeOutput{
					{Kind: "Token", Span: "[3..5)", FullWidth: 2, Content: "@x"},
					{
						Kind:        "Token",
						Span:        "[5..5)",
						Missing:     true,
						Diagnostics: []string{"RZ1005[5..5)"},
					},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree output mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTreeOutputMarks(t *testing.T) {
	class := ir.NewBlock(ir.KindClass, ir.NewToken(0, "class C {}"))
	class = class.WithAnnotation(ir.Annotation{Kind: ir.AnnPrimaryClass})

	got := BuildTreeOutput(class)
	if diff := cmp.Diff([]string{"PrimaryClass"}, got.Marks); diff != "" {
		t.Errorf("marks mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeJSONRoundTrips(t *testing.T) {
	root := sampleTree()

	var buf bytes.Buffer
	if err := TreeJSON(&buf, root); err != nil {
		t.Fatalf("TreeJSON() error: %v", err)
	}

	var decoded TreeNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v\noutput: %s", err, buf.String())
	}

	if diff := cmp.Diff(BuildTreeOutput(root), decoded); diff != "" {
		t.Errorf("decoded tree mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeJSONTokenTrivia(t *testing.T) {
	// Trivia stays folded into the token's span and width, not rendered
	// as separate nodes.
	tok := ir.NewTokenWith(0, []ir.Trivia{{Kind: ir.TriviaSpace, Text: "  "}}, "class")
	got := BuildTreeOutput(tok)

	if got.Span != "[0..7)" || got.FullWidth != 7 {
		t.Errorf("unexpected span %s width %d", got.Span, got.FullWidth)
	}
	if got.Content != "class" {
		t.Errorf("expected content without trivia, got %q", got.Content)
	}
}
