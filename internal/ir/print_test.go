package ir

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/source"
)

func TestDumpBasicTree(t *testing.T) {
	doc := NewBlock(KindDocument,
		NewBlock(KindMarkup, NewToken(0, "<p>")),
		NewBlock(KindExpression, NewToken(3, "@x")),
	)

	want := "Document - [0..5) - FullWidth: 5 - [<p>@x]\n" +
		"    Markup - [0..3) - FullWidth: 3\n" +
		"        <p>;\n" +
		"    Expression - [3..5) - FullWidth: 2\n" +
		"        @x;\n"
	if got := DumpString(doc); got != want {
		t.Errorf("DumpString() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpIsDeterministic(t *testing.T) {
	doc := NewBlock(KindDocument,
		NewBlock(KindMarkup, NewToken(0, "<p>")),
		NewBlock(KindExpression, NewToken(3, "@x")),
	)

	first := DumpString(doc)
	second := DumpString(doc)
	if first != second {
		t.Errorf("dumps differ:\n%s\nvs:\n%s", first, second)
	}
	if got := strings.Count(first, "[<p>@x]"); got != 1 {
		t.Errorf("full-text anchor appears %d times, want 1", got)
	}
}

func TestDumpIndentFollowsDepth(t *testing.T) {
	tree := NewBlock(KindDocument,
		NewBlock(KindNamespace,
			NewBlock(KindClass, NewToken(0, "c")),
		),
	)

	want := "Document - [0..1) - FullWidth: 1 - [c]\n" +
		"    Namespace - [0..1) - FullWidth: 1\n" +
		"        Class - [0..1) - FullWidth: 1\n" +
		"            c;\n"
	if got := DumpString(tree); got != want {
		t.Errorf("DumpString() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpSpanContextLine(t *testing.T) {
	expr := WithSpanContext(
		NewBlock(KindExpression, NewToken(0, "@DateTime.Now")),
		SpanContext{
			Generator:   ExpressionGenerator{},
			EditHandler: EditHandler{Name: "ImplicitExpression", Accepts: AcceptNonWhitespace},
		},
	)

	want := "Expression - [0..13) - FullWidth: 13 - Gen<Expr> - ImplicitExpression;Accepts:NonWhitespace - [@DateTime.Now]\n" +
		"    @DateTime.Now;\n"
	if got := DumpString(expr); got != want {
		t.Errorf("DumpString() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpMissingToken(t *testing.T) {
	d := diag.NewError(diag.ParseMissingToken, source.NewSpan(2, 2), "missing condition")
	blk := NewBlock(KindStatement,
		NewToken(0, "if"),
		NewMissingToken(2).WithDiagnostics(d),
	)

	want := "Statement - [0..2) - FullWidth: 2 - [if]\n" +
		"    if;\n" +
		"    <Missing>;RZ1005[2..2)\n"
	if got := DumpString(blk); got != want {
		t.Errorf("DumpString() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpJoinsTokenDiagnostics(t *testing.T) {
	d1 := diag.NewError(diag.ParseBadTokenText, source.NewSpan(0, 3), "bad text")
	d2 := diag.NewWarning(diag.LowerOrphanDirective, source.NewSpan(3, 5), "orphan directive")
	tok := NewToken(0, "@qux").WithDiagnostics(d1, d2)

	want := "@qux;RZ1004[0..3),RZ2001[3..5)\n"
	if got := DumpString(tok); got != want {
		t.Errorf("DumpString() = %q, want %q", got, want)
	}
}

func TestDumpNormalizesLineBreaks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"lf", "line1\nline2", "line1LFline2"},
		{"crlf", "a\r\nb", "aLFb"},
		{"cr", "a\rb", "aLFb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blk := NewBlock(KindMarkup, NewToken(0, tt.content))
			out := DumpString(blk)
			if strings.Contains(out, "\r") {
				t.Error("dump contains a raw carriage return")
			}
			if got := strings.Count(out, "\n"); got != 2 {
				t.Errorf("dump has %d line breaks, want 2 structural ones", got)
			}
			if !strings.Contains(out, "["+tt.want+"]") {
				t.Errorf("anchor not normalized: %q", out)
			}
			if !strings.Contains(out, "    "+tt.want+";") {
				t.Errorf("token content not normalized: %q", out)
			}
		})
	}
}

func TestPrinterTriviaPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		err, ok := r.(*UnimplementedError)
		if !ok {
			t.Fatalf("expected *UnimplementedError, got %T", r)
		}
		if err.Pass != "ir.Printer" {
			t.Errorf("Pass = %q, want %q", err.Pass, "ir.Printer")
		}
	}()

	NewPrinter(io.Discard).VisitTrivia(Trivia{Kind: TriviaSpace, Text: " "})
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func TestDumpReportsWriteError(t *testing.T) {
	doc := NewBlock(KindDocument, NewToken(0, "x"))
	if err := Dump(failWriter{}, doc); err == nil {
		t.Error("expected a write error")
	}
}
