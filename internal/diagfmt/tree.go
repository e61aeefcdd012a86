package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/ajaybhargavb/Razor/internal/ir"
)

// TreeNodeOutput is one tree node rendered for JSON output. Spans use the
// "[start..end)" form shared with dumps and diagnostic references.
type TreeNodeOutput struct {
	Kind        string           `json:"kind"`
	Span        string           `json:"span"`
	FullWidth   uint32           `json:"full_width"`
	Content     string           `json:"content,omitempty"`
	Missing     bool             `json:"missing,omitempty"`
	Generator   string           `json:"generator,omitempty"`
	EditHandler string           `json:"edit_handler,omitempty"`
	Marks       []string         `json:"marks,omitempty"`
	Diagnostics []string         `json:"diagnostics,omitempty"`
	Children    []TreeNodeOutput `json:"children,omitempty"`
}

// BuildTreeOutput shapes the JSON form of a tree without serializing it.
func BuildTreeOutput(root ir.Node) TreeNodeOutput {
	out := TreeNodeOutput{
		Kind:      root.Kind().String(),
		Span:      root.Span().String(),
		FullWidth: root.FullWidth(),
	}

	if t, ok := root.(*ir.Token); ok {
		if t.IsMissing() {
			out.Missing = true
		} else {
			out.Content = t.Content()
		}
	}

	if sc, ok := ir.SpanContextOf(root); ok {
		out.Generator = sc.Generator.String()
		out.EditHandler = sc.EditHandler.String()
	}
	for _, kind := range []ir.AnnotationKind{
		ir.AnnPrimaryNamespace,
		ir.AnnPrimaryClass,
		ir.AnnPrimaryMethod,
	} {
		if ir.HasAnnotation(root, kind) {
			out.Marks = append(out.Marks, kind.String())
		}
	}

	for _, d := range root.Diagnostics() {
		out.Diagnostics = append(out.Diagnostics, d.Ref())
	}

	children := root.Children()
	if len(children) > 0 {
		out.Children = make([]TreeNodeOutput, len(children))
		for i, c := range children {
			out.Children[i] = BuildTreeOutput(c)
		}
	}
	return out
}

// TreeJSON writes the tree rooted at root as indented JSON.
func TreeJSON(w io.Writer, root ir.Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTreeOutput(root))
}
