// Package fixture loads line-oriented tree vectors: the harness input
// format for building document trees without a language front-end.
//
// A vector describes one tree as an indented outline, two spaces per
// level. Each line is one of:
//
//	Kind           opens a block node ("Document", "Class", ...)
//	"text"         a token; earlier strings on the line are leading trivia
//	missing        a zero-width missing token
//	diag ...       attaches a diagnostic to the node one level up
//	# ...          comment; blank lines are skipped too
//
// Token offsets are assigned left to right: each token starts where the
// previous one ended, so the reassembled source text is the concatenation
// of every token's trivia and content. Loading is total: malformed lines
// become missing tokens plus diagnostics in the document bag, never an
// error.
//
// A diag line reads "diag [info|warning|error] RZnnnn [span] ["message"]".
// The span defaults to the owning node's span, the severity to error, and
// the message to the code's catalog title.
package fixture

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ajaybhargavb/Razor/internal/diag"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
	"github.com/ajaybhargavb/Razor/internal/source"
)

// Ext is the vector file extension.
const Ext = ".tree"

// Loader implements pipeline.Parser for tree vectors. The returned
// document's file carries the reassembled source text under the vector's
// path, so spans resolve against the text the tree actually covers.
type Loader struct{}

// Parse implements pipeline.Parser. It never fails: whatever cannot be
// decoded becomes diagnostics in the document bag.
func (Loader) Parse(file *source.File, opts pipeline.ParseOptions) *pipeline.Document {
	limit := opts.MaxDiagnostics
	if limit <= 0 {
		limit = pipeline.DefaultMaxDiagnostics
	}
	bag := diag.NewBag(limit)

	var name string
	var data []byte
	if file != nil {
		name, data = file.Path, file.Content
	}
	root := decode(name, data, bag)

	return &pipeline.Document{
		File:    source.NewVirtualFile(name, []byte(root.FullText())),
		Options: opts,
		Root:    root,
		Bag:     bag,
	}
}

// LoadFile reads and parses the vector at path. The error covers I/O
// only; malformed vector content comes back as diagnostics in the
// document bag.
func LoadFile(path string, opts pipeline.ParseOptions) (*pipeline.Document, error) {
	f, err := source.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read vector: %w", err)
	}
	return Loader{}.Parse(f, opts), nil
}

type pendingDiag struct {
	sev     diag.Severity
	code    diag.Code
	span    source.Span
	hasSpan bool
	msg     string
}

func (pd pendingDiag) resolve(def source.Span) diag.Diagnostic {
	sp := pd.span
	if !pd.hasSpan {
		sp = def
	}
	return diag.New(pd.sev, pd.code, sp, pd.msg)
}

// frame is an open block: its children and diagnostics accumulate until a
// line at the same or a shallower depth closes it.
type frame struct {
	kind     ir.Kind
	depth    int
	startOff uint32
	children []ir.Node
	diags    []pendingDiag
}

type decoder struct {
	rep   diag.Reporter
	off   uint32
	stack []*frame
	root  ir.Node

	// Most recent token, for diag attachment. Valid until the next
	// structural line.
	leafFrame *frame
	leafDepth int
	hasLeaf   bool

	// Depth below which lines are dropped after an unrecoverable line,
	// -1 when not skipping.
	skipBelow int
}

func decode(name string, data []byte, bag *diag.Bag) ir.Node {
	d := &decoder{rep: diag.BagReporter{Bag: bag}, skipBelow: -1}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		d.line(lineNo, sc.Text())
	}
	if err := sc.Err(); err != nil {
		d.report(diag.ParseUnexpectedLine, fmt.Sprintf("reading vector %s: %v", name, err))
	}

	d.closeAll()
	if d.root == nil {
		d.report(diag.ParseEmptyDocument, fmt.Sprintf("vector %s describes no nodes", name))
		d.root = ir.NewBlockAt(ir.KindDocument, 0)
	}
	return d.root
}

func (d *decoder) line(n int, raw string) {
	text := strings.TrimRight(raw, " \t\r")
	i := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	lead, rest := text[:i], text[i:]
	if rest == "" || rest[0] == '#' {
		return
	}
	if strings.ContainsRune(lead, '\t') {
		d.reportLine(diag.ParseBadIndent, n, "tab in indentation")
		return
	}
	if len(lead)%2 != 0 {
		d.reportLine(diag.ParseBadIndent, n, fmt.Sprintf("indent of %d columns is not a multiple of two", len(lead)))
	}
	depth := len(lead) / 2

	if d.skipBelow >= 0 {
		if depth > d.skipBelow {
			return
		}
		d.skipBelow = -1
	}

	if rest == "diag" || strings.HasPrefix(rest, "diag ") {
		d.diagLine(n, depth, rest)
		return
	}
	d.nodeLine(n, depth, rest)
}

func (d *decoder) nodeLine(n, depth int, rest string) {
	d.closeTo(depth)
	d.hasLeaf = false

	if len(d.stack) == 0 {
		if d.root != nil {
			d.reportLine(diag.ParseUnexpectedLine, n, "node after the root subtree closed")
			d.skipBelow = depth
			return
		}
		if depth != 0 {
			d.reportLine(diag.ParseBadIndent, n, fmt.Sprintf("root node indented %d levels deep", depth))
			depth = 0
		}
	} else if top := d.top(); depth > top.depth+1 {
		d.reportLine(diag.ParseBadIndent, n, fmt.Sprintf("indent jumps from level %d to %d", top.depth, depth))
		depth = top.depth + 1
	}

	switch {
	case rest == "missing":
		d.emitLeaf(n, depth, ir.NewMissingToken(d.off))

	case rest[0] == '"':
		d.tokenLine(n, depth, rest)

	default:
		kind, ok := ir.ParseKind(rest)
		if !ok {
			msg := fmt.Sprintf("unknown node kind %q", rest)
			d.reportLine(diag.ParseUnknownKind, n, msg)
			d.emitLeaf(n, depth, ir.NewMissingToken(d.off).WithDiagnostics(
				diag.NewError(diag.ParseUnknownKind, d.here(), msg)))
			d.skipBelow = depth
			return
		}
		d.push(&frame{kind: kind, depth: depth, startOff: d.off})
	}
}

func (d *decoder) tokenLine(n, depth int, rest string) {
	parts, err := splitStrings(rest)
	if err != nil {
		msg := fmt.Sprintf("malformed token text: %v", err)
		d.reportLine(diag.ParseBadTokenText, n, msg)
		d.emitLeaf(n, depth, ir.NewMissingToken(d.off).WithDiagnostics(
			diag.NewError(diag.ParseBadTokenText, d.here(), msg)))
		return
	}

	content := parts[len(parts)-1]
	var lead []ir.Trivia
	for _, t := range parts[:len(parts)-1] {
		lead = append(lead, ir.Trivia{Kind: classifyTrivia(t), Text: t})
	}
	if len(lead) == 0 {
		d.emitLeaf(n, depth, ir.NewToken(d.off, content))
		return
	}
	d.emitLeaf(n, depth, ir.NewTokenWith(d.off, lead, content))
}

func (d *decoder) diagLine(n, depth int, rest string) {
	d.closeTo(depth)

	pd, err := parseDiagSpec(strings.TrimSpace(strings.TrimPrefix(rest, "diag")))
	if err != nil {
		d.reportLine(diag.ParseBadDiagnostic, n, err.Error())
		return
	}

	if d.hasLeaf && depth == d.leafDepth+1 {
		d.attachToLeaf(pd)
		return
	}
	if len(d.stack) > 0 && d.top().depth == depth-1 {
		top := d.top()
		top.diags = append(top.diags, pd)
		return
	}
	d.reportLine(diag.ParseBadIndent, n, "diagnostic line does not sit under a node")
}

// emitLeaf appends a token to the open block and advances the offset.
func (d *decoder) emitLeaf(n, depth int, tok *ir.Token) {
	if len(d.stack) == 0 {
		// A bare token cannot be the root; wrap it so loading stays total.
		d.reportLine(diag.ParseUnexpectedLine, n, "token outside any block")
		d.push(&frame{kind: ir.KindDocument, depth: depth - 1, startOff: tok.Pos()})
	}
	top := d.top()
	top.children = append(top.children, tok)
	d.off = tok.End()

	d.leafFrame = top
	d.leafDepth = depth
	d.hasLeaf = true
}

func (d *decoder) attachToLeaf(pd pendingDiag) {
	f := d.leafFrame
	tok := f.children[len(f.children)-1].(*ir.Token)
	dg := pd.resolve(tok.Span())
	f.children[len(f.children)-1] = tok.WithDiagnostics(dg)
	d.emit(dg)
}

func (d *decoder) push(f *frame) { d.stack = append(d.stack, f) }

func (d *decoder) top() *frame { return d.stack[len(d.stack)-1] }

func (d *decoder) closeTo(depth int) {
	for len(d.stack) > 0 && d.top().depth >= depth {
		d.pop()
	}
}

func (d *decoder) closeAll() {
	for len(d.stack) > 0 {
		d.pop()
	}
}

// pop closes the innermost frame, builds its block, and hands it to the
// parent. Childless blocks anchor at the offset where they were opened,
// keeping sibling ranges contiguous.
func (d *decoder) pop() {
	f := d.top()
	d.stack = d.stack[:len(d.stack)-1]

	var node *ir.Block
	if len(f.children) == 0 {
		node = ir.NewBlockAt(f.kind, f.startOff)
	} else {
		node = ir.NewBlock(f.kind, f.children...)
	}
	if len(f.diags) > 0 {
		resolved := make([]diag.Diagnostic, 0, len(f.diags))
		for _, pd := range f.diags {
			dg := pd.resolve(node.Span())
			resolved = append(resolved, dg)
			d.emit(dg)
		}
		node = node.WithDiagnostics(resolved...)
	}

	if len(d.stack) == 0 {
		d.root = node
		return
	}
	parent := d.top()
	parent.children = append(parent.children, node)
}

func (d *decoder) here() source.Span { return source.NewSpan(d.off, d.off) }

func (d *decoder) emit(dg diag.Diagnostic) {
	d.rep.Report(dg.Code, dg.Severity, dg.Primary, dg.Message, dg.Notes)
}

func (d *decoder) report(code diag.Code, msg string) {
	diag.ReportError(d.rep, code, d.here(), msg).Emit()
}

func (d *decoder) reportLine(code diag.Code, line int, msg string) {
	d.report(code, fmt.Sprintf("%s (vector line %d)", msg, line))
}

// splitStrings decodes a run of space-separated Go string literals.
func splitStrings(s string) ([]string, error) {
	var parts []string
	for s != "" {
		q, err := strconv.QuotedPrefix(s)
		if err != nil {
			return nil, fmt.Errorf("bad string literal at %q", s)
		}
		u, err := strconv.Unquote(q)
		if err != nil {
			return nil, fmt.Errorf("bad string literal %s: %v", q, err)
		}
		parts = append(parts, u)
		s = strings.TrimLeft(s[len(q):], " ")
	}
	return parts, nil
}

func classifyTrivia(text string) ir.TriviaKind {
	if strings.ContainsAny(text, "\r\n") {
		return ir.TriviaNewline
	}
	return ir.TriviaSpace
}

func parseDiagSpec(spec string) (pendingDiag, error) {
	pd := pendingDiag{sev: diag.SevError}
	rest := spec
	if rest == "" {
		return pd, fmt.Errorf("empty diagnostic")
	}

	switch word := firstWord(rest); word {
	case "info":
		pd.sev = diag.SevInfo
		rest = strings.TrimSpace(rest[len(word):])
	case "warning":
		pd.sev = diag.SevWarning
		rest = strings.TrimSpace(rest[len(word):])
	case "error":
		rest = strings.TrimSpace(rest[len(word):])
	}

	word := firstWord(rest)
	code, err := parseCode(word)
	if err != nil {
		return pd, err
	}
	pd.code = code
	rest = strings.TrimSpace(rest[len(word):])

	if strings.HasPrefix(rest, "[") {
		body := rest
		if i := strings.IndexByte(rest, ')'); i >= 0 {
			body, rest = rest[:i+1], strings.TrimSpace(rest[i+1:])
		} else {
			rest = ""
		}
		span, err := parseSpan(body)
		if err != nil {
			return pd, err
		}
		pd.span, pd.hasSpan = span, true
	}

	switch {
	case strings.HasPrefix(rest, `"`):
		msg, err := strconv.Unquote(rest)
		if err != nil {
			return pd, fmt.Errorf("malformed diagnostic message %s: %v", rest, err)
		}
		pd.msg = msg
	case rest != "":
		return pd, fmt.Errorf("trailing %q after diagnostic", rest)
	}
	if pd.msg == "" {
		pd.msg = pd.code.Title()
	}
	return pd, nil
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func parseCode(s string) (diag.Code, error) {
	num, ok := strings.CutPrefix(s, "RZ")
	if !ok {
		return 0, fmt.Errorf("diagnostic code %q does not start with RZ", s)
	}
	n, err := strconv.ParseUint(num, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("diagnostic code %q: %v", s, err)
	}
	return diag.Code(n), nil
}

func parseSpan(s string) (source.Span, error) {
	body, ok := strings.CutPrefix(s, "[")
	if !ok {
		return source.Span{}, fmt.Errorf("span %q does not start with '['", s)
	}
	body, ok = strings.CutSuffix(body, ")")
	if !ok {
		return source.Span{}, fmt.Errorf("span %q does not end with ')'", s)
	}
	a, b, ok := strings.Cut(body, "..")
	if !ok {
		return source.Span{}, fmt.Errorf("span %q has no '..'", s)
	}
	start, err := strconv.ParseUint(a, 10, 32)
	if err != nil {
		return source.Span{}, fmt.Errorf("span start %q: %v", a, err)
	}
	end, err := strconv.ParseUint(b, 10, 32)
	if err != nil {
		return source.Span{}, fmt.Errorf("span end %q: %v", b, err)
	}
	if end < start {
		return source.Span{}, fmt.Errorf("span %q ends before it starts", s)
	}
	return source.NewSpan(uint32(start), uint32(end)), nil
}
