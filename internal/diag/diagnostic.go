package diag

import (
	"github.com/ajaybhargavb/Razor/internal/source"
)

// Note is a secondary span/message pair adding context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding produced while building or transforming a tree.
// Diagnostics are data, never control flow: producers collect them into a
// Bag (or attach them to tree nodes) and keep going.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Ref is the compact reference form used by tree dumps and recorded
// diagnostics files: "<id><span>", e.g. "RZ1005[4..9)".
func (d Diagnostic) Ref() string {
	return d.Code.ID() + d.Primary.String()
}
