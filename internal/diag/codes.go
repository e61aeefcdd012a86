package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for diagnostics without a classified code.
	UnknownCode Code = 0

	// Parse-side codes (reported by tree producers).
	ParseInfo           Code = 1000
	ParseUnexpectedLine Code = 1001
	ParseUnknownKind    Code = 1002
	ParseBadIndent      Code = 1003
	ParseBadTokenText   Code = 1004
	ParseMissingToken   Code = 1005
	ParseBadDiagnostic  Code = 1006
	ParseEmptyDocument  Code = 1007

	// Lowering codes (reported by tree passes).
	LowerInfo            Code = 2000
	LowerOrphanDirective Code = 2001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	ParseInfo:           "Parse information",
	ParseUnexpectedLine: "Unexpected line in document",
	ParseUnknownKind:    "Unknown node kind",
	ParseBadIndent:      "Indentation does not match any open node",
	ParseBadTokenText:   "Malformed token text literal",
	ParseMissingToken:   "Expected token is missing",
	ParseBadDiagnostic:  "Malformed diagnostic reference",
	ParseEmptyDocument:  "Document contains no nodes",

	LowerInfo:            "Lowering information",
	LowerOrphanDirective: "Directive token outside any class declaration",
}

// ID returns the stable identifier used in dumps, diagnostics files and
// CLI output, e.g. "RZ1005".
func (c Code) ID() string {
	return fmt.Sprintf("RZ%04d", uint16(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
