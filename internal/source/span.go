package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into a document's text.
// Spans survive tree rewrites unchanged: relocated nodes keep the offsets
// of the text they were derived from.
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// NewSpan builds a span from raw offsets. Callers are responsible for
// Start <= End; malformed spans are normalized to empty at Start.
func NewSpan(start, end uint32) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// String renders the span in the form used by tree dumps and
// diagnostic references: "[start..end)".
func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start, s.End)
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
