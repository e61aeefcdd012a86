package ir

import (
	"fmt"

	"fortio.org/safecast"
)

// TriviaKind classifies non-semantic token material.
type TriviaKind uint8

const (
	// TriviaSpace is horizontal whitespace.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a line break.
	TriviaNewline
	// TriviaComment is a source comment.
	TriviaComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaComment:
		return "Comment"
	}
	return "Unknown"
}

// Trivia is non-semantic text (whitespace, comments) attached ahead of a
// token. It never affects tree shape; passes see it only when they opt
// into trivia visitation.
type Trivia struct {
	Kind TriviaKind
	Text string
}

func (t Trivia) Width() uint32 {
	w, err := safecast.Conv[uint32](len(t.Text))
	if err != nil {
		panic(fmt.Errorf("trivia width overflow: %w", err))
	}
	return w
}
