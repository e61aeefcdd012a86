package source

import "testing"

func TestSpanBasics(t *testing.T) {
	s := NewSpan(4, 9)
	if s.Empty() {
		t.Error("expected non-empty span")
	}
	if got := s.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := s.String(); got != "[4..9)" {
		t.Errorf("String() = %q, want %q", got, "[4..9)")
	}
}

func TestNewSpanNormalizesInvertedRange(t *testing.T) {
	s := NewSpan(9, 4)
	if !s.Empty() {
		t.Errorf("expected empty span, got %v", s)
	}
	if s.Start != 9 {
		t.Errorf("expected start to be kept, got %d", s.Start)
	}
}

func TestSpanContains(t *testing.T) {
	tests := []struct {
		name string
		span Span
		off  uint32
		want bool
	}{
		{"start is inside", NewSpan(2, 5), 2, true},
		{"middle is inside", NewSpan(2, 5), 3, true},
		{"end is outside", NewSpan(2, 5), 5, false},
		{"before start", NewSpan(2, 5), 1, false},
		{"empty span holds nothing", NewSpan(3, 3), 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Contains(tt.off); got != tt.want {
				t.Errorf("Contains(%d) = %v, want %v", tt.off, got, tt.want)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint after", NewSpan(0, 2), NewSpan(5, 8), NewSpan(0, 8)},
		{"contained", NewSpan(0, 10), NewSpan(3, 4), NewSpan(0, 10)},
		{"overlapping before", NewSpan(4, 9), NewSpan(1, 6), NewSpan(1, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}
