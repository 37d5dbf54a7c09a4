package ast

import "fmt"

// Position represents a location in a vesti source file.
type Position struct {
	Filename string
	Offset   int // Byte offset
	Line     int // Line number (1-indexed)
	Column   int // Column number in runes (1-indexed)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// GoString returns a Go-syntax representation of the position.
func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Line: %d, Column: %d}", p.Filename, p.Line, p.Column)
}

// IsZero returns true if this is an uninitialized position.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.Offset == 0
}

// Span is the half-open source range [Start, End) covered by a token.
type Span struct {
	Start Position
	End   Position
}

// IsZero returns true if this is an uninitialized span.
func (s Span) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

// Text extracts the source text for this span.
// Returns empty string if span is invalid or zero.
func (s Span) Text(source []byte) string {
	start, end := s.Start.Offset, s.End.Offset
	if s.IsZero() || start < 0 || end <= start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

// String renders the span as "start-end", collapsing single-line spans.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d", s.Start, s.End.Column)
	}
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}
