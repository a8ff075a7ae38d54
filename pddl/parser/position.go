package parser

import "fmt"

// Position is a source location, 1-based in line and column.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

// Step collapses the span to a zero-length span at its end, the
// starting point for the next token.
func (s Span) Step() Span {
	return Span{Start: s.End, End: s.End}
}

// Union covers both spans: leftmost start, rightmost end.
func (s Span) Union(other Span) Span {
	out := s
	if other.Start.Offset < out.Start.Offset {
		out.Start = other.Start
	}
	if other.End.Offset > out.End.Offset {
		out.End = other.End
	}
	return out
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		if s.End.Column <= s.Start.Column+1 {
			return s.Start.String()
		}
		return fmt.Sprintf("%s-%d", s.Start.String(), s.End.Column)
	}
	return fmt.Sprintf("%s-%d:%d", s.Start.String(), s.End.Line, s.End.Column)
}
