package types

import (
	"fmt"
)

// Position is a location in a source buffer. Offset is a byte offset from
// the start of the buffer; Line and Column are 1-based and count bytes, so
// Offset is the authoritative coordinate for multi-byte input.
type Position struct {
	Offset   int
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	out := s
	if other.From.Offset < out.From.Offset {
		out.From = other.From
	}
	if other.To.Offset > out.To.Offset {
		out.To = other.To
	}
	return out
}
