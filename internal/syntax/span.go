package syntax

import (
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
)

// Position is a 1-based line and byte column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range with its start and end positions.
type Span struct {
	Start    int
	End      int
	StartPos Position
	EndPos   Position
}

func (s Span) String() string {
	return s.StartPos.String()
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Before orders spans by start offset, then by end offset.
func (s Span) Before(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

// SpanOf converts the range of n. A nil node yields the zero span.
func SpanOf(n *sitter.Node) Span {
	if n == nil {
		return Span{}
	}
	return Span{
		Start:    offset(n.StartByte()),
		End:      offset(n.EndByte()),
		StartPos: position(n.StartPoint()),
		EndPos:   position(n.EndPoint()),
	}
}

func position(p sitter.Point) Position {
	return Position{Line: offset(p.Row) + 1, Column: offset(p.Column) + 1}
}

func offset(v uint32) int {
	n, err := safecast.Conv[int](v)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return n
}
