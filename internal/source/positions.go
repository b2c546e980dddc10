package source

import "fmt"

// Position is a single point in a source file (1-indexed line and column).
type Position struct {
	Line   int
	Column int
	Index  int // byte offset into the file
}

// NewPosition creates a new position.
func NewPosition(line, column, index int) *Position {
	return &Position{Line: line, Column: column, Index: index}
}

func (p *Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes before other in the same file.
func (p *Position) Before(other *Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}
