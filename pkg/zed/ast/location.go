package ast

import "fmt"

// Location is the source position of a node.
type Location struct {
	File   string // Source name, empty for in-memory input
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns "file:line:column", or "line:column" without a file.
func (l Location) String() string {
	if l.Line <= 0 {
		return "<unknown>"
	}
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location points at a line.
func (l Location) IsValid() bool {
	return l.Line > 0
}
