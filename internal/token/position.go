package token

import "fmt"

// Position is a source location: the file that produced a byte and its
// 1-based line/column within that file. Offset is the 0-based byte
// offset from the start of the file; it exists so the lexer can slice
// lexemes out of the source buffer and is not part of the (file, line,
// column) triple reported in diagnostics.
type Position struct {
	// File is the path of the file this position names. grab swaps the
	// file every token carries for the duration of the imported unit,
	// so this is always the file that actually contains the byte, not
	// the importer's file.
	File string
	// Line number (1-indexed).
	Line int
	// Column is the rune position on the line (1-indexed): each UTF-8
	// encoded scalar counts as one column.
	Column int
	// Offset is the byte offset from the start of the file (0-indexed).
	Offset int
}

// String renders "file:line:column", or "line:column" if File is unset.
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p names an actual source location.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before returns true if p is before other in the same file.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// NoPos is the zero Position, used when no location is available.
var NoPos = Position{}
