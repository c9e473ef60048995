// Package ast defines the typed, validated intermediate form produced by
// parsing Tcl source: node shapes, positions, and the schema validator
// that stands between the external parser and the rest of the server.
package ast

import protocol "github.com/tliron/glsp/protocol_3_16"

// Position is a 1-based (line, column) location in source text. Column
// counts UTF-8 code units. Position{1,1} is the first character of the
// file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open span: Start is inclusive, End is exclusive at
// column granularity.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether pos falls within r, treating r.End as
// exclusive.
func (r Range) Contains(pos Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Column < r.Start.Column {
		return false
	}
	if pos.Line == r.End.Line && pos.Column >= r.End.Column {
		return false
	}
	return true
}

// ToLSP converts a 1-based Range to the 0-based protocol.Range LSP
// expects. FromLSP is the reverse conversion for a single position.
func (r Range) ToLSP() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      lspLine(r.Start.Line),
			Character: lspChar(r.Start.Column),
		},
		End: protocol.Position{
			Line:      lspLine(r.End.Line),
			Character: lspChar(r.End.Column),
		},
	}
}

// FromLSP converts a 0-based protocol.Position to the 1-based Position
// the core uses internally.
func FromLSP(pos protocol.Position) Position {
	return Position{
		Line:   int(pos.Line) + 1,
		Column: int(pos.Character) + 1,
	}
}

func lspLine(line int) uint32 {
	if line <= 0 {
		return 0
	}
	return uint32(line - 1)
}

func lspChar(col int) uint32 {
	if col <= 0 {
		return 0
	}
	return uint32(col - 1)
}
