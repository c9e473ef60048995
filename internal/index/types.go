// Package index holds the workspace-wide Symbol & Reference Index:
// the four maps every resolver query and every indexing pass reads
// from or writes to.
package index

import "github.com/unknownbreaker/tcl-lsp/internal/ast"

// QName is a Tcl fully-qualified name, always starting with "::".
type QName string

// SymbolKind distinguishes what a Symbol names.
type SymbolKind int

const (
	Proc SymbolKind = iota
	Variable
	Namespace
)

func (k SymbolKind) String() string {
	switch k {
	case Proc:
		return "Proc"
	case Variable:
		return "Variable"
	case Namespace:
		return "Namespace"
	default:
		return "Unknown"
	}
}

// Param is one formal parameter of a proc.
type Param struct {
	Name      string
	Default   *string
	IsVarargs bool
}

// Symbol identifies an entity the user can navigate to.
type Symbol struct {
	Kind          SymbolKind
	Name          string
	QualifiedName QName
	File          string
	Range         ast.Range
	Scope         QName
	Params        []Param // only meaningful when Kind == Proc
}

// RefKind distinguishes what kind of use a Reference represents.
type RefKind int

const (
	Call RefKind = iota
	Export
	Alias
	Definition // synthetic kind used only in find-references result ordering
)

func (k RefKind) order() int {
	switch k {
	case Definition:
		return 0
	case Export:
		return 1
	case Alias:
		return 1
	case Call:
		return 2
	default:
		return 3
	}
}

// Reference is a site in source that uses a symbol.
type Reference struct {
	Kind      RefKind
	Name      string
	Namespace QName
	File      string
	Range     ast.Range
	Text      string
	Target    *QName // alias target for interp alias
}
