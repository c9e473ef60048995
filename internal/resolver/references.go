package resolver

import (
	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

// FindReferences resolves the symbol at (root, filepath, pos) and
// returns its definition followed by every reference, ordered
// definition, then Export, then Call, each group sorted by file/line.
func FindReferences(store *index.Store, root *ast.Node, filepath string, pos ast.Position) []index.Reference {
	node := FindNodeAt(root, pos)
	word := WordAt(node)
	if word == "" {
		return nil
	}

	scope := ComputeScope(root, pos)
	qn, ok := ResolveName(store, scope.Namespace, word)
	if !ok {
		return nil
	}
	return store.FindDefinitionsAndReferences(qn)
}

// RenameEdit is a single text replacement produced by Rename.
type RenameEdit struct {
	File  string
	Range ast.Range
	Text  string
}

// Rename resolves the symbol at the cursor and returns one edit per
// definition and reference, replacing the unqualified name with
// newName. Qualified references (e.g. ::ns2::get) are untouched by a
// rename of ::ns1::get, since they never appear in ns1's reference
// list.
func Rename(store *index.Store, root *ast.Node, filepath string, pos ast.Position, newName string) []RenameEdit {
	refs := FindReferences(store, root, filepath, pos)
	edits := make([]RenameEdit, 0, len(refs))
	for _, r := range refs {
		edits = append(edits, RenameEdit{File: r.File, Range: r.Range, Text: newName})
	}
	return edits
}
