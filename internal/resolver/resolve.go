package resolver

import (
	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

// Location is where a definition lives — either an indexed symbol's
// file or, for locals, a same-file position with no index entry.
type Location struct {
	File  string
	Range ast.Range
}

// Resolve implements the go-to-definition algorithm.
// root/filepath are the file the cursor is in; pos is the 1-based
// query position. It returns (location, true) on success, or
// (Location{}, false) if nothing resolves — callers surface that as
// an empty LSP result, never an error.
func Resolve(store *index.Store, root *ast.Node, filepath string, pos ast.Position) (Location, bool) {
	node := FindNodeAt(root, pos)
	word := WordAt(node)
	if word == "" {
		return Location{}, false
	}

	scope := ComputeScope(root, pos)

	if scope.Locals[word] {
		if r, ok := findLocalDefinition(root, scope.Proc, word); ok {
			return Location{File: filepath, Range: r}, true
		}
	}

	if up, ok := scope.Upvars[word]; ok {
		word = up.OtherVar
		if qn, ok := ResolveName(store, "::", word); ok {
			if sym, ok := store.Find(qn); ok {
				return Location{File: sym.File, Range: sym.Range}, true
			}
		}
	}

	if scope.Globals[word] {
		qn := index.QName("::" + word)
		if sym, ok := store.Find(qn); ok {
			return Location{File: sym.File, Range: sym.Range}, true
		}
	}

	if qn, ok := ResolveName(store, scope.Namespace, word); ok {
		if sym, ok := store.Find(qn); ok {
			return Location{File: sym.File, Range: sym.Range}, true
		}
	}

	// Fallback: single-file AST scan with the same candidate rule,
	// covering symbols not yet in the Index (e.g. during warmup).
	if r, ok := scanFileForDefinition(root, scope.Namespace, word); ok {
		return Location{File: filepath, Range: r}, true
	}

	return Location{}, false
}

// ResolveSymbol is Resolve's counterpart for hover: it
// returns the indexed Symbol behind the word at pos, if one exists.
// Locals and upvar-redirected names never have an index entry, so this
// reports ok=false for them even though Resolve can still locate their
// declaring range.
func ResolveSymbol(store *index.Store, root *ast.Node, pos ast.Position) (index.Symbol, bool) {
	node := FindNodeAt(root, pos)
	word := WordAt(node)
	if word == "" {
		return index.Symbol{}, false
	}

	scope := ComputeScope(root, pos)

	if up, ok := scope.Upvars[word]; ok {
		word = up.OtherVar
		if qn, ok := ResolveName(store, "::", word); ok {
			return store.Find(qn)
		}
		return index.Symbol{}, false
	}

	if scope.Globals[word] {
		return store.Find(index.QName("::" + word))
	}

	if qn, ok := ResolveName(store, scope.Namespace, word); ok {
		return store.Find(qn)
	}

	return index.Symbol{}, false
}

// findLocalDefinition returns the range of the first set/variable of
// name inside the proc named procName.
func findLocalDefinition(root *ast.Node, procName, name string) (ast.Range, bool) {
	var found ast.Range
	var ok bool

	var walk func(n *ast.Node, insideProc bool)
	walk = func(n *ast.Node, insideProc bool) {
		if n == nil || ok {
			return
		}
		active := insideProc
		if n.Type == ast.KindProc {
			active = n.String("name") == procName
		}
		if active && !ok {
			switch n.Type {
			case ast.KindSet:
				if n.String("var_name") == name {
					found, ok = n.Range, true
					return
				}
			case ast.KindVariable:
				if n.String("name") == name {
					found, ok = n.Range, true
					return
				}
			}
		}
		for _, c := range n.Children("children") {
			walk(c, active)
		}
		if body := n.Body("body"); body != nil {
			walk(body, active)
		}
	}
	walk(root, false)
	return found, ok
}

// scanFileForDefinition applies the candidate rule directly against
// this file's own proc/namespace_eval definitions, without consulting
// the Index.
func scanFileForDefinition(root *ast.Node, ns index.QName, word string) (ast.Range, bool) {
	candidates := Candidates(ns, word)
	candSet := make(map[index.QName]bool, len(candidates))
	for _, c := range candidates {
		candSet[c] = true
	}

	var found ast.Range
	var ok bool

	var walk func(n *ast.Node, curNS index.QName)
	walk = func(n *ast.Node, curNS index.QName) {
		if n == nil || ok {
			return
		}
		next := curNS
		if n.Type == ast.KindNamespaceEval {
			next = joinNamespace(curNS, n.String("name"))
		}
		if n.Type == ast.KindProc {
			qn := joinNamespace(curNS, n.String("name"))
			if candSet[qn] {
				found, ok = n.Range, true
				return
			}
		}
		for _, c := range n.Children("children") {
			walk(c, next)
		}
		if body := n.Body("body"); body != nil {
			walk(body, next)
		}
	}
	walk(root, "::")
	return found, ok
}
