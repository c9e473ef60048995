package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/index"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
	"github.com/unknownbreaker/tcl-lsp/internal/walker"
)

// DocumentSymbol handles textDocument/documentSymbol:
// it returns the document's procs, namespaces, and variables as a
// tree, nested by enclosing namespace, for the editor's outline view.
func DocumentSymbol(glspCtx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	path, err := uri.ToPath(docURI)
	if err != nil {
		path = docURI
	}

	symbols := walker.ExtractSymbols(doc.AST, path)
	return buildSymbolTree(symbols), nil
}

// buildSymbolTree nests each symbol under the node whose qualified
// name equals the symbol's Scope, falling back to a root entry for
// anything whose enclosing namespace wasn't itself extracted (the
// top-level "::" namespace is never emitted as a symbol of its own).
func buildSymbolTree(symbols []index.Symbol) []protocol.DocumentSymbol {
	nodes := make(map[index.QName]*protocol.DocumentSymbol, len(symbols))
	order := make([]index.QName, 0, len(symbols))
	scopes := make(map[index.QName]index.QName, len(symbols))

	for _, sym := range symbols {
		ds := toDocumentSymbol(sym)
		nodes[sym.QualifiedName] = &ds
		order = append(order, sym.QualifiedName)
		scopes[sym.QualifiedName] = sym.Scope
	}

	// Walk in reverse extraction order (children before their enclosing
	// namespace, since ExtractSymbols visits a namespace_eval before
	// descending into it) so each node's own children are already
	// merged by the time it is copied into its parent's Children.
	isRoot := make(map[index.QName]bool, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		qn := order[i]
		ds := nodes[qn]
		parentQN := scopes[qn]
		if parent, ok := nodes[parentQN]; ok && parentQN != qn {
			parent.Children = append(parent.Children, *ds)
			continue
		}
		isRoot[qn] = true
	}

	var roots []protocol.DocumentSymbol
	for _, qn := range order {
		if isRoot[qn] {
			roots = append(roots, *nodes[qn])
		}
	}
	return roots
}

func toDocumentSymbol(sym index.Symbol) protocol.DocumentSymbol {
	kind := protocol.SymbolKindVariable
	switch sym.Kind {
	case index.Proc:
		kind = protocol.SymbolKindFunction
	case index.Namespace:
		kind = protocol.SymbolKindNamespace
	}

	r := sym.Range.ToLSP()
	return protocol.DocumentSymbol{
		Name:           sym.Name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
}
