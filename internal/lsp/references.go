package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
	"github.com/unknownbreaker/tcl-lsp/internal/resolver"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
)

// References handles textDocument/references:
// the definition (if params.Context.IncludeDeclaration is set) plus
// every reference, already ordered by resolver.FindReferences.
func References(glspCtx *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return []protocol.Location{}, nil
	}
	path, err := uri.ToPath(docURI)
	if err != nil {
		return []protocol.Location{}, nil
	}

	pos := ast.FromLSP(params.Position)
	refs := resolver.FindReferences(srv.Index(), doc.AST, path, pos)

	locations := make([]protocol.Location, 0, len(refs))
	for _, r := range refs {
		if r.Kind == index.Definition && !params.Context.IncludeDeclaration {
			continue
		}
		locations = append(locations, protocol.Location{
			URI:   uri.FromPath(r.File),
			Range: r.Range.ToLSP(),
		})
	}
	return locations, nil
}
