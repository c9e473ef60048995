package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/resolver"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
)

// Definition handles textDocument/definition: it
// resolves the symbol under the cursor and returns its declaration
// site, which may live in a different file than the request.
func Definition(glspCtx *glsp.Context, params *protocol.DefinitionParams) (interface{}, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return nil, nil
	}
	path, err := uri.ToPath(docURI)
	if err != nil {
		return nil, nil
	}

	pos := ast.FromLSP(params.Position)
	loc, ok := resolver.Resolve(srv.Index(), doc.AST, path, pos)
	if !ok {
		return nil, nil
	}

	return &protocol.Location{
		URI:   uri.FromPath(loc.File),
		Range: loc.Range.ToLSP(),
	}, nil
}
