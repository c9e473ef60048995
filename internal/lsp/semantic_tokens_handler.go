package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
	"github.com/unknownbreaker/tcl-lsp/internal/walker"
)

// SemanticTokensFull handles textDocument/semanticTokens/full:
// keyword, function-definition, and variable tokens for the whole
// document.
func SemanticTokensFull(glspCtx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	path, err := uri.ToPath(docURI)
	if err != nil {
		path = docURI
	}

	return &protocol.SemanticTokens{Data: walker.ExtractSemanticTokens(doc.AST, path)}, nil
}

// SemanticTokensRange handles textDocument/semanticTokens/range: the
// same tokens as SemanticTokensFull, restricted to the requested line
// span.
func SemanticTokensRange(glspCtx *glsp.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	path, err := uri.ToPath(docURI)
	if err != nil {
		path = docURI
	}

	start := ast.FromLSP(params.Range.Start)
	end := ast.FromLSP(params.Range.End)
	return &protocol.SemanticTokens{Data: walker.ExtractSemanticTokensRange(doc.AST, path, start, end)}, nil
}
