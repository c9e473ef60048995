package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/uri"
	"github.com/unknownbreaker/tcl-lsp/internal/walker"
)

// FoldingRange handles textDocument/foldingRange: one
// range per proc body, namespace eval body, and control-structure
// body, for the editor's code-folding gutter.
func FoldingRange(glspCtx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return []protocol.FoldingRange{}, nil
	}
	path, err := uri.ToPath(docURI)
	if err != nil {
		path = docURI
	}

	return walker.ExtractFoldingRanges(doc.AST, path), nil
}
