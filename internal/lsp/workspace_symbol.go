package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/index"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
)

const workspaceSymbolMaxResults = 500

// WorkspaceSymbol handles workspace/symbol: a
// substring, case-insensitive search over the whole workspace index.
func WorkspaceSymbol(glspCtx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	srv := currentServer()

	matches := srv.Index().Search(params.Query)
	if len(matches) > workspaceSymbolMaxResults {
		matches = matches[:workspaceSymbolMaxResults]
	}

	symbols := make([]protocol.SymbolInformation, 0, len(matches))
	for _, sym := range matches {
		containerName := string(sym.Scope)
		symbols = append(symbols, protocol.SymbolInformation{
			Name:          sym.Name,
			Kind:          symbolKindFor(sym.Kind),
			Location:      protocol.Location{URI: uri.FromPath(sym.File), Range: sym.Range.ToLSP()},
			ContainerName: &containerName,
		})
	}
	return symbols, nil
}

func symbolKindFor(kind index.SymbolKind) protocol.SymbolKind {
	switch kind {
	case index.Proc:
		return protocol.SymbolKindFunction
	case index.Namespace:
		return protocol.SymbolKindNamespace
	default:
		return protocol.SymbolKindVariable
	}
}
