package lsp

import (
	"context"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/config"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
	"github.com/unknownbreaker/tcl-lsp/internal/walker"
)

const serverVersion = "0.1.0"

// Initialize handles the LSP initialize request: negotiates
// capabilities and resolves the workspace root so config.Load can run
// before the background scan starts.
func Initialize(context *glsp.Context, params *protocol.InitializeParams) (interface{}, error) {
	srv := currentServer()
	srv.SetClientCapabilities(&params.Capabilities)

	roots := workspaceRoots(params)
	srv.SetWorkspaceFolders(roots)

	if len(roots) > 0 {
		cfg, err := config.Load(roots[0])
		if err != nil {
			log.Warningf("loading config at %s: %v", roots[0], err)
			cfg = config.Default()
		}
		srv.SetWorkspaceConfig(cfg)
	}

	changeKind := protocol.TextDocumentSyncKindIncremental
	trueVal, falseVal := true, false

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &trueVal,
			Change:    &changeKind,
			WillSave:  &falseVal,
			Save: &protocol.SaveOptions{
				IncludeText: &falseVal,
			},
		},

		HoverProvider:           &trueVal,
		DefinitionProvider:      &trueVal,
		ReferencesProvider:      &trueVal,
		DocumentSymbolProvider:  &trueVal,
		WorkspaceSymbolProvider: &trueVal,
		FoldingRangeProvider:    &trueVal,

		RenameProvider: &protocol.RenameOptions{
			PrepareProvider: &trueVal,
		},

		SemanticTokensProvider: &protocol.SemanticTokensOptions{
			Legend: protocol.SemanticTokensLegend{
				TokenTypes:     walker.TokenTypeNames(),
				TokenModifiers: []string{},
			},
			Full:  &trueVal,
			Range: &trueVal,
		},
	}

	version := serverVersion
	result := protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "tcl-lsp",
			Version: &version,
		},
	}

	return result, nil
}

// Initialized handles the initialized notification: the background
// workspace scan starts here rather than in Initialize, so the
// initialize response isn't held up by a potentially large scan.
func Initialized(glspCtx *glsp.Context, params *protocol.InitializedParams) error {
	srv := currentServer()
	roots := srv.GetWorkspaceFolders()
	if len(roots) == 0 {
		return nil
	}
	go srv.Indexer().BuildWorkspaceIndex(context.Background(), roots[0])
	return nil
}

// Shutdown handles the shutdown request: stops the background indexer
// and marks the server so exit can terminate cleanly.
func Shutdown(context *glsp.Context) error {
	currentServer().SetShuttingDown()
	return nil
}

// workspaceRoots converts every workspace folder URI (falling back to
// rootURI for older clients) into a filesystem path.
func workspaceRoots(params *protocol.InitializeParams) []string {
	var out []string
	for _, f := range params.WorkspaceFolders {
		if p, err := uri.ToPath(string(f.URI)); err == nil {
			out = append(out, p)
		}
	}
	if len(out) == 0 && params.RootURI != nil {
		if p, err := uri.ToPath(string(*params.RootURI)); err == nil {
			out = append(out, p)
		}
	}
	return out
}
