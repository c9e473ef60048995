// Package lsp implements the LSP request and notification handlers:
// initialize/shutdown, document sync, and the language features
// (hover, definition, references, rename, documentSymbol,
// workspaceSymbol, foldingRange, semanticTokens).
package lsp

import (
	"github.com/tliron/commonlog"

	"github.com/unknownbreaker/tcl-lsp/internal/server"
)

var log = commonlog.NewScopeLogger("lsp")

// serverInstance holds the process-wide server state. Set once by
// SetServer before the transport starts serving requests.
var serverInstance *server.Server

// SetServer sets the server instance handlers operate on.
func SetServer(srv *server.Server) {
	serverInstance = srv
}

// currentServer returns the active server, panicking if a handler
// somehow runs before SetServer — a programmer error in main, not a
// condition a client request can trigger.
func currentServer() *server.Server {
	if serverInstance == nil {
		panic("lsp: handler invoked before SetServer")
	}
	return serverInstance
}
