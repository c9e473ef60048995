// Package server provides the core LSP server state and management.
package server

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/config"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
	"github.com/unknownbreaker/tcl-lsp/internal/parser"
	"github.com/unknownbreaker/tcl-lsp/internal/workspace"
)

// Server holds the state of the LSP server.
type Server struct {
	// documents stores all open buffers.
	documents *DocumentStore

	// index is the workspace-wide Symbol & Reference Index.
	index *index.Store

	// indexer drives the background workspace scan and single-file
	// incremental reindexing.
	indexer *workspace.Indexer

	// parser invokes the external Tcl parser.
	parser *parser.Parser

	// workspaceFolders stores the workspace folders from the client.
	workspaceFolders []string

	// clientCapabilities stores the client's capabilities from the
	// initialize request.
	clientCapabilities *protocol.ClientCapabilities

	// cfg holds the workspace-level indexer tunables.
	cfg config.Config

	mu sync.RWMutex

	shuttingDown bool
}

// New creates a new LSP server instance over the given configuration.
func New(cfg config.Config) *Server {
	store := index.New()
	p := parser.New()

	return &Server{
		documents: NewDocumentStore(),
		index:     store,
		parser:    p,
		indexer:   workspace.New(store, p, cfg),
		cfg:       cfg,
	}
}

// IsShuttingDown returns true if the server is shutting down.
func (s *Server) IsShuttingDown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuttingDown
}

// SetShuttingDown marks the server as shutting down and stops the
// background indexer.
func (s *Server) SetShuttingDown() {
	s.mu.Lock()
	s.shuttingDown = true
	s.mu.Unlock()
	s.indexer.Cleanup()
}

// Documents returns the document store.
func (s *Server) Documents() *DocumentStore {
	return s.documents
}

// Index returns the workspace-wide symbol and reference index.
func (s *Server) Index() *index.Store {
	return s.index
}

// Indexer returns the background indexer.
func (s *Server) Indexer() *workspace.Indexer {
	return s.indexer
}

// Parser returns the external parser adapter.
func (s *Server) Parser() *parser.Parser {
	return s.parser
}

// Config returns the server's workspace configuration.
func (s *Server) Config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetWorkspaceConfig replaces the indexer tunables once the real
// workspace root is known: New builds a server against
// config.Default() before any root exists, and the initialize handler
// calls this once it has read an actual .tcl-lsp.yaml.
func (s *Server) SetWorkspaceConfig(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.parser.Timeout = cfg.ParseTimeout
	s.indexer = workspace.New(s.index, s.parser, cfg)
}

// SetWorkspaceFolders sets the workspace folders.
func (s *Server) SetWorkspaceFolders(folders []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaceFolders = folders
}

// GetWorkspaceFolders returns the workspace folders.
func (s *Server) GetWorkspaceFolders() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspaceFolders
}

// SetClientCapabilities sets the client's capabilities.
func (s *Server) SetClientCapabilities(capabilities *protocol.ClientCapabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientCapabilities = capabilities
}

// GetClientCapabilities returns the client's capabilities.
func (s *Server) GetClientCapabilities() *protocol.ClientCapabilities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientCapabilities
}
