package lsp

import (
	"context"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/document"
	"github.com/unknownbreaker/tcl-lsp/internal/server"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
	"github.com/unknownbreaker/tcl-lsp/internal/workspace"
)

// DidOpen handles textDocument/didOpen: parses the buffer and
// publishes diagnostics. It does not touch the workspace index — the
// background scan already covers every file on disk.
func DidOpen(glspCtx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	srv := currentServer()

	docURI := string(params.TextDocument.URI)
	text := params.TextDocument.Text

	doc := &server.Document{
		URI:        docURI,
		Text:       text,
		Version:    int(params.TextDocument.Version),
		LanguageID: params.TextDocument.LanguageID,
	}
	doc.AST = parseAndDiagnose(srv, glspCtx, docURI, text)
	srv.Documents().Set(docURI, doc)

	return nil
}

// DidClose handles textDocument/didClose: drops the buffer and clears
// its diagnostics. The on-disk copy, if indexed, stays indexed.
func DidClose(glspCtx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	docURI := string(params.TextDocument.URI)
	currentServer().Documents().Delete(docURI)

	if glspCtx != nil && glspCtx.Notify != nil {
		glspCtx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         docURI,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

// DidChange handles textDocument/didChange: applies every content
// change event to the buffer in order, then reparses.
func DidChange(glspCtx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, exists := srv.Documents().Get(docURI)
	if !exists {
		log.Warningf("didChange for unopened document %s", docURI)
		return nil
	}

	newText := doc.Text
	for _, raw := range params.ContentChanges {
		change, ok := raw.(protocol.TextDocumentContentChangeEvent)
		if !ok {
			continue
		}
		if change.Range == nil {
			newText = change.Text
			continue
		}
		updated, err := document.ApplyContentChange(newText, change)
		if err != nil {
			log.Warningf("applying content change to %s: %v", docURI, err)
			continue
		}
		newText = updated
	}

	updated := &server.Document{
		URI:        docURI,
		Text:       newText,
		Version:    int(params.TextDocument.Version),
		LanguageID: doc.LanguageID,
	}
	updated.AST = parseAndDiagnose(srv, glspCtx, docURI, newText)
	srv.Documents().Set(docURI, updated)

	return nil
}

// DidSave handles textDocument/didSave: the file on disk now matches
// the buffer, so this is where a single-file reindex runs, keeping
// cross-file references current without a full workspace rescan.
func DidSave(glspCtx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	srv := currentServer()
	path, err := uri.ToPath(string(params.TextDocument.URI))
	if err != nil {
		log.Warningf("didSave: %v", err)
		return nil
	}
	srv.Indexer().IndexFile(context.Background(), path)
	return nil
}

// parseAndDiagnose parses text as the file at docURI would be parsed
// (plain Tcl or RVT, by extension) and publishes the resulting parse
// and validation errors as diagnostics. It returns the parsed tree, or
// nil if parsing itself failed.
func parseAndDiagnose(srv *server.Server, glspCtx *glsp.Context, docURI, text string) *ast.Node {
	path, err := uri.ToPath(docURI)
	if err != nil {
		path = docURI
	}

	root, err := workspace.ParseText(context.Background(), srv.Parser(), path, text)
	if err != nil {
		log.Debugf("parse failed for %s: %v", docURI, err)
		PublishDiagnostics(glspCtx, docURI, []protocol.Diagnostic{parseErrorDiagnostic(err)})
		return nil
	}

	result := ast.Validate(root, ast.ValidationOptions{})
	PublishDiagnostics(glspCtx, docURI, validationDiagnostics(result))
	return root
}

func parseErrorDiagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Range:    protocol.Range{},
		Severity: &severity,
		Source:   strPtr("tcl-lsp"),
		Message:  err.Error(),
	}
}

func validationDiagnostics(result ast.ValidationResult) []protocol.Diagnostic {
	if result.Valid {
		return nil
	}
	severity := protocol.DiagnosticSeverityWarning
	diags := make([]protocol.Diagnostic, 0, len(result.Errors))
	for _, e := range result.Errors {
		diags = append(diags, protocol.Diagnostic{
			Range:    protocol.Range{},
			Severity: &severity,
			Source:   strPtr("tcl-lsp"),
			Message:  e.Message,
		})
	}
	return diags
}

func strPtr(s string) *string { return &s }
