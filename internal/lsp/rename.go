package lsp

import (
	"errors"
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/resolver"
	"github.com/unknownbreaker/tcl-lsp/internal/server"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
	"github.com/unknownbreaker/tcl-lsp/internal/walker"
)

// Rename handles textDocument/rename: it
// resolves the symbol at the cursor and replaces every reference
// (across the whole workspace) with newName, leaving qualified
// references to a same-named symbol in another namespace untouched.
func Rename(glspCtx *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return nil, fmt.Errorf("document not open: %s", docURI)
	}
	path, err := uri.ToPath(docURI)
	if err != nil {
		return nil, err
	}

	pos := ast.FromLSP(params.Position)
	word := resolver.WordAt(resolver.FindNodeAt(doc.AST, pos))
	if canRename, reason := canRenameSymbol(word); !canRename {
		return nil, fmt.Errorf("cannot rename '%s': %s", word, reason)
	}

	edits := resolver.Rename(srv.Index(), doc.AST, path, pos, params.NewName)
	if len(edits) == 0 {
		return nil, errors.New("no references found for symbol at cursor")
	}

	return buildWorkspaceEdit(edits, srv.Documents()), nil
}

// PrepareRename handles textDocument/prepareRename: it validates that
// the word under the cursor is renameable and reports its range so
// the client can show an inline rename box.
func PrepareRename(glspCtx *glsp.Context, params *protocol.PrepareRenameParams) (interface{}, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return nil, fmt.Errorf("document not open: %s", docURI)
	}

	pos := ast.FromLSP(params.Position)
	node := resolver.FindNodeAt(doc.AST, pos)
	word := resolver.WordAt(node)
	if word == "" {
		return nil, errors.New("no symbol at cursor position")
	}
	if canRename, reason := canRenameSymbol(word); !canRename {
		return nil, fmt.Errorf("cannot rename '%s': %s", word, reason)
	}

	return map[string]interface{}{
		"range":       node.Range.ToLSP(),
		"placeholder": word,
	}, nil
}

// canRenameSymbol rejects built-in command names, which have no
// definition to rename and would otherwise resolve to nothing.
func canRenameSymbol(name string) (bool, string) {
	if name == "" {
		return false, "no symbol at cursor position"
	}
	if walker.Builtins[name] {
		return false, "cannot rename a built-in command"
	}
	return true, ""
}

// buildWorkspaceEdit groups per-file rename edits into a
// TextDocumentEdit per file, tagging each with the open buffer's
// version when one exists so the client can detect a stale edit.
func buildWorkspaceEdit(edits []resolver.RenameEdit, docs *server.DocumentStore) *protocol.WorkspaceEdit {
	byFile := make(map[string][]protocol.TextEdit)
	var order []string
	for _, e := range edits {
		if _, seen := byFile[e.File]; !seen {
			order = append(order, e.File)
		}
		byFile[e.File] = append(byFile[e.File], protocol.TextEdit{
			Range:   e.Range.ToLSP(),
			NewText: e.Text,
		})
	}

	documentChanges := make([]interface{}, 0, len(order))
	for _, file := range order {
		docURI := uri.FromPath(file)
		var version *int32
		if doc, ok := docs.Get(docURI); ok {
			v := int32(doc.Version)
			version = &v
		}
		documentChanges = append(documentChanges, protocol.TextDocumentEdit{
			TextDocument: protocol.OptionalVersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
				Version:                version,
			},
			Edits: convertToEdits(byFile[file]),
		})
	}

	return &protocol.WorkspaceEdit{DocumentChanges: documentChanges}
}

func convertToEdits(edits []protocol.TextEdit) []interface{} {
	out := make([]interface{}, len(edits))
	for i, e := range edits {
		out[i] = e
	}
	return out
}
