package lsp

import (
	"path/filepath"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

func TestHover_ResolvedSymbolShowsSignature(t *testing.T) {
	srv := newTestServer(t)
	mathPath := filepath.Join(t.TempDir(), "math.tcl")
	srv.Index().AddSymbol(index.Symbol{
		Kind: index.Proc, Name: "add", QualifiedName: "::add", File: mathPath,
		Range:  ast.Range{Start: ast.Position{Line: 1, Column: 1}, End: ast.Position{Line: 1, Column: 40}},
		Scope:  "::",
		Params: []index.Param{{Name: "a"}, {Name: "b"}},
	})

	mainPath := filepath.Join(t.TempDir(), "main.tcl")
	docURI := openDoc(t, srv, mainPath, "source math.tcl\nset result [add 1 2]\n")

	hover, err := Hover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentUri(docURI)},
			Position:     protocol.Position{Line: 1, Character: 13},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "proc ::add")
}

func TestWorkspaceSymbol_SubstringSearch(t *testing.T) {
	srv := newTestServer(t)
	srv.Index().AddSymbol(index.Symbol{Kind: index.Proc, Name: "add", QualifiedName: "::add", File: "math.tcl"})
	srv.Index().AddSymbol(index.Symbol{Kind: index.Proc, Name: "subtract", QualifiedName: "::subtract", File: "math.tcl"})

	results, err := WorkspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "add"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "add", results[0].Name)
}

func TestCanRenameSymbol_RejectsBuiltinCommand(t *testing.T) {
	ok, reason := canRenameSymbol("set")
	assert.False(t, ok)
	assert.NotEmpty(t, reason)
}

func TestCanRenameSymbol_AllowsOrdinaryName(t *testing.T) {
	ok, _ := canRenameSymbol("add")
	assert.True(t, ok)
}
