package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/rvt"
)

func TestRemapTree_ShiftsNestedRanges(t *testing.T) {
	b := rvt.Block{StartLine: 10, StartCol: 5}

	child := &ast.Node{
		Type:  ast.KindSet,
		Range: ast.Range{Start: ast.Position{Line: 1, Column: 3}, End: ast.Position{Line: 1, Column: 8}},
	}
	root := &ast.Node{
		Type:   ast.KindRoot,
		Range:  ast.Range{Start: ast.Position{Line: 1, Column: 1}, End: ast.Position{Line: 2, Column: 1}},
		Fields: map[string]any{"children": []*ast.Node{child}},
	}

	remapTree(root, b)

	assert.Equal(t, 10, root.Range.Start.Line)
	assert.Equal(t, 5, root.Range.Start.Column)
	assert.Equal(t, 10, child.Range.Start.Line)
	assert.Equal(t, 7, child.Range.Start.Column) // 5 + 3 - 1
	assert.Equal(t, 11, root.Range.End.Line)     // line 2 -> 10 + 2 - 1
}
