package workspace

import (
	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/rvt"
)

// remapTree rewrites every range in n (recursively, through Fields)
// from block-relative coordinates to template-relative coordinates.
func remapTree(n *ast.Node, b rvt.Block) {
	if n == nil {
		return
	}
	n.Range = remapRange(n.Range, b)
	for _, v := range n.Fields {
		switch val := v.(type) {
		case *ast.Node:
			remapTree(val, b)
		case []*ast.Node:
			for _, c := range val {
				remapTree(c, b)
			}
		}
	}
}

func remapRange(r ast.Range, b rvt.Block) ast.Range {
	return ast.Range{
		Start: remapPosition(r.Start, b),
		End:   remapPosition(r.End, b),
	}
}

func remapPosition(pos ast.Position, b rvt.Block) ast.Position {
	mapped := b.Remap(rvt.RemapPosition{Line: pos.Line, Column: pos.Column})
	return ast.Position{Line: mapped.Line, Column: mapped.Column}
}
