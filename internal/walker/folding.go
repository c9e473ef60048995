package walker

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
)

// ExtractFoldingRanges emits one folding range per proc,
// namespace_eval, and multi-line control-flow node.
// A block must span at least two source lines to fold; ranges are
// returned in 0-based LSP form.
func ExtractFoldingRanges(root *ast.Node, filepath string) []protocol.FoldingRange {
	var out []protocol.FoldingRange

	foldable := map[ast.NodeKind]bool{
		ast.KindProc:          true,
		ast.KindNamespaceEval: true,
		ast.KindIf:            true,
		ast.KindWhile:         true,
		ast.KindFor:           true,
		ast.KindForeach:       true,
		ast.KindSwitch:        true,
	}

	emit := func(n *ast.Node, ctx Context, visit Visit) {
		if !foldable[n.Type] {
			return
		}
		if n.Range.End.Line-n.Range.Start.Line < 1 {
			return
		}
		lspRange := n.Range.ToLSP()
		out = append(out, protocol.FoldingRange{
			StartLine:      lspRange.Start.Line,
			StartCharacter: &lspRange.Start.Character,
			EndLine:        lspRange.End.Line,
			EndCharacter:   &lspRange.End.Character,
		})
	}

	handlers := Handlers{
		ast.KindProc:          emit,
		ast.KindNamespaceEval: emit,
		ast.KindIf:            emit,
		ast.KindWhile:         emit,
		ast.KindFor:           emit,
		ast.KindForeach:       emit,
		ast.KindSwitch:        emit,
	}

	Walk(root, filepath, handlers)
	return out
}
