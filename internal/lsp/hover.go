package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
	"github.com/unknownbreaker/tcl-lsp/internal/resolver"
	"github.com/unknownbreaker/tcl-lsp/internal/uri"
)

// Hover handles textDocument/hover: it shows the
// signature of a proc, or the declaring namespace of a variable, for
// the word under the cursor.
func Hover(glspCtx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	srv := currentServer()
	docURI := string(params.TextDocument.URI)

	doc, ok := srv.Documents().Get(docURI)
	if !ok || doc.AST == nil {
		return nil, nil
	}
	_, err := uri.ToPath(docURI)
	if err != nil {
		return nil, nil
	}

	pos := ast.FromLSP(params.Position)

	node := resolver.FindNodeAt(doc.AST, pos)
	word := resolver.WordAt(node)
	if word == "" {
		return nil, nil
	}

	sym, ok := resolver.ResolveSymbol(srv.Index(), doc.AST, pos)
	var content string
	if ok {
		content = hoverForSymbol(sym)
	} else {
		scope := resolver.ComputeScope(doc.AST, pos)
		if !scope.Locals[word] {
			return nil, nil
		}
		content = fmt.Sprintf("```tcl\nvariable %s\n```\n\n(local to `%s`)", word, scope.Proc)
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
	}, nil
}

func hoverForSymbol(sym index.Symbol) string {
	switch sym.Kind {
	case index.Proc:
		return fmt.Sprintf("```tcl\nproc %s {%s}\n```\n\nin namespace `%s`",
			sym.QualifiedName, formatParams(sym.Params), sym.Scope)
	case index.Namespace:
		return fmt.Sprintf("```tcl\nnamespace eval %s\n```", sym.QualifiedName)
	case index.Variable:
		return fmt.Sprintf("```tcl\nvariable %s\n```\n\nin namespace `%s`", sym.Name, sym.Scope)
	default:
		return fmt.Sprintf("```tcl\n%s\n```", sym.QualifiedName)
	}
}

func formatParams(params []index.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		switch {
		case p.IsVarargs:
			parts = append(parts, "args")
		case p.Default != nil:
			parts = append(parts, fmt.Sprintf("{%s %s}", p.Name, *p.Default))
		default:
			parts = append(parts, p.Name)
		}
	}
	return strings.Join(parts, " ")
}
