package walker

import (
	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

// ExtractSymbols runs the symbol extractor: it emits
// a Symbol for every namespace_eval, proc, set, and variable node.
func ExtractSymbols(root *ast.Node, filepath string) []index.Symbol {
	var out []index.Symbol

	handlers := Handlers{
		ast.KindNamespaceEval: func(n *ast.Node, ctx Context, visit Visit) {
			out = append(out, index.Symbol{
				Kind:          index.Namespace,
				Name:          n.String("name"),
				QualifiedName: ctx.Namespace,
				File:          filepath,
				Range:         n.Range,
				Scope:         parentNamespace(ctx.Namespace),
			})
		},
		ast.KindProc: func(n *ast.Node, ctx Context, visit Visit) {
			name := n.String("name")
			out = append(out, index.Symbol{
				Kind:          index.Proc,
				Name:          name,
				QualifiedName: QualifiedName(ctx.Namespace, name),
				File:          filepath,
				Range:         n.Range,
				Scope:         ctx.Namespace,
				Params:        extractParams(n),
			})
		},
		ast.KindSet: func(n *ast.Node, ctx Context, visit Visit) {
			name := n.String("var_name")
			if name == "" {
				return
			}
			out = append(out, index.Symbol{
				Kind:          index.Variable,
				Name:          name,
				QualifiedName: QualifiedName(ctx.Namespace, name),
				File:          filepath,
				Range:         n.Range,
				Scope:         ctx.Namespace,
			})
		},
		ast.KindVariable: func(n *ast.Node, ctx Context, visit Visit) {
			name := n.String("name")
			if name == "" {
				return
			}
			out = append(out, index.Symbol{
				Kind:          index.Variable,
				Name:          name,
				QualifiedName: QualifiedName(ctx.Namespace, name),
				File:          filepath,
				Range:         n.Range,
				Scope:         ctx.Namespace,
			})
		},
	}

	Walk(root, filepath, handlers)
	return out
}

func parentNamespace(ns index.QName) index.QName {
	s := string(ns)
	idx := lastDoubleColon(s)
	if idx <= 0 {
		return "::"
	}
	return index.QName(s[:idx])
}

func lastDoubleColon(s string) int {
	last := -1
	for i := 0; i+2 <= len(s); i++ {
		if s[i] == ':' && s[i+1] == ':' {
			last = i
		}
	}
	return last
}

func extractParams(proc *ast.Node) []index.Param {
	raw, ok := proc.Fields["params"].([]any)
	if !ok {
		return nil
	}
	params := make([]index.Param, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := index.Param{}
		if name, ok := m["name"].(string); ok {
			p.Name = name
		}
		if def, ok := m["default"].(string); ok {
			p.Default = &def
		}
		if varargs, ok := m["is_varargs"].(bool); ok {
			p.IsVarargs = varargs
		} else if p.Name == "args" {
			p.IsVarargs = true
		}
		params = append(params, p)
	}
	return params
}
