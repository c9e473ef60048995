package walker

import (
	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

// ExtractReferences runs the reference extractor:
// namespace_export and interp_alias each emit Export refs, and any
// command/command_substitution whose head is a plain string not in
// Builtins emits a Call ref.
func ExtractReferences(root *ast.Node, filepath string) []index.Reference {
	var out []index.Reference

	emitCall := func(name string, ctx Context, r ast.Range, text string) {
		if name == "" || Builtins[name] {
			return
		}
		out = append(out, index.Reference{
			Kind:      index.Call,
			Name:      name,
			Namespace: ctx.Namespace,
			File:      filepath,
			Range:     r,
			Text:      text,
		})
	}

	handlers := Handlers{
		ast.KindNamespaceExport: func(n *ast.Node, ctx Context, visit Visit) {
			for _, name := range n.StringArray("exports") {
				if name == "*" {
					continue
				}
				out = append(out, index.Reference{
					Kind:      index.Export,
					Name:      name,
					Namespace: ctx.Namespace,
					File:      filepath,
					Range:     n.Range,
					Text:      name,
				})
			}
		},
		ast.KindInterpAlias: func(n *ast.Node, ctx Context, visit Visit) {
			alias := n.String("alias")
			target := n.String("target")
			out = append(out, index.Reference{
				Kind:      index.Export,
				Name:      alias,
				Namespace: ctx.Namespace,
				File:      filepath,
				Range:     n.Range,
				Text:      alias,
				Target:    targetPtr(target),
			})
		},
		ast.KindCommand: func(n *ast.Node, ctx Context, visit Visit) {
			name := n.String("name")
			emitCall(name, ctx, n.Range, commandText(name, n))
		},
		ast.KindCommandSubst: func(n *ast.Node, ctx Context, visit Visit) {
			name, text := commandSubstHead(n)
			emitCall(name, ctx, n.Range, text)
		},
		ast.KindSet: func(n *ast.Node, ctx Context, visit Visit) {
			// `set x [foo]` — the value may itself be a command
			// substitution node; re-enter the walk explicitly so its
			// handler runs.
			if sub, ok := n.Fields["value"].(*ast.Node); ok {
				visit(sub, ctx)
			}
		},
	}

	Walk(root, filepath, handlers)
	return out
}

func targetPtr(s string) *index.QName {
	if s == "" {
		return nil
	}
	qn := index.QName(s)
	return &qn
}

// commandText builds a short display snippet, at most 5 arguments.
func commandText(name string, n *ast.Node) string {
	text := name
	args := n.Children("args")
	limit := len(args)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		text += " " + argText(args[i])
	}
	return text
}

func argText(n *ast.Node) string {
	if n == nil {
		return ""
	}
	if s, ok := n.Fields["text"].(string); ok {
		return s
	}
	return string(n.Type)
}

// commandSubstHead resolves the `command` field of a command_substitution
// node: either `command: [name, args...]` or `command: string`.
func commandSubstHead(n *ast.Node) (name string, text string) {
	switch v := n.Fields["command"].(type) {
	case string:
		return firstWord(v), v
	case []any:
		if len(v) == 0 {
			return "", ""
		}
		head, _ := v[0].(string)
		return head, head
	}
	return "", ""
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' {
			return s[:i]
		}
	}
	return s
}
