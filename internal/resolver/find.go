package resolver

import (
	"strings"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
)

// FindNodeAt returns the innermost node of root whose range contains
// pos, or nil if pos falls outside the tree entirely.
func FindNodeAt(root *ast.Node, pos ast.Position) *ast.Node {
	return findNodeAt(root, pos, 0)
}

func findNodeAt(n *ast.Node, pos ast.Position, depth int) *ast.Node {
	if n == nil || depth > ast.MaxDepth {
		return nil
	}
	if !(n.Range == ast.Range{}) && !n.Range.Contains(pos) {
		return nil
	}

	best := n
	descend := func(child *ast.Node) {
		if found := findNodeAt(child, pos, depth+1); found != nil {
			best = found
		}
	}

	for _, c := range n.Children("children") {
		descend(c)
	}
	if body := n.Body("body"); body != nil {
		descend(body)
	}
	if then := n.Body("then_body"); then != nil {
		descend(then)
	}
	if els := n.Body("else_body"); els != nil {
		descend(els)
	}

	return best
}

// WordAt extracts the bare identifier a user would expect
// go-to-definition to act on from the node at pos: a proc/command
// name as-is, or a variable reference with its Tcl sigil stripped
// ($name, ${name}, $arr(key) all resolve on name/arr).
func WordAt(n *ast.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case ast.KindProc:
		return n.String("name")
	case ast.KindNamespaceEval:
		return n.String("name")
	case ast.KindCommand:
		return n.String("name")
	case ast.KindSet:
		return n.String("var_name")
	case ast.KindVariable:
		return n.String("name")
	case ast.KindGlobal:
		if vars := n.StringArray("vars"); len(vars) > 0 {
			return vars[0]
		}
	}
	if text, ok := n.Fields["text"].(string); ok {
		return StripSigil(text)
	}
	return ""
}

// StripSigil removes Tcl variable-reference syntax: $name, ${name},
// $arr(key) all resolve on the inner name.
func StripSigil(s string) string {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "{")
	if idx := strings.IndexAny(s, "}("); idx >= 0 {
		s = s[:idx]
	}
	return s
}
