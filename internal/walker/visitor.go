// Package walker implements the namespace-aware AST visitor shared by
// every downstream analysis (symbol/reference extraction, folding
// ranges, semantic tokens).
package walker

import (
	"strings"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

// Context is carried down the walk and mutated only by copy — each
// descent into a child gets its own Context value, never a shared
// pointer, so sibling subtrees never see each other's namespace/depth
// changes.
type Context struct {
	Filepath  string
	Namespace index.QName
	Depth     int
}

// Visit re-enters the walk on a sub-node using the same context and
// handler table. Handlers that need to look inside a value they don't
// otherwise descend into (e.g. a `set` value that embeds a command
// substitution) call this explicitly.
type Visit func(n *ast.Node, ctx Context)

// Handler is invoked once per node of its kind, before the walker
// descends into that node's children.
type Handler func(n *ast.Node, ctx Context, visit Visit)

// Handlers maps a node kind to the callback invoked for it. A kind
// absent from the map is traversed but invokes nothing.
type Handlers map[ast.NodeKind]Handler

// Walk runs a depth-bounded, namespace-aware traversal of root. depth
// stops descending once it exceeds ast.MaxDepth, matching the validator's own bound so a tree that passed
// validation can always be fully walked.
func Walk(root *ast.Node, filepath string, handlers Handlers) {
	ctx := Context{Filepath: filepath, Namespace: "::", Depth: 0}
	w := &walk{handlers: handlers}
	w.visit(root, ctx)
}

type walk struct {
	handlers Handlers
}

func (w *walk) visit(n *ast.Node, ctx Context) {
	if n == nil || ctx.Depth > ast.MaxDepth {
		return
	}

	childCtx := ctx
	if n.Type == ast.KindNamespaceEval {
		childCtx.Namespace = JoinNamespace(ctx.Namespace, n.String("name"))
	}

	if h, ok := w.handlers[n.Type]; ok {
		h(n, childCtx, func(sub *ast.Node, subCtx Context) {
			w.visit(sub, subCtx)
		})
	}

	nextCtx := childCtx
	nextCtx.Depth = ctx.Depth + 1

	for _, c := range n.Children("children") {
		w.visit(c, nextCtx)
	}
	if body := n.Body("body"); body != nil {
		w.visit(body, nextCtx)
	}
	if then := n.Body("then_body"); then != nil {
		w.visit(then, nextCtx)
	}
	if els := n.Body("else_body"); els != nil {
		w.visit(els, nextCtx)
	}
	for _, branch := range n.Children("elseif_branches") {
		w.visit(branch, nextCtx)
	}
	for _, c := range n.Children("cases") {
		w.visit(c, nextCtx)
	}
}

// JoinNamespace appends name to current, normalising so the result
// always begins with exactly one "::". An empty name returns current unchanged.
func JoinNamespace(current index.QName, name string) index.QName {
	if name == "" {
		return current
	}
	name = strings.TrimPrefix(name, "::")
	base := strings.TrimSuffix(string(current), "::")
	if base == "" {
		return index.QName("::" + name)
	}
	return index.QName(base + "::" + name)
}

// QualifiedName joins a bare name with the enclosing namespace,
// applying the same rooting rule as JoinNamespace.
func QualifiedName(ns index.QName, name string) index.QName {
	if strings.HasPrefix(name, "::") {
		return index.QName(name)
	}
	return JoinNamespace(ns, name)
}
