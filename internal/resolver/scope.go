// Package resolver computes scope context from a cached AST and
// resolves names to indexed symbols, implementing go-to-definition,
// find-references, hover, and rename.
package resolver

import (
	"strings"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

// Upvar records one `upvar` redirection: a local name standing in for
// a variable some number of stack levels up.
type Upvar struct {
	Level    string
	OtherVar string
}

// Scope is the resolution context at a given (file, position),
// computed on demand by walking the cached AST.
type Scope struct {
	Namespace index.QName
	Proc      string // "" if not inside a proc
	Locals    map[string]bool
	Globals   map[string]bool
	Upvars    map[string]Upvar
}

func newScope(ns index.QName) Scope {
	return Scope{
		Namespace: ns,
		Locals:    map[string]bool{},
		Globals:   map[string]bool{},
		Upvars:    map[string]Upvar{},
	}
}

// ComputeScope walks root top-down, stopping as soon as pos is no
// longer contained in the current node's range — the scope at that
// moment is the answer. Sibling set/variable/global/upvar statements
// of every body it passes through are recorded as well, whichever
// line they are on.
func ComputeScope(root *ast.Node, pos ast.Position) Scope {
	return walkScope(root, pos, newScope("::"), 0)
}

func walkScope(n *ast.Node, pos ast.Position, scope Scope, depth int) Scope {
	if n == nil || depth > ast.MaxDepth {
		return scope
	}
	if !n.Range.Contains(pos) && !(n.Range == ast.Range{}) {
		// Root nodes and synthetic body wrappers often carry a zero
		// range; only bail out when the node has a real range that
		// excludes pos.
		return scope
	}

	next := scope
	switch n.Type {
	case ast.KindNamespaceEval:
		next.Namespace = joinNamespace(scope.Namespace, n.String("name"))
	case ast.KindProc:
		next = newScope(scope.Namespace)
		next.Proc = n.String("name")
		for _, p := range procParamNames(n) {
			next.Locals[p] = true
		}
	case ast.KindSet:
		if v := n.String("var_name"); v != "" && scope.Proc != "" {
			next.Locals[v] = true
		}
	case ast.KindVariable:
		if v := n.String("name"); v != "" && scope.Proc != "" {
			next.Locals[v] = true
		}
	case ast.KindGlobal:
		for _, v := range n.StringArray("vars") {
			next.Globals[v] = true
		}
	case ast.KindUpvar:
		level := n.String("level")
		other := n.String("other_var")
		local := n.String("local_var")
		if local == "" {
			local = other
		}
		next.Upvars[local] = Upvar{Level: level, OtherVar: other}
	}

	best := next
	for _, c := range n.Children("children") {
		if containsPos(c, pos) {
			best = walkScope(c, pos, next, depth+1)
		} else if k := c.Type; k == ast.KindSet || k == ast.KindVariable || k == ast.KindGlobal || k == ast.KindUpvar {
			// A declaration in another statement of the same body still
			// shapes this frame: record it without descending further.
			walkScope(c, c.Range.Start, next, depth+1)
		}
	}
	if body := n.Body("body"); body != nil && containsPos(body, pos) {
		best = walkScope(body, pos, next, depth+1)
	}
	if then := n.Body("then_body"); then != nil && containsPos(then, pos) {
		best = walkScope(then, pos, next, depth+1)
	}
	if els := n.Body("else_body"); els != nil && containsPos(els, pos) {
		best = walkScope(els, pos, next, depth+1)
	}

	return best
}

// containsPos reports whether n is the child pos actually falls inside.
// A zero range (root nodes, synthetic body wrappers) counts as
// containing, matching the leniency walkScope itself applies on entry
// — only a real, non-matching range should stop a descent.
func containsPos(n *ast.Node, pos ast.Position) bool {
	if n == nil {
		return false
	}
	if (n.Range == ast.Range{}) {
		return true
	}
	return n.Range.Contains(pos)
}

func procParamNames(proc *ast.Node) []string {
	raw, ok := proc.Fields["params"].([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := m["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names
}

func joinNamespace(current index.QName, name string) index.QName {
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
