package ast

import (
	"encoding/json"
	"fmt"
)

// MaxDepth bounds AST recursion.
const MaxDepth = 50

// NodeKind identifies the shape of a Node. The full enumerated set below
// matches the external parser's schema; unknown kinds are tolerated
// everywhere a NodeKind is consumed — traversed but invoking no handler.
type NodeKind string

const (
	KindRoot               NodeKind = "root"
	KindProc               NodeKind = "proc"
	KindSet                NodeKind = "set"
	KindVariable           NodeKind = "variable"
	KindGlobal             NodeKind = "global"
	KindUpvar              NodeKind = "upvar"
	KindArray              NodeKind = "array"
	KindIf                 NodeKind = "if"
	KindWhile              NodeKind = "while"
	KindFor                NodeKind = "for"
	KindForeach            NodeKind = "foreach"
	KindSwitch             NodeKind = "switch"
	KindNamespaceEval      NodeKind = "namespace_eval"
	KindNamespaceImport    NodeKind = "namespace_import"
	KindNamespaceExport    NodeKind = "namespace_export"
	KindPackageRequire     NodeKind = "package_require"
	KindPackageProvide     NodeKind = "package_provide"
	KindSource             NodeKind = "source"
	KindExpr               NodeKind = "expr"
	KindList               NodeKind = "list"
	KindLappend            NodeKind = "lappend"
	KindPuts               NodeKind = "puts"
	KindError              NodeKind = "error"
	KindCommand            NodeKind = "command"
	KindCommandSubst       NodeKind = "command_substitution"
	KindInterpAlias        NodeKind = "interp_alias"
)

// Node is a single tree node produced by the external parser. Type,
// Range and Depth are common to every kind; Fields carries everything
// else (already decoded into Go values, with nested node-shaped values
// promoted to *Node/[]*Node) so that each walker can pull out exactly
// the fields its kind defines without a combinatorial struct hierarchy
// per kind — a sum-type-by-dispatch-table design.
type Node struct {
	Type   NodeKind
	Range  Range
	Depth  int
	Fields map[string]any
}

// ParseError is a single error reported by the external parser, per the
// `errors` field on a Root node.
type ParseError struct {
	Message string `json:"message"`
	Range   *Range `json:"range,omitempty"`
}

// String returns the named field as a string, or "" if absent or not a
// string.
func (n *Node) String(field string) string {
	if n == nil {
		return ""
	}
	v, ok := n.Fields[field].(string)
	if !ok {
		return ""
	}
	return v
}

// Bool returns the named field interpreted as a tcl_boolean: true/false
// or 1/0.
func (n *Node) Bool(field string) bool {
	if n == nil {
		return false
	}
	switch v := n.Fields[field].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}

// HadError reports whether a root node's `had_error` flag is set.
func (n *Node) HadError() bool {
	return n.Bool("had_error")
}

// Errors returns the root node's parse errors, if any.
func (n *Node) Errors() []ParseError {
	raw, ok := n.Fields["errors"]
	if !ok {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var errs []ParseError
	if err := json.Unmarshal(b, &errs); err != nil {
		return nil
	}
	return errs
}

// Children returns the named field as a slice of child nodes. Used both
// for the top-level `children` array (list-like kinds) and for any
// other array-of-node field.
func (n *Node) Children(field string) []*Node {
	if n == nil {
		return nil
	}
	v, ok := n.Fields[field].([]*Node)
	if !ok {
		return nil
	}
	return v
}

// Body returns the named field as a single child node (e.g. a `body`
// object carrying its own `children` array).
func (n *Node) Body(field string) *Node {
	if n == nil {
		return nil
	}
	v, ok := n.Fields[field].(*Node)
	if !ok {
		return nil
	}
	return v
}

// StringArray returns the named field as a slice of strings, tolerating
// the tcl_array quirk of an empty string standing in for an empty
// array.
func (n *Node) StringArray(field string) []string {
	if n == nil {
		return nil
	}
	switch v := n.Fields[field].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Raw returns the named field with no interpretation.
func (n *Node) Raw(field string) any {
	if n == nil {
		return nil
	}
	return n.Fields[field]
}

// UnmarshalJSON decodes a node, promoting any nested object shaped like
// a node (it carries a `type` key) into *Node, and any array of such
// objects into []*Node, recursively.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ast: decoding node: %w", err)
	}
	return n.fromRaw(raw)
}

func (n *Node) fromRaw(raw map[string]any) error {
	typeVal, _ := raw["type"].(string)
	n.Type = NodeKind(typeVal)
	n.Fields = make(map[string]any, len(raw))

	if rangeVal, ok := raw["range"]; ok {
		b, err := json.Marshal(rangeVal)
		if err == nil {
			var r Range
			if err := json.Unmarshal(b, &r); err == nil {
				n.Range = r
			}
		}
	}
	if depthVal, ok := raw["depth"].(float64); ok {
		n.Depth = int(depthVal)
	}

	for key, val := range raw {
		switch key {
		case "type", "range", "depth":
			continue
		}
		n.Fields[key] = promote(val)
	}
	return nil
}

// promote recursively turns node-shaped JSON values (objects carrying a
// `type` key, and arrays of them) into *Node/[]*Node so downstream code
// never has to re-decode raw maps.
func promote(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if _, hasType := val["type"]; hasType {
			child := &Node{}
			if err := child.fromRaw(val); err == nil {
				return child
			}
		}
		promoted := make(map[string]any, len(val))
		for k, sub := range val {
			promoted[k] = promote(sub)
		}
		return promoted
	case []any:
		allNodes := len(val) > 0
		children := make([]*Node, 0, len(val))
		promoted := make([]any, len(val))
		for i, item := range val {
			p := promote(item)
			promoted[i] = p
			if child, ok := p.(*Node); ok {
				children = append(children, child)
			} else {
				allNodes = false
			}
		}
		if allNodes {
			return children
		}
		return promoted
	default:
		return v
	}
}
