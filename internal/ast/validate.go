package ast

import "fmt"

// ValidationOptions controls strictness.
type ValidationOptions struct {
	Strict bool
}

// ValidationError pairs a message with the dotted path where it was
// found, so log output and dev-mode test failures can point at the
// offending node.
type ValidationError struct {
	Message string
	Path    string
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate checks an AST against Schema. In strict mode, unknown fields
// on a known kind and unknown kinds themselves are errors. In lenient
// mode only missing required fields and wrong types of present fields
// fail — unknown fields/kinds pass through untouched.
//
// Validation is advisory: callers decide whether a non-valid result
// blocks indexing.
func Validate(root *Node, opts ValidationOptions) ValidationResult {
	v := &validator{opts: opts}
	v.walk(root, "root", 0)
	return ValidationResult{Valid: len(v.errors) == 0, Errors: v.errors}
}

type validator struct {
	opts   ValidationOptions
	errors []ValidationError
}

func (v *validator) fail(path, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	})
}

func (v *validator) walk(n *Node, path string, depth int) {
	if n == nil {
		return
	}
	if depth > MaxDepth {
		v.fail(path, "node exceeds max depth %d", MaxDepth)
		return
	}

	schema, known := Schema[n.Type]
	if !known {
		if v.opts.Strict {
			v.fail(path, "unknown node kind %q", n.Type)
		}
	} else {
		v.checkFields(n, schema, path)
	}

	for field, val := range n.Fields {
		switch child := val.(type) {
		case *Node:
			v.walk(child, path+"."+field, depth+1)
		case []*Node:
			for i, c := range child {
				v.walk(c, fmt.Sprintf("%s.%s[%d]", path, field, i), depth+1)
			}
		}
	}
}

func (v *validator) checkFields(n *Node, schema NodeSchema, path string) {
	declared := make(map[string]FieldSpec, len(schema.Fields))
	for _, f := range schema.Fields {
		declared[f.Name] = f
		val, present := n.Fields[f.Name]
		if !present {
			if f.Required {
				v.fail(path, "missing required field %q on %s", f.Name, n.Type)
			}
			continue
		}
		if !typeMatches(val, f.Type) {
			v.fail(path, "field %q on %s has wrong type", f.Name, n.Type)
		}
	}

	if v.opts.Strict {
		for field := range n.Fields {
			if _, ok := declared[field]; !ok {
				v.fail(path, "unknown field %q on %s", field, n.Type)
			}
		}
	}
}

func typeMatches(val any, t FieldType) bool {
	switch t {
	case TAny:
		return true
	case TString:
		_, ok := val.(string)
		return ok
	case TNumber:
		_, ok := val.(float64)
		return ok
	case TBoolean:
		_, ok := val.(bool)
		return ok
	case TTclBoolean:
		switch x := val.(type) {
		case bool:
			return true
		case float64:
			return x == 0 || x == 1
		case string:
			return x == "0" || x == "1" || x == "true" || x == "false"
		default:
			return false
		}
	case TArray:
		_, isNodes := val.([]*Node)
		_, isAny := val.([]any)
		return isNodes || isAny
	case TTclArray:
		if s, ok := val.(string); ok {
			return s == ""
		}
		_, isNodes := val.([]*Node)
		_, isAny := val.([]any)
		return isNodes || isAny
	case TObject:
		_, isNode := val.(*Node)
		_, isMap := val.(map[string]any)
		return isNode || isMap
	default:
		return false
	}
}
