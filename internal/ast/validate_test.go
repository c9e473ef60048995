package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) *Node {
	t.Helper()
	var n Node
	require.NoError(t, json.Unmarshal([]byte(src), &n))
	return &n
}

func TestValidate_EmptyRoot(t *testing.T) {
	root := decode(t, `{"type":"root","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":1}},"depth":0,"children":[]}`)

	result := Validate(root, ValidationOptions{})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	root := decode(t, `{"type":"proc","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":10}},"depth":0,"params":[],"body":{"type":"root","children":[]}}`)

	result := Validate(root, ValidationOptions{})

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0].Message, "name")
}

func TestValidate_LenientAllowsUnknownFieldsAndKinds(t *testing.T) {
	root := decode(t, `{"type":"root","children":[],"mystery":42}`)

	result := Validate(root, ValidationOptions{Strict: false})
	assert.True(t, result.Valid)

	unknownKind := decode(t, `{"type":"frobnicate","children":[]}`)
	result = Validate(unknownKind, ValidationOptions{Strict: false})
	assert.True(t, result.Valid)
}

func TestValidate_StrictRejectsUnknownFieldsAndKinds(t *testing.T) {
	root := decode(t, `{"type":"root","children":[],"mystery":42}`)

	result := Validate(root, ValidationOptions{Strict: true})
	require.False(t, result.Valid)

	unknownKind := decode(t, `{"type":"frobnicate","children":[]}`)
	result = Validate(unknownKind, ValidationOptions{Strict: true})
	require.False(t, result.Valid)
}

func TestValidate_TclBooleanAcceptsZeroOneAndBool(t *testing.T) {
	for _, val := range []string{`true`, `false`, `0`, `1`} {
		root := decode(t, `{"type":"root","children":[],"had_error":`+val+`}`)
		result := Validate(root, ValidationOptions{})
		assert.True(t, result.Valid, "had_error=%s should validate", val)
	}
}

func TestValidate_TclArrayAcceptsEmptyString(t *testing.T) {
	root := decode(t, `{"type":"namespace_export","exports":""}`)
	result := Validate(root, ValidationOptions{})
	assert.True(t, result.Valid)
}

func TestValidate_DepthBound(t *testing.T) {
	root := &Node{Type: KindRoot, Fields: map[string]any{"children": []*Node{}}}
	result := Validate(root, ValidationOptions{})
	assert.True(t, result.Valid)

	// A chain of MaxDepth+1 nested nodes puts the deepest one past the bound.
	tooDeep := &Node{Type: KindRoot, Fields: map[string]any{"children": []*Node{}}}
	cur := tooDeep
	for i := 0; i <= MaxDepth; i++ {
		child := &Node{Type: "frobnicate", Fields: map[string]any{}}
		cur.Fields["body"] = child
		cur = child
	}
	res := Validate(tooDeep, ValidationOptions{})
	assert.False(t, res.Valid)
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: Position{Line: 2, Column: 1}, End: Position{Line: 4, Column: 5}}

	assert.True(t, r.Contains(Position{Line: 3, Column: 1}))
	assert.True(t, r.Contains(Position{Line: 2, Column: 1}))
	assert.False(t, r.Contains(Position{Line: 4, Column: 5}))
	assert.False(t, r.Contains(Position{Line: 1, Column: 1}))
	assert.False(t, r.Contains(Position{Line: 5, Column: 1}))
}

func TestRange_ToLSP(t *testing.T) {
	r := Range{Start: Position{Line: 2, Column: 13}, End: Position{Line: 2, Column: 16}}
	lsp := r.ToLSP()

	assert.Equal(t, uint32(1), lsp.Start.Line)
	assert.Equal(t, uint32(12), lsp.Start.Character)
	assert.Equal(t, uint32(1), lsp.End.Line)
	assert.Equal(t, uint32(15), lsp.End.Character)
}
