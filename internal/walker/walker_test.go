package walker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

func decode(t *testing.T, src string) *ast.Node {
	t.Helper()
	var n ast.Node
	require.NoError(t, json.Unmarshal([]byte(src), &n))
	return &n
}

func TestJoinNamespace(t *testing.T) {
	assert.Equal(t, index.QName("::foo"), JoinNamespace("::", "foo"))
	assert.Equal(t, index.QName("::foo::bar"), JoinNamespace("::foo", "bar"))
	assert.Equal(t, index.QName("::foo"), JoinNamespace("::foo", ""))
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, index.QName("::w"), QualifiedName("::", "w"))
	assert.Equal(t, index.QName("::ns::w"), QualifiedName("::ns", "w"))
	assert.Equal(t, index.QName("::already::rooted"), QualifiedName("::ns", "::already::rooted"))
}

func TestExtractSymbols_ProcAtGlobalScope(t *testing.T) {
	root := decode(t, `{
		"type":"root","children":[
			{"type":"proc","name":"add","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":40}},
			 "params":[{"name":"a"},{"name":"b"}],"body":{"type":"root","children":[]}}
		]
	}`)

	symbols := ExtractSymbols(root, "math.tcl")

	require.Len(t, symbols, 1)
	assert.Equal(t, index.QName("::add"), symbols[0].QualifiedName)
	assert.Equal(t, "add", symbols[0].Name)
	require.Len(t, symbols[0].Params, 2)
	assert.Equal(t, "a", symbols[0].Params[0].Name)
}

func TestExtractSymbols_NestedInNamespace(t *testing.T) {
	root := decode(t, `{
		"type":"root","children":[
			{"type":"namespace_eval","name":"utils","range":{"start":{"line":1,"column":1},"end":{"line":3,"column":1}},
			 "body":{"type":"root","children":[
				{"type":"proc","name":"format","range":{"start":{"line":2,"column":1},"end":{"line":2,"column":20}},
				 "params":[],"body":{"type":"root","children":[]}}
			 ]}}
		]
	}`)

	symbols := ExtractSymbols(root, "utils.tcl")

	require.Len(t, symbols, 2)
	var names []string
	for _, s := range symbols {
		names = append(names, string(s.QualifiedName))
	}
	assert.Contains(t, names, "::utils")
	assert.Contains(t, names, "::utils::format")
}

func TestExtractReferences_CommandCallExcludesBuiltins(t *testing.T) {
	root := decode(t, `{
		"type":"root","children":[
			{"type":"command","name":"puts","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":10}},"args":[]},
			{"type":"command","name":"add","range":{"start":{"line":2,"column":1},"end":{"line":2,"column":10}},"args":[]}
		]
	}`)

	refs := ExtractReferences(root, "main.tcl")

	require.Len(t, refs, 1)
	assert.Equal(t, "add", refs[0].Name)
	assert.Equal(t, index.Call, refs[0].Kind)
}

func TestExtractReferences_NamespaceExportExcludesWildcard(t *testing.T) {
	root := decode(t, `{
		"type":"namespace_export","exports":["foo","*","bar"],
		"range":{"start":{"line":1,"column":1},"end":{"line":1,"column":1}}
	}`)

	refs := ExtractReferences(root, "ns.tcl")

	require.Len(t, refs, 2)
	assert.Equal(t, "foo", refs[0].Name)
	assert.Equal(t, "bar", refs[1].Name)
}

func TestExtractReferences_CommandSubstitutionInsideSet(t *testing.T) {
	root := decode(t, `{
		"type":"root","children":[
			{"type":"set","var_name":"result","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":20}},
			 "value":{"type":"command_substitution","command":["add","1","2"],
			          "range":{"start":{"line":1,"column":14},"end":{"line":1,"column":20}}}}
		]
	}`)

	refs := ExtractReferences(root, "main.tcl")

	require.Len(t, refs, 1)
	assert.Equal(t, "add", refs[0].Name)
}

func TestExtractReferences_InterpAlias(t *testing.T) {
	root := decode(t, `{
		"type":"interp_alias","alias":"short","target":"::long::name",
		"range":{"start":{"line":1,"column":1},"end":{"line":1,"column":1}}
	}`)

	refs := ExtractReferences(root, "alias.tcl")

	require.Len(t, refs, 1)
	assert.Equal(t, index.Export, refs[0].Kind)
	require.NotNil(t, refs[0].Target)
	assert.Equal(t, index.QName("::long::name"), *refs[0].Target)
}

func TestExtractFoldingRanges_SkipsSingleLineBlocks(t *testing.T) {
	root := decode(t, `{
		"type":"root","children":[
			{"type":"if","condition":"1","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":10}},
			 "then_body":{"type":"root","children":[]}},
			{"type":"proc","name":"f","range":{"start":{"line":2,"column":1},"end":{"line":5,"column":1}},
			 "params":[],"body":{"type":"root","children":[]}}
		]
	}`)

	ranges := ExtractFoldingRanges(root, "f.tcl")

	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(1), ranges[0].StartLine)
}

func TestExtractSemanticTokens_DeltaEncodedAndSorted(t *testing.T) {
	root := decode(t, `{
		"type":"root","children":[
			{"type":"proc","name":"add","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":30}},
			 "params":[],"body":{"type":"root","children":[]}},
			{"type":"set","var_name":"x","range":{"start":{"line":2,"column":1},"end":{"line":2,"column":10}}}
		]
	}`)

	toks := ExtractSemanticTokens(root, "f.tcl")

	require.Len(t, toks, 15) // 2 tokens from proc (keyword+function), 1 from set
	// first quintuple: keyword "proc" at (0,0)
	assert.Equal(t, uint32(0), toks[0]) // deltaLine
	assert.Equal(t, uint32(0), toks[1]) // deltaChar
	assert.Equal(t, uint32(4), toks[2]) // len("proc")
	assert.Equal(t, uint32(TokenKeyword), toks[3])
}
