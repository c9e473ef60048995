package walker

import (
	"sort"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
)

// TokenType indexes into the legend advertised at initialize time;
// order here is the order the legend's token type array must use.
const (
	TokenKeyword = iota
	TokenFunction
	TokenVariable
)

// token is one pre-delta semantic token, in absolute (line, char) LSP
// coordinates.
type token struct {
	Line, Char, Length int
	Type               int
}

// keywordFor maps a node kind to the source text LSP should highlight
// as a keyword. Kinds absent from this map produce no keyword token.
var keywordFor = map[ast.NodeKind]string{
	ast.KindIf:             "if",
	ast.KindWhile:          "while",
	ast.KindFor:            "for",
	ast.KindForeach:        "foreach",
	ast.KindSwitch:         "switch",
	ast.KindProc:           "proc",
	ast.KindNamespaceEval:  "namespace",
	ast.KindGlobal:         "global",
	ast.KindUpvar:          "upvar",
	ast.KindPackageRequire: "package",
	ast.KindPackageProvide: "package",
}

// ExtractSemanticTokens emits keyword, function-definition, and
// variable tokens, returning the flat delta-encoded
// quintuple sequence LSP's semanticTokens transport expects, after
// sorting by (line, char) ascending.
//
// Function/definition and variable positions are computed by assuming
// a single space after the `proc`/`set` keyword — a documented
// imperfection carried over deliberately: a qualified
// `proc ::ns::name` or a tab-separated declaration will misplace the
// token, but the common case is exact.
func ExtractSemanticTokens(root *ast.Node, filepath string) []uint32 {
	return deltaEncode(collectTokens(root, filepath))
}

// ExtractSemanticTokensRange is ExtractSemanticTokens restricted to
// tokens whose line falls within [start.Line, end.Line]. Deltas are recomputed from the
// filtered subset, same as a full-document request starting at (0,0).
func ExtractSemanticTokensRange(root *ast.Node, filepath string, start, end ast.Position) []uint32 {
	toks := collectTokens(root, filepath)

	filtered := toks[:0:0]
	for _, t := range toks {
		line := t.Line + 1 // back to 1-based for comparison against ast.Position
		if line >= start.Line && line <= end.Line {
			filtered = append(filtered, t)
		}
	}
	return deltaEncode(filtered)
}

func collectTokens(root *ast.Node, filepath string) []token {
	var toks []token

	handlers := Handlers{
		ast.KindIf:             keywordHandler(&toks),
		ast.KindWhile:          keywordHandler(&toks),
		ast.KindFor:            keywordHandler(&toks),
		ast.KindForeach:        keywordHandler(&toks),
		ast.KindSwitch:         keywordHandler(&toks),
		ast.KindGlobal:         keywordHandler(&toks),
		ast.KindUpvar:          keywordHandler(&toks),
		ast.KindPackageRequire: keywordHandler(&toks),
		ast.KindPackageProvide: keywordHandler(&toks),
		ast.KindNamespaceEval:  keywordHandler(&toks),
		ast.KindProc: func(n *ast.Node, ctx Context, visit Visit) {
			toks = append(toks, token{
				Line: n.Range.Start.Line - 1,
				Char: n.Range.Start.Column - 1,
				Length: len("proc"),
				Type:   TokenKeyword,
			})
			name := n.String("name")
			if name != "" {
				nameCol := n.Range.Start.Column - 1 + len("proc ")
				toks = append(toks, token{
					Line:   n.Range.Start.Line - 1,
					Char:   nameCol,
					Length: len(name),
					Type:   TokenFunction,
				})
			}
		},
		ast.KindSet: func(n *ast.Node, ctx Context, visit Visit) {
			name := n.String("var_name")
			if name == "" {
				return
			}
			nameCol := n.Range.Start.Column - 1 + len("set ")
			toks = append(toks, token{
				Line:   n.Range.Start.Line - 1,
				Char:   nameCol,
				Length: len(name),
				Type:   TokenVariable,
			})
		},
	}

	Walk(root, filepath, handlers)

	sort.SliceStable(toks, func(i, j int) bool {
		if toks[i].Line != toks[j].Line {
			return toks[i].Line < toks[j].Line
		}
		return toks[i].Char < toks[j].Char
	})

	return toks
}

func keywordHandler(toks *[]token) Handler {
	return func(n *ast.Node, ctx Context, visit Visit) {
		kw, ok := keywordFor[n.Type]
		if !ok {
			return
		}
		*toks = append(*toks, token{
			Line:   n.Range.Start.Line - 1,
			Char:   n.Range.Start.Column - 1,
			Length: len(kw),
			Type:   TokenKeyword,
		})
	}
}

func deltaEncode(toks []token) []uint32 {
	out := make([]uint32, 0, len(toks)*5)
	prevLine, prevChar := 0, 0
	for _, t := range toks {
		deltaLine := t.Line - prevLine
		deltaChar := t.Char
		if deltaLine == 0 {
			deltaChar = t.Char - prevChar
		}
		out = append(out, u32(deltaLine), u32(deltaChar), u32(t.Length), u32(t.Type), 0)
		prevLine, prevChar = t.Line, t.Char
	}
	return out
}

func u32(n int) uint32 {
	if n < 0 {
		n = 0
	}
	return uint32(n)
}

// tokenTypeNames is the legend string array matching the TokenXxx
// constants above, in order — used by the initialize handler to build
// protocol.SemanticTokensLegend.
var tokenTypeNames = []string{"keyword", "function", "variable"}

// TokenTypeNames returns a defensive copy of the legend.
func TokenTypeNames() []string {
	out := make([]string, len(tokenTypeNames))
	copy(out, tokenTypeNames)
	return out
}

