package resolver

import (
	"strings"

	"github.com/unknownbreaker/tcl-lsp/internal/index"
)

// Candidates generates the ordered list of qualified names a bare word
// w might resolve to under namespace ns: itself if
// already rooted, else [w, ns::w, ::w], de-duplicated, in that order.
func Candidates(ns index.QName, w string) []index.QName {
	if strings.HasPrefix(w, "::") {
		return []index.QName{index.QName(w)}
	}

	seen := map[index.QName]bool{}
	var out []index.QName
	add := func(qn index.QName) {
		if !seen[qn] {
			seen[qn] = true
			out = append(out, qn)
		}
	}

	add(index.QName(w))
	add(joinNamespace(ns, w))
	add(index.QName("::" + w))
	return out
}

// ResolveName resolves a bare or qualified name to the first existing
// symbol among its candidates. It does not
// consider locals/globals/upvars — callers that have a Scope should
// apply those first (see Resolve).
func ResolveName(store *index.Store, ns index.QName, w string) (index.QName, bool) {
	for _, cand := range Candidates(ns, w) {
		if _, ok := store.Find(cand); ok {
			return cand, true
		}
	}
	return "", false
}
