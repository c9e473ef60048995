package index

import (
	"sort"
	"strings"

	"github.com/sasha-s/go-deadlock"
	"github.com/tliron/commonlog"
)

var log = commonlog.NewScopeLogger("index")

// Store is the workspace-wide Symbol & Reference Index: four maps
// updated atomically under a single writer per file.
// go-deadlock's RWMutex is a drop-in sync.RWMutex that additionally
// detects lock-ordering cycles in tests and dev builds — useful here
// because the indexer's pass-1/pass-2 split means callers take this
// lock from several goroutines.
type Store struct {
	mu deadlock.RWMutex

	symbols    map[QName]Symbol
	files      map[string][]QName
	references map[QName][]Reference
	refFiles   map[string][]refFileEntry
}

type refFileEntry struct {
	Target QName
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		symbols:    make(map[QName]Symbol),
		files:      make(map[string][]QName),
		references: make(map[QName][]Reference),
		refFiles:   make(map[string][]refFileEntry),
	}
}

// AddSymbol overwrites symbols[s.QualifiedName] and appends it to
// files[s.File]. A second definition under the same qualified name
// replaces the first without error — Tcl itself allows proc
// redefinition.
func (s *Store) AddSymbol(sym Symbol) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.symbols[sym.QualifiedName] = sym
	s.files[sym.File] = append(s.files[sym.File], sym.QualifiedName)
}

// Find looks up a symbol by qualified name.
func (s *Store) Find(qn QName) (Symbol, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sym, ok := s.symbols[qn]
	return sym, ok
}

// AddReference appends r to references[target] and records target in
// refFiles[r.File] so RemoveFile can find it later. If target
// does not exist in the symbol map — an index invariant breach — the
// reference is silently dropped rather than raised.
func (s *Store) AddReference(target QName, r Reference) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.symbols[target]; !ok {
		return
	}
	s.references[target] = append(s.references[target], r)
	s.refFiles[r.File] = append(s.refFiles[r.File], refFileEntry{Target: target})
}

// GetReferences returns every reference recorded against qn.
func (s *Store) GetReferences(qn QName) []Reference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := s.references[qn]
	out := make([]Reference, len(refs))
	copy(out, refs)
	return out
}

// RemoveFile deletes every symbol and reference that originated from
// path. A symbol entry whose references are emptied out must still
// remain in the map — only the file-removal of the *defining* entry
// deletes the symbol itself.
func (s *Store) RemoveFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, qn := range s.files[path] {
		if sym, ok := s.symbols[qn]; ok && sym.File == path {
			delete(s.symbols, qn)
		}
	}
	delete(s.files, path)

	targets := make(map[QName]bool)
	for _, entry := range s.refFiles[path] {
		targets[entry.Target] = true
	}
	for target := range targets {
		var remaining []Reference
		for _, r := range s.references[target] {
			if r.File == path {
				continue
			}
			remaining = append(remaining, r)
		}
		if len(remaining) > 0 {
			s.references[target] = remaining
		} else {
			delete(s.references, target)
		}
	}
	delete(s.refFiles, path)

	log.Debugf("removed index entries for %s", path)
}

// Clear drops every symbol, file, and reference.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.symbols = make(map[QName]Symbol)
	s.files = make(map[string][]QName)
	s.references = make(map[QName][]Reference)
	s.refFiles = make(map[string][]refFileEntry)
}

// SymbolCount returns the number of distinct qualified names indexed.
func (s *Store) SymbolCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols)
}

// FileCount returns the number of distinct files with indexed symbols.
func (s *Store) FileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Search returns symbols whose unqualified name contains query
// (case-insensitive), for workspace/symbol. An empty
// query returns every symbol.
func (s *Store) Search(query string) []Symbol {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var out []Symbol
	for _, sym := range s.symbols {
		if q == "" || strings.Contains(strings.ToLower(sym.Name), q) {
			out = append(out, sym)
		}
	}
	return out
}

// FindDefinitionsAndReferences implements find-references' ordering
// contract: the definition first (as a synthetic
// Definition-kind entry), followed by references sorted by
// (type-order, file, line).
func (s *Store) FindDefinitionsAndReferences(qn QName) []Reference {
	s.mu.RLock()
	sym, hasSym := s.symbols[qn]
	refs := append([]Reference(nil), s.references[qn]...)
	s.mu.RUnlock()

	var out []Reference
	if hasSym {
		out = append(out, Reference{
			Kind:      Definition,
			Name:      sym.Name,
			Namespace: sym.Scope,
			File:      sym.File,
			Range:     sym.Range,
			Text:      sym.Name,
		})
	}
	out = append(out, refs...)

	sortReferences(out)
	return out
}

func sortReferences(refs []Reference) {
	sort.SliceStable(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		if a.Kind.order() != b.Kind.order() {
			return a.Kind.order() < b.Kind.order()
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Range.Start.Line < b.Range.Start.Line
	})
}
