// Package workspace implements the background indexer:
// a bounded worker pool that brings the Index to a ready state for a
// workspace root, then keeps it current as files change.
package workspace

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/semaphore"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
	"github.com/unknownbreaker/tcl-lsp/internal/config"
	"github.com/unknownbreaker/tcl-lsp/internal/index"
	"github.com/unknownbreaker/tcl-lsp/internal/parser"
	"github.com/unknownbreaker/tcl-lsp/internal/resolver"
	"github.com/unknownbreaker/tcl-lsp/internal/rvt"
	"github.com/unknownbreaker/tcl-lsp/internal/walker"
)

var log = commonlog.NewScopeLogger("workspace")

// State is the indexer's life cycle.
type State int

const (
	Idle State = iota
	Scanning
	Ready
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Ready:
		return "ready"
	default:
		return "idle"
	}
}

// Indexer brings a Store to a consistent state for a workspace root
// and supports incremental single-file reindexing afterward.
type Indexer struct {
	store  *index.Store
	parser *parser.Parser
	cfg    config.Config

	mu           sync.Mutex
	state        State
	shuttingDown bool

	// astCache holds each file's most recently indexed AST, keyed by
	// path, and is exposed through AST. The LSP handlers do not read
	// it; they use the open buffer's own parsed tree.
	astCache map[string]*ast.Node
}

// New returns an Indexer over store, using p to invoke the external
// parser, configured by cfg.
func New(store *index.Store, p *parser.Parser, cfg config.Config) *Indexer {
	return &Indexer{
		store:    store,
		parser:   p,
		cfg:      cfg,
		astCache: make(map[string]*ast.Node),
	}
}

// State reports the indexer's current life-cycle state.
func (idx *Indexer) State() State {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.state
}

func (idx *Indexer) setState(s State) {
	idx.mu.Lock()
	idx.state = s
	idx.mu.Unlock()
}

func (idx *Indexer) isShuttingDown() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.shuttingDown
}

// Cleanup forces the indexer back to idle and causes any in-flight
// pass-1 jobs to become no-ops on completion.
func (idx *Indexer) Cleanup() {
	idx.mu.Lock()
	idx.shuttingDown = true
	idx.state = Idle
	idx.mu.Unlock()
}

// AST returns the cached AST for path, if one has been indexed.
func (idx *Indexer) AST(path string) (*ast.Node, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	n, ok := idx.astCache[path]
	return n, ok
}

type fileResult struct {
	path string
	root *ast.Node
}

// BuildWorkspaceIndex runs a full two-pass scan: pass 1 (define)
// processes files with bounded concurrency; pass 2 (resolve) runs only
// after every pass-1 job has completed, guaranteeing symbols are fully
// populated before any cross-file reference is resolved.
func (idx *Indexer) BuildWorkspaceIndex(ctx context.Context, root string) {
	runID := ksuid.New().String()
	log.Infof("run %s: scanning workspace root %s", runID, root)

	idx.mu.Lock()
	idx.shuttingDown = false
	idx.state = Scanning
	idx.mu.Unlock()

	files := DiscoverFiles(root, idx.cfg.MaxFiles)

	workers := idx.cfg.Workers
	if workers <= 0 {
		workers = 6
	}
	sem := semaphore.NewWeighted(int64(workers))

	resultsMu := sync.Mutex{}
	var pending []fileResult
	var wg sync.WaitGroup

	for _, path := range files {
		if idx.isShuttingDown() {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			if idx.isShuttingDown() {
				return
			}
			root, ok := idx.indexFilePass1(ctx, path)
			if !ok {
				return
			}
			resultsMu.Lock()
			pending = append(pending, fileResult{path: path, root: root})
			resultsMu.Unlock()
		}(path)
	}
	wg.Wait()

	if idx.isShuttingDown() {
		log.Infof("run %s: cleanup requested mid-scan, aborting before pass 2", runID)
		return
	}

	for _, p := range pending {
		idx.resolveFile(p.path, p.root)
	}

	idx.setState(Ready)
	log.Infof("TCL index ready: %d files", len(pending))
}

// indexFilePass1 implements pass 1's per-file steps:
// remove stale entries, read, parse, validate, extract symbols.
func (idx *Indexer) indexFilePass1(ctx context.Context, path string) (*ast.Node, bool) {
	idx.store.RemoveFile(path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("skipping %s: %v", path, err)
		return nil, false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false
	}

	var root *ast.Node
	if strings.HasSuffix(strings.ToLower(path), ".rvt") {
		root, err = parseRVT(ctx, idx.parser, string(data))
	} else {
		root, err = idx.parser.ParseFile(ctx, path)
	}
	if err != nil {
		log.Warningf("parse failed for %s: %v", path, err)
		return nil, false
	}

	result := ast.Validate(root, ast.ValidationOptions{})
	if !result.Valid {
		for _, e := range result.Errors {
			log.Debugf("%s: validation: %s (%s)", path, e.Message, e.Path)
		}
	}

	for _, sym := range walker.ExtractSymbols(root, path) {
		idx.store.AddSymbol(sym)
	}

	idx.mu.Lock()
	idx.astCache[path] = root
	idx.mu.Unlock()

	return root, true
}

// ParseText parses in-memory source as either plain Tcl or an RVT
// template, dispatching on path's extension. It is shared by the
// indexer (reading from disk) and the LSP document-sync handlers
// (reading from an open buffer, which may not match disk).
func ParseText(ctx context.Context, p *parser.Parser, path, source string) (*ast.Node, error) {
	if strings.HasSuffix(strings.ToLower(path), ".rvt") {
		return parseRVT(ctx, p, source)
	}
	return p.ParseSource(ctx, source)
}

// parseRVT extracts each embedded block, parses it as a standalone
// fragment, remaps its positions back to template coordinates, and
// assembles the blocks into one synthetic root so downstream walkers
// see a single tree per file regardless of source kind.
func parseRVT(ctx context.Context, p *parser.Parser, source string) (*ast.Node, error) {
	blocks := rvt.Extract(source)

	var children []*ast.Node
	for _, b := range blocks {
		frag, err := p.ParseSource(ctx, b.Code)
		if err != nil {
			log.Debugf("rvt block parse failed: %v", err)
			continue
		}
		remapTree(frag, b)
		children = append(children, frag.Children("children")...)
	}

	return &ast.Node{
		Type:   ast.KindRoot,
		Fields: map[string]any{"children": children},
	}, nil
}

// resolveFile implements pass 2 for a single file: extract references,
// resolve each to a qualified name, and record it only if that target
// actually exists in the symbol map.
func (idx *Indexer) resolveFile(path string, root *ast.Node) {
	for _, ref := range walker.ExtractReferences(root, path) {
		qn, ok := resolver.ResolveName(idx.store, ref.Namespace, ref.Name)
		if !ok {
			continue
		}
		if _, exists := idx.store.Find(qn); exists {
			idx.store.AddReference(qn, ref)
		}
	}
}

// IndexFile runs the synchronous single-file path used on save:
// no global pass runs.
func (idx *Indexer) IndexFile(ctx context.Context, path string) {
	root, ok := idx.indexFilePass1(ctx, path)
	if !ok {
		return
	}
	idx.resolveFile(path, root)
}
