// Package parser adapts the external `parse` command into ast.Node
// trees. It is the one component that crosses a process boundary:
// the core never embeds a Tcl grammar itself.
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/unknownbreaker/tcl-lsp/internal/ast"
)

// DefaultTimeout is how long a single parse may run before it is
// killed.
const DefaultTimeout = 10 * time.Second

// Parser invokes an external executable to turn Tcl source into an
// ast.Node tree. The executable name is configurable so tests and
// deployments can point at a stub or a real binary.
type Parser struct {
	// Command is the external parser's executable name or path.
	// Defaults to "parse".
	Command string

	// Timeout bounds a single invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// New returns a Parser using the default command name and timeout.
func New() *Parser {
	return &Parser{Command: "parse", Timeout: DefaultTimeout}
}

// Error wraps a failed invocation of the external parser: a timeout, a
// non-zero exit, or output that doesn't decode as a node. Callers
// treat it as a recoverable parser error — skip the file, keep any
// prior index entries.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ParseFile runs the external parser against path and decodes its
// stdout into an ast.Node. The command receives the path as its sole
// argument and is expected to read the file itself,
// rather than receiving source on stdin, so relative `source`
// directives the parser itself resolves stay correct.
func (p *Parser) ParseFile(ctx context.Context, path string) (*ast.Node, error) {
	cmd, timeout := p.Command, p.Timeout
	if cmd == "" {
		cmd = "parse"
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(runCtx, cmd, path)
	c.Stdout = &stdout
	c.Stderr = &stderr

	runErr := c.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, &Error{Path: path, Err: fmt.Errorf("timed out after %s", timeout)}
	}
	if runErr != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("%w: %s", runErr, stderr.String())}
	}

	var root ast.Node
	if err := json.Unmarshal(stdout.Bytes(), &root); err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("decoding parser output: %w", err)}
	}
	return &root, nil
}

// ParseSource parses a fragment of Tcl that does not exist as its own
// file on disk — an extracted RVT block. The external
// parser's contract is file-in, JSON-out, so the
// fragment is spilled to a temp file first. The caller is responsible
// for remapping the returned positions back to template coordinates
// via rvt.Block.Remap.
func (p *Parser) ParseSource(ctx context.Context, source string) (*ast.Node, error) {
	f, err := os.CreateTemp("", "tcl-lsp-block-*.tcl")
	if err != nil {
		return nil, &Error{Path: "<fragment>", Err: fmt.Errorf("creating temp fragment: %w", err)}
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(source); err != nil {
		f.Close()
		return nil, &Error{Path: path, Err: fmt.Errorf("writing temp fragment: %w", err)}
	}
	if err := f.Close(); err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("closing temp fragment: %w", err)}
	}

	return p.ParseFile(ctx, path)
}
