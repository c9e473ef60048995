package parser

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeParser writes a short shell script standing in for the external
// `parse` command, so these tests exercise the real exec.CommandContext
// path without depending on an actual Tcl parser being installed.
func fakeParser(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake parser script is POSIX shell only")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "parse")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestParser_ParseFile_Success(t *testing.T) {
	cmd := fakeParser(t, `echo '{"type":"root","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":1}},"depth":0,"children":[]}'`)
	p := &Parser{Command: cmd, Timeout: time.Second}

	root, err := p.ParseFile(context.Background(), "dummy.tcl")
	require.NoError(t, err)
	assert.Equal(t, "root", string(root.Type))
}

func TestParser_ParseFile_NonZeroExit(t *testing.T) {
	cmd := fakeParser(t, `echo "bad file" 1>&2; exit 1`)
	p := &Parser{Command: cmd, Timeout: time.Second}

	_, err := p.ParseFile(context.Background(), "dummy.tcl")
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "dummy.tcl", perr.Path)
}

func TestParser_ParseFile_Timeout(t *testing.T) {
	cmd := fakeParser(t, `sleep 5`)
	p := &Parser{Command: cmd, Timeout: 50 * time.Millisecond}

	_, err := p.ParseFile(context.Background(), "slow.tcl")
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
}

func TestParser_ParseFile_InvalidJSON(t *testing.T) {
	cmd := fakeParser(t, `echo 'not json'`)
	p := &Parser{Command: cmd, Timeout: time.Second}

	_, err := p.ParseFile(context.Background(), "dummy.tcl")
	require.Error(t, err)
}

func TestParser_ParseSource_SpillsToTempFile(t *testing.T) {
	// The fake parser echoes back the path it was given as the root's
	// "source_path" field, proving a real temp file was created and
	// passed as an argument.
	cmd := fakeParser(t, `printf '{"type":"root","range":{"start":{"line":1,"column":1},"end":{"line":1,"column":1}},"depth":0,"children":[],"source_path":"%s"}' "$1"`)
	p := &Parser{Command: cmd, Timeout: time.Second}

	root, err := p.ParseSource(context.Background(), "set x 1")
	require.NoError(t, err)

	path := root.String("source_path")
	assert.Contains(t, path, "tcl-lsp-block-")
	assert.NoFileExists(t, path) // ParseSource cleans up its temp file on return
}

func TestParser_New_Defaults(t *testing.T) {
	p := New()
	assert.Equal(t, "parse", p.Command)
	assert.Equal(t, DefaultTimeout, p.Timeout)
}
