// Package uri converts between LSP's file:// URIs and OS file paths,
// the one boundary conversion every handler that talks to the index
// or the parser needs before it can use a document URI as a map key
// or an exec argument.
package uri

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// ToPath converts a file:// URI into an OS-specific absolute path.
func ToPath(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}

	if parsed.Scheme != "file" && parsed.Scheme != "" {
		return "", fmt.Errorf("unsupported URI scheme: %s", parsed.Scheme)
	}

	path := parsed.Path
	if path == "" {
		path = parsed.Opaque
	}

	decoded, err := url.PathUnescape(path)
	if err == nil {
		path = decoded
	}

	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "/") && len(path) >= 3 && path[2] == ':' {
			path = path[1:]
		}
	}

	if path == "" {
		return "", fmt.Errorf("empty path extracted from URI: %s", u)
	}

	return filepath.FromSlash(path), nil
}

// FromPath converts an absolute OS path back into a file:// URI.
func FromPath(path string) string {
	path = filepath.ToSlash(path)
	if runtime.GOOS == "windows" && len(path) >= 2 && path[1] == ':' {
		path = "/" + path
	}
	return "file://" + (&url.URL{Path: path}).EscapedPath()
}
