package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

var skipDirs = map[string]bool{
	"node_modules": true, "vendor": true, "bin": true, "obj": true,
	"dist": true, "build": true, "out": true, "__pycache__": true,
}

// DiscoverFiles globs **/*.tcl and **/*.rvt under root,
// skipping hidden and vendored directories, capped at maxFiles.
func DiscoverFiles(root string, maxFiles int) []string {
	var files []string
	var walk func(dir string)
	walk = func(dir string) {
		if maxFiles > 0 && len(files) >= maxFiles {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if maxFiles > 0 && len(files) >= maxFiles {
				return
			}
			name := entry.Name()
			full := filepath.Join(dir, name)

			if strings.HasPrefix(name, ".") {
				continue
			}
			if entry.IsDir() {
				if skipDirs[name] {
					continue
				}
				walk(full)
				continue
			}
			lower := strings.ToLower(name)
			if strings.HasSuffix(lower, ".tcl") || strings.HasSuffix(lower, ".rvt") {
				files = append(files, full)
			}
		}
	}
	walk(root)
	return files
}

// FindWorkspaceRoot walks up from startDir looking for the nearest
// ancestor carrying one of the workspace markers,
// falling back to startDir itself.
func FindWorkspaceRoot(startDir string) string {
	markers := []string{".git", "project.tcl", ".tcl", "tclIndex", "pkgIndex.tcl", "Makefile"}

	dir := startDir
	for {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}
