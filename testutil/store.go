// Package testutil provides shared helpers for tests that exercise the
// flat-file store with real files. Unlike a database, temp directories are
// always available, so nothing here skips.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DataDir returns a fresh temp directory for one test's table files.
// The directory is removed automatically when the test finishes.
func DataDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// WriteTable writes raw CSV content as a table file in dir, for tests that
// need to start from a hand-crafted file (legacy rows, corrupt cells).
func WriteTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("testutil.WriteTable: %v", err)
	}
	return path
}

// ReadTable reads a table file back as a string for content assertions.
func ReadTable(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("testutil.ReadTable: %v", err)
	}
	return string(data)
}
