// Package testutil provides reusable test utilities for mdcheck tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree represents a temporary directory of documents for testing.
type Tree struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTree creates a new test tree builder.
// Call Build() to create the actual directory.
func NewTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the tree.
// The path is relative to the tree root.
func (tr *Tree) WithFile(path, content string) *Tree {
	tr.files[path] = content
	return tr
}

// Build creates the directory and all configured files.
// Returns the Tree for method chaining.
func (tr *Tree) Build() *Tree {
	tr.t.Helper()

	tr.Path = tr.t.TempDir()
	for path, content := range tr.files {
		tr.writeFile(path, content)
	}

	return tr
}

// Abs returns the absolute path of a file inside the tree.
func (tr *Tree) Abs(relPath string) string {
	return filepath.Join(tr.Path, relPath)
}

// WriteFile writes a file into an already-built tree.
func (tr *Tree) WriteFile(relPath, content string) {
	tr.t.Helper()
	tr.writeFile(relPath, content)
}

// Remove deletes a file from an already-built tree.
func (tr *Tree) Remove(relPath string) {
	tr.t.Helper()
	if err := os.Remove(tr.Abs(relPath)); err != nil {
		tr.t.Fatalf("failed to remove %s: %v", relPath, err)
	}
}

// ReadFile reads a file from the tree.
func (tr *Tree) ReadFile(relPath string) string {
	tr.t.Helper()
	data, err := os.ReadFile(tr.Abs(relPath))
	if err != nil {
		tr.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(data)
}

func (tr *Tree) writeFile(relPath, content string) {
	tr.t.Helper()
	fullPath := tr.Abs(relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		tr.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		tr.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}
