// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateFiles creates each named file under dir with its name as content
func CreateFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

// CreateTestFilesWithDefault creates a folder mixing managed images with
// files the default predicate skips
func CreateTestFilesWithDefault(t *testing.T, dir string) {
	t.Helper()
	CreateFiles(t, dir, "a.png", "b.JPG", "c.webp", "notes.txt", "d.gif")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0755))
}

// StripANSI removes terminal escape sequences from rendered output
func StripANSI(str string) string {
	return ansi.Strip(str)
}
