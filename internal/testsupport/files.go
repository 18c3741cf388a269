package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteIDs writes one identifier per line to path.
func WriteIDs(t testing.TB, path string, ids ...string) string {
	t.Helper()
	return WriteFile(t, path, []byte(strings.Join(ids, "\n")+"\n"))
}
