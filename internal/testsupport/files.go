package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteCorpus creates a corpus root under a fresh temp directory and writes
// files (name relative to the root -> content). It returns the root.
func WriteCorpus(t testing.TB, files map[string]string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "crubadan")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir corpus root: %v", err)
	}
	for name, content := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
	}
	return root
}

// MappingTable renders table.txt content from alternating internal and ISO codes.
func MappingTable(pairs ...string) string {
	if len(pairs)%2 != 0 {
		panic("testsupport: MappingTable needs an even number of codes")
	}
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		b.WriteString(pairs[i])
		b.WriteByte('\t')
		b.WriteString(pairs[i+1])
		b.WriteByte('\n')
	}
	return b.String()
}

// NgramLines renders n-gram file content, one "<count> <ngram>" line per entry.
func NgramLines(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
