package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("Mapping", statusOK, "3 entries", false)
	if !strings.HasPrefix(line, "  Mapping:") || !strings.HasSuffix(line, "[OK] 3 entries") {
		t.Fatalf("unexpected line %q", line)
	}

	colored := renderStatusLine("Mapping", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, "[ERROR]"+ansiReset) {
		t.Fatalf("unexpected colored line %q", colored)
	}
}

func TestShouldColorizeIgnoresBuffers(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}
