package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitialize(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	if err := Initialize(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Logger.Printf("hello from test")
	if err := Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(content), "[taskflow] ") || !strings.Contains(string(content), "hello from test") {
		t.Errorf("expected prefixed log line, got %q", content)
	}
}

func TestInitialize_EmptyDirIsNoop(t *testing.T) {
	before := Logger
	if err := Initialize(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Logger != before {
		t.Error("expected logger to be unchanged")
	}
}
