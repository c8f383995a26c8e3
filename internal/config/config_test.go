package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME at a temp dir so no real config file is read
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKFLOW_DIR", "")
	t.Setenv("TASKFLOW_STORAGE", "")
	t.Setenv("TASKFLOW_USER", "")
	t.Setenv("TASKFLOW_EXPORT_DIR", "")
	return home
}

func TestLoad_Default(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(home, "taskflow")
	if cfg.DataDir != expected {
		t.Errorf("expected %q, got %q", expected, cfg.DataDir)
	}
	if cfg.ExportDir != cfg.DataDir {
		t.Errorf("expected export dir to default to data dir, got %q", cfg.ExportDir)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("expected storage %q, got %q", StorageFile, cfg.Storage)
	}
	if cfg.User != DefaultUser {
		t.Errorf("expected user %q, got %q", DefaultUser, cfg.User)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)

	if err := os.MkdirAll(filepath.Join(home, ".config", "taskflow"), 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"data_dir": "~/boards", "storage": "sqlite", "user": "ada"}`
	if err := os.WriteFile(filepath.Join(home, ".config", "taskflow", "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != filepath.Join(home, "boards") {
		t.Errorf("expected expanded data dir, got %q", cfg.DataDir)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("expected sqlite, got %q", cfg.Storage)
	}
	if cfg.User != "ada" {
		t.Errorf("expected ada, got %q", cfg.User)
	}
}

func TestLoad_EnvVar(t *testing.T) {
	isolate(t)
	t.Setenv("TASKFLOW_DIR", "/tmp/env-dir")
	t.Setenv("TASKFLOW_STORAGE", "SQLite")
	t.Setenv("TASKFLOW_USER", "grace")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "/tmp/env-dir" {
		t.Errorf("expected /tmp/env-dir, got %q", cfg.DataDir)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("expected sqlite, got %q", cfg.Storage)
	}
	if cfg.User != "grace" {
		t.Errorf("expected grace, got %q", cfg.User)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("TASKFLOW_DIR", "/tmp/env-dir")
	t.Setenv("TASKFLOW_USER", "grace")

	cfg, err := Load(CLIFlags{DataDir: "/tmp/cli-dir", User: "linus", Storage: "memory"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.DataDir != "/tmp/cli-dir" {
		t.Errorf("expected /tmp/cli-dir, got %q", cfg.DataDir)
	}
	if cfg.User != "linus" {
		t.Errorf("expected linus, got %q", cfg.User)
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("expected memory, got %q", cfg.Storage)
	}
}

func TestLoad_UnknownStorage(t *testing.T) {
	isolate(t)

	if _, err := Load(CLIFlags{Storage: "redis"}); err == nil {
		t.Error("expected error for unknown storage")
	}
}

func TestLoad_PathExpansion(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{DataDir: "~/test-taskflow"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(home, "test-taskflow")
	if cfg.DataDir != expected {
		t.Errorf("expected %q, got %q", expected, cfg.DataDir)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(home, ".config", "taskflow", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file, got %v", err)
	}

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, "taskflow") {
		t.Errorf("expected default data dir from file, got %q", cfg.DataDir)
	}
}

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"a", 1},
		{"a,b,c", 3},
		{" a , b , c ", 3},
		{"a,,b", 2},
	}

	for _, tt := range tests {
		result := ParseCommaSeparated(tt.input)
		if len(result) != tt.expected {
			t.Errorf("ParseCommaSeparated(%q): expected %d items, got %d", tt.input, tt.expected, len(result))
		}
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{DataDir: filepath.Join(root, "data"), ExportDir: filepath.Join(root, "exports")}

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, dir := range []string{cfg.DataDir, cfg.ExportDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s to exist", dir)
		}
	}
}
