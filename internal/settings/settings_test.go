package settings_test

// settings_test.go: tests for settings loading and defaulting.

import (
	"os"
	"path/filepath"
	"testing"

	"cpfsolver/internal/settings"
)

func writeSettings(t *testing.T, root, content string) string {
	t.Helper()
	path := settings.DefaultPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_Missing(t *testing.T) {
	s, err := settings.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil settings for missing file, got %+v", s)
	}
}

func TestLoad_AllFields(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "strict: true\nworkers: 4\nformat: yaml\n")

	s, err := settings.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.StrictOr(false) {
		t.Error("StrictOr(false) = false, want true")
	}
	if got := s.WorkersOr(1); got != 4 {
		t.Errorf("WorkersOr(1) = %d, want 4", got)
	}
	if got := s.FormatOr("text"); got != "yaml" {
		t.Errorf("FormatOr(text) = %q, want yaml", got)
	}
}

func TestLoad_ExplicitFalse(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "strict: false\n")

	s, err := settings.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.StrictOr(true) {
		t.Error("explicit strict: false must override the default")
	}
	if got := s.WorkersOr(3); got != 3 {
		t.Errorf("WorkersOr(3) = %d, want default 3", got)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "strict: [unclosed\n")
	if _, err := settings.Load(root); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_NegativeWorkers(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "workers: -2\n")
	if _, err := settings.Load(root); err == nil {
		t.Fatal("expected error for negative workers")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := settings.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("explicit settings path must exist")
	}
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

func TestSettings_NilReceiver(t *testing.T) {
	var s *settings.Settings
	if !s.StrictOr(true) || s.StrictOr(false) {
		t.Error("nil StrictOr should return the default")
	}
	if s.WorkersOr(2) != 2 {
		t.Error("nil WorkersOr should return the default")
	}
	if s.FormatOr("text") != "text" {
		t.Error("nil FormatOr should return the default")
	}
}
