package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeGlobalConfig(t *testing.T, contents string) {
	t.Helper()
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, globalFileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	setHome(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load with no config files: %v", err)
	}
	if cfg.History.MaxEntries != 1000 {
		t.Errorf("MaxEntries = %d, want 1000", cfg.History.MaxEntries)
	}
	if cfg.Logs.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.Logs.RetentionDays)
	}
	if !reflect.DeepEqual(cfg.Runner.ModuleCommand, []string{"python3", "-m"}) {
		t.Errorf("ModuleCommand = %v", cfg.Runner.ModuleCommand)
	}
	if cfg.Logs.Dir == "" {
		t.Error("Logs.Dir unset")
	}
}

func TestLoadGlobalYAML(t *testing.T) {
	setHome(t)
	writeGlobalConfig(t, `
history:
  max_entries: 50
runner:
  module_command: ["ruby", "-r"]
env:
  CI: "1"
`)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("MaxEntries = %d, want 50", cfg.History.MaxEntries)
	}
	if !reflect.DeepEqual(cfg.Runner.ModuleCommand, []string{"ruby", "-r"}) {
		t.Errorf("ModuleCommand = %v", cfg.Runner.ModuleCommand)
	}
	if cfg.Env["CI"] != "1" {
		t.Errorf("Env = %v", cfg.Env)
	}
	// Untouched sections keep their defaults.
	if cfg.Logs.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want default 30", cfg.Logs.RetentionDays)
	}
}

func TestLoadProjectTOMLOverlay(t *testing.T) {
	setHome(t)
	writeGlobalConfig(t, "history:\n  max_entries: 50\n")

	root := t.TempDir()
	nested := filepath.Join(root, "sub", "dir")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	markerDir := filepath.Join(root, projectDir)
	if err := os.MkdirAll(markerDir, 0o755); err != nil {
		t.Fatal(err)
	}
	project := "[history]\nmax_entries = 5\n\n[env]\nSTAGE = \"dev\"\n"
	if err := os.WriteFile(filepath.Join(markerDir, projectFileName), []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	// The overlay is found by walking up from a nested directory.
	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != 5 {
		t.Errorf("MaxEntries = %d, want project overlay 5", cfg.History.MaxEntries)
	}
	if cfg.Env["STAGE"] != "dev" {
		t.Errorf("Env = %v", cfg.Env)
	}
}

func TestLoadMalformedGlobal(t *testing.T) {
	setHome(t)
	writeGlobalConfig(t, "history: [unclosed")

	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}

func TestLoadReappliesDefaultsOverZeroValues(t *testing.T) {
	setHome(t)
	writeGlobalConfig(t, "history:\n  max_entries: 0\nlogs:\n  retention_days: -1\n")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != 1000 {
		t.Errorf("MaxEntries = %d, want default restored", cfg.History.MaxEntries)
	}
	if cfg.Logs.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want default restored", cfg.Logs.RetentionDays)
	}
}
