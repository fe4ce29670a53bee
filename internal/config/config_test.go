package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.EvsievePath != "" || cfg.Identity.Marker != "" || cfg.Log.Level != "" {
		t.Fatalf("expected zero-valued defaults, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadii.yaml")
	data := `evsieve_path: /usr/local/bin/evsieve
identity:
  marker: Clone
  suffix: Axe
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.EvsievePath != "/usr/local/bin/evsieve" {
		t.Errorf("EvsievePath = %q", cfg.EvsievePath)
	}
	if cfg.Identity.Marker != "Clone" || cfg.Identity.Suffix != "Axe" {
		t.Errorf("Identity = %+v", cfg.Identity)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a named file that doesn't exist")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("identity: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
