package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name == "" || cfg.HashMB <= 0 || cfg.DefaultMoveTimeMs <= 0 {
		t.Errorf("DefaultConfig returned an incomplete config: %+v", cfg)
	}
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corvid.toml")
	contents := "hash_mb = 128\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HashMB != 128 {
		t.Errorf("HashMB = %d, want 128 from file", cfg.HashMB)
	}
	if cfg.Name != DefaultConfig().Name {
		t.Errorf("Name = %q, want default %q to survive an unset field", cfg.Name, DefaultConfig().Name)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error loading a nonexistent config file")
	}
}
