package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Storage.Backend != "bolt" || cfg.Storage.Path != "taskhub.db" {
		t.Errorf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Log.Level != "info" || cfg.Log.Encoding != "console" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Auth.SecretEnv != "TASKHUB_SECRET" {
		t.Errorf("unexpected auth defaults: %+v", cfg.Auth)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("version: 1\nstorage:\n  backend: redis\n  path: x.db\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoad_MissingBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("version: 1\nstorage:\n  path: x.db\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing backend")
	}
}

func TestLoad_MissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("version: 1\nstorage:\n  backend: bolt\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing storage path")
	}
}

func TestLoad_InvalidLogEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("version: 1\nstorage:\n  backend: bolt\n  path: x.db\nlog:\n  encoding: xml\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown log encoding")
	}
}

func TestSecret_FromEnv(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("TASKHUB_SECRET", "from-env")

	if got := string(cfg.Secret()); got != "from-env" {
		t.Errorf("expected env secret, got %q", got)
	}
}

func TestSecret_DevFallback(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("TASKHUB_SECRET", "")

	if got := string(cfg.Secret()); got != "taskhub-dev-secret" {
		t.Errorf("expected dev fallback, got %q", got)
	}
}
