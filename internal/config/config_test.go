package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.APIURL = "https://docuchat.example.com/api"
	cfg.MockSub = "alice"

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.APIURL != "https://docuchat.example.com/api" {
		t.Errorf("APIURL: got %q, want %q", loaded.APIURL, "https://docuchat.example.com/api")
	}
	if loaded.MockSub != "alice" {
		t.Errorf("MockSub: got %q, want %q", loaded.MockSub, "alice")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIURL != "http://localhost:8000/api" {
		t.Errorf("default APIURL: got %q", cfg.APIURL)
	}
	if cfg.WSURL != "ws://localhost/ws/progress" {
		t.Errorf("default WSURL: got %q", cfg.WSURL)
	}
	if cfg.MockSub != "mock-user" {
		t.Errorf("default MockSub: got %q", cfg.MockSub)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.APIURL != DefaultConfig().APIURL {
		t.Errorf("APIURL: got %q, want default", cfg.APIURL)
	}
}

func TestLoadFromMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("api_url: [broken"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFrom(tmpDir); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.APIURL = "http://file.example.com/api"
	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	t.Setenv(EnvAPIURL, "http://env.example.com/api")
	t.Setenv(EnvMockSub, "env-sub")

	loaded, err := LoadFrom(tmpDir)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.APIURL != "http://env.example.com/api" {
		t.Errorf("APIURL: got %q, want env override", loaded.APIURL)
	}
	if loaded.MockSub != "env-sub" {
		t.Errorf("MockSub: got %q, want env override", loaded.MockSub)
	}
	if loaded.WSURL != DefaultConfig().WSURL {
		t.Errorf("WSURL: got %q, want default", loaded.WSURL)
	}
}
