package agent

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.RequestInterval != defaultRequestPoll || cfg.CollectionInterval != defaultCollectionPoll {
		t.Fatalf("intervals = %v/%v, want defaults", cfg.RequestInterval, cfg.CollectionInterval)
	}
	if cfg.SessionPath == "" {
		t.Fatal("SessionPath empty, want expanded default")
	}
}

func TestLoadConfig_ReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
api_url = "https://assets.example.com"
request_poll_seconds = 3
collection_poll_seconds = 120
session_path = "/var/lib/assetguard/session.json"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIURL != "https://assets.example.com" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestInterval != 3*time.Second {
		t.Fatalf("RequestInterval = %v, want 3s", cfg.RequestInterval)
	}
	if cfg.CollectionInterval != 120*time.Second {
		t.Fatalf("CollectionInterval = %v, want 120s", cfg.CollectionInterval)
	}
	if cfg.SessionPath != "/var/lib/assetguard/session.json" {
		t.Fatalf("SessionPath = %q", cfg.SessionPath)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = \"localhost:9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIURL != "localhost:9000" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestInterval != defaultRequestPoll {
		t.Fatalf("RequestInterval = %v, want default", cfg.RequestInterval)
	}
}

func TestLoadConfig_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() = nil, want parse error")
	}
}

func TestLoadConfig_ZeroIntervalIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("request_poll_seconds = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.RequestInterval != defaultRequestPoll {
		t.Fatalf("RequestInterval = %v, want default for zero", cfg.RequestInterval)
	}
}
