package agent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the agent's settings, read from a TOML file.
type Config struct {
	APIURL             string
	RequestInterval    time.Duration
	CollectionInterval time.Duration
	SessionPath        string
}

const (
	defaultConfigPath  = "~/.config/assetguard/config.toml"
	defaultSessionPath = "~/.config/assetguard/session.json"
	defaultAPIURL      = "http://127.0.0.1:4000"
)

// LoadConfig parses the agent config, falling back to defaults when the file
// is missing.
func LoadConfig(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:             defaultAPIURL,
		RequestInterval:    defaultRequestPoll,
		CollectionInterval: defaultCollectionPoll,
		SessionPath:        mustExpand(defaultSessionPath),
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL            string `toml:"api_url"`
		RequestSeconds    int    `toml:"request_poll_seconds"`
		CollectionSeconds int    `toml:"collection_poll_seconds"`
		SessionPath       string `toml:"session_path"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if u := strings.TrimSpace(raw.APIURL); u != "" {
		cfg.APIURL = u
	}
	if raw.RequestSeconds > 0 {
		cfg.RequestInterval = time.Duration(raw.RequestSeconds) * time.Second
	}
	if raw.CollectionSeconds > 0 {
		cfg.CollectionInterval = time.Duration(raw.CollectionSeconds) * time.Second
	}
	if p := strings.TrimSpace(raw.SessionPath); p != "" {
		cfg.SessionPath = mustExpand(p)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
