package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Redis.FetchTTL != 6*time.Hour {
		t.Errorf("FetchTTL = %v", cfg.Redis.FetchTTL)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9999
mlb:
  offline: true
hands:
  cache_path: /tmp/hands.json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Server.Port)
	}
	if !cfg.MLB.Offline {
		t.Error("Offline should be true")
	}
	if cfg.Hands.CachePath != "/tmp/hands.json" {
		t.Errorf("CachePath = %q", cfg.Hands.CachePath)
	}
	// Untouched values keep their defaults.
	if cfg.Render.TemplatePath != "assets/deadball_scorecard.html" {
		t.Errorf("TemplatePath = %q", cfg.Render.TemplatePath)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	t.Setenv("DEADBALL_PORT", "7777")
	t.Setenv("REDIS_URL", "redis://cache.internal:6379/1")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Port = %d, want env override 7777", cfg.Server.Port)
	}
	if cfg.Redis.URL != "redis://cache.internal:6379/1" {
		t.Errorf("Redis URL = %q", cfg.Redis.URL)
	}
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
}
