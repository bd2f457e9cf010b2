package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luxcarwash/luxchat/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServerURL != models.DefaultServerURL {
		t.Errorf("Expected default server %q, got %q", models.DefaultServerURL, cfg.ServerURL)
	}
	if cfg.UserName != "You" {
		t.Errorf("Expected user name 'You', got %q", cfg.UserName)
	}
	if cfg.BotName != "Lux Assistant" {
		t.Errorf("Expected bot name 'Lux Assistant', got %q", cfg.BotName)
	}
	if !cfg.Sound {
		t.Error("Expected sound to be enabled by default")
	}
	if !cfg.Markdown {
		t.Error("Expected markdown to be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid, got %v", err)
	}
}

func TestGetConfigDir_EnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvHome, tmp)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != tmp {
		t.Errorf("Expected %s, got %s", tmp, dir)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if path != filepath.Join(tmp, "config.json") {
		t.Errorf("Unexpected config path %s", path)
	}
}

func TestGetConfigDir_Home(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvHome, "")
	t.Setenv("HOME", tmp)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != filepath.Join(tmp, ".luxchat") {
		t.Errorf("Expected %s, got %s", filepath.Join(tmp, ".luxchat"), dir)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvHome, filepath.Join(tmp, "nested"))

	cfg := DefaultConfig()
	cfg.ServerURL = "https://chat.example.com"
	cfg.Sound = false
	cfg.TimeoutSeconds = 30

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected 0600 permissions, got %o", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("Loaded config %+v differs from saved %+v", loaded, cfg)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvHome, tmp)

	if err := os.WriteFile(filepath.Join(tmp, "config.json"), []byte(`{"server_url":"http://localhost:8080"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("Expected server from file, got %q", cfg.ServerURL)
	}
	if cfg.BotName != models.DefaultBotName {
		t.Errorf("Expected default bot name to survive, got %q", cfg.BotName)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvHome, tmp)

	if err := os.WriteFile(filepath.Join(tmp, "config.json"), []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if cfg != DefaultConfig() {
		t.Error("Expected defaults on parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"https", func(c *Config) { c.ServerURL = "https://lux.example.com" }, false},
		{"ftp scheme", func(c *Config) { c.ServerURL = "ftp://lux.example.com" }, true},
		{"no host", func(c *Config) { c.ServerURL = "http://" }, true},
		{"garbage", func(c *Config) { c.ServerURL = "::" }, true},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, true},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, false},
		{"blank bot name", func(c *Config) { c.BotName = "  " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("server_url", "http://10.0.0.2:5000"); err != nil {
		t.Fatalf("Set server_url failed: %v", err)
	}
	if cfg.ServerURL != "http://10.0.0.2:5000" {
		t.Errorf("Unexpected server %q", cfg.ServerURL)
	}

	if err := cfg.Set("sound", "false"); err != nil {
		t.Fatalf("Set sound failed: %v", err)
	}
	if cfg.Sound {
		t.Error("Expected sound disabled")
	}

	if err := cfg.Set("timeout_seconds", "12"); err != nil {
		t.Fatalf("Set timeout_seconds failed: %v", err)
	}
	if cfg.TimeoutSeconds != 12 {
		t.Errorf("Expected timeout 12, got %d", cfg.TimeoutSeconds)
	}
}

func TestSet_Errors(t *testing.T) {
	cfg := DefaultConfig()
	before := cfg

	if err := cfg.Set("nope", "1"); err == nil {
		t.Error("Expected error for unknown key")
	}
	if err := cfg.Set("sound", "maybe"); err == nil {
		t.Error("Expected error for bad bool")
	}
	if err := cfg.Set("timeout_seconds", "soon"); err == nil {
		t.Error("Expected error for bad int")
	}
	if err := cfg.Set("server_url", "gopher://x"); err == nil {
		t.Error("Expected validation error for bad scheme")
	}

	if cfg != before {
		t.Error("Failed Set calls must not modify the config")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("Keys not sorted: %v", keys)
		}
	}
	if len(keys) != len(setters) {
		t.Errorf("Expected %d keys, got %d", len(setters), len(keys))
	}
}
