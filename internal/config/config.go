// Package config handles configuration for luxchat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/luxcarwash/luxchat/internal/models"
)

// EnvHome overrides the configuration directory when set
const EnvHome = "LUXCHAT_HOME"

// Config represents the user configuration
type Config struct {
	// ServerURL is the base URL of the chat backend; requests go to ServerURL + /chat.
	ServerURL string `json:"server_url"`
	UserName  string `json:"user_name"`
	BotName   string `json:"bot_name"`
	// TimeoutSeconds bounds a single chat request at the transport level.
	// 0 leaves the transport default in place.
	TimeoutSeconds int `json:"timeout_seconds"`

	// Sound plays a notification on every rendered message.
	Sound    bool   `json:"sound"`
	SoundURL string `json:"sound_url,omitempty"`
	// SoundPlayer is an external command (e.g. "paplay", "afplay") used to play
	// the downloaded sound. Empty means the terminal bell.
	SoundPlayer string `json:"sound_player,omitempty"`

	Markdown        bool   `json:"markdown"`
	TUITheme        string `json:"tui_theme,omitempty"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`

	Verbose   bool   `json:"verbose"`
	LogFile   string `json:"log_file,omitempty"`
	Telemetry bool   `json:"telemetry"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ServerURL:       models.DefaultServerURL,
		UserName:        models.DefaultUserName,
		BotName:         models.DefaultBotName,
		TimeoutSeconds:  300,
		Sound:           true,
		SoundURL:        models.DefaultSoundURL,
		Markdown:        true,
		TUITheme:        "tokyonight",
		CopyToClipboard: false,
		Verbose:         false,
		Telemetry:       false,
	}
}

// Validate checks the configuration for values the client cannot work with
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server_url %q: missing host", c.ServerURL)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	if strings.TrimSpace(c.UserName) == "" || strings.TrimSpace(c.BotName) == "" {
		return fmt.Errorf("user_name and bot_name must not be empty")
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".luxchat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path from config, defaulting to <config dir>/logs/luxchat.log
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "logs", "luxchat.log"), nil
}

// GetCacheDir returns the directory for downloaded assets, creating it if necessary
func GetCacheDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "cache")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return dir, nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setters maps config keys to functions that parse and apply a value
var setters = map[string]func(*Config, string) error{
	"server_url":        func(c *Config, v string) error { c.ServerURL = v; return nil },
	"user_name":         func(c *Config, v string) error { c.UserName = v; return nil },
	"bot_name":          func(c *Config, v string) error { c.BotName = v; return nil },
	"sound_url":         func(c *Config, v string) error { c.SoundURL = v; return nil },
	"sound_player":      func(c *Config, v string) error { c.SoundPlayer = v; return nil },
	"tui_theme":         func(c *Config, v string) error { c.TUITheme = v; return nil },
	"log_file":          func(c *Config, v string) error { c.LogFile = v; return nil },
	"timeout_seconds":   intSetter(func(c *Config) *int { return &c.TimeoutSeconds }),
	"sound":             boolSetter(func(c *Config) *bool { return &c.Sound }),
	"markdown":          boolSetter(func(c *Config) *bool { return &c.Markdown }),
	"copy_to_clipboard": boolSetter(func(c *Config) *bool { return &c.CopyToClipboard }),
	"verbose":           boolSetter(func(c *Config) *bool { return &c.Verbose }),
	"telemetry":         boolSetter(func(c *Config) *bool { return &c.Telemetry }),
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", v)
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		*field(c) = b
		return nil
	}
}

// Set assigns value to the field named key and validates the result
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (available: %s)", key, strings.Join(Keys(), ", "))
	}

	next := *c
	if err := set(&next, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}

	*c = next
	return nil
}

// Keys returns the settable config keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
