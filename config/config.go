// Package config provides configuration loading for Nectar using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Fetcher holds HTTP fetching settings.
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	DefaultScheme  string `toml:"defaultScheme"` // prepended to scheme-less input
}

// History holds history store settings.
type History struct {
	RetentionDays int `toml:"retentionDays"` // entries older than this are pruned
	RecentsLimit  int `toml:"recentsLimit"`  // cap for the flat recents list
}

// Cache holds on-disk cache settings.
type Cache struct {
	Dir string `toml:"dir"` // thumbnail cache location (empty = default)
}

// Config is the main configuration struct.
type Config struct {
	Fetcher Fetcher `toml:"fetcher"`
	History History `toml:"history"`
	Cache   Cache   `toml:"cache"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Fetcher: Fetcher{
			UserAgent:      "Nectar/1.0 (Terminal Browser)",
			TimeoutSeconds: 20,
			DefaultScheme:  "https",
		},
		History: History{
			RetentionDays: 90,
			RecentsLimit:  1000,
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nectar"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the per-application data directory, creating it if
// needed. Persistent state (the history database, logs) lives here.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "share", "nectar")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// CacheDir returns the on-disk cache directory, creating it if needed.
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "nectar")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	cfg := Default()

	configPath, err := ConfigPath()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine path
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil // Return defaults if no user config
	}

	var userCfg Config
	if _, err := toml.DecodeFile(configPath, &userCfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
	}

	return merge(cfg, &userCfg), nil
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	if user.Fetcher.TimeoutSeconds != 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}
	if user.Fetcher.DefaultScheme != "" {
		result.Fetcher.DefaultScheme = user.Fetcher.DefaultScheme
	}
	if user.History.RetentionDays != 0 {
		result.History.RetentionDays = user.History.RetentionDays
	}
	if user.History.RecentsLimit != 0 {
		result.History.RecentsLimit = user.History.RecentsLimit
	}
	if user.Cache.Dir != "" {
		result.Cache.Dir = user.Cache.Dir
	}

	return &result
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# Nectar configuration
# Save to ~/.config/nectar/config.toml and customize
# Only include settings you want to change from defaults

# HTTP fetching settings
[fetcher]
userAgent = "Nectar/1.0 (Terminal Browser)"
timeoutSeconds = 20
defaultScheme = "https"       # Prepended when input has no scheme

# History settings
[history]
retentionDays = 90            # Entries untouched for this long are pruned
recentsLimit = 1000           # Cap for the flat recents list

# Cache settings
[cache]
dir = ""                      # Thumbnail cache location (empty = platform default)
`
}
