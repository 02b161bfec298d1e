// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the bootstrap configuration: data paths, the
// Gemini API key, and logging options.
//
// This is machine-level configuration read once at startup, distinct
// from the user settings the application edits at runtime. Sources, in
// order of precedence: environment variables, ~/.aifriend/config.toml,
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete bootstrap configuration.
type Config struct {
	// DataDir holds the persisted state. Default: ~/.aifriend
	DataDir string `toml:"data_dir" env:"AIFRIEND_DATA_DIR"`

	Gemini GeminiConfig `toml:"gemini"`
	Log    LogConfig    `toml:"log"`
}

// GeminiConfig carries the vendor API credentials and endpoint.
type GeminiConfig struct {
	// APIKey authenticates against the generative language API. Keep it
	// out of the config file where possible; the environment variable
	// takes precedence.
	APIKey string `toml:"api_key" env:"GEMINI_API_KEY"`

	// BaseURL overrides the API endpoint. Empty means the public API.
	BaseURL string `toml:"base_url" env:"AIFRIEND_GEMINI_URL"`
}

// LogConfig controls the application log file.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" env:"AIFRIEND_LOG_LEVEL"`

	// File is the log destination. Empty means <DataDir>/aifriend.log.
	File string `toml:"file" env:"AIFRIEND_LOG_FILE"`
}

// Default returns a Config with built-in default values.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// DefaultDataDir returns the default data directory path.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".aifriend"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the resolved log file path.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "aifriend.log")
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the config file if present, applies environment overrides,
// fills defaults, and validates. A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := ensureSecurePermissions(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not ensure secure permissions on %s: %v\n", path, err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values.
func (c *Config) fillDefaults() error {
	if c.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: invalid level %q, must be one of: debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// ensureSecurePermissions tightens the config file to 0600. The file may
// carry the API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm() != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", info.Mode().Perm(), err)
		}
	}
	return nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the configuration to the default TOML file with 0600
// permissions.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration to a specific TOML file.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# aifriend configuration file")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
