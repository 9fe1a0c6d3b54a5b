// Package config handles global mdcheck configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global mdcheck configuration.
type Config struct {
	// Extensions are the file extensions treated as Markdown (with leading
	// dot). Matching is case-sensitive, like the tools this replaces.
	Extensions []string `toml:"extensions"`

	// CheckImages also checks image destinations, not just links.
	CheckImages bool `toml:"check_images"`

	// Cache enables the per-tree scan cache in directory mode.
	Cache bool `toml:"cache"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for file headers in terminal output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors
	// ("#RRGGBB").
	Accent string `toml:"accent"`

	// Color controls colored output: "auto" (default), "always", or "never".
	Color string `toml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Extensions: []string{".md", ".MD", ".markdown"},
		Cache:      true,
	}
}

// Load loads the configuration from the default location.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path. Keys absent from the
// file keep their default values.
func LoadFrom(path string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// DefaultPath returns the default config file path.
// $MDCHECK_CONFIG wins, then ~/.config/mdcheck/config.toml (XDG style),
// then the OS-specific config location.
func DefaultPath() string {
	if p := os.Getenv("MDCHECK_CONFIG"); p != "" {
		return p
	}

	// Prefer XDG-style ~/.config/mdcheck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "mdcheck", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	// Fall back to XDG config dir or OS-specific location
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "mdcheck", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}
