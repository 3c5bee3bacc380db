package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/abbrev/internal/logging"
)

// AppName names the per-user config directory.
const AppName = "abbrev"

// Config holds all settings.
type Config struct {
	Abbrev  AbbrevConfig  `toml:"abbrev" yaml:"abbrev"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// AbbrevConfig configures abbreviation expansion.
type AbbrevConfig struct {
	// File is the abbreviation table, one "abbr expansion" per line.
	File string `toml:"file" yaml:"file"`
	// Enabled turns expansion on. When false every key inserts verbatim.
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Watch reloads File when it changes on disk.
	Watch bool `toml:"watch" yaml:"watch"`
	// Script is an optional Lua file run at startup to register entries.
	Script string `toml:"script" yaml:"script"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Abbrev: AbbrevConfig{
			File:    filepath.Join(UserConfigDir(), "abbreviations"),
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// UserConfigDir returns $XDG_CONFIG_HOME/abbrev, falling back to
// ~/.config/abbrev.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppName)
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(UserConfigDir(), "config.toml")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q: %w", c.Logging.Level, ErrInvalidLogLevel)
	}
	return nil
}

// ExpandPaths replaces a leading "~/" and environment references in the
// configured paths.
func (c *Config) ExpandPaths() {
	c.Abbrev.File = expandPath(c.Abbrev.File)
	c.Abbrev.Script = expandPath(c.Abbrev.Script)
	c.Logging.File = expandPath(c.Logging.File)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
