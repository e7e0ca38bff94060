// Package config loads the application's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/mementor/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // [logger] table
	Board  BoardConfig   `toml:"board"`  // Demo board settings
}

// BoardConfig holds settings for the demo board.
type BoardConfig struct {
	InitialRadius   int  `toml:"initial_radius"`
	RadiusStep      int  `toml:"radius_step"`
	SystemClipboard bool `toml:"system_clipboard"`
	HistoryRows     int  `toml:"history_rows"`

	ThemeFile string `toml:"theme_file"` // TOML theme; empty uses the built-in one
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // stderr
		},
		Board: BoardConfig{
			InitialRadius:   DefaultInitialRadius,
			RadiusStep:      DefaultRadiusStep,
			SystemClipboard: SystemClipboard,
			HistoryRows:     DefaultHistoryRows,
		},
	}
}

// DefaultPath returns the default config file location, or "" if the user
// config directory cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// Load reads defaults merged with the TOML file at path. A missing file is
// not an error; an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		logger.Debugf("Config file not found: %s", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", path, err)
	}

	// Decoding onto the defaults keeps every key the file leaves out.
	metadata, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return NewDefaultConfig(), fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", path, undecoded)
	}
	cfg.validate()
	logger.Debugf("Loaded configuration from: %s", path)
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Board.RadiusStep <= 0 {
		c.Board.RadiusStep = defaults.Board.RadiusStep
	}
	if c.Board.HistoryRows < 0 { // Allow 0 to hide the history pane
		c.Board.HistoryRows = defaults.Board.HistoryRows
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}
