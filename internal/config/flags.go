package config

import (
	"fmt"
	"strings"

	"github.com/bethropolis/mementor/internal/logger"
	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags.
type Flags struct {
	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	EnableTags      string
	DisableTags     string
	EnablePkgs      string
	DisablePkgs     string
	InitialRadius   int
	RadiusStep      int
	SystemClipboard bool
	ThemeFile       string
}

// Define registers the flags on fs.
func (f *Flags) Define(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default <user config dir>/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.StringVar(&f.EnableTags, "log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	fs.StringVar(&f.DisableTags, "log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	fs.StringVar(&f.EnablePkgs, "log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	fs.StringVar(&f.DisablePkgs, "log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	fs.IntVar(&f.InitialRadius, "radius", 0, "Initial circle radius - Overrides config file")
	fs.IntVar(&f.RadiusStep, "step", 0, "Radius change per key press - Overrides config file")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", false, "Copy history to the system clipboard")
	fs.StringVar(&f.ThemeFile, "theme", "", "Path to a TOML theme file - Overrides config file")
}

// ApplyOverrides updates cfg with the flags that were set on fs.
func (f *Flags) ApplyOverrides(fs *pflag.FlagSet, cfg *Config) {
	// Visit only processes flags that were actually set
	fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(f.DisablePkgs)
		case "radius":
			cfg.Board.InitialRadius = f.InitialRadius
		case "step":
			if f.RadiusStep > 0 {
				cfg.Board.RadiusStep = f.RadiusStep // Only override if positive
			}
		case "system-clipboard":
			cfg.Board.SystemClipboard = f.SystemClipboard
		case "theme":
			cfg.Board.ThemeFile = f.ThemeFile
		}
	})
}

// Resolve loads the config file named by the flags (or the default path)
// and applies the flag overrides on top.
func (f *Flags) Resolve(fs *pflag.FlagSet) (*Config, error) {
	path := f.ConfigFilePath
	if path == "" {
		path = DefaultPath()
	}
	cfg, err := Load(path)
	f.ApplyOverrides(fs, cfg)
	cfg.validate()
	return cfg, err
}

// Helper function to split comma-separated list
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
