// Package config loads the YAML configuration file and applies environment
// overrides. Command-line flags are layered on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todoview/internal/auth"
	"github.com/idilsaglam/todoview/internal/fetch"
)

// FileName is the config file inside the per-user state directory.
const FileName = "config.yaml"

// Environment overrides.
const (
	EnvURL      = "TODOVIEW_URL"
	EnvFile     = "TODOVIEW_FILE"
	EnvTheme    = "TODOVIEW_THEME"
	EnvLogLevel = "TODOVIEW_LOG_LEVEL"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrConfigNotFound is returned when an explicitly requested file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// Config mirrors config.yaml.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig selects where items are loaded from. File wins over URL.
type SourceConfig struct {
	URL     string        `yaml:"url"`
	File    string        `yaml:"file"`
	Timeout time.Duration `yaml:"timeout"`
}

type UIConfig struct {
	Theme string `yaml:"theme"` // classic | neon | mono
	Color string `yaml:"color"` // auto | always | never
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Pretty bool   `yaml:"pretty"`
}

// Defaults returns a fully populated configuration.
func Defaults() Config {
	return Config{
		Source: SourceConfig{
			URL:     fetch.DefaultURL,
			Timeout: fetch.DefaultTimeout,
		},
		UI: UIConfig{
			Theme: "classic",
			Color: ColorAuto,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath is ~/.todoview/config.yaml.
func DefaultPath() (string, error) {
	dir, err := auth.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads path and applies environment overrides.
// An empty path means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg := Defaults()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if explicit {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvURL); ok && v != "" {
		c.Source.URL = v
	}
	if v, ok := lookup(EnvFile); ok && v != "" {
		c.Source.File = v
	}
	if v, ok := lookup(EnvTheme); ok && v != "" {
		c.UI.Theme = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
}

// applyDefaults fills fields a partial file left empty.
func (c *Config) applyDefaults() {
	d := Defaults()
	if c.Source.URL == "" {
		c.Source.URL = d.Source.URL
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = d.Source.Timeout
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.Color == "" {
		c.UI.Color = d.UI.Color
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// Validate rejects values the rest of the program cannot interpret.
func (c Config) Validate() error {
	switch strings.ToLower(c.UI.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("ui.color must be auto, always or never, got %q", c.UI.Color)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme must be classic, neon or mono, got %q", c.UI.Theme)
	}
	return nil
}
