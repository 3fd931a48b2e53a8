// Package config loads the window configuration used by sglwindow.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/guoxx/slangpy/internal/window"
	"gopkg.in/yaml.v3"
)

const DefaultFilename = "sglwindow.yml"

// Prevent DoS from excessively large config files.
const maxConfigSize = 1024 * 1024

type WindowConfig struct {
	Width     uint32 `yaml:"width"`
	Height    uint32 `yaml:"height"`
	Title     string `yaml:"title"`
	Mode      string `yaml:"mode"`
	Resizable *bool  `yaml:"resizable"` // pointer to distinguish unset vs false
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text", "json" or "" for auto
}

type Config struct {
	Backend string       `yaml:"backend"`
	Window  WindowConfig `yaml:"window"`
	Log     LogConfig    `yaml:"log"`
}

// Default mirrors window.DefaultWindowDesc.
func Default() Config {
	desc := window.DefaultWindowDesc()
	resizable := desc.Resizable
	return Config{
		Window: WindowConfig{
			Width:     desc.Width,
			Height:    desc.Height,
			Title:     desc.Title,
			Mode:      desc.Mode.String(),
			Resizable: &resizable,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// The backend environment variable takes precedence over the file.
//
// Load only fails on unreadable or malformed files. Callers apply their own
// overrides and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if env := os.Getenv(window.BackendEnv); strings.TrimSpace(env) != "" {
		cfg.Backend = env
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no config file", "path", path)
			return nil
		}
		return fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return fmt.Errorf("config %s too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	// Decode into a copy so a partial document keeps the remaining defaults.
	next := *c
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	*c = next

	slog.Debug("loaded config", "path", path, "size", info.Size())
	return nil
}

func (c Config) Validate() error {
	if _, err := c.BackendKind(); err != nil {
		return err
	}
	if _, err := c.Desc(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Desc converts the window section into a validated description.
func (c Config) Desc() (window.WindowDesc, error) {
	mode, err := window.ParseWindowMode(c.Window.Mode)
	if err != nil {
		return window.WindowDesc{}, err
	}
	desc := window.WindowDesc{
		Width:     c.Window.Width,
		Height:    c.Window.Height,
		Title:     c.Window.Title,
		Mode:      mode,
		Resizable: c.Window.Resizable == nil || *c.Window.Resizable,
	}
	if err := desc.Validate(); err != nil {
		return window.WindowDesc{}, err
	}
	return desc, nil
}

// BackendKind resolves the configured backend, falling back to the build default.
func (c Config) BackendKind() (window.Backend, error) {
	return window.ParseBackend(c.Backend)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
