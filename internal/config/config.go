// Package config loads host configuration from layered TOML files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ferrum-editor/ferrum/internal/input/key"
	"github.com/ferrum-editor/ferrum/internal/keybinding"
)

// Config is the host configuration.
type Config struct {
	// Platform is "auto", "mac" or "other".
	Platform string `koanf:"platform"`

	Log      LogConfig      `koanf:"log"`
	Dispatch DispatchConfig `koanf:"dispatch"`

	// Keybindings are added after the built-in bindings of each command.
	Keybindings []KeybindingConfig `koanf:"keybindings"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
	File  string `koanf:"file"`  // empty disables file logging
	JSON  bool   `koanf:"json"`
}

// DispatchConfig configures the keybinding service.
type DispatchConfig struct {
	AsyncLimit int  `koanf:"async_limit"` // 0 = unbounded
	Metrics    bool `koanf:"metrics"`
}

// KeybindingConfig is a user keybinding, e.g.
//
//	[[keybindings]]
//	command = "file.save"
//	key = "Ctrl+Alt+S"
//	when = "editorFocus"
type KeybindingConfig struct {
	Command string `koanf:"command"`
	Key     string `koanf:"key"`
	When    string `koanf:"when"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Platform: "auto",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the given TOML files in order, later files overriding earlier
// ones, over Default. Missing files are skipped.
func Load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		path = expandPath(path)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Paths returns the default config file locations, lowest priority first:
// the user config directory, then ./ferrum.toml.
func Paths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "ferrum", "config.toml"))
	}
	return append(paths, "ferrum.toml")
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Platform) {
	case "", "auto", "mac", "other":
	default:
		return fmt.Errorf("platform %q: want auto, mac or other", c.Platform)
	}
	if c.Dispatch.AsyncLimit < 0 {
		return fmt.Errorf("dispatch.async_limit must not be negative")
	}
	for i, kb := range c.Keybindings {
		if kb.Command == "" || kb.Key == "" {
			return fmt.Errorf("keybindings[%d]: command and key are required", i)
		}
	}
	return nil
}

// KeyPlatform resolves the configured platform, detecting it for "auto".
func (c *Config) KeyPlatform() key.Platform {
	return key.ParsePlatform(c.Platform)
}

// ServiceConfig builds the keybinding service configuration.
func (c *Config) ServiceConfig() keybinding.Config {
	sc := keybinding.DefaultConfig().
		WithPlatform(c.KeyPlatform()).
		WithAsyncLimit(c.Dispatch.AsyncLimit)
	if c.Dispatch.Metrics {
		sc = sc.WithMetrics()
	}
	return sc
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
