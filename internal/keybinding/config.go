package keybinding

import "github.com/ferrum-editor/ferrum/internal/input/key"

// Config holds service configuration options.
type Config struct {
	// Platform selects Mac or non-Mac modifier rules for matching and display.
	Platform key.Platform

	// AsyncLimit bounds how many async handlers run at once.
	// Zero means no limit. Dispatch never blocks on the limit.
	AsyncLimit int

	// EnableMetrics enables dispatch statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration for the running platform.
func DefaultConfig() Config {
	return Config{
		Platform:         key.DetectPlatform(),
		AsyncLimit:       0,
		EnableMetrics:    false,
		RecoverFromPanic: true,
	}
}

// WithPlatform returns a copy of the config with the platform set.
func (c Config) WithPlatform(p key.Platform) Config {
	c.Platform = p
	return c
}

// WithAsyncLimit returns a copy of the config with the async limit set.
func (c Config) WithAsyncLimit(limit int) Config {
	c.AsyncLimit = limit
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(enabled bool) Config {
	c.RecoverFromPanic = enabled
	return c
}
