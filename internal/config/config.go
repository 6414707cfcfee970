// Package config loads designer configuration from TOML files with
// environment variable overrides and optional live reload.
package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration so TOML values can be written as "2s".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText renders the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full designer configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Canvas  CanvasConfig  `toml:"canvas"`
	Palette PaletteConfig `toml:"palette"`
}

// HistoryConfig controls the undo/redo timeline.
type HistoryConfig struct {
	// MaxEntries caps the undo stack; oldest entries evict first.
	MaxEntries int `toml:"max_entries"`

	// BatchTimeout is the idle gap after which an open batch auto-closes.
	BatchTimeout Duration `toml:"batch_timeout"`

	// MergeEnabled coalesces consecutive compatible commands.
	MergeEnabled bool `toml:"merge_enabled"`
}

// CanvasConfig controls default grid placement of new components.
type CanvasConfig struct {
	Columns  int     `toml:"columns"`
	SpacingX float64 `toml:"spacing_x"`
	SpacingY float64 `toml:"spacing_y"`
	StartX   float64 `toml:"start_x"`
	StartY   float64 `toml:"start_y"`
}

// PaletteConfig points at the widget palette definition.
type PaletteConfig struct {
	// Path is a YAML palette file; empty selects the builtin palette.
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxEntries:   200,
			BatchTimeout: Duration(2 * time.Second),
			MergeEnabled: true,
		},
		Canvas: CanvasConfig{
			Columns:  3,
			SpacingX: 150,
			SpacingY: 60,
			StartX:   50,
			StartY:   50,
		},
	}
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative: %d", c.History.MaxEntries)
	}
	if c.History.BatchTimeout < 0 {
		return fmt.Errorf("history.batch_timeout must not be negative: %s", c.History.BatchTimeout.Std())
	}
	if c.Canvas.Columns <= 0 {
		return fmt.Errorf("canvas.columns must be positive: %d", c.Canvas.Columns)
	}
	if c.Canvas.SpacingX < 0 || c.Canvas.SpacingY < 0 {
		return fmt.Errorf("canvas spacing must not be negative: %g, %g", c.Canvas.SpacingX, c.Canvas.SpacingY)
	}
	return nil
}
