package designer

import (
	"time"

	"github.com/dshills/formstorm/internal/config"
	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/palette"
	"github.com/dshills/formstorm/internal/event"
)

// Option configures a Designer during creation.
type Option func(*Designer)

// WithBus attaches an event bus; command lifecycle events publish to
// designer.command.* topics. The bus must be started by the caller and
// stays owned by the caller.
func WithBus(b *event.Bus) Option {
	return func(d *Designer) {
		d.bus = b
	}
}

// WithPalette replaces the builtin widget palette.
func WithPalette(p *palette.Palette) Option {
	return func(d *Designer) {
		if p != nil {
			d.palette = p
		}
	}
}

// WithFactory replaces the component registry used to build widgets
// from specs.
func WithFactory(r *component.Registry) Option {
	return func(d *Designer) {
		if r != nil {
			d.factory = r
		}
	}
}

// WithMaxHistory caps the undo stack.
func WithMaxHistory(max int) Option {
	return func(d *Designer) {
		if max > 0 {
			d.history.SetMaxEntries(max)
		}
	}
}

// WithBatchTimeout sets the idle gap after which open batches
// auto-close.
func WithBatchTimeout(timeout time.Duration) Option {
	return func(d *Designer) {
		if timeout > 0 {
			d.history.SetBatchTimeout(timeout)
		}
	}
}

// WithMerging toggles coalescing of consecutive compatible commands.
func WithMerging(enabled bool) Option {
	return func(d *Designer) {
		d.history.SetMerging(enabled)
	}
}

// WithConfig applies history limits and canvas grid settings from a
// loaded configuration. The palette path is not resolved here; load it
// with palette.Load and pass WithPalette.
func WithConfig(cfg config.Config) Option {
	return func(d *Designer) {
		d.ApplyConfig(cfg)
	}
}
