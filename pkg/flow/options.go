package flow

import (
	"context"
	"log/slog"

	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/form"
	"github.com/sulaimaniyah/undangan/pkg/ports"
	"github.com/sulaimaniyah/undangan/pkg/reveal"
)

// Option configures the Controller.
type Option func(*Controller)

// WithObserver sets the viewport observer. Defaults to a reveal.ManualObserver.
func WithObserver(o ports.Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithScroller sets the host scroll capability.
func WithScroller(s ports.Scroller) Option {
	return func(c *Controller) {
		c.scroller = s
	}
}

// WithAudioPlayer sets the host background audio capability.
func WithAudioPlayer(p ports.AudioPlayer) Option {
	return func(c *Controller) {
		c.audio = p
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = c.hooks.Merge(h)
	}
}

// WithOnChange registers a callback receiving a snapshot after every state change.
// It runs outside the controller lock.
func WithOnChange(fn func(*domain.Snapshot)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithRevealThreshold overrides reveal.DefaultThreshold.
func WithRevealThreshold(t float64) Option {
	return func(c *Controller) {
		c.revealOpts = append(c.revealOpts, reveal.WithThreshold(t))
	}
}

// WithMaxInputSize bounds the name field in bytes.
func WithMaxInputSize(n int) Option {
	return func(c *Controller) {
		c.formOpts = append(c.formOpts, form.WithMaxInputSize(n))
	}
}

type nopScroller struct{}

func (nopScroller) ScrollTo(context.Context, domain.Section) error { return nil }

type nopAudio struct{}

func (nopAudio) Play(context.Context) error { return nil }
