package store

import (
	"log/slog"
	"time"
)

// DefaultEventBuffer is used by Subscribe when no positive buffer is given.
const DefaultEventBuffer = 16

type options struct {
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures a store.
type Option func(*options)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces time.Now, for deterministic ids, dates and timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	return o
}
