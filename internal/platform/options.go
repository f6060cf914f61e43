package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/roster/pkg/audit"
	"github.com/aretw0/roster/pkg/core"
)

// options holds the internal configuration of a Console.
type options struct {
	medium      core.Medium
	logger      *slog.Logger
	adapter     string
	clock       func() time.Time
	actors      audit.Actors
	eventBuffer int
	config      map[string]interface{}
}

// Option defines a functional option for configuring a Console.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		actors:  audit.DefaultActors(),
		config:  make(map[string]interface{}),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	return o
}

// WithLogger sets the logger shared by the medium and the stores.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAdapter selects the storage medium by name: "fs" (default), "sqlite",
// "memory" or "none".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithMedium injects a medium (e.g. a mock). The adapter name is ignored.
func WithMedium(m core.Medium) Option {
	return func(o *options) {
		o.medium = m
	}
}

// WithClock replaces time.Now in every store.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithActors sets the user names recorded for decorated mutations.
// Blank names keep their default.
func WithActors(actors audit.Actors) Option {
	return func(o *options) {
		if actors.Employees != "" {
			o.actors.Employees = actors.Employees
		}
		if actors.Employers != "" {
			o.actors.Employers = actors.Employers
		}
	}
}

// WithEventBuffer sets the buffer of each change subscription.
// Zero means store.DefaultEventBuffer.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithForceTemp forces the data path into the temp dir (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Writes return core.ErrReadOnly and the stores keep their cache unchanged.
// 2. The data directory is never created.
// 3. Dev Safety (go run temp dir) is BYPASSED (uses the real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) the data path is re-rooted under the temp dir.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithWatcherErrorHandler registers a callback for failures of the fs watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
