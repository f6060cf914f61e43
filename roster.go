package roster

import (
	"log/slog"
	"time"

	"github.com/aretw0/roster/internal/platform"
	"github.com/aretw0/roster/pkg/audit"
	"github.com/aretw0/roster/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Console is the aggregate of every store opened over one medium.
type Console = platform.Console

// Actors names the users recorded for decorated mutations.
type Actors = audit.Actors

// --- Configuration ---

// Option defines a functional option for configuring a Console.
type Option = platform.Option

// WithAdapter selects the storage medium by name: "fs" (default), "sqlite",
// "memory" or "none".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithMedium injects a custom storage medium.
func WithMedium(m core.Medium) Option {
	return platform.WithMedium(m)
}

// WithLogger sets the logger for the medium and the stores.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithClock replaces time.Now in every store.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithActors sets the user names recorded by the activity-logging stores.
func WithActors(actors Actors) Option {
	return platform.WithActors(actors)
}

// WithEventBuffer sets the buffer of each change subscription.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the medium without ever writing it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temp-dir sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// Open resolves the medium at path and loads every store, seeding the ones
// with no persisted data.
func Open(path string, opts ...Option) (*Console, error) {
	return platform.Open(path, opts...)
}

// DefaultDataPath returns the data directory of the project enclosing dir.
func DefaultDataPath(dir string) string {
	return platform.DefaultDataPath(dir)
}
