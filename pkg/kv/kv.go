// Package kv reads and writes typed lists on a core.Medium.
//
// Reads are fail-soft: anything that is not a well-formed JSON list comes back
// as "absent" instead of an error, so a store can fall back to its seed data.
// A nil medium stands for an environment without persistence: reads are
// absent and writes do nothing.
package kv

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/roster/pkg/core"
)

// Read returns the list stored under key and true, or nil and false when the
// value is missing, empty, not a list or unparsable.
func Read[T any](m core.Medium, key string) ([]T, bool) {
	items, err := read[T](m, key)
	if err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func read[T any](m core.Medium, key string) ([]T, error) {
	if m == nil {
		return nil, nil
	}
	raw, ok, err := m.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return items, nil
}

// Write serializes items as a JSON list and stores it under key.
// Errors from the medium propagate unchanged (wrapped).
func Write[T any](m core.Medium, key string, items []T) error {
	if m == nil {
		return nil
	}
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := m.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Adapter binds a medium and a key for one collection.
type Adapter[T any] struct {
	Medium core.Medium
	Key    string
	Logger *slog.Logger
}

// NewAdapter creates an adapter. A nil logger discards output.
func NewAdapter[T any](m core.Medium, key string, logger *slog.Logger) *Adapter[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter[T]{Medium: m, Key: key, Logger: logger}
}

// Available reports whether a persistence medium is attached.
func (a *Adapter[T]) Available() bool { return a.Medium != nil }

// Read behaves like the package-level Read and logs why a value was discarded.
func (a *Adapter[T]) Read() ([]T, bool) {
	items, err := read[T](a.Medium, a.Key)
	if err != nil {
		a.Logger.Debug("discarding persisted value", "key", a.Key, "error", err)
		return nil, false
	}
	if items == nil {
		return nil, false
	}
	return items, true
}

// Write behaves like the package-level Write.
func (a *Adapter[T]) Write(items []T) error {
	return Write(a.Medium, a.Key, items)
}
