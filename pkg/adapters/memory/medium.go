// Package memory provides a process-local core.Medium. Nothing survives the
// process; it backs tests and the "memory" adapter.
package memory

import (
	"sort"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/roster/pkg/core"
)

// Medium is a map guarded by a RWMutex.
type Medium struct {
	mu       sync.RWMutex
	items    map[string]string
	readOnly bool
	writes   int
}

// New creates an empty medium.
func New() *Medium {
	return &Medium{items: make(map[string]string)}
}

// NewReadOnly creates a medium preloaded with items that rejects writes.
func NewReadOnly(items map[string]string) *Medium {
	m := New()
	for k, v := range items {
		m.items[k] = v
	}
	m.readOnly = true
	return m
}

func (m *Medium) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Medium) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly {
		return core.ErrReadOnly
	}
	m.items[key] = value
	m.writes++
	return nil
}

func (m *Medium) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly {
		return core.ErrReadOnly
	}
	delete(m.items, key)
	return nil
}

func (m *Medium) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Writes returns how many successful Set calls were made.
func (m *Medium) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// MediumState exposes internal state for observability.
type MediumState struct {
	Keys     int  `json:"keys"`
	Writes   int  `json:"writes"`
	ReadOnly bool `json:"read_only"`
}

// State implements introspection.Introspectable.
func (m *Medium) State() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MediumState{Keys: len(m.items), Writes: m.writes, ReadOnly: m.readOnly}
}

// ComponentType implements introspection.Component.
func (m *Medium) ComponentType() string {
	return "memory-medium"
}

var _ core.Medium = (*Medium)(nil)
var _ introspection.Introspectable = (*Medium)(nil)
var _ introspection.Component = (*Medium)(nil)
