package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// MediumState exposes internal state for observability.
type MediumState struct {
	Path          string     `json:"path"`
	ReadOnly      bool       `json:"read_only"`
	Writes        int        `json:"writes"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
	WatcherActive bool       `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (m *Medium) State() any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MediumState{
		Path:          m.Path,
		ReadOnly:      m.config.ReadOnly,
		Writes:        m.writes,
		LastWrite:     m.lastWrite,
		WatcherActive: m.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (m *Medium) ComponentType() string {
	return "fs-medium"
}

var _ introspection.Introspectable = (*Medium)(nil)
var _ introspection.Component = (*Medium)(nil)
