// Package lifecycle bridges console change events into aretw0/lifecycle.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/roster/pkg/core"
)

// ChangeEvent is a store change carrying the name of its collection.
type ChangeEvent struct {
	core.Event
	Collection string
}

// String implements lifecycle.Event, e.g. "Employees: CREATE employees/7".
func (e ChangeEvent) String() string {
	return fmt.Sprintf("%s: %s", e.Collection, e.Event)
}

var collectionNames = map[string]string{
	core.KeyEmployees:  "Employees",
	core.KeyEmployers:  "Employers",
	core.KeyTests:      "Skill tests",
	core.KeyActivities: "Activity log",
}

// CollectionName returns the display name of a storage key, or the key itself.
func CollectionName(key string) string {
	if name, ok := collectionNames[key]; ok {
		return name
	}
	return key
}

// Option configures a Source.
type Option func(*changeSource)

// WithCollections forwards only events for the given storage keys.
func WithCollections(keys ...string) Option {
	return func(s *changeSource) {
		s.keys = make(map[string]bool, len(keys))
		for _, k := range keys {
			s.keys[k] = true
		}
	}
}

// WithoutReloads drops RELOAD events, which the fs watcher also produces for
// this process's own writes.
func WithoutReloads() Option {
	return func(s *changeSource) {
		s.skipReloads = true
	}
}

type changeSource struct {
	events      <-chan core.Event
	out         chan lifecycle.Event
	keys        map[string]bool
	skipReloads bool
}

// NewSource creates a lifecycle.Source that re-emits console events as
// ChangeEvent values.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &changeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *changeSource) accepts(e core.Event) bool {
	if s.skipReloads && e.Type == core.EventReload {
		return false
	}
	return s.keys == nil || s.keys[e.Key]
}

// Start forwards events until the input closes or ctx is done, then closes
// the output channel.
func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.accepts(e) {
					continue
				}
				select {
				case s.out <- ChangeEvent{Event: e, Collection: CollectionName(e.Key)}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
