// Package store holds the resource stores of the console: a generic
// Collection and its instances for employees, employers, skill tests and the
// activity log.
//
// A collection keeps its entities in an in-memory cache that mirrors the last
// successful write to the medium. Every mutation is a synchronous
// read-modify-write of the whole list: the new list is persisted first and the
// cache is replaced only if the write succeeded.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/kv"
)

// CollectionConfig describes one persisted list.
type CollectionConfig[T any] struct {
	Key string
	// Seed returns a fresh copy of the initial data. now is the store clock.
	Seed func(now time.Time) []T
	ID   func(T) int
	// Clone deep-copies an entity. Nil means values are copied as is.
	Clone func(T) T
	// Prepend puts new entities at the front of the list instead of the back.
	Prepend bool
}

// Collection is a cached, persisted list of entities with integer ids.
type Collection[T any] struct {
	cfg     CollectionConfig[T]
	adapter *kv.Adapter[T]
	logger  *slog.Logger
	clock   func() time.Time

	mu          sync.RWMutex
	items       []T
	highWater   int
	initialized bool
	subs        map[int]chan core.Event
	nextSub     int
	dropped     int
}

// NewCollection creates a collection over m. Call Init before use.
// A nil medium gives a collection without persistence.
func NewCollection[T any](m core.Medium, cfg CollectionConfig[T], opts ...Option) *Collection[T] {
	o := buildOptions(opts)
	if cfg.Seed == nil {
		cfg.Seed = func(time.Time) []T { return []T{} }
	}
	if cfg.Clone == nil {
		cfg.Clone = func(v T) T { return v }
	}
	logger := o.logger.With("key", cfg.Key)
	return &Collection[T]{
		cfg:     cfg,
		adapter: kv.NewAdapter[T](m, cfg.Key, logger),
		logger:  logger,
		clock:   o.clock,
		items:   []T{},
		subs:    make(map[int]chan core.Event),
	}
}

// Init loads the persisted list, falling back to the seed when it is missing,
// malformed or empty. The seed is written back; a failure there is logged and
// the collection still starts from the seed.
// A second read then confirms the medium holds data, rewriting the seed if
// it does not. The confirmation never touches the cache.
func (c *Collection[T]) Init() {
	now := c.clock()

	items, ok := c.adapter.Read()
	seeded := !ok || len(items) == 0
	if seeded {
		items = c.cfg.Seed(now)
		if err := c.adapter.Write(items); err != nil {
			c.logger.Warn("failed to persist seed", "error", err)
		}
	}

	c.mu.Lock()
	c.items = items
	c.highWater = max(c.highWater, c.maxID(items))
	c.initialized = true
	c.mu.Unlock()

	if again, ok := c.adapter.Read(); !ok || len(again) == 0 {
		if err := c.adapter.Write(c.cfg.Seed(now)); err != nil {
			c.logger.Warn("failed to persist seed", "error", err)
		}
	}

	c.logger.Debug("collection loaded", "items", len(items), "seeded", seeded)
}

// Reload replaces the cache with the persisted list, e.g. after another
// process wrote the medium. It reports false, leaving the cache alone, when
// the persisted list is missing or empty.
// The read happens under the write lock so a concurrent mutation cannot be
// overwritten by an older list.
func (c *Collection[T]) Reload() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.adapter.Read()
	if !ok || len(items) == 0 {
		return false
	}
	c.items = items
	c.highWater = max(c.highWater, c.maxID(items))
	c.publishLocked(core.EventReload, 0)
	return true
}

// Items returns a copy of the cache in stored order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = c.cfg.Clone(item)
	}
	return out
}

// Len returns the number of cached entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// ByID looks an entity up in the cache.
func (c *Collection[T]) ByID(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if c.cfg.ID(item) == id {
			return c.cfg.Clone(item), true
		}
	}
	var zero T
	return zero, false
}

// Subscribe returns a channel receiving change events and a cancel func that
// closes it. Sends never block: events are dropped when the buffer is full.
func (c *Collection[T]) Subscribe(buffer int) (<-chan core.Event, func()) {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	ch := make(chan core.Event, buffer)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			close(ch)
			c.mu.Unlock()
		})
	}
	return ch, cancel
}

// insert assigns the next id, stores the entity built for it and publishes a
// create event.
func (c *Collection[T]) insert(build func(id int, now time.Time) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := max(c.highWater, c.maxID(c.items)) + 1
	item := build(id, c.clock())

	next := make([]T, 0, len(c.items)+1)
	if c.cfg.Prepend {
		next = append(next, item)
		next = append(next, c.items...)
	} else {
		next = append(next, c.items...)
		next = append(next, item)
	}

	if err := c.adapter.Write(next); err != nil {
		var zero T
		return zero, err
	}
	c.items = next
	c.highWater = id
	c.publishLocked(core.EventCreate, id)
	return c.cfg.Clone(item), nil
}

// update applies fn to the entity with id. The list is persisted even when
// nothing matched.
func (c *Collection[T]) update(id int, fn func(T) T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	matched := false
	next := make([]T, len(c.items))
	for i, item := range c.items {
		if c.cfg.ID(item) == id {
			item = fn(c.cfg.Clone(item))
			matched = true
		}
		next[i] = item
	}

	if err := c.adapter.Write(next); err != nil {
		return false, err
	}
	c.items = next
	if matched {
		c.publishLocked(core.EventModify, id)
	}
	return matched, nil
}

// remove drops the entity with id. The high-water mark is kept, so the id is
// not handed out again in this session.
func (c *Collection[T]) remove(id int) (bool, error) {
	removed, err := c.retain(func(item T) bool { return c.cfg.ID(item) != id }, id)
	return removed > 0, err
}

// retain keeps the entities for which keep is true and returns how many were
// dropped. id tags the published delete event (0 for bulk removals).
func (c *Collection[T]) retain(keep func(T) bool, id int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if keep(item) {
			next = append(next, item)
		}
	}

	if err := c.adapter.Write(next); err != nil {
		return 0, err
	}
	removed := len(c.items) - len(next)
	c.items = next
	if removed > 0 {
		c.publishLocked(core.EventDelete, id)
	}
	return removed, nil
}

func (c *Collection[T]) publishLocked(t core.EventType, id int) {
	e := core.NewEvent(t, c.cfg.Key, id, c.clock())
	for _, ch := range c.subs {
		select {
		case ch <- e:
		default:
			c.dropped++
		}
	}
}

func (c *Collection[T]) maxID(items []T) int {
	highest := 0
	for _, item := range items {
		highest = max(highest, c.cfg.ID(item))
	}
	return highest
}

// CollectionState exposes internal state for observability.
type CollectionState struct {
	Key           string `json:"key"`
	Items         int    `json:"items"`
	HighWater     int    `json:"high_water"`
	Persistent    bool   `json:"persistent"`
	Initialized   bool   `json:"initialized"`
	Subscribers   int    `json:"subscribers"`
	DroppedEvents int    `json:"dropped_events"`
}

// State implements introspection.Introspectable.
func (c *Collection[T]) State() any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CollectionState{
		Key:           c.cfg.Key,
		Items:         len(c.items),
		HighWater:     c.highWater,
		Persistent:    c.adapter.Available(),
		Initialized:   c.initialized,
		Subscribers:   len(c.subs),
		DroppedEvents: c.dropped,
	}
}

// ComponentType implements introspection.Component.
func (c *Collection[T]) ComponentType() string {
	return "collection"
}

var _ introspection.Introspectable = (*Collection[core.Employee])(nil)
var _ introspection.Component = (*Collection[core.Employee])(nil)
