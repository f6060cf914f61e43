package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/roster/pkg/core"
)

// Watch reports writes to value files whose key matches pattern (doublestar
// syntax, e.g. "*" or "employ*"). It sees writes from every process sharing
// the directory, this one included. The channel closes when ctx is done.
func (m *Medium) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(m.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", m.Path, err)
	}

	events := make(chan core.Event, 16)
	m.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer watcher.Close()
		defer m.setWatcherActive(false)

		for {
			select {
			case <-ctx.Done():
				return nil

			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				e, matched := m.translate(ev, pattern)
				if !matched {
					continue
				}
				select {
				case events <- e:
				case <-ctx.Done():
					return nil
				}

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				m.reportError(wErr)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		m.reportError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

// translate filters a filesystem event and maps it to a core.Event.
func (m *Medium) translate(ev fsnotify.Event, pattern string) (core.Event, bool) {
	key, ok := keyFromName(filepath.Base(ev.Name))
	if !ok {
		return core.Event{}, false
	}
	if match, err := doublestar.Match(pattern, key); err != nil || !match {
		return core.Event{}, false
	}

	var t core.EventType
	switch {
	case ev.Has(fsnotify.Create):
		t = core.EventCreate
	case ev.Has(fsnotify.Write):
		t = core.EventModify
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		t = core.EventDelete
	default:
		return core.Event{}, false
	}

	m.config.Logger.Debug("medium change", "key", key, "op", ev.Op.String())
	return core.NewEvent(t, key, 0, time.Now()), true
}

func (m *Medium) reportError(err error) {
	m.config.Logger.Error("watcher error", "error", err)
	if m.config.ErrorHandler != nil {
		m.config.ErrorHandler(err)
	}
}

func (m *Medium) setWatcherActive(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watcherActive = active
}
