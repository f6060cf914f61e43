package platform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/roster/pkg/audit"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

// ErrNotWatchable is returned by Follow when the medium cannot report
// external writes.
var ErrNotWatchable = errors.New("medium does not support watching")

// Console is every store of one session, opened over one medium.
// Employees and Employers are the activity-logging variants.
type Console struct {
	Employees *audit.Employees
	Employers *audit.Employers
	Tests     *store.Tests
	Activity  *store.Activity
	TestRuns  *audit.TestRuns
	Sessions  *audit.Sessions

	medium      core.Medium
	adapter     string
	location    string
	logger      *slog.Logger
	eventBuffer int
	reloaders   map[string]func() bool
}

// Open resolves the medium, builds every store and runs their Init.
//
//	c, err := platform.Open("./.roster", platform.WithAdapter("sqlite"))
func Open(uri string, opts ...Option) (*Console, error) {
	o := buildOptions(opts)

	medium, location, err := openMedium(uri, o)
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{store.WithLogger(o.logger), store.WithClock(o.clock)}
	activity := store.NewActivity(medium, storeOpts...)
	employees := store.NewEmployees(medium, storeOpts...)
	employers := store.NewEmployers(medium, storeOpts...)
	tests := store.NewTests(medium, storeOpts...)

	activity.Init()
	employees.Init()
	employers.Init()
	tests.Init()

	adapter := o.adapter
	if o.medium != nil {
		adapter = "custom"
	}

	c := &Console{
		Employees:   audit.NewEmployees(employees, activity, o.actors, o.logger),
		Employers:   audit.NewEmployers(employers, activity, o.actors, o.logger),
		Tests:       tests,
		Activity:    activity,
		TestRuns:    audit.NewTestRuns(tests, activity),
		Sessions:    audit.NewSessions(activity, o.logger),
		medium:      medium,
		adapter:     adapter,
		location:    location,
		logger:      o.logger,
		eventBuffer: o.eventBuffer,
		reloaders: map[string]func() bool{
			core.KeyEmployees:  employees.Reload,
			core.KeyEmployers:  employers.Reload,
			core.KeyTests:      tests.Reload,
			core.KeyActivities: activity.Reload,
		},
	}

	o.logger.Debug("console opened", "adapter", adapter, "location", location)
	return c, nil
}

// Medium returns the underlying medium, nil when running without one.
func (c *Console) Medium() core.Medium {
	return c.medium
}

// Location returns the resolved data path (empty for non-file media).
func (c *Console) Location() string {
	return c.location
}

// Subscribe merges the change events of every store into one channel,
// closed when ctx is done.
func (c *Console) Subscribe(ctx context.Context) <-chan core.Event {
	out := make(chan core.Event, max(c.eventBuffer, store.DefaultEventBuffer))

	type subscriber interface {
		Subscribe(int) (<-chan core.Event, func())
	}
	sources := []subscriber{c.Employees, c.Employers, c.Tests, c.Activity}

	chans := make([]<-chan core.Event, 0, len(sources))
	cancels := make([]func(), 0, len(sources))
	for _, s := range sources {
		ch, cancel := s.Subscribe(c.eventBuffer)
		chans = append(chans, ch)
		cancels = append(cancels, cancel)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer func() {
			for _, cancel := range cancels {
				cancel()
			}
		}()

		merged := make(chan core.Event)
		for _, ch := range chans {
			lifecycle.Go(ctx, func(ctx context.Context) error {
				for {
					select {
					case <-ctx.Done():
						return nil
					case e, ok := <-ch:
						if !ok {
							return nil
						}
						select {
						case merged <- e:
						case <-ctx.Done():
							return nil
						}
					}
				}
			})
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case e := <-merged:
				select {
				case out <- e:
				default:
					c.logger.Debug("console event dropped", "event", e.String())
				}
			}
		}
	})

	return out
}

// Follow reloads a store whenever its key is written by another process.
// It needs a medium that implements core.Watchable (the fs adapter) and stops
// when ctx is done.
func (c *Console) Follow(ctx context.Context) error {
	w, ok := c.medium.(core.Watchable)
	if !ok {
		return ErrNotWatchable
	}

	events, err := w.Watch(ctx, "*")
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for e := range events {
			reload, ok := c.reloaders[e.Key]
			if !ok || e.Type == core.EventDelete {
				continue
			}
			if reload() {
				c.logger.Debug("store reloaded", "key", e.Key)
			}
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		c.logger.Error("follow loop failed", "error", err)
	}))
	return nil
}

// Close releases the medium if it holds OS resources.
func (c *Console) Close() error {
	if closer, ok := c.medium.(core.Closer); ok {
		return closer.Close()
	}
	return nil
}

// ConsoleState exposes internal state for observability.
type ConsoleState struct {
	Adapter     string         `json:"adapter"`
	Location    string         `json:"location,omitempty"`
	Medium      any            `json:"medium,omitempty"`
	Collections map[string]any `json:"collections"`
}

// State implements introspection.Introspectable.
func (c *Console) State() any {
	state := ConsoleState{
		Adapter:  c.adapter,
		Location: c.location,
		Collections: map[string]any{
			core.KeyEmployees:  c.Employees.State(),
			core.KeyEmployers:  c.Employers.State(),
			core.KeyTests:      c.Tests.State(),
			core.KeyActivities: c.Activity.State(),
		},
	}
	if in, ok := c.medium.(introspection.Introspectable); ok {
		state.Medium = in.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (c *Console) ComponentType() string {
	return "console"
}

var _ introspection.Introspectable = (*Console)(nil)
var _ introspection.Component = (*Console)(nil)
