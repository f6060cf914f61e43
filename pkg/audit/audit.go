// Package audit composes the resource stores with the activity log: each
// decorated mutation is applied and persisted first, then recorded.
//
// Recording is best effort. When the log append fails the failure is logged
// and dropped; the domain change stands.
package audit

import (
	"log/slog"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

// Default actor names written as the user of decorated mutations.
const (
	DefaultEmployeeActor = "Administrator"
	DefaultEmployerActor = "HR Manager"
)

// Actors names who performs decorated mutations.
type Actors struct {
	Employees string
	Employers string
}

// DefaultActors returns the built-in actor names.
func DefaultActors() Actors {
	return Actors{Employees: DefaultEmployeeActor, Employers: DefaultEmployerActor}
}

// withDefaults fills blank names.
func (a Actors) withDefaults() Actors {
	if a.Employees == "" {
		a.Employees = DefaultEmployeeActor
	}
	if a.Employers == "" {
		a.Employers = DefaultEmployerActor
	}
	return a
}

// recorder appends entries to the activity log and swallows failures.
type recorder struct {
	log    *store.Activity
	logger *slog.Logger
}

func newRecorder(log *store.Activity, logger *slog.Logger) recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return recorder{log: log, logger: logger}
}

func (r recorder) record(in core.NewActivity) {
	if r.log == nil {
		return
	}
	if _, err := r.log.Log(in); err != nil {
		r.logger.Warn("failed to record activity", "type", in.Type, "target", in.TargetName, "error", err)
	}
}
