package audit

import (
	"log/slog"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

// Employers records adds and updates of the underlying store.
// Delete passes through unrecorded.
type Employers struct {
	*store.Employers
	rec   recorder
	actor string
}

// NewEmployers decorates base. The activity log may be nil to disable recording.
func NewEmployers(base *store.Employers, log *store.Activity, actors Actors, logger *slog.Logger) *Employers {
	return &Employers{
		Employers: base,
		rec:       newRecorder(log, logger),
		actor:     actors.withDefaults().Employers,
	}
}

// Add stores the employer, then records employer_added.
func (s *Employers) Add(in core.NewEmployer) (core.Employer, error) {
	e, err := s.Employers.Add(in)
	if err != nil {
		return e, err
	}
	s.rec.record(core.NewActivity{
		Type:        core.ActivityEmployerAdded,
		User:        s.actor,
		Description: "Added a new employer",
		TargetID:    core.IntRef(e.ID),
		TargetName:  e.CompanyName,
	})
	return e, nil
}

// Update applies patch, then records employer_updated under the company name
// before the patch. Unknown ids are not recorded.
func (s *Employers) Update(id int, patch core.EmployerPatch) (bool, error) {
	before, existed := s.ByID(id)

	found, err := s.Employers.Update(id, patch)
	if err != nil || !existed {
		return found, err
	}
	s.rec.record(core.NewActivity{
		Type:        core.ActivityEmployerUpdated,
		User:        s.actor,
		Description: "Updated employer details",
		TargetID:    core.IntRef(id),
		TargetName:  before.CompanyName,
	})
	return found, nil
}
