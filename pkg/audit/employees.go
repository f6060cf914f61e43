package audit

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

// Employees records adds, updates and ratings of the underlying store.
type Employees struct {
	*store.Employees
	rec   recorder
	actor string
}

// NewEmployees decorates base. The activity log may be nil to disable recording.
func NewEmployees(base *store.Employees, log *store.Activity, actors Actors, logger *slog.Logger) *Employees {
	return &Employees{
		Employees: base,
		rec:       newRecorder(log, logger),
		actor:     actors.withDefaults().Employees,
	}
}

// Add stores the employee, then records employee_added.
func (s *Employees) Add(in core.NewEmployee) (core.Employee, error) {
	e, err := s.Employees.Add(in)
	if err != nil {
		return e, err
	}
	s.rec.record(core.NewActivity{
		Type:        core.ActivityEmployeeAdded,
		User:        s.actor,
		Description: "Added a new employee",
		TargetID:    core.IntRef(e.ID),
		TargetName:  e.Name,
	})
	return e, nil
}

// Update applies patch, then records employee_updated under the name the
// employee had before the patch. Unknown ids are not recorded.
func (s *Employees) Update(id int, patch core.EmployeePatch) (bool, error) {
	before, existed := s.ByID(id)

	found, err := s.Employees.Update(id, patch)
	if err != nil || !existed {
		return found, err
	}
	s.rec.record(core.NewActivity{
		Type:        core.ActivityEmployeeUpdated,
		User:        s.actor,
		Description: "Updated employee details",
		TargetID:    core.IntRef(id),
		TargetName:  before.Name,
	})
	return found, nil
}

// AddRating stores the rating, then records employee_rated with the rating
// author as the user.
func (s *Employees) AddRating(employeeID int, in core.NewRating) (core.Rating, bool, error) {
	target, existed := s.ByID(employeeID)

	r, found, err := s.Employees.AddRating(employeeID, in)
	if err != nil || !existed {
		return r, found, err
	}
	s.rec.record(core.NewActivity{
		Type:        core.ActivityEmployeeRated,
		User:        in.Author,
		Description: "Rated an employee",
		Details:     fmt.Sprintf("Rating: %d stars", in.Rating),
		TargetID:    core.IntRef(employeeID),
		TargetName:  target.Name,
	})
	return r, found, nil
}
