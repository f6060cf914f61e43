package store

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aretw0/roster/pkg/core"
)

// Employees is the employee store. Employees are never deleted.
type Employees struct {
	*Collection[core.Employee]
}

// NewEmployees creates the employee store over m.
func NewEmployees(m core.Medium, opts ...Option) *Employees {
	return &Employees{NewCollection(m, CollectionConfig[core.Employee]{
		Key:   core.KeyEmployees,
		Seed:  func(time.Time) []core.Employee { return SeedEmployees() },
		ID:    core.Employee.Key,
		Clone: core.Employee.Clone,
	}, opts...)}
}

// EmployeeSummary is an employee with its derived average rating.
type EmployeeSummary struct {
	core.Employee
	AverageRating float64 `json:"averageRating"`
}

// All returns every employee in stored order.
func (s *Employees) All() []core.Employee {
	return s.Items()
}

// Add stores a new employee under the next free id.
func (s *Employees) Add(in core.NewEmployee) (core.Employee, error) {
	return s.insert(func(id int, _ time.Time) core.Employee {
		return in.Build(id)
	})
}

// Update merges patch into the employee with id. It reports whether the
// employee exists; the list is persisted either way.
func (s *Employees) Update(id int, patch core.EmployeePatch) (bool, error) {
	return s.update(id, patch.Apply)
}

// AddRating appends a rating to the employee, numbered after the employee's
// highest rating id. An empty date defaults to today.
// An unknown employee leaves every entity unchanged and reports false.
func (s *Employees) AddRating(employeeID int, in core.NewRating) (core.Rating, bool, error) {
	if in.Date == "" {
		in.Date = s.clock().Format(core.DateLayout)
	}

	var added core.Rating
	found, err := s.update(employeeID, func(e core.Employee) core.Employee {
		added = in.Build(e.NextRatingID())
		e.Ratings = append(e.Ratings, added)
		return e
	})
	if err != nil || !found {
		return core.Rating{}, found, err
	}
	return added, true, nil
}

// WithAverages returns every employee with its average rating, in stored order.
func (s *Employees) WithAverages() []EmployeeSummary {
	all := s.Items()
	out := make([]EmployeeSummary, len(all))
	for i, e := range all {
		out[i] = EmployeeSummary{Employee: e, AverageRating: AverageRating(e.Ratings)}
	}
	return out
}

// Search returns the employees whose name, title, department or any skill
// contains q (case-insensitive), newest first. An empty q matches everyone.
func (s *Employees) Search(q string) []EmployeeSummary {
	q = strings.ToLower(strings.TrimSpace(q))

	all := s.WithAverages()
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	out := make([]EmployeeSummary, 0, len(all))
	for _, e := range all {
		if q == "" || employeeMatches(e.Employee, q) {
			out = append(out, e)
		}
	}
	return out
}

func employeeMatches(e core.Employee, q string) bool {
	if containsFold(e.Name, q) || containsFold(e.Title, q) || containsFold(e.Department, q) {
		return true
	}
	for _, skill := range e.Skills {
		if containsFold(skill, q) {
			return true
		}
	}
	return false
}

// AverageRating is the arithmetic mean of the scores rounded half away from
// zero to one decimal, or 0 when there are none.
func AverageRating(ratings []core.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := int64(0)
	for _, r := range ratings {
		sum += int64(r.Rating)
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(ratings))))
	return avg.Round(1).InexactFloat64()
}

// containsFold reports whether s contains the lowercase needle q.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}
