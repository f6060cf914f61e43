package store

import (
	"sort"
	"strings"
	"time"

	"github.com/aretw0/roster/pkg/core"
)

// Employers is the employer store.
type Employers struct {
	*Collection[core.Employer]
}

// NewEmployers creates the employer store over m.
func NewEmployers(m core.Medium, opts ...Option) *Employers {
	return &Employers{NewCollection(m, CollectionConfig[core.Employer]{
		Key:  core.KeyEmployers,
		Seed: func(time.Time) []core.Employer { return SeedEmployers() },
		ID:   core.Employer.Key,
	}, opts...)}
}

// Add stores a new employer created today under the next free id.
func (s *Employers) Add(in core.NewEmployer) (core.Employer, error) {
	return s.insert(func(id int, now time.Time) core.Employer {
		return in.Build(id, now.Format(core.DateLayout))
	})
}

// Update merges patch into the employer with id and reports whether it exists.
func (s *Employers) Update(id int, patch core.EmployerPatch) (bool, error) {
	return s.update(id, patch.Apply)
}

// Delete removes the employer with id and reports whether it existed.
func (s *Employers) Delete(id int) (bool, error) {
	return s.remove(id)
}

// Sorted returns every employer, highest id first.
func (s *Employers) Sorted() []core.Employer {
	all := s.Items()
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all
}

// Search filters Sorted by company, contact person, industry or email
// (case-insensitive). An empty q matches every employer.
func (s *Employers) Search(q string) []core.Employer {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []core.Employer{}
	for _, e := range s.Sorted() {
		if q == "" ||
			containsFold(e.CompanyName, q) ||
			containsFold(e.ContactPerson, q) ||
			containsFold(e.Industry, q) ||
			containsFold(e.Email, q) {
			out = append(out, e)
		}
	}
	return out
}
