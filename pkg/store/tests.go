package store

import (
	"sort"
	"time"

	"github.com/aretw0/roster/pkg/core"
)

// Tests is the skill test store.
type Tests struct {
	*Collection[core.Test]
}

// NewTests creates the skill test store over m.
func NewTests(m core.Medium, opts ...Option) *Tests {
	return &Tests{NewCollection(m, CollectionConfig[core.Test]{
		Key:   core.KeyTests,
		Seed:  func(time.Time) []core.Test { return SeedTests() },
		ID:    core.Test.Key,
		Clone: core.Test.Clone,
	}, opts...)}
}

// Add stores a new test created today under the next free id.
func (s *Tests) Add(in core.NewTest) (core.Test, error) {
	return s.insert(func(id int, now time.Time) core.Test {
		return in.Build(id, now.Format(core.DateLayout))
	})
}

// Update merges patch into the test with id and reports whether it exists.
func (s *Tests) Update(id int, patch core.TestPatch) (bool, error) {
	return s.update(id, patch.Apply)
}

// Delete removes the test with id and reports whether it existed.
func (s *Tests) Delete(id int) (bool, error) {
	return s.remove(id)
}

// Sorted returns every test, highest id first.
func (s *Tests) Sorted() []core.Test {
	all := s.Items()
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all
}

// Active returns the active subset of Sorted.
func (s *Tests) Active() []core.Test {
	return s.Filter(TestFilter{ActiveOnly: true})
}

// TestFilter narrows Sorted. Zero fields match everything.
type TestFilter struct {
	Category   string
	Difficulty core.Difficulty
	ActiveOnly bool
}

// Filter returns the tests of Sorted matching f.
func (s *Tests) Filter(f TestFilter) []core.Test {
	out := []core.Test{}
	for _, t := range s.Sorted() {
		if f.ActiveOnly && !t.IsActive {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && t.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Categories lists the distinct categories in lexical order.
func (s *Tests) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range s.Items() {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}
