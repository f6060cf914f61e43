package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

func newEmployers(t *testing.T, m core.Medium) *store.Employers {
	t.Helper()
	s := store.NewEmployers(m, store.WithClock(clock))
	s.Init()
	return s
}

func TestEmployers_AddStampsCreatedAt(t *testing.T) {
	s := newEmployers(t, memory.New())

	e, err := s.Add(core.NewEmployer{CompanyName: "Acme", Email: "hi@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, 4, e.ID)
	assert.Equal(t, "2025-03-10", e.CreatedAt)
}

func TestEmployers_UpdateCannotTouchIDOrCreatedAt(t *testing.T) {
	s := newEmployers(t, memory.New())

	phone := "+1 555 0100"
	found, err := s.Update(1, core.EmployerPatch{Phone: &phone})
	require.NoError(t, err)
	require.True(t, found)

	e, _ := s.ByID(1)
	assert.Equal(t, 1, e.ID)
	assert.Equal(t, "2024-01-15", e.CreatedAt)
	assert.Equal(t, "+1 555 0100", e.Phone)
	assert.Equal(t, "TechCorp Solutions", e.CompanyName)
}

func TestEmployers_DeleteDoesNotReuseIDs(t *testing.T) {
	s := newEmployers(t, memory.New())

	_, err := s.Add(core.NewEmployer{CompanyName: "Acme"})
	require.NoError(t, err)

	found, err := s.Delete(4)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Delete(4)
	require.NoError(t, err)
	assert.False(t, found)

	e, err := s.Add(core.NewEmployer{CompanyName: "Globex"})
	require.NoError(t, err)
	assert.Equal(t, 5, e.ID)
}

func TestEmployers_DeleteAllStaysEmpty(t *testing.T) {
	m := memory.New()
	s := newEmployers(t, m)
	for _, e := range s.Items() {
		_, err := s.Delete(e.ID)
		require.NoError(t, err)
	}
	assert.Empty(t, s.Sorted())

	// A fresh session sees an empty list and starts over from the seed.
	assert.Len(t, newEmployers(t, m).Sorted(), 3)
}

func TestEmployers_SortedAndSearch(t *testing.T) {
	s := newEmployers(t, memory.New())

	sorted := s.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})

	got := s.Search("финанс")
	require.Len(t, got, 1)
	assert.Equal(t, "FinanceHub", got[0].CompanyName)

	got = s.Search("TECHCORP")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	assert.Len(t, s.Search(""), 3)
}
