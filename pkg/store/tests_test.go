package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

func newTests(t *testing.T) *store.Tests {
	t.Helper()
	s := store.NewTests(memory.New(), store.WithClock(clock))
	s.Init()
	return s
}

func ids(tests []core.Test) []int {
	out := make([]int, len(tests))
	for i, t := range tests {
		out[i] = t.ID
	}
	return out
}

func TestTests_SortedAndActive(t *testing.T) {
	s := newTests(t)

	assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, ids(s.Sorted()))
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ids(s.Active()))
}

func TestTests_AddUpdateDelete(t *testing.T) {
	s := newTests(t)

	created, err := s.Add(core.NewTest{
		Title:      "Go concurrency",
		Category:   "Программирование",
		Difficulty: core.DifficultyHard,
		Duration:   50,
		Tags:       []string{"Go"},
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, "2025-03-10", created.CreatedAt)

	inactive := false
	found, err := s.Update(7, core.TestPatch{IsActive: &inactive})
	require.NoError(t, err)
	require.True(t, found)

	got, _ := s.ByID(7)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Go concurrency", got.Title)
	assert.Equal(t, core.DifficultyHard, got.Difficulty)
	assert.NotContains(t, ids(s.Active()), 7)

	found, err = s.Delete(7)
	require.NoError(t, err)
	assert.True(t, found)
	_, ok := s.ByID(7)
	assert.False(t, ok)
}

func TestTests_Filter(t *testing.T) {
	s := newTests(t)

	assert.Equal(t, []int{5, 2, 1}, ids(s.Filter(store.TestFilter{Category: "Программирование"})))
	assert.Equal(t, []int{6, 3, 1}, ids(s.Filter(store.TestFilter{Difficulty: core.DifficultyEasy})))
	assert.Equal(t, []int{3, 1}, ids(s.Filter(store.TestFilter{Difficulty: core.DifficultyEasy, ActiveOnly: true})))
	assert.Empty(t, s.Filter(store.TestFilter{Category: "Нет такой"}))
}

func TestTests_Categories(t *testing.T) {
	s := newTests(t)

	assert.Equal(t, []string{"Дизайн", "Маркетинг", "Программирование", "Финансы"}, s.Categories())
}
