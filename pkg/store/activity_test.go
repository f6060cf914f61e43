package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

// movableClock is a store clock tests can advance.
type movableClock struct{ now time.Time }

func (c *movableClock) Now() time.Time          { return c.now }
func (c *movableClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newActivity(t *testing.T, m core.Medium, c *movableClock) *store.Activity {
	t.Helper()
	s := store.NewActivity(m, store.WithClock(c.Now))
	s.Init()
	return s
}

func TestActivity_Seed(t *testing.T) {
	c := &movableClock{now: fixedNow}
	s := newActivity(t, memory.New(), c)

	all := s.All()
	require.Len(t, all, 6)
	assert.Equal(t, core.ActivityEmployeeAdded, all[0].Type)
	assert.Equal(t, fixedNow.Add(-15*time.Minute), all[0].Timestamp)
	assert.Equal(t, core.ActivityUserLogin, all[5].Type)
	assert.Equal(t, fixedNow.Add(-2*time.Hour), all[5].Timestamp)
}

func TestActivity_LogPrependsAndStamps(t *testing.T) {
	c := &movableClock{now: fixedNow.Add(123456789 * time.Nanosecond)}
	m := memory.New()
	s := newActivity(t, m, c)

	e, err := s.Log(core.NewActivity{
		Type:        core.ActivityUserLogin,
		User:        "Administrator",
		Description: "Logged in",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, e.ID)
	assert.Equal(t, fixedNow.Add(123*time.Millisecond), e.Timestamp)
	assert.Equal(t, "2025-03-10", e.CreatedAt)

	assert.Equal(t, 7, s.Items()[0].ID, "new entries go first in storage")
	assert.Equal(t, 7, s.Recent()[0].ID)
}

func TestActivity_LogRejectsUnknownType(t *testing.T) {
	c := &movableClock{now: fixedNow}
	s := newActivity(t, memory.New(), c)

	_, err := s.Log(core.NewActivity{Type: "employee_fired"})
	assert.ErrorIs(t, err, core.ErrUnknownActivityType)
	assert.Len(t, s.Items(), 6)
}

func TestActivity_AllOrdersByTimestampThenID(t *testing.T) {
	m := memory.New()
	raw := `[
		{"id":1,"type":"user_login","user":"a","description":"d","timestamp":"2025-03-10T10:00:00.000Z","createdAt":"2025-03-10"},
		{"id":2,"type":"user_login","user":"b","description":"d","timestamp":"2025-03-10T11:00:00.000Z","createdAt":"2025-03-10"},
		{"id":3,"type":"user_login","user":"c","description":"d","timestamp":"2025-03-10T10:00:00.000Z","createdAt":"2025-03-10"}
	]`
	require.NoError(t, m.Set(core.KeyActivities, raw))

	s := newActivity(t, m, &movableClock{now: fixedNow})
	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{all[0].ID, all[1].ID, all[2].ID})
}

func TestActivity_RecentIsCapped(t *testing.T) {
	c := &movableClock{now: fixedNow}
	s := newActivity(t, memory.New(), c)

	for i := 0; i < store.RecentLimit; i++ {
		c.Advance(time.Second)
		_, err := s.Log(core.NewActivity{Type: core.ActivityUserLogin, User: "u", Description: "Logged in"})
		require.NoError(t, err)
	}

	recent := s.Recent()
	assert.Len(t, recent, store.RecentLimit)
	assert.Len(t, s.All(), store.RecentLimit+6)
	assert.Equal(t, store.RecentLimit+6, recent[0].ID)
}

func TestActivity_ClearOld(t *testing.T) {
	t.Run("Keeps Entries Inside The Window", func(t *testing.T) {
		c := &movableClock{now: fixedNow}
		s := newActivity(t, memory.New(), c)

		c.Advance(31 * 24 * time.Hour)
		fresh, err := s.Log(core.NewActivity{Type: core.ActivityUserLogin, User: "u", Description: "Logged in"})
		require.NoError(t, err)

		removed, err := s.ClearOld(30)
		require.NoError(t, err)
		assert.Equal(t, 6, removed)

		cutoff := c.Now().Add(-30 * 24 * time.Hour)
		for _, e := range s.All() {
			assert.False(t, e.Timestamp.Before(cutoff))
		}
		assert.Equal(t, []int{fresh.ID}, []int{s.All()[0].ID})
	})

	t.Run("Zero Days Keeps Entries Logged Now", func(t *testing.T) {
		c := &movableClock{now: fixedNow}
		s := newActivity(t, memory.New(), c)

		removed, err := s.ClearOld(0)
		require.NoError(t, err)
		assert.Equal(t, 6, removed, "seed entries are older than now")

		_, err = s.Log(core.NewActivity{Type: core.ActivityUserLogin, User: "u", Description: "Logged in"})
		require.NoError(t, err)

		removed, err = s.ClearOld(0)
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.Len(t, s.Items(), 1)
	})

	t.Run("Zero Days Keeps Entries Logged Now With Wall Clock", func(t *testing.T) {
		s := store.NewActivity(memory.New())
		s.Init()

		_, err := s.ClearOld(0)
		require.NoError(t, err)

		_, err = s.Log(core.NewActivity{Type: core.ActivityUserLogin, User: "u", Description: "Logged in"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)

		removed, err := s.ClearOld(0)
		require.NoError(t, err)
		assert.Zero(t, removed, "an entry logged a moment ago is not older than now")
		assert.Len(t, s.Items(), 1)
	})

	t.Run("Negative Days Uses Default", func(t *testing.T) {
		c := &movableClock{now: fixedNow}
		s := newActivity(t, memory.New(), c)

		c.Advance(29 * 24 * time.Hour)
		removed, err := s.ClearOld(-1)
		require.NoError(t, err)
		assert.Zero(t, removed)

		c.Advance(2 * 24 * time.Hour)
		removed, err = s.ClearOld(-1)
		require.NoError(t, err)
		assert.Equal(t, 6, removed)
	})
}
