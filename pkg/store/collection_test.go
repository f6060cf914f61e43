package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/roster/pkg/adapters/fs"
	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/core"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newItems(m core.Medium, seed []item) *Collection[item] {
	c := NewCollection(m, CollectionConfig[item]{
		Key:  "items",
		Seed: func(time.Time) []item { return append([]item{}, seed...) },
		ID:   func(i item) int { return i.ID },
	})
	c.Init()
	return c
}

func add(t *testing.T, c *Collection[item], name string) item {
	t.Helper()
	got, err := c.insert(func(id int, _ time.Time) item { return item{ID: id, Name: name} })
	require.NoError(t, err)
	return got
}

// flakyMedium fails every write while broken is set.
type flakyMedium struct {
	*memory.Medium
	broken bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyMedium) Set(key, value string) error {
	if f.broken {
		return errDiskFull
	}
	return f.Medium.Set(key, value)
}

func TestCollection_IDsIncreaseWithoutReuse(t *testing.T) {
	c := newItems(memory.New(), nil)

	ids := []int{}
	for _, name := range []string{"a", "b", "c"} {
		ids = append(ids, add(t, c, name).ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)

	removed, err := c.remove(3)
	require.NoError(t, err)
	assert.True(t, removed)

	assert.Equal(t, 4, add(t, c, "d").ID, "a deleted maximum id must not be handed out again")

	_, err = c.remove(1)
	require.NoError(t, err)
	assert.Equal(t, 5, add(t, c, "e").ID)
}

func TestCollection_FreshLoadStartsAfterPersistedMax(t *testing.T) {
	m := memory.New()
	c := newItems(m, []item{{ID: 1, Name: "seed"}})
	add(t, c, "two")
	_, err := c.remove(2)
	require.NoError(t, err)

	reloaded := newItems(m, nil)
	assert.Equal(t, 2, add(t, reloaded, "again").ID)
}

func TestCollection_Init(t *testing.T) {
	t.Run("Seeds Empty Medium", func(t *testing.T) {
		m := memory.New()
		c := newItems(m, []item{{ID: 1, Name: "seed"}})

		assert.Equal(t, []item{{ID: 1, Name: "seed"}}, c.Items())
		raw, ok, _ := m.Get("items")
		require.True(t, ok)
		assert.JSONEq(t, `[{"id":1,"name":"seed"}]`, raw)
	})

	t.Run("Reseeds Malformed Or Empty Values", func(t *testing.T) {
		for _, raw := range []string{"", "[]", "null", "{}", "not json", `"text"`} {
			m := memory.New()
			require.NoError(t, m.Set("items", raw))

			c := newItems(m, []item{{ID: 1, Name: "seed"}})
			assert.Len(t, c.Items(), 1, "value %q", raw)
		}
	})

	t.Run("Keeps Persisted Data", func(t *testing.T) {
		m := memory.New()
		require.NoError(t, m.Set("items", `[{"id":9,"name":"kept"}]`))

		c := newItems(m, []item{{ID: 1, Name: "seed"}})
		assert.Equal(t, []item{{ID: 9, Name: "kept"}}, c.Items())
	})

	t.Run("Seed Write Failure Still Loads Seed", func(t *testing.T) {
		m := &flakyMedium{Medium: memory.New(), broken: true}
		c := newItems(m, []item{{ID: 1, Name: "seed"}})

		assert.Len(t, c.Items(), 1)
		_, ok, _ := m.Get("items")
		assert.False(t, ok)
	})

	t.Run("No Medium", func(t *testing.T) {
		c := newItems(nil, []item{{ID: 1, Name: "seed"}})
		assert.Len(t, c.Items(), 1)
		assert.Equal(t, 2, add(t, c, "x").ID)
		assert.False(t, c.State().(CollectionState).Persistent)
	})
}

func TestCollection_EmptiedCollectionIsNotReseeded(t *testing.T) {
	c := newItems(memory.New(), []item{{ID: 1, Name: "seed"}})

	_, err := c.remove(1)
	require.NoError(t, err)
	assert.Empty(t, c.Items())
}

func TestCollection_WriteFailureKeepsCache(t *testing.T) {
	m := &flakyMedium{Medium: memory.New()}
	c := newItems(m, []item{{ID: 1, Name: "seed"}})

	m.broken = true

	_, err := c.insert(func(id int, _ time.Time) item { return item{ID: id} })
	assert.ErrorIs(t, err, errDiskFull)

	_, err = c.update(1, func(i item) item { i.Name = "changed"; return i })
	assert.ErrorIs(t, err, errDiskFull)

	_, err = c.remove(1)
	assert.ErrorIs(t, err, errDiskFull)

	assert.Equal(t, []item{{ID: 1, Name: "seed"}}, c.Items())

	m.broken = false
	assert.Equal(t, 2, add(t, c, "after").ID)
}

func TestCollection_UpdatePersistsEvenWithoutMatch(t *testing.T) {
	m := memory.New()
	c := newItems(m, []item{{ID: 1, Name: "seed"}})
	before := m.Writes()

	matched, err := c.update(42, func(i item) item { return i })
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Equal(t, before+1, m.Writes())
}

func TestCollection_Subscribe(t *testing.T) {
	c := newItems(memory.New(), nil)

	events, cancel := c.Subscribe(4)
	add(t, c, "a")
	_, _ = c.update(1, func(i item) item { return i })
	_, _ = c.update(99, func(i item) item { return i })
	_, _ = c.remove(1)

	want := []core.EventType{core.EventCreate, core.EventModify, core.EventDelete}
	for _, typ := range want {
		e := <-events
		assert.Equal(t, typ, e.Type)
		assert.Equal(t, "items", e.Key)
		assert.Equal(t, 1, e.ID)
	}
	assert.Empty(t, events, "no event for an update without a match")

	cancel()
	cancel()
	_, ok := <-events
	assert.False(t, ok)
}

func TestCollection_SubscribeDropsWhenFull(t *testing.T) {
	c := newItems(memory.New(), nil)

	_, cancel := c.Subscribe(1)
	defer cancel()

	add(t, c, "a")
	add(t, c, "b")

	assert.Equal(t, 1, c.State().(CollectionState).DroppedEvents)
}

func TestCollection_Reload(t *testing.T) {
	m := memory.New()
	c := newItems(m, []item{{ID: 1, Name: "seed"}})

	// Another process rewrites the list.
	require.NoError(t, m.Set("items", `[{"id":1,"name":"seed"},{"id":5,"name":"other"}]`))
	assert.True(t, c.Reload())
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, 6, add(t, c, "next").ID)

	require.NoError(t, m.Set("items", `[]`))
	assert.False(t, c.Reload())
	assert.Len(t, c.Items(), 3)
}

func TestCollection_ReloadDuringWritesLosesNothing(t *testing.T) {
	m := fs.NewMedium(fs.Config{Path: t.TempDir()})
	require.NoError(t, m.Initialize())
	c := newItems(m, []item{{ID: 1, Name: "seed"}})

	const writers, perWriter = 4, 25
	done := make(chan struct{})
	var reloads sync.WaitGroup
	reloads.Add(1)
	go func() {
		defer reloads.Done()
		for {
			select {
			case <-done:
				return
			default:
				c.Reload()
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := c.insert(func(id int, _ time.Time) item { return item{ID: id, Name: "w"} })
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	close(done)
	reloads.Wait()

	want := writers*perWriter + 1
	assert.Len(t, c.Items(), want)

	persisted := newItems(m, nil)
	ids := map[int]bool{}
	for _, it := range persisted.Items() {
		ids[it.ID] = true
	}
	for id := 1; id <= want; id++ {
		assert.True(t, ids[id], "id %d missing from the medium", id)
	}
}

func TestCollection_ItemsAreCopies(t *testing.T) {
	c := newItems(memory.New(), []item{{ID: 1, Name: "seed"}})

	items := c.Items()
	items[0].Name = "mutated"

	got, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "seed", got.Name)

	_, ok = c.ByID(2)
	assert.False(t, ok)
}
