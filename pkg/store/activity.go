package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/roster/pkg/core"
)

const (
	// RecentLimit caps the feed returned by Recent.
	RecentLimit = 50
	// DefaultRetentionDays is used by ClearOld for a negative age.
	DefaultRetentionDays = 30
)

// Activity is the activity log. New entries go to the front of the list.
type Activity struct {
	*Collection[core.ActivityEntry]
}

// NewActivity creates the activity log over m.
func NewActivity(m core.Medium, opts ...Option) *Activity {
	return &Activity{NewCollection(m, CollectionConfig[core.ActivityEntry]{
		Key:     core.KeyActivities,
		Seed:    SeedActivities,
		ID:      core.ActivityEntry.Key,
		Prepend: true,
	}, opts...)}
}

// Log appends an entry stamped with the store clock.
func (s *Activity) Log(in core.NewActivity) (core.ActivityEntry, error) {
	if !in.Type.Valid() {
		return core.ActivityEntry{}, fmt.Errorf("%w: %q", core.ErrUnknownActivityType, in.Type)
	}
	return s.insert(func(id int, now time.Time) core.ActivityEntry {
		return in.Build(id, now)
	})
}

// All returns the whole log, newest first. Equal timestamps fall back to the
// higher id first.
func (s *Activity) All() []core.ActivityEntry {
	all := s.Items()
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Timestamp.Equal(all[j].Timestamp) {
			return all[i].Timestamp.After(all[j].Timestamp)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

// Recent returns at most RecentLimit entries of All.
func (s *Activity) Recent() []core.ActivityEntry {
	all := s.All()
	if len(all) > RecentLimit {
		all = all[:RecentLimit]
	}
	return all
}

// ClearOld drops entries older than maxAgeDays calendar days and returns how
// many were removed. Entries exactly at the cutoff are kept.
func (s *Activity) ClearOld(maxAgeDays int) (int, error) {
	if maxAgeDays < 0 {
		maxAgeDays = DefaultRetentionDays
	}
	cutoff := retentionCutoff(s.clock(), maxAgeDays, time.Local)
	return s.retain(func(e core.ActivityEntry) bool {
		return !e.Timestamp.Before(cutoff)
	}, 0)
}

// retentionCutoff steps back whole calendar days in loc, so a day across a DST
// change is 23 or 25 hours. now is truncated to the millisecond precision of
// stored timestamps.
func retentionCutoff(now time.Time, days int, loc *time.Location) time.Time {
	return now.Truncate(time.Millisecond).In(loc).AddDate(0, 0, -days)
}
