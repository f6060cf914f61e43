// Package core holds the domain model of the console: the entities kept by the
// resource stores, the activity log entry, the change events published by the
// stores and the contract of the storage medium underneath them.
package core

import (
	"fmt"
	"time"
)

// EventType represents the type of change applied to a collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	// EventReload is emitted when a collection replaced its cache from the medium.
	EventReload EventType = "RELOAD"
)

// Event represents a change in a collection or in the medium.
type Event struct {
	Type      EventType
	Key       string // storage key of the collection, e.g. "employees"
	ID        int    // affected entity, zero for whole-collection events
	Timestamp int64  // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s %s", e.Type, e.Key)
	}
	return fmt.Sprintf("%s %s/%d", e.Type, e.Key, e.ID)
}

// NewEvent stamps an event with the given instant.
func NewEvent(t EventType, key string, id int, at time.Time) Event {
	return Event{Type: t, Key: key, ID: id, Timestamp: at.Unix()}
}

// Storage keys, one per logical collection.
const (
	KeyEmployees  = "employees"
	KeyEmployers  = "employers"
	KeyTests      = "tests"
	KeyActivities = "user_activities"
)

// DateLayout is the date-only projection used by CreatedAt and rating dates.
const DateLayout = "2006-01-02"
