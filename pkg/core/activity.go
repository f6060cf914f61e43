package core

import (
	"strings"
	"time"
)

// ActivityType is the closed set of actions the activity log records.
// Extending it means adding a tag here and a display entry in pkg/view.
type ActivityType string

const (
	ActivityEmployeeAdded   ActivityType = "employee_added"
	ActivityEmployeeUpdated ActivityType = "employee_updated"
	ActivityEmployeeRated   ActivityType = "employee_rated"
	ActivityEmployerAdded   ActivityType = "employer_added"
	ActivityEmployerUpdated ActivityType = "employer_updated"
	ActivityTestStarted     ActivityType = "test_started"
	ActivityTestCompleted   ActivityType = "test_completed"
	ActivityUserLogin       ActivityType = "user_login"
)

// ActivityTypes lists every known type in declaration order.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityEmployeeAdded,
		ActivityEmployeeUpdated,
		ActivityEmployeeRated,
		ActivityEmployerAdded,
		ActivityEmployerUpdated,
		ActivityTestStarted,
		ActivityTestCompleted,
		ActivityUserLogin,
	}
}

// Valid reports whether t belongs to the closed set.
func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Category is the subject prefix of the type: "employee", "employer", "test" or "user".
func (t ActivityType) Category() string {
	s := string(t)
	if i := strings.IndexByte(s, '_'); i > 0 {
		return s[:i]
	}
	return s
}

// ActivityEntry is one record of the activity log.
type ActivityEntry struct {
	ID          int          `json:"id"`
	Type        ActivityType `json:"type"`
	User        string       `json:"user"` // display name, not an identity
	Description string       `json:"description"`
	Details     string       `json:"details,omitempty"`
	TargetID    *int         `json:"targetId,omitempty"`
	TargetName  string       `json:"targetName,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	CreatedAt   string       `json:"createdAt"` // date part of Timestamp
}

// Key returns the entity id.
func (a ActivityEntry) Key() int { return a.ID }

// NewActivity is the input of a log append: an entry without id and timestamps.
type NewActivity struct {
	Type        ActivityType `json:"type"`
	User        string       `json:"user"`
	Description string       `json:"description"`
	Details     string       `json:"details,omitempty"`
	TargetID    *int         `json:"targetId,omitempty"`
	TargetName  string       `json:"targetName,omitempty"`
}

// Build stamps the entry. at is normalized to UTC with millisecond precision,
// the resolution of an ISO-8601 timestamp as browsers write it.
func (n NewActivity) Build(id int, at time.Time) ActivityEntry {
	at = at.UTC().Truncate(time.Millisecond)
	return ActivityEntry{
		ID:          id,
		Type:        n.Type,
		User:        n.User,
		Description: n.Description,
		Details:     n.Details,
		TargetID:    n.TargetID,
		TargetName:  n.TargetName,
		Timestamp:   at,
		CreatedAt:   at.Format(DateLayout),
	}
}

// IntRef returns a pointer to v, for optional target ids.
func IntRef(v int) *int { return &v }
