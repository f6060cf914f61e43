package audit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

// ErrUnknownTest is returned by TestRuns for an id the test store does not hold.
var ErrUnknownTest = errors.New("unknown test")

// TestRuns records employees starting and completing skill tests.
// Unlike the decorators, these entries are the operation itself, so append
// failures are returned.
type TestRuns struct {
	tests *store.Tests
	log   *store.Activity
}

// NewTestRuns creates a recorder of test runs.
func NewTestRuns(tests *store.Tests, log *store.Activity) *TestRuns {
	return &TestRuns{tests: tests, log: log}
}

// Start records user starting test id.
func (r *TestRuns) Start(user string, testID int) (core.ActivityEntry, error) {
	t, ok := r.tests.ByID(testID)
	if !ok {
		return core.ActivityEntry{}, fmt.Errorf("%w: %d", ErrUnknownTest, testID)
	}
	return r.log.Log(core.NewActivity{
		Type:        core.ActivityTestStarted,
		User:        user,
		Description: "Started a test",
		TargetID:    core.IntRef(t.ID),
		TargetName:  t.Title,
	})
}

// Complete records user finishing test id with a percentage score.
func (r *TestRuns) Complete(user string, testID, score int) (core.ActivityEntry, error) {
	t, ok := r.tests.ByID(testID)
	if !ok {
		return core.ActivityEntry{}, fmt.Errorf("%w: %d", ErrUnknownTest, testID)
	}
	return r.log.Log(core.NewActivity{
		Type:        core.ActivityTestCompleted,
		User:        user,
		Description: "Completed a test",
		Details:     fmt.Sprintf("Score: %d%%", score),
		TargetID:    core.IntRef(t.ID),
		TargetName:  t.Title,
	})
}

// Sessions records logins. There is no authentication: the user name is
// taken as given.
type Sessions struct {
	rec recorder
}

// NewSessions creates a login recorder.
func NewSessions(log *store.Activity, logger *slog.Logger) *Sessions {
	return &Sessions{rec: newRecorder(log, logger)}
}

// Login records user_login for user.
func (s *Sessions) Login(user string) {
	s.rec.record(core.NewActivity{
		Type:        core.ActivityUserLogin,
		User:        user,
		Description: "Logged in",
	})
}
