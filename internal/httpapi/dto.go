package httpapi

import (
	"time"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/view"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ActivityDTO is an activity entry with its feed presentation.
type ActivityDTO struct {
	core.ActivityEntry
	Relative string           `json:"relative"`
	Display  view.DisplayInfo `json:"display"`
}

// ClearResponse reports how many entries a retention sweep removed.
type ClearResponse struct {
	Removed int `json:"removed"`
}

func toActivityDTOs(entries []core.ActivityEntry, now time.Time) []ActivityDTO {
	dtos := make([]ActivityDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ActivityDTO{
			ActivityEntry: e,
			Relative:      view.RelativeTime(e.Timestamp, now),
			Display:       view.Display(e.Type),
		}
	}
	return dtos
}
