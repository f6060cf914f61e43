// Package view derives presentation data from activity entries: relative
// time labels, per-type display metadata and per-category counts.
package view

import (
	"fmt"
	"time"

	"github.com/aretw0/roster/pkg/core"
)

// DateLayout renders timestamps older than a week (day.month.year).
const DateLayout = "02.01.2006"

// RelativeTime labels ts relative to now using floor arithmetic:
// under a minute "just now", then minutes, hours and days up to a week,
// then the calendar date of ts.
func RelativeTime(ts, now time.Time) string {
	minutes := int(now.Sub(ts) / time.Minute)
	if minutes < 1 {
		return "just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d h ago", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d d ago", days)
	}
	return ts.Local().Format(DateLayout)
}

// DisplayInfo is how one activity type is rendered in the feed.
type DisplayInfo struct {
	Icon       string `json:"icon"`
	ColorClass string `json:"colorClass"`
	Label      string `json:"label"`
}

var displays = map[core.ActivityType]DisplayInfo{
	core.ActivityEmployeeAdded:   {"👤", "bg-blue-50 text-blue-700 border-blue-200", "Employee added"},
	core.ActivityEmployeeUpdated: {"✏️", "bg-yellow-50 text-yellow-700 border-yellow-200", "Employee updated"},
	core.ActivityEmployeeRated:   {"⭐", "bg-orange-50 text-orange-700 border-orange-200", "Employee rated"},
	core.ActivityEmployerAdded:   {"🏢", "bg-purple-50 text-purple-700 border-purple-200", "Employer added"},
	core.ActivityEmployerUpdated: {"🏢", "bg-purple-50 text-purple-700 border-purple-200", "Employer updated"},
	core.ActivityTestStarted:     {"📝", "bg-indigo-50 text-indigo-700 border-indigo-200", "Test started"},
	core.ActivityTestCompleted:   {"✅", "bg-green-50 text-green-700 border-green-200", "Test completed"},
	core.ActivityUserLogin:       {"🔐", "bg-gray-50 text-gray-700 border-gray-200", "Login"},
}

// Fallback is returned by Display for types outside the known set.
var Fallback = DisplayInfo{Icon: "•", ColorClass: "bg-gray-50 text-gray-700 border-gray-200", Label: "Activity"}

// Display returns the icon, color class and label of t.
func Display(t core.ActivityType) DisplayInfo {
	if d, ok := displays[t]; ok {
		return d
	}
	return Fallback
}

// Summary counts entries per subject, as on the home page.
type Summary struct {
	Employees int `json:"employees"`
	Employers int `json:"employers"`
	Tests     int `json:"tests"`
	Total     int `json:"total"`
}

// Summarize counts entries by type category. Logins only count toward Total.
func Summarize(entries []core.ActivityEntry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		switch e.Type.Category() {
		case "employee":
			s.Employees++
		case "employer":
			s.Employers++
		case "test":
			s.Tests++
		}
	}
	return s
}
