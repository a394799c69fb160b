// Package statistics shapes the backend's progress and streak snapshots for display.
// Nothing here derives aggregates; the backend is the only source of the numbers.
package statistics

import (
	"github.com/revisahub/revisahub/internal/api"
)

// DaysInWeek is the length of the streak calendar.
const DaysInWeek = 7

// TodaySlot is the calendar position of the current day. Slots are ordered oldest first.
const TodaySlot = DaysInWeek - 1

var dayLabels = [DaysInWeek]string{"D", "S", "T", "Q", "Q", "S", "S"}

// Day is one slot of the weekly streak calendar.
type Day struct {
	Label  string
	Active bool
	Today  bool
	// Date is the backend's mark for an active day, usually "2006-01-02".
	Date string
}

// Week maps the backend's calendar marks onto labelled slots by position only.
// Missing slots are inactive and extra marks are ignored.
func Week(calendar []string) [DaysInWeek]Day {
	var week [DaysInWeek]Day
	for i := range week {
		week[i] = Day{
			Label: dayLabels[i],
			Today: i == TodaySlot,
		}
		if i < len(calendar) && calendar[i] != "" {
			week[i].Active = true
			week[i].Date = calendar[i]
		}
	}
	return week
}

// Report is what the stats screen shows.
type Report struct {
	TotalSessions   int
	TotalMessages   int
	FavoriteSubject string
	SubjectsStudied []string

	CurrentStreak  int
	LongestStreak  int
	TotalStudyDays int
	StudiedToday   bool
	Week           [DaysInWeek]Day
}

// NewReport combines the two snapshots. The streak endpoint is preferred over the copy
// embedded in the progress response when both are available.
func NewReport(progress *api.Progress, streak *api.Streak) (Report, bool) {
	if progress == nil && streak == nil {
		return Report{}, false
	}

	var report Report
	var source *api.Streak
	if progress != nil {
		report.TotalSessions = progress.TotalSessions
		report.TotalMessages = progress.TotalMessages
		report.FavoriteSubject = progress.FavoriteSubject
		report.SubjectsStudied = append([]string(nil), progress.SubjectsStudied...)
		source = &progress.Streak
	}
	if streak != nil {
		source = streak
	}

	report.CurrentStreak = source.CurrentStreak
	report.LongestStreak = source.LongestStreak
	report.TotalStudyDays = source.TotalStudyDays
	report.StudiedToday = source.StudiedToday
	report.Week = Week(source.StreakCalendar)
	return report, true
}

// ActiveDays counts the active slots of the week.
func (report Report) ActiveDays() int {
	count := 0
	for _, day := range report.Week {
		if day.Active {
			count++
		}
	}
	return count
}
