// Package habit projects weekly habits onto the calendar and maintains
// their achievement streaks.
package habit

import (
	"sort"
	"time"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
	"github.com/dukerupert/habitual/internal/recurrence"
)

const (
	achievedPrefix = "✅ "
	pendingPrefix  = "🔄 "
)

// Occurrence is one calendar-day instance of a habit.
type Occurrence struct {
	HabitID     int64
	Date        time.Time
	Title       string
	Color       string
	StreakCount int
	IsToday     bool
	AlreadyDone bool
}

// Project expands habits into one occurrence per matching weekday in the
// inclusive range [start, end]. Occurrences on or before today are marked
// done when the habit was achieved today; future ones never are. The result
// is ordered by date, then by input order.
func Project(habits []model.Habit, start, end, today time.Time) []Occurrence {
	start = day.Of(start)
	end = day.Of(end)
	today = day.Of(today)

	var out []Occurrence
	for _, h := range habits {
		doneToday := h.LastAchievedDate != nil && day.Equal(*h.LastAchievedDate, today)
		for _, d := range recurrence.Dates(h.Weekday, start, end) {
			done := doneToday && day.Between(d, today) >= 0
			title := pendingPrefix + h.Title
			if done {
				title = achievedPrefix + h.Title
			}
			out = append(out, Occurrence{
				HabitID:     h.ID,
				Date:        d,
				Title:       title,
				Color:       h.Color,
				StreakCount: h.StreakCount,
				IsToday:     day.Equal(d, today),
				AlreadyDone: done,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
