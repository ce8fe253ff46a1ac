// Package reminder decides which tasks are inside their notify window.
package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
)

// Reminder is the evaluated reminder state of one task.
type Reminder struct {
	TaskID   int64
	Title    string
	Color    string
	DueDate  time.Time
	DaysLeft int
	Urgent   bool
	Label    string
}

// Evaluate computes the reminder state of task on today. A task is urgent
// when it is open, has notifications on, and is due within its lead time.
func Evaluate(today time.Time, task model.Task) Reminder {
	left := day.Between(today, task.DueDate)
	return Reminder{
		TaskID:   task.ID,
		Title:    task.Title,
		Color:    task.Color,
		DueDate:  task.DueDate,
		DaysLeft: left,
		Urgent:   IsUrgent(left, task.IsCompleted, task.IsNotify, task.NotifyDaysBefore),
		Label:    Label(left),
	}
}

// IsUrgent is the bare urgency rule.
func IsUrgent(daysLeft int, completed, notify bool, leadDays int) bool {
	if completed || !notify {
		return false
	}
	return daysLeft >= 0 && daysLeft <= leadDays
}

// Label renders days left for display.
func Label(daysLeft int) string {
	switch {
	case daysLeft == 0:
		return "due today"
	case daysLeft == 1:
		return "1 day left"
	case daysLeft > 1:
		return fmt.Sprintf("%d days left", daysLeft)
	case daysLeft == -1:
		return "1 day overdue"
	default:
		return fmt.Sprintf("%d days overdue", -daysLeft)
	}
}

// Urgent evaluates every task and keeps the urgent ones, ordered by due
// date and then title.
func Urgent(today time.Time, tasks []model.Task) []Reminder {
	var out []Reminder
	for _, t := range tasks {
		r := Evaluate(today, t)
		if r.Urgent {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].Title < out[j].Title
	})
	return out
}
