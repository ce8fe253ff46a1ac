package handler

import (
	"time"

	"github.com/dukerupert/habitual/internal/model"
	"github.com/dukerupert/habitual/internal/reminder"
)

// Page carries the fields every layout needs.
type Page struct {
	Title    string
	Username string
	Flash    string
}

type DashboardView struct {
	Page
	Reminders []reminder.Reminder
}

type ColorPicker struct {
	Color     string
	Favorites []model.FavoriteColor
}

type TasksView struct {
	Page
	Today  string
	Tasks  []model.Task
	Picker ColorPicker
}

type HabitRow struct {
	model.Habit
	AchievedToday bool
}

type WeekdayOption struct {
	Value string
	Label string
}

type HabitsView struct {
	Page
	Habits   []HabitRow
	Weekdays []WeekdayOption
	Picker   ColorPicker
}

type LoginView struct {
	Page
	Email string
}

type RegisterView struct {
	Page
	Name  string
	Email string
}

// Event is one entry of the calendar feed.
type Event struct {
	Title         string     `json:"title"`
	Start         string     `json:"start"`
	Color         string     `json:"color"`
	ExtendedProps EventProps `json:"extendedProps"`
}

type EventProps struct {
	Type        string `json:"type"`
	DBID        int64  `json:"db_id"`
	IsToday     bool   `json:"is_today"`
	AlreadyDone bool   `json:"already_done"`
}

// Clock returns the current time; handlers derive "today" from it.
type Clock func() time.Time
