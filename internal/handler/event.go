package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/habit"
	"github.com/dukerupert/habitual/internal/store"
)

const (
	taskTitlePrefix    = "📌 "
	completedTaskColor = "#cccccc"

	// maxEventSpanDays bounds end-start for one feed request.
	maxEventSpanDays = 732
)

// EventHandler serves the calendar feed: tasks due in the window plus the
// projected habit occurrences.
type EventHandler struct {
	tasks      *store.TaskStore
	habits     *store.HabitStore
	windowDays int
	now        Clock
	logger     *slog.Logger
}

func NewEventHandler(ts *store.TaskStore, hs *store.HabitStore, windowDays int, now Clock, logger *slog.Logger) *EventHandler {
	return &EventHandler{tasks: ts, habits: hs, windowDays: windowDays, now: now, logger: logger}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	today := day.Today(h.now())

	start, end, ok := h.parseRange(w, r, today)
	if !ok {
		return
	}

	events := []Event{}
	if day.Between(start, end) < 0 {
		writeJSON(w, http.StatusOK, events)
		return
	}

	tasks, err := h.tasks.ListByDateRange(userID, start, end)
	if err != nil {
		h.logger.Error("list tasks for events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load tasks"})
		return
	}
	for _, t := range tasks {
		color := t.Color
		if t.IsCompleted {
			color = completedTaskColor
		}
		events = append(events, Event{
			Title: taskTitlePrefix + t.Title,
			Start: day.Format(t.DueDate),
			Color: color,
			ExtendedProps: EventProps{
				Type:        "task",
				DBID:        t.ID,
				IsToday:     day.Equal(t.DueDate, today),
				AlreadyDone: t.IsCompleted,
			},
		})
	}

	habits, err := h.habits.ListByUser(userID)
	if err != nil {
		h.logger.Error("list habits for events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load habits"})
		return
	}
	for _, o := range habit.Project(habits, start, end, today) {
		events = append(events, Event{
			Title: o.Title,
			Start: day.Format(o.Date),
			Color: o.Color,
			ExtendedProps: EventProps{
				Type:        "habit",
				DBID:        o.HabitID,
				IsToday:     o.IsToday,
				AlreadyDone: o.AlreadyDone,
			},
		})
	}

	writeJSON(w, http.StatusOK, events)
}

// parseRange reads start/end, defaulting each to today ∓ windowDays. It
// writes a 400 and reports false on malformed input or a span wider than
// maxEventSpanDays.
func (h *EventHandler) parseRange(w http.ResponseWriter, r *http.Request, today time.Time) (time.Time, time.Time, bool) {
	start := today.AddDate(0, 0, -h.windowDays)
	end := today.AddDate(0, 0, h.windowDays)

	if v := r.URL.Query().Get("start"); v != "" {
		t, err := day.ParseFlexible(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start date"})
			return start, end, false
		}
		start = t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := day.ParseFlexible(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end date"})
			return start, end, false
		}
		end = t
	}
	if day.Between(start, end) > maxEventSpanDays {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "range too large"})
		return start, end, false
	}
	return start, end, true
}
