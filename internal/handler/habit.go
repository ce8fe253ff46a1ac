package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/habit"
	"github.com/dukerupert/habitual/internal/model"
	"github.com/dukerupert/habitual/internal/recurrence"
	"github.com/dukerupert/habitual/internal/store"
	ws "github.com/dukerupert/habitual/internal/websocket"
)

type HabitHandler struct {
	habits    *store.HabitStore
	favorites *store.FavoriteColorStore
	tracker   *habit.Tracker
	renderer  *Renderer
	hub       *ws.Hub
	now       Clock
	logger    *slog.Logger
}

func NewHabitHandler(hs *store.HabitStore, fs *store.FavoriteColorStore, tracker *habit.Tracker, renderer *Renderer, hub *ws.Hub, now Clock, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{habits: hs, favorites: fs, tracker: tracker, renderer: renderer, hub: hub, now: now, logger: logger}
}

func (h *HabitHandler) Page(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	today := day.Today(h.now())

	habits, err := h.habits.ListByUser(ac.UserID)
	if err != nil {
		h.logger.Error("list habits", "error", err)
		http.Error(w, "failed to load habits", http.StatusInternalServerError)
		return
	}
	favs, err := h.favorites.ListByUser(ac.UserID)
	if err != nil {
		h.logger.Error("list favorite colors", "error", err)
		http.Error(w, "failed to load colors", http.StatusInternalServerError)
		return
	}

	rows := make([]HabitRow, len(habits))
	for i, hb := range habits {
		rows[i] = HabitRow{
			Habit:         hb,
			AchievedToday: hb.LastAchievedDate != nil && day.Equal(*hb.LastAchievedDate, today),
		}
	}

	var weekdays []WeekdayOption
	for _, wd := range recurrence.Week() {
		weekdays = append(weekdays, WeekdayOption{Value: strconv.Itoa(int(wd)), Label: wd.String()})
	}

	h.renderer.Render(w, http.StatusOK, "habits", HabitsView{
		Page:     Page{Title: "Habits", Username: ac.Username},
		Habits:   rows,
		Weekdays: weekdays,
		Picker:   ColorPicker{Color: model.DefaultHabitColor, Favorites: favs},
	})
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	hb := model.Habit{
		UserID: userID,
		Title:  strings.TrimSpace(r.FormValue("title")),
		Detail: strings.TrimSpace(r.FormValue("detail")),
		Color:  model.DefaultHabitColor,
	}
	if hb.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	wd, err := recurrence.ParseWeekday(r.FormValue("dow"))
	if err != nil {
		http.Error(w, "invalid weekday", http.StatusBadRequest)
		return
	}
	hb.Weekday = wd

	if c := strings.TrimSpace(r.FormValue("color")); c != "" {
		if !hexColorRegexp.MatchString(c) {
			http.Error(w, "invalid color format", http.StatusBadRequest)
			return
		}
		hb.Color = c
	}

	created, err := h.habits.Create(hb)
	if err != nil {
		h.logger.Error("create habit", "error", err)
		http.Error(w, "failed to create habit", http.StatusInternalServerError)
		return
	}

	h.hub.Broadcast(userID, ws.NewMessage("habit", "created", created.ID))
	http.Redirect(w, r, "/habits", http.StatusSeeOther)
}

// Achieve marks the habit done for today. Repeats on the same day are no-ops.
func (h *HabitHandler) Achieve(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	_, changed, err := h.tracker.MarkAchieved(userID, id, day.Today(h.now()))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "habit not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("achieve habit", "id", id, "error", err)
		http.Error(w, "failed to update habit", http.StatusInternalServerError)
		return
	}

	if changed {
		h.hub.Broadcast(userID, ws.NewMessage("habit", "achieved", id))
	}
	redirectBack(w, r, "/habits")
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = h.habits.Delete(userID, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "habit not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("delete habit", "id", id, "error", err)
		http.Error(w, "failed to delete habit", http.StatusInternalServerError)
		return
	}

	h.hub.Broadcast(userID, ws.NewMessage("habit", "deleted", id))
	redirectBack(w, r, "/habits")
}
