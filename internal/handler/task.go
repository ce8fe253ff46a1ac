package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
	"github.com/dukerupert/habitual/internal/store"
	ws "github.com/dukerupert/habitual/internal/websocket"
)

const defaultNotifyDays = 1

type TaskHandler struct {
	tasks     *store.TaskStore
	favorites *store.FavoriteColorStore
	renderer  *Renderer
	hub       *ws.Hub
	now       Clock
	logger    *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, fs *store.FavoriteColorStore, renderer *Renderer, hub *ws.Hub, now Clock, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: ts, favorites: fs, renderer: renderer, hub: hub, now: now, logger: logger}
}

func (h *TaskHandler) Page(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	tasks, err := h.tasks.ListByUser(ac.UserID)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		http.Error(w, "failed to load tasks", http.StatusInternalServerError)
		return
	}
	favs, err := h.favorites.ListByUser(ac.UserID)
	if err != nil {
		h.logger.Error("list favorite colors", "error", err)
		http.Error(w, "failed to load colors", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "tasks", TasksView{
		Page:   Page{Title: "Tasks", Username: ac.Username},
		Today:  day.Format(day.Today(h.now())),
		Tasks:  tasks,
		Picker: ColorPicker{Color: model.DefaultTaskColor, Favorites: favs},
	})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	t, err := parseTaskForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t.UserID = userID

	created, err := h.tasks.Create(t)
	if err != nil {
		h.logger.Error("create task", "error", err)
		http.Error(w, "failed to create task", http.StatusInternalServerError)
		return
	}

	h.hub.Broadcast(userID, ws.NewMessage("task", "created", created.ID))
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// Complete toggles the task's completion flag.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.tasks.ToggleCompleted(userID, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("toggle task", "id", id, "error", err)
		http.Error(w, "failed to update task", http.StatusInternalServerError)
		return
	}

	action := "reopened"
	if t.IsCompleted {
		action = "completed"
	}
	h.hub.Broadcast(userID, ws.NewMessage("task", action, id))
	redirectBack(w, r, "/tasks")
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = h.tasks.Delete(userID, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("delete task", "id", id, "error", err)
		http.Error(w, "failed to delete task", http.StatusInternalServerError)
		return
	}

	h.hub.Broadcast(userID, ws.NewMessage("task", "deleted", id))
	redirectBack(w, r, "/tasks")
}

func parseTaskForm(r *http.Request) (model.Task, error) {
	t := model.Task{
		Title:            strings.TrimSpace(r.FormValue("title")),
		Detail:           strings.TrimSpace(r.FormValue("detail")),
		Priority:         1,
		Color:            model.DefaultTaskColor,
		IsNotify:         true,
		NotifyDaysBefore: defaultNotifyDays,
	}
	if t.Title == "" {
		return t, errors.New("title is required")
	}

	dateStr := strings.TrimSpace(r.FormValue("date"))
	if dateStr == "" {
		return t, errors.New("date is required")
	}
	due, err := day.Parse(dateStr)
	if err != nil {
		return t, errors.New("invalid date")
	}
	t.DueDate = due

	if v := r.FormValue("priority"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 3 {
			return t, errors.New("priority must be 1, 2 or 3")
		}
		t.Priority = p
	}

	if c := strings.TrimSpace(r.FormValue("color")); c != "" {
		if !hexColorRegexp.MatchString(c) {
			return t, errors.New("invalid color format")
		}
		t.Color = c
	}

	switch v := strings.TrimSpace(r.FormValue("notify")); v {
	case "":
	case "none":
		t.IsNotify = false
		t.NotifyDaysBefore = 0
	default:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return t, errors.New("invalid reminder lead time")
		}
		t.NotifyDaysBefore = n
	}

	return t, nil
}
