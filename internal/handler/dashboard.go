package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/reminder"
	"github.com/dukerupert/habitual/internal/store"
)

type DashboardHandler struct {
	tasks    *store.TaskStore
	renderer *Renderer
	now      Clock
	logger   *slog.Logger
}

func NewDashboardHandler(ts *store.TaskStore, renderer *Renderer, now Clock, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{tasks: ts, renderer: renderer, now: now, logger: logger}
}

// Dashboard greets the user and lists tasks inside their reminder window.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	tasks, err := h.tasks.ListOpen(ac.UserID)
	if err != nil {
		h.logger.Error("list open tasks", "error", err)
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "dashboard", DashboardView{
		Page:      Page{Title: "Dashboard", Username: ac.Username},
		Reminders: reminder.Urgent(day.Today(h.now()), tasks),
	})
}
