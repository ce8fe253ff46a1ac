package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/store"
	ws "github.com/dukerupert/habitual/internal/websocket"
)

type ColorHandler struct {
	store  *store.FavoriteColorStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewColorHandler(s *store.FavoriteColorStore, hub *ws.Hub, logger *slog.Logger) *ColorHandler {
	return &ColorHandler{store: s, hub: hub, logger: logger}
}

type favoriteColorRequest struct {
	Hex string `json:"hex"`
}

func (h *ColorHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req favoriteColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	hex := strings.TrimSpace(req.Hex)
	if !hexColorRegexp.MatchString(hex) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "hex must be #RRGGBB"})
		return
	}

	c, err := h.store.Create(userID, strings.ToLower(hex))
	if err != nil {
		h.logger.Error("create favorite color", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save color"})
		return
	}

	h.hub.Broadcast(userID, ws.NewMessage("favorite_color", "created", c.ID))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ColorHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	err = h.store.Delete(userID, id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "color not found"})
		return
	}
	if err != nil {
		h.logger.Error("delete favorite color", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete color"})
		return
	}

	h.hub.Broadcast(userID, ws.NewMessage("favorite_color", "deleted", id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
