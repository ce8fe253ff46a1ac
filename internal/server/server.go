package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/habitual/internal/config"
	"github.com/dukerupert/habitual/internal/habit"
	"github.com/dukerupert/habitual/internal/handler"
	"github.com/dukerupert/habitual/internal/middleware"
	"github.com/dukerupert/habitual/internal/store"
	ws "github.com/dukerupert/habitual/internal/websocket"
	"github.com/dukerupert/habitual/web"
)

const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	dashboardH   *handler.DashboardHandler
	taskH        *handler.TaskHandler
	habitH       *handler.HabitHandler
	colorH       *handler.ColorHandler
	eventH       *handler.EventHandler
	sessionStore *store.SessionStore
	userStore    *store.UserStore
	rateLimiter  *middleware.RateLimiter
	now          func() time.Time
	logger       *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	renderer, err := handler.NewRenderer(web.Templates, logger.With("component", "render"))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	taskStore := store.NewTaskStore(db)
	habitStore := store.NewHabitStore(db)
	colorStore := store.NewFavoriteColorStore(db)

	tracker := habit.NewTracker(db, habitStore, cfg.Policy(), logger.With("component", "streak"))

	s := &Server{
		db:           db,
		hub:          hub,
		sessionStore: sessionStore,
		userStore:    userStore,
		rateLimiter:  middleware.NewRateLimiter(authRateLimit, authRateWindow),
		now:          time.Now,
		logger:       logger,
	}
	clock := func() time.Time { return s.now() }

	s.authH = handler.NewAuthHandler(userStore, sessionStore, renderer, cfg.SessionTTL, cfg.SecureCookies, logger.With("component", "auth"))
	s.dashboardH = handler.NewDashboardHandler(taskStore, renderer, clock, logger.With("component", "dashboard"))
	s.taskH = handler.NewTaskHandler(taskStore, colorStore, renderer, hub, clock, logger.With("component", "task"))
	s.habitH = handler.NewHabitHandler(habitStore, colorStore, tracker, renderer, hub, clock, logger.With("component", "habit"))
	s.colorH = handler.NewColorHandler(colorStore, hub, logger.With("component", "color"))
	s.eventH = handler.NewEventHandler(taskStore, habitStore, cfg.EventWindowDays, clock, logger.With("component", "calendar"))

	return s, nil
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Cleanup drops expired sessions and stale rate-limit windows.
func (s *Server) Cleanup() {
	if n, err := s.sessionStore.DeleteExpired(); err != nil {
		s.logger.Error("cleanup expired sessions", "error", err)
	} else if n > 0 {
		s.logger.Info("cleaned up expired sessions", "count", n)
	}
	if n := s.rateLimiter.Cleanup(); n > 0 {
		s.logger.Debug("cleaned up rate limit windows", "count", n)
	}
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.HandleFunc("POST /login", s.rateLimited(s.authH.Login))
	outerMux.HandleFunc("GET /register", s.authH.RegisterPage)
	outerMux.HandleFunc("POST /register", s.rateLimited(s.authH.Register))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	return middleware.RateLimit(s.rateLimiter)(h).ServeHTTP
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.dashboardH.Dashboard)

	mux.HandleFunc("GET /tasks", s.taskH.Page)
	mux.HandleFunc("POST /tasks", s.taskH.Create)
	mux.HandleFunc("GET /tasks/complete/{id}", s.taskH.Complete)
	mux.HandleFunc("GET /tasks/delete/{id}", s.taskH.Delete)

	mux.HandleFunc("GET /habits", s.habitH.Page)
	mux.HandleFunc("POST /habits", s.habitH.Create)
	mux.HandleFunc("GET /habits/achieve/{id}", s.habitH.Achieve)
	mux.HandleFunc("GET /habits/delete/{id}", s.habitH.Delete)

	mux.HandleFunc("GET /api/events", s.eventH.List)

	mux.HandleFunc("POST /colors/favorite", s.colorH.AddFavorite)
	mux.HandleFunc("POST /colors/favorite/delete/{id}", s.colorH.DeleteFavorite)

	mux.HandleFunc("GET /logout", s.authH.Logout)
	mux.HandleFunc("POST /delete_account", s.authH.DeleteAccount)

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
