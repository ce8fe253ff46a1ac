package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/database"
	"github.com/dukerupert/habitual/internal/habit"
	"github.com/dukerupert/habitual/internal/model"
	"github.com/dukerupert/habitual/internal/store"
	ws "github.com/dukerupert/habitual/internal/websocket"
	"github.com/dukerupert/habitual/web"
)

// Monday 2 June 2025, mid-morning local time.
var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)

type testEnv struct {
	db       *sql.DB
	users    *store.UserStore
	sessions *store.SessionStore
	tasks    *store.TaskStore
	habits   *store.HabitStore
	colors   *store.FavoriteColorStore
	tracker  *habit.Tracker
	renderer *Renderer
	hub      *ws.Hub
	user     *model.User
	now      time.Time
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.DiscardHandler)
	renderer, err := NewRenderer(web.Templates, logger)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	env := &testEnv{
		db:       db,
		users:    store.NewUserStore(db),
		sessions: store.NewSessionStore(db),
		tasks:    store.NewTaskStore(db),
		habits:   store.NewHabitStore(db),
		colors:   store.NewFavoriteColorStore(db),
		renderer: renderer,
		hub:      ws.NewHub(logger),
		now:      testNow,
	}
	env.tracker = habit.NewTracker(db, env.habits, habit.PolicyKeep, logger)

	env.user, err = env.users.Create("alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return env
}

func (e *testEnv) clock() Clock {
	return func() time.Time { return e.now }
}

func (e *testEnv) logger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// as attaches the auth context of user to r.
func as(r *http.Request, user *model.User) *http.Request {
	ctx := auth.WithAuth(r.Context(), auth.AuthContext{UserID: user.ID, Username: user.Username})
	return r.WithContext(ctx)
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}
