package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/config"
	"github.com/dukerupert/habitual/internal/database"
)

func setupServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Port:            8080,
		DBPath:          ":memory:",
		StreakPolicy:    "keep",
		EventWindowDays: 30,
		SessionTTL:      time.Hour,
	}
	srv, err := New(db, cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.now = func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local) }
	return srv, srv.Router()
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func form(method, target string, values url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "192.0.2.1:5555"
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// signUp registers and logs in a user, returning the session cookie.
func signUp(t *testing.T, h http.Handler, email string) *http.Cookie {
	t.Helper()
	rec := do(h, form("POST", "/register", url.Values{"username": {"sam"}, "email": {email}, "password": {"password123"}}, nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("register status = %d", rec.Code)
	}
	rec = do(h, form("POST", "/login", url.Values{"email": {email}, "password": {"password123"}}, nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestHealth(t *testing.T) {
	_, h := setupServer(t)

	rec := do(h, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request logger should set X-Request-ID")
	}
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	_, h := setupServer(t)

	for _, path := range []string{"/", "/tasks", "/habits", "/habits/achieve/1"} {
		rec := do(h, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
			t.Errorf("%s: status = %d location = %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}

	rec := do(h, httptest.NewRequest("GET", "/api/events", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("/api/events: status = %d, want 401", rec.Code)
	}
}

func TestEndToEnd(t *testing.T) {
	_, h := setupServer(t)
	cookie := signUp(t, h, "sam@example.com")

	rec := do(h, form("POST", "/tasks", url.Values{"date": {"2025-06-02"}, "title": {"Water plants"}}, cookie))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create task status = %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(h, form("POST", "/habits", url.Values{"dow": {"Monday"}, "title": {"Jog"}}, cookie))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create habit status = %d: %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	rec = do(h, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "due today") {
		t.Errorf("dashboard status = %d, reminder missing", rec.Code)
	}

	for i := 0; i < 2; i++ {
		req = httptest.NewRequest("GET", "/habits/achieve/1", nil)
		req.AddCookie(cookie)
		if rec = do(h, req); rec.Code != http.StatusSeeOther {
			t.Fatalf("achieve status = %d", rec.Code)
		}
	}

	req = httptest.NewRequest("GET", "/api/events?start=2025-06-01&end=2025-06-07", nil)
	req.AddCookie(cookie)
	rec = do(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("events status = %d", rec.Code)
	}
	var events []struct {
		Title         string `json:"title"`
		Start         string `json:"start"`
		ExtendedProps struct {
			Type        string `json:"type"`
			AlreadyDone bool   `json:"already_done"`
		} `json:"extendedProps"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %s", len(events), rec.Body.String())
	}
	for _, e := range events {
		if e.ExtendedProps.Type == "habit" && (e.Title != "✅ Jog" || !e.ExtendedProps.AlreadyDone) {
			t.Errorf("habit event = %+v", e)
		}
	}

	req = httptest.NewRequest("GET", "/habits", nil)
	req.AddCookie(cookie)
	rec = do(h, req)
	if !strings.Contains(rec.Body.String(), "🔥 1") {
		t.Error("streak should be 1 after two same-day achievements")
	}

	req = httptest.NewRequest("GET", "/logout", nil)
	req.AddCookie(cookie)
	do(h, req)

	req = httptest.NewRequest("GET", "/tasks", nil)
	req.AddCookie(cookie)
	if rec = do(h, req); rec.Code != http.StatusSeeOther {
		t.Errorf("after logout status = %d, want redirect", rec.Code)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	_, h := setupServer(t)
	a := signUp(t, h, "a@example.com")
	b := signUp(t, h, "b@example.com")

	do(h, form("POST", "/tasks", url.Values{"date": {"2025-06-05"}, "title": {"Secret"}}, a))

	req := httptest.NewRequest("GET", "/tasks/delete/1", nil)
	req.AddCookie(b)
	if rec := do(h, req); rec.Code != http.StatusNotFound {
		t.Errorf("foreign delete status = %d, want 404", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/events", nil)
	req.AddCookie(b)
	rec := do(h, req)
	if strings.Contains(rec.Body.String(), "Secret") {
		t.Error("other user's task leaked into the calendar feed")
	}
}

func TestLoginRateLimited(t *testing.T) {
	_, h := setupServer(t)

	var last int
	for i := 0; i < authRateLimit+1; i++ {
		rec := do(h, form("POST", "/login", url.Values{"email": {"x@example.com"}, "password": {"wrong-password"}}, nil))
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", last, http.StatusTooManyRequests)
	}
}

func TestCleanup(t *testing.T) {
	srv, h := setupServer(t)
	cookie := signUp(t, h, "c@example.com")

	srv.Cleanup()

	sess, _ := srv.SessionStore().GetByToken(cookie.Value)
	if sess == nil {
		t.Error("live session should survive cleanup")
	}
}
