package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/habitual/internal/model"
)

func newHabitHandler(env *testEnv) *HabitHandler {
	return NewHabitHandler(env.habits, env.colors, env.tracker, env.renderer, env.hub, env.clock(), env.logger())
}

func TestHabitCreateWeekdayForms(t *testing.T) {
	tests := []struct {
		dow  string
		want time.Weekday
	}{
		{"1", time.Monday},
		{"Wednesday", time.Wednesday},
		{"SU", time.Sunday},
		{"金曜日", time.Friday},
	}
	for _, tt := range tests {
		t.Run(tt.dow, func(t *testing.T) {
			env := setupEnv(t)
			h := newHabitHandler(env)

			rec := httptest.NewRecorder()
			h.Create(rec, as(postForm("/habits", url.Values{"dow": {tt.dow}, "title": {"Run"}}), env.user))

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
			}
			habits, _ := env.habits.ListByUser(env.user.ID)
			if len(habits) != 1 {
				t.Fatalf("got %d habits, want 1", len(habits))
			}
			if habits[0].Weekday != tt.want {
				t.Errorf("weekday = %v, want %v", habits[0].Weekday, tt.want)
			}
			if habits[0].Color != model.DefaultHabitColor {
				t.Errorf("color = %q, want default", habits[0].Color)
			}
		})
	}
}

func TestHabitCreateBadInput(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing title", url.Values{"dow": {"1"}}},
		{"bad weekday", url.Values{"dow": {"someday"}, "title": {"x"}}},
		{"bad color", url.Values{"dow": {"1"}, "title": {"x"}, "color": {"#12"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupEnv(t)
			h := newHabitHandler(env)

			rec := httptest.NewRecorder()
			h.Create(rec, as(postForm("/habits", tt.values), env.user))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func achieve(t *testing.T, h *HabitHandler, env *testEnv, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := as(httptest.NewRequest("GET", "/habits/achieve/"+id, nil), env.user)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Achieve(rec, req)
	return rec
}

func TestHabitAchieveIdempotentPerDay(t *testing.T) {
	env := setupEnv(t)
	h := newHabitHandler(env)

	hb, _ := env.habits.Create(model.Habit{UserID: env.user.ID, Weekday: time.Monday, Title: "Run", Color: "#000000"})

	for i := 0; i < 2; i++ {
		rec := achieve(t, h, env, "1")
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("achieve %d: status = %d", i, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/habits" {
			t.Errorf("Location = %q, want /habits", loc)
		}
	}

	got, _ := env.habits.GetByID(nil, env.user.ID, hb.ID)
	if got.StreakCount != 1 {
		t.Errorf("streak = %d, want 1", got.StreakCount)
	}

	env.now = env.now.AddDate(0, 0, 1)
	achieve(t, h, env, "1")

	got, _ = env.habits.GetByID(nil, env.user.ID, hb.ID)
	if got.StreakCount != 2 {
		t.Errorf("streak after next day = %d, want 2", got.StreakCount)
	}
	if got.LastAchievedDate == nil || got.LastAchievedDate.Format("2006-01-02") != "2025-06-03" {
		t.Errorf("last achieved = %v, want 2025-06-03", got.LastAchievedDate)
	}
}

func TestHabitAchieveNotFound(t *testing.T) {
	env := setupEnv(t)
	h := newHabitHandler(env)

	if rec := achieve(t, h, env, "42"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHabitDelete(t *testing.T) {
	env := setupEnv(t)
	h := newHabitHandler(env)

	hb, _ := env.habits.Create(model.Habit{UserID: env.user.ID, Weekday: time.Friday, Title: "Read", Color: "#000000"})

	req := as(httptest.NewRequest("GET", "/habits/delete/1", nil), env.user)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got, _ := env.habits.GetByID(nil, env.user.ID, hb.ID); got != nil {
		t.Error("habit should be deleted")
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHabitPage(t *testing.T) {
	env := setupEnv(t)
	h := newHabitHandler(env)

	env.habits.Create(model.Habit{UserID: env.user.ID, Weekday: time.Monday, Title: "Stretch", Color: "#000000"})
	env.habits.Create(model.Habit{UserID: env.user.ID, Weekday: time.Tuesday, Title: "Swim", Color: "#000000"})
	achieve(t, h, env, "1")

	rec := httptest.NewRecorder()
	h.Page(rec, as(httptest.NewRequest("GET", "/habits", nil), env.user))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"Stretch (Monday)", "Swim (Tuesday)", "Done today", `href="/habits/achieve/2"`, `<option value="0">Sunday</option>`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, `href="/habits/achieve/1"`) {
		t.Error("achieved habit should not offer the achieve link")
	}
}
