package config

import (
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/dukerupert/habitual/internal/habit"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	var cfg Config
	parser, err := kong.New(&cfg, kong.Name("habitual"))
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := parse(t)

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "habitual.db" {
		t.Errorf("DBPath = %q, want habitual.db", cfg.DBPath)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.EventWindowDays != 30 {
		t.Errorf("EventWindowDays = %d, want 30", cfg.EventWindowDays)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Errorf("SessionTTL = %s, want 720h", cfg.SessionTTL)
	}
	if cfg.SecureCookies {
		t.Error("SecureCookies should default to false")
	}
	if cfg.Policy() != habit.PolicyKeep {
		t.Errorf("Policy() = %q, want keep", cfg.Policy())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q, want :8080", cfg.Addr())
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("HABITUAL_PORT", "9090")
	t.Setenv("HABITUAL_DB_PATH", "/tmp/h.db")
	t.Setenv("HABITUAL_STREAK_POLICY", "reset")
	t.Setenv("HABITUAL_SESSION_TTL", "2h")
	t.Setenv("HABITUAL_SECURE_COOKIES", "true")

	cfg := parse(t)

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.DBPath != "/tmp/h.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Policy() != habit.PolicyReset {
		t.Errorf("Policy() = %q, want reset", cfg.Policy())
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %s, want 2h", cfg.SessionTTL)
	}
	if !cfg.SecureCookies {
		t.Error("SecureCookies should be true")
	}
}

func TestFlagsOverride(t *testing.T) {
	cfg := parse(t, "--port=3000", "--log-format=json", "--event-window-days=7")

	if cfg.Port != 3000 || cfg.LogFormat != "json" || cfg.EventWindowDays != 7 {
		t.Errorf("got port=%d format=%q window=%d", cfg.Port, cfg.LogFormat, cfg.EventWindowDays)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Port:            0,
		DBPath:          "",
		EventWindowDays: 0,
		SessionTTL:      0,
		StreakPolicy:    "forgive",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"port", "db path", "event window", "session ttl", "streak policy"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
