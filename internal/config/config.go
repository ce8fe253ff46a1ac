package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/habitual/internal/habit"
)

// Config holds runtime settings. It is embedded into the kong CLI so every
// field can come from a flag or its HABITUAL_* environment variable.
type Config struct {
	Port            int           `help:"HTTP listen port." env:"HABITUAL_PORT" default:"8080"`
	DBPath          string        `name:"db-path" help:"SQLite database file." env:"HABITUAL_DB_PATH" default:"habitual.db"`
	LogLevel        string        `help:"Log level." env:"HABITUAL_LOG_LEVEL" default:"info" enum:"debug,info,warn,error"`
	LogFormat       string        `help:"Log output format." env:"HABITUAL_LOG_FORMAT" default:"text" enum:"text,json"`
	StreakPolicy    string        `help:"What a missed weekday does to a habit streak." env:"HABITUAL_STREAK_POLICY" default:"keep" enum:"keep,reset"`
	EventWindowDays int           `help:"Days either side of today served by the calendar feed when no range is given." env:"HABITUAL_EVENT_WINDOW_DAYS" default:"30"`
	SessionTTL      time.Duration `name:"session-ttl" help:"Login session lifetime." env:"HABITUAL_SESSION_TTL" default:"720h"`
	SecureCookies   bool          `help:"Mark session cookies Secure." env:"HABITUAL_SECURE_COOKIES"`
}

// Validate checks ranges kong cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if c.EventWindowDays < 1 {
		errs = append(errs, fmt.Errorf("event window must be at least 1 day, got %d", c.EventWindowDays))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL))
	}
	if _, err := habit.ParsePolicy(c.StreakPolicy); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Policy returns the configured streak policy, defaulting to keep.
func (c *Config) Policy() habit.StreakPolicy {
	p, err := habit.ParsePolicy(c.StreakPolicy)
	if err != nil {
		return habit.PolicyKeep
	}
	return p
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
