// Package day works with calendar dates. A date is a time.Time at local
// midnight; the clock part of any input is discarded.
package day

import (
	"fmt"
	"time"
)

// Layout is the wire and storage format for dates.
const Layout = "2006-01-02"

// Of truncates t to midnight in its own location.
func Of(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the local server date for now.
func Today(now time.Time) time.Time {
	return Of(now.Local())
}

// Parse reads a YYYY-MM-DD date in the local zone.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseFlexible accepts either RFC3339 or YYYY-MM-DD and returns the date
// as written, placed in the local zone.
func ParseFlexible(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return Parse(s)
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Between returns the number of calendar days from a to b. It is negative when
// b is before a and unaffected by DST transitions.
func Between(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / 86400)
}

// Equal reports whether a and b fall on the same calendar date.
func Equal(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
