package habit

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
	"github.com/dukerupert/habitual/internal/recurrence"
)

// StreakPolicy decides what a missed weekday does to a streak.
type StreakPolicy string

const (
	// PolicyKeep never decays a streak; it counts distinct achievement days.
	PolicyKeep StreakPolicy = "keep"
	// PolicyReset restarts the streak at 1 when a scheduled weekday was
	// skipped since the last achievement.
	PolicyReset StreakPolicy = "reset"
)

// ParsePolicy reads a policy name; an empty name means PolicyKeep.
func ParsePolicy(s string) (StreakPolicy, error) {
	switch StreakPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyKeep:
		return PolicyKeep, nil
	case PolicyReset:
		return PolicyReset, nil
	}
	return "", fmt.Errorf("unknown streak policy: %q", s)
}

// Advance applies an achievement on today to h. It reports false and leaves
// h untouched when h was already achieved today, or when its last achievement
// is later than today.
func Advance(h model.Habit, today time.Time, policy StreakPolicy) (model.Habit, bool) {
	today = day.Of(today)

	if last := h.LastAchievedDate; last != nil {
		if day.Between(*last, today) <= 0 {
			return h, false
		}
		if policy == PolicyReset && Missed(h.Weekday, *last, today) {
			h.StreakCount = 0
		}
	}

	h.StreakCount++
	h.LastAchievedDate = &today
	return h, true
}

// Missed reports whether a wd date lies strictly between last and today.
func Missed(wd time.Weekday, last, today time.Time) bool {
	from := time.Date(last.Year(), last.Month(), last.Day()+1, 0, 0, 0, 0, time.UTC)
	to := time.Date(today.Year(), today.Month(), today.Day()-1, 0, 0, 0, 0, time.UTC)
	return recurrence.Count(wd, from, to) > 0
}
