package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dayNames = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

var dayAbbrev = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// Habits created by the first version of the app stored the weekday as a
// Japanese label.
var jaNames = map[string]time.Weekday{
	"日曜日": time.Sunday,
	"月曜日": time.Monday,
	"火曜日": time.Tuesday,
	"水曜日": time.Wednesday,
	"木曜日": time.Thursday,
	"金曜日": time.Friday,
	"土曜日": time.Saturday,
}

// ParseWeekday accepts a two-letter code ("MO"), an English name ("monday",
// "Mon"), a Japanese label ("月曜日") or a number 0-6 with Sunday as 0.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty weekday")
	}

	if wd, ok := jaNames[s]; ok {
		return wd, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("weekday out of range: %d", n)
		}
		return time.Weekday(n), nil
	}

	upper := strings.ToUpper(s)
	if len(upper) >= 2 {
		if wd, ok := dayNames[upper[:2]]; ok && strings.HasPrefix(strings.ToUpper(wd.String()), upper) {
			return wd, nil
		}
	}
	if wd, ok := dayNames[upper]; ok {
		return wd, nil
	}

	return 0, fmt.Errorf("unknown weekday: %q", s)
}

// Abbrev returns the two-letter code for wd.
func Abbrev(wd time.Weekday) string {
	return dayAbbrev[wd]
}

// Week lists the weekdays in display order, Monday first.
func Week() []time.Weekday {
	return []time.Weekday{
		time.Monday,
		time.Tuesday,
		time.Wednesday,
		time.Thursday,
		time.Friday,
		time.Saturday,
		time.Sunday,
	}
}
