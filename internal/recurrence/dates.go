package recurrence

import "time"

// Dates returns every date in the inclusive range [start, end] that falls on
// wd, at midnight in start's location. An inverted range yields nothing.
func Dates(wd time.Weekday, start, end time.Time) []time.Time {
	start = startOfDay(start)
	end = startOfDay(end)
	if end.Before(start) {
		return nil
	}

	offset := int(wd) - int(start.Weekday())
	if offset < 0 {
		offset += 7
	}

	var results []time.Time
	for cur := start.AddDate(0, 0, offset); !cur.After(end); cur = cur.AddDate(0, 0, 7) {
		results = append(results, cur)
	}
	return results
}

// Count returns len(Dates(wd, start, end)) without allocating.
func Count(wd time.Weekday, start, end time.Time) int {
	start = startOfDay(start)
	end = startOfDay(end)
	if end.Before(start) {
		return 0
	}

	offset := int(wd) - int(start.Weekday())
	if offset < 0 {
		offset += 7
	}
	first := start.AddDate(0, 0, offset)
	if first.After(end) {
		return 0
	}

	ue := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	uf := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	days := (ue.Unix() - uf.Unix()) / 86400
	return int(days/7) + 1
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
