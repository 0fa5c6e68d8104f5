package timeutil

import "time"

const dateLayout = "2006-01-02"

func in(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := in(a, loc).Date()
	by, bm, bd := in(b, loc).Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same year and month in loc.
func SameMonth(a, b time.Time, loc *time.Location) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, _ := in(a, loc).Date()
	by, bm, _ := in(b, loc).Date()
	return ay == by && am == bm
}

// StartOfDay returns midnight of t's date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = in(t, loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's date in t's own location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// MonthRange returns the first instant of t's month and the first instant of the next one.
func MonthRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = in(t, loc)
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// ParseDate parses "YYYY-MM-DD" as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidInstant
	}
	return t, nil
}

// LoadLocation falls back to UTC when name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
