package timeutil

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Placeholder is shown in read views when a timestamp cannot be parsed.
const Placeholder = "-"

var ErrInvalidInstant = errors.New("invalid timestamp")

var epochRegex = regexp.MustCompile(`^-?[0-9]+$`)

// zoned layouts carry their own offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// wall-clock layouts are interpreted in the business location
var wallClockLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ToInstant converts a raw timestamp into a UTC instant.
// Numbers and numeric strings are epoch milliseconds. Strings without an offset
// are wall-clock times in loc.
func ToInstant(raw any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch v := raw.(type) {
	case nil:
		return time.Time{}, ErrInvalidInstant
	case time.Time:
		if v.IsZero() {
			return time.Time{}, ErrInvalidInstant
		}
		return v.UTC(), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, ErrInvalidInstant
		}
		return ToInstant(*v, loc)
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return time.Time{}, ErrInvalidInstant
		}
		return time.UnixMilli(int64(v)).UTC(), nil
	case json.Number:
		if ms, err := v.Int64(); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, ErrInvalidInstant
		}
		return ToInstant(f, loc)
	case string:
		return parseString(v, loc)
	default:
		return time.Time{}, ErrInvalidInstant
	}
}

func parseString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidInstant
	}

	if epochRegex.MatchString(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, ErrInvalidInstant
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, ErrInvalidInstant
}

// FormatTimeOfDay renders the hour and minute of raw in loc, or Placeholder.
func FormatTimeOfDay(raw any, loc *time.Location) string {
	t, err := ToInstant(raw, loc)
	if err != nil {
		return Placeholder
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// Elapsed splits end-start into whole hours and remaining minutes.
func Elapsed(start, end time.Time) (hours, minutes int, ok bool) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0, 0, false
	}
	diff := end.Sub(start)
	return int(diff / time.Hour), int((diff % time.Hour) / time.Minute), true
}

// FormatDuration renders the elapsed time between two raw timestamps as "1h 30m".
func FormatDuration(start, end any, loc *time.Location) string {
	s, err := ToInstant(start, loc)
	if err != nil {
		return Placeholder
	}
	e, err := ToInstant(end, loc)
	if err != nil {
		return Placeholder
	}
	h, m, ok := Elapsed(s, e)
	if !ok {
		return Placeholder
	}
	return strconv.Itoa(h) + "h " + strconv.Itoa(m) + "m"
}

// ToEpochMillis is the inverse of ToInstant for numeric output.
func ToEpochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
