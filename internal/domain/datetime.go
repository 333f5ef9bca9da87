package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateTime is returned when a timestamp string matches none of the
// accepted formats.
var ErrInvalidDateTime = errors.New("invalid date/time format")

// dateTimeLayouts lists the string formats accepted from callers, tried in
// order. Layouts without an explicit offset are interpreted as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime parses a timestamp in one of the accepted formats and
// normalizes it to UTC.
func ParseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, value)
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight at the beginning of t's UTC day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59 of t's UTC day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

// WeekBounds resolves the Monday-first week containing ref.
// The returned start is Monday 00:00:00 and the end Sunday 23:59:59, both
// UTC. Sunday counts as day 7 of the running week, never the start of the
// next one.
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	day := int(ref.UTC().Weekday())
	if day == 0 {
		day = 7
	}
	monday := StartOfDay(ref).AddDate(0, 0, -(day - 1))
	sunday := EndOfDay(monday.AddDate(0, 0, 6))
	return monday, sunday
}
