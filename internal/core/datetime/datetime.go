// Package datetime provides the calendar parsing and arithmetic shared by
// the codec and the board classifier. Field values are plain strings on
// the task record; this package is the single place that interprets them.
package datetime

import (
	"strings"
	"time"
)

// Layouts accepted for task date values. YYYY-MM-DD is canonical;
// DD-MM-YYYY survives from documents written by other tools.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDate parses a date or date-time value. The time-of-day portion,
// if any, is preserved; callers that compare calendar days should use
// SameDay or DaysBetween.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Valid reports whether s is a parseable date or date-time value.
func Valid(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// Canonical rewrites s into the canonical YYYY-MM-DD form, keeping the
// time-of-day suffix when present. Unparseable input is returned as-is.
func Canonical(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && !strings.ContainsAny(s, ":T") {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04")
}

// DaysBetween returns the signed number of calendar days from a to b,
// ignoring time-of-day. Positive means b is after a.
func DaysBetween(a, b time.Time) int {
	a = truncateDay(a)
	b = truncateDay(b)
	return int(b.Sub(a).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidTimeSpan reports whether s is an "HH:MM - HH:MM" span.
func ValidTimeSpan(s string) bool {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return false
	}
	return validClock(strings.TrimSpace(parts[0])) && validClock(strings.TrimSpace(parts[1]))
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// DateStamp formats t as a canonical task date value.
func DateStamp(t time.Time) string {
	return t.Format("2006-01-02")
}

// DateTimeStamp formats t as a canonical task date-time value.
func DateTimeStamp(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}
