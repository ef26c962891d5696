package database

import (
	"fmt"
	"time"
)

// TimeLayout is how timestamps are stored: fixed-width UTC text, so that
// lexical order is chronological order in every dialect.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime converts t into its stored form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime converts a stored timestamp back into a UTC time.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t.UTC(), nil
}
