package timeutil

import (
	"fmt"
	"time"
)

// Accepted date layouts for ToDate, tried in order.
var layouts = []string{
	"2006-01-02",
	"20060102",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ToDate parses a date string into a UTC midnight timestamp.
func ToDate(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDate returns the date n calendar days after t.
func NextDate(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}
