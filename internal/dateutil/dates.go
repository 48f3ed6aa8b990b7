// Package dateutil provides calendar-day helpers in local time.
// All day strings use the YYYY-MM-DD format.
package dateutil

import (
	"fmt"
	"time"
)

const DayFormat = "2006-01-02"

// Today returns the current local calendar day.
func Today() string {
	return FormatDay(time.Now())
}

// FormatDay renders t as a local calendar-day string.
func FormatDay(t time.Time) string {
	return t.Local().Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD string into local midnight of that day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return t, nil
}

// DayDiff returns the number of calendar days between from and to
// (to minus from). Invalid inputs yield 0. The difference is rounded so
// DST transitions cannot skew whole-day arithmetic.
func DayDiff(from, to string) int {
	fromDay, err := ParseDay(from)
	if err != nil {
		return 0
	}
	toDay, err := ParseDay(to)
	if err != nil {
		return 0
	}
	hours := toDay.Sub(fromDay).Hours()
	if hours >= 0 {
		return int(hours/24 + 0.5)
	}
	return -int(-hours/24 + 0.5)
}
