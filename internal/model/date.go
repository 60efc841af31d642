package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage and wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time of day, kept as YYYY-MM-DD so it
// sorts lexically and can key JSON objects directly.
type Date string

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Valid reports whether d is a well-formed calendar date.
func (d Date) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

// Time returns midnight of d in loc, or the zero time if d is malformed.
func (d Date) Time(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(DateLayout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays shifts d by n calendar days. Malformed dates are returned as-is.
func (d Date) AddDays(n int) Date {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// Day returns the day of the month, 0 for malformed dates.
func (d Date) Day() int {
	t := d.Time(time.UTC)
	if t.IsZero() {
		return 0
	}
	return t.Day()
}

func (d Date) String() string { return string(d) }
