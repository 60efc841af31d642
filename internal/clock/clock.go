// Package clock provides the time source shared by the trackers.
package clock

import "time"

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant until moved.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.T = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.T = f.T.Add(d)
}

// AddDays moves the clock by n calendar days, keeping the time of day.
func (f *Fixed) AddDays(n int) {
	f.T = f.T.AddDate(0, 0, n)
}
