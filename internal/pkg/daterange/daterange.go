// Package daterange holds the closed calendar-date interval logic used for
// every availability decision.
package daterange

import (
	"errors"
	"math"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidRange = errors.New("end date must be after start date")

// Range is a closed interval [Start, End] of calendar dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// New truncates both ends to calendar dates and requires Start < End.
func New(start, end time.Time) (Range, error) {
	r := Range{Start: Day(start), End: Day(end)}
	if !r.End.After(r.Start) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Overlaps reports whether two closed intervals share at least one date.
// A shared boundary date counts as a conflict.
func Overlaps(a, b Range) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

func (r Range) Overlaps(other Range) bool {
	return Overlaps(r, other)
}

func (r Range) Days() int {
	return DaysBetween(r.Start, r.End)
}

// DaysBetween is the calendar-day difference rounded up, never below 1.
func DaysBetween(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Day drops the clock part, keeping the calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseRange parses two YYYY-MM-DD strings into a Range.
func ParseRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	return New(s, e)
}
