// Package dates holds civil-calendar helpers. Dates are carried as YYYY-MM-DD strings and
// parsed into UTC midnight so day arithmetic never crosses a DST boundary.
package dates

import (
	"fmt"
	"time"
)

// Layout is the canonical date format used across the ledger
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD string into UTC midnight
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders the civil date of t
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Civil returns the calendar date of t as seen in its own location, pinned to UTC midnight
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now in loc
func Today(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return Format(Civil(now))
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	// day 0 of the following month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the whole days from a to b (negative when b is before a)
func DaysBetween(a, b time.Time) int {
	return int(Civil(b).Sub(Civil(a)).Hours() / 24)
}

// NextMonthOn returns the date one calendar month after t on day, capped to the target month's length
func NextMonthOn(t time.Time, day int) time.Time {
	year, month := t.Year(), t.Month()+1
	if month > time.December {
		month = time.January
		year++
	}
	if last := DaysIn(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayBounds returns the [start, end) instants of the calendar day containing now in loc
func DayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
