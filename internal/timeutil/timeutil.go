// Package timeutil centralizes the application's calendar logic: the
// configured local timezone, "local day" computation, and the column
// types used for date-only and timestamp fields. All outgoing
// timestamps are rendered through one formatting path so every record
// kind serializes times the same way.
package timeutil

import (
	"fmt"
	"sync/atomic"
	"time"
)

var location atomic.Pointer[time.Location]

// SetLocation sets the timezone used for local-day computation and
// timestamp rendering. Call once at startup.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location.Store(loc)
	}
}

// Location returns the configured timezone, defaulting to UTC.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// Now returns the current instant as a Time.
func Now() Time {
	return Time{time.Now()}
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) Date {
	return DateOf(time.Now().In(loc))
}

// Yesterday returns the calendar date one day before today in loc.
func Yesterday(loc *time.Location) Date {
	return Today(loc).AddDays(-1)
}

// DayBounds returns the [start, end) instants covering the calendar
// date d in loc, both normalized to UTC.
func DayBounds(d Date, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// ParseTime parses a timestamp in RFC3339 form, falling back to a
// bare date interpreted as midnight in loc.
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q (want RFC3339 or YYYY-MM-DD)", value)
}
