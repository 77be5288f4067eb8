// Package calendar defines the business calendar: every "day" and "month"
// boundary used for expiry sweeps and analytics windows is computed in a
// fixed UTC+8 offset, independent of the server's wall-clock timezone.
package calendar

import (
	"time"
)

// BusinessZone is the fixed-offset zone all day boundaries are computed in.
var BusinessZone = time.FixedZone("UTC+8", 8*60*60)

// Clock supplies "now" so boundary logic stays testable without the wall
// clock.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

// StartOfDay returns the business-calendar midnight at or before t.
func StartOfDay(t time.Time) time.Time {
	local := t.In(BusinessZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, BusinessZone)
}

// StartOfToday returns the business-calendar midnight for the clock's now.
func StartOfToday(c Clock) time.Time {
	return StartOfDay(c.Now())
}

// DayWindow returns [start of today, start of tomorrow) in the business
// calendar.
func DayWindow(c Clock) (time.Time, time.Time) {
	start := StartOfToday(c)
	return start, start.AddDate(0, 0, 1)
}

// MonthWindow returns [first of this month, first of next month) in the
// business calendar.
func MonthWindow(c Clock) (time.Time, time.Time) {
	local := c.Now().In(BusinessZone)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, BusinessZone)
	return start, start.AddDate(0, 1, 0)
}
