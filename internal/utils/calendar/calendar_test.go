package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDayUsesBusinessZone(t *testing.T) {
	// 2024-05-10 18:30 UTC is already 2024-05-11 02:30 in UTC+8.
	instant := time.Date(2024, 5, 10, 18, 30, 0, 0, time.UTC)

	start := StartOfDay(instant)

	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, BusinessZone), start)
}

func TestStartOfDayBoundary(t *testing.T) {
	// One second before business midnight still belongs to the previous day.
	beforeMidnight := time.Date(2024, 5, 10, 23, 59, 59, 0, BusinessZone)
	atMidnight := time.Date(2024, 5, 11, 0, 0, 0, 0, BusinessZone)

	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, BusinessZone), StartOfDay(beforeMidnight))
	assert.Equal(t, atMidnight, StartOfDay(atMidnight))
}

func TestDayWindow(t *testing.T) {
	clock := FixedClock{Time: time.Date(2024, 5, 10, 15, 0, 0, 0, BusinessZone)}

	start, end := DayWindow(clock)

	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, BusinessZone), start)
	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, BusinessZone), end)
}

func TestMonthWindow(t *testing.T) {
	clock := FixedClock{Time: time.Date(2024, 12, 31, 23, 0, 0, 0, BusinessZone)}

	start, end := MonthWindow(clock)

	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, BusinessZone), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, BusinessZone), end)
}

func TestMonthWindowCrossesZone(t *testing.T) {
	// 2024-05-31 20:00 UTC is 2024-06-01 04:00 in UTC+8, so the window is
	// June, not May.
	clock := FixedClock{Time: time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC)}

	start, end := MonthWindow(clock)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, BusinessZone), start)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, BusinessZone), end)
}
