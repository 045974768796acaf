package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlens/freightlens/dataset"
)

func TestMonthBounds(t *testing.T) {
	start, end := (Month{Year: 2025, Month: time.February}).Bounds()
	assert.Equal(t, day(2025, 2, 1), start)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), end)

	// Leap year.
	_, end = (Month{Year: 2024, Month: time.February}).Bounds()
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), end)
}

func TestMonthParseAndString(t *testing.T) {
	m, err := ParseMonth("2025-06")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2025, Month: time.June}, m)
	assert.Equal(t, "2025-06", m.String())

	_, err = ParseMonth("June 2025")
	assert.Error(t, err)
}

func TestISOWeekOneCanStartInPriorYear(t *testing.T) {
	// 2015-01-01 is a Thursday, so ISO week 1 of 2015 starts on Monday
	// 2014-12-29.
	start, end := (Week{Year: 2015, Week: 1}).Bounds()
	assert.Equal(t, day(2014, 12, 29), start)
	assert.Equal(t, time.Date(2015, 1, 4, 23, 59, 59, 0, time.UTC), end)
}

func TestWeekOfUsesISOYear(t *testing.T) {
	// 2014-12-29 belongs to ISO week 1 of 2015, not week 53 of 2014.
	w := WeekOf(day(2014, 12, 29))
	assert.Equal(t, Week{Year: 2015, Week: 1}, w)
	assert.Equal(t, "2015-W01", w.String())
}

func TestWeekBoundsRoundTrip(t *testing.T) {
	for _, w := range []Week{{2015, 1}, {2020, 53}, {2025, 26}, {2026, 1}} {
		start, end := w.Bounds()
		assert.Equal(t, time.Monday, start.Weekday(), w.String())
		assert.Equal(t, w, WeekOf(start), w.String())
		assert.Equal(t, w, WeekOf(end), w.String())
	}
}

func TestParseWeek(t *testing.T) {
	w, err := ParseWeek("2025-W07")
	require.NoError(t, err)
	assert.Equal(t, Week{Year: 2025, Week: 7}, w)

	for _, bad := range []string{"2025-07", "2025-W99", "garbage"} {
		_, err := ParseWeek(bad)
		assert.Error(t, err, bad)
	}
}

func TestWindowDays(t *testing.T) {
	assert.Equal(t, 30, Month{}.WindowDays())
	assert.Equal(t, 7, Week{}.WindowDays())
}

func TestAvailablePeriodsMostRecentFirst(t *testing.T) {
	rows := []dataset.Row{
		{OrderPlaced: dataset.SomeTime(day(2025, 1, 10)), ShipmentWeight: 1},
		{OrderPlaced: dataset.SomeTime(day(2025, 3, 2)), ShipmentWeight: 1},
		{OrderPlaced: dataset.SomeTime(day(2025, 1, 25)), ShipmentWeight: 1},
		{ShipmentWeight: 1}, // no date, contributes nothing
	}
	v := NewView(&dataset.Table{Rows: rows})

	months := AvailableMonths(v)
	require.Len(t, months, 2)
	assert.Equal(t, "2025-03", months[0].String())
	assert.Equal(t, "2025-01", months[1].String())

	weeks := AvailableWeeks(v)
	require.Len(t, weeks, 3)
	assert.Equal(t, WeekOf(day(2025, 3, 2)), weeks[0])
}
