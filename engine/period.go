package engine

import (
	"fmt"
	"sort"
	"time"
)

// ============================================================================
// PERIODS — calendar months and ISO weeks
// ============================================================================
// Both period kinds carry inclusive bounds and the trailing attribution
// window used by the new-entity detector. ISO week 1 is the week containing
// the year's first Thursday (Monday start), per ISO-8601.
// ============================================================================

// Period is a selectable calendar span with an attribution window.
type Period interface {
	// Bounds returns the inclusive [start, end] timestamps of the period.
	Bounds() (time.Time, time.Time)
	// WindowDays is the trailing first-occurrence window for this
	// granularity: 30 days for months, 7 for weeks.
	WindowDays() int
	fmt.Stringer
}

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" label.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Bounds spans the first day 00:00:00 through the last day 23:59:59.
func (m Month) Bounds() (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// WindowDays is the monthly first-occurrence window.
func (m Month) WindowDays() int { return 30 }

// Week is an ISO-8601 calendar week (Monday through Sunday).
type Week struct {
	Year int // ISO week-numbering year, not necessarily the calendar year
	Week int
}

// WeekOf returns the ISO week containing t.
func WeekOf(t time.Time) Week {
	y, w := t.ISOWeek()
	return Week{Year: y, Week: w}
}

// ParseWeek parses a "YYYY-Wnn" label.
func ParseWeek(s string) (Week, error) {
	var y, w int
	if _, err := fmt.Sscanf(s, "%d-W%d", &y, &w); err != nil || w < 1 || w > 53 {
		return Week{}, fmt.Errorf("invalid week %q", s)
	}
	return Week{Year: y, Week: w}, nil
}

func (w Week) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// Bounds spans Monday 00:00:00 through Sunday 23:59:59 of the ISO week.
func (w Week) Bounds() (time.Time, time.Time) {
	start := isoWeekStart(w.Year, w.Week)
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}

// WindowDays is the weekly first-occurrence window.
func (w Week) WindowDays() int { return 7 }

// isoWeekStart returns the Monday of the given ISO week. January 4th is
// always inside week 1, so week 1's Monday — possibly in the prior calendar
// year — falls out of day arithmetic from there.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	mondayOffset := (int(jan4.Weekday()) + 6) % 7
	monday1 := jan4.AddDate(0, 0, -mondayOffset)
	return monday1.AddDate(0, 0, (week-1)*7)
}

// ============================================================================
// PERIOD ENUMERATION
// ============================================================================

// AvailableMonths lists the distinct order-placed months in a view, most
// recent first. Rows without an order-placed date contribute nothing.
func AvailableMonths(v View) []Month {
	seen := make(map[Month]bool)
	var months []Month
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if !r.OrderPlaced.Valid {
			continue
		}
		m := MonthOf(r.OrderPlaced.Value)
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})
	return months
}

// AvailableWeeks lists the distinct order-placed ISO weeks in a view, most
// recent first.
func AvailableWeeks(v View) []Week {
	seen := make(map[Week]bool)
	var weeks []Week
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if !r.OrderPlaced.Valid {
			continue
		}
		w := WeekOf(r.OrderPlaced.Value)
		if !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Year != weeks[j].Year {
			return weeks[i].Year > weeks[j].Year
		}
		return weeks[i].Week > weeks[j].Week
	})
	return weeks
}
