package views

import (
	"fmt"
	"sort"
	"time"

	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

// ============================================================================
// ORDER INTAKE VIEW
// ============================================================================
// Time-series deep dive on the order-placed date: year-over-year cumulative
// totals, day-of-year aligned daily volume, the full smoothed timeline, a
// week × weekday heatmap, and the working-day lead-time section.
// ============================================================================

// IntakeOptions tunes the intake view.
type IntakeOptions struct {
	// Granularity is "week" or "month" for the cumulative section.
	Granularity string
	// RollingWeeks sizes the centered smoothing window (weeks × 7 days).
	RollingWeeks int
}

func (o IntakeOptions) normalized() IntakeOptions {
	if o.Granularity != "month" {
		o.Granularity = "week"
	}
	if o.RollingWeeks <= 0 {
		o.RollingWeeks = 4
	}
	return o
}

// Lead-time buckets, in working days.
var leadBuckets = []string{"<3", "4-7", "7-14", ">14"}

// OrderIntake renders the order intake page.
func OrderIntake(s *session.Session, opts IntakeOptions) Page {
	opts = opts.normalized()
	page := Page{View: "intake", Title: "Order intake"}
	v, ok := filteredOrNotice(s, &page)
	if !ok {
		return page
	}
	caps := s.Caps()
	if !caps.Has(dataset.FieldOrderPlaced) {
		warn(&page, "column %s not present in this export, order intake unavailable", dataset.FieldOrderPlaced)
		return page
	}

	dated := v.Where(func(r *dataset.Row) bool { return r.OrderPlaced.Valid })
	if dated.Len() == 0 {
		info(&page, "no rows carry an order-placed date")
		return page
	}

	if sec := cumulativeSection(dated, opts.Granularity); sec != nil {
		page.Sections = append(page.Sections, *sec)
	}
	if sec := alignedDailySection(dated, opts.RollingWeeks); sec != nil {
		page.Sections = append(page.Sections, *sec)
	}
	if sec := timelineSection(dated, opts.RollingWeeks); sec != nil {
		page.Sections = append(page.Sections, *sec)
	}
	if sec := heatmapSection(dated); sec != nil {
		page.Sections = append(page.Sections, *sec)
	}

	if caps.Has(dataset.FieldLoadFrom) {
		page.Sections = append(page.Sections, leadTimeSections(dated)...)
	} else {
		warn(&page, "column %s not present in this export, skipping lead times", dataset.FieldLoadFrom)
	}
	return page
}

// ============================================================================
// CUMULATIVE AND DAILY SERIES
// ============================================================================

// cumulativeSection builds one running-total line per year, aligned on week
// or month number so years overlay directly.
func cumulativeSection(v engine.View, granularity string) *Section {
	type slot struct {
		year int
		pos  int
	}
	weights := make(map[slot]float64)
	years := make(map[int]bool)
	maxPos := 0

	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		t := r.OrderPlaced.Value
		var year, pos int
		if granularity == "month" {
			year, pos = t.Year(), int(t.Month())
		} else {
			year, pos = t.ISOWeek()
		}
		weights[slot{year, pos}] += r.ShipmentWeight
		years[year] = true
		if pos > maxPos {
			maxPos = pos
		}
	}

	sortedYears := sortedKeys(years)
	series := make([]ChartSeries, 0, len(sortedYears))
	for _, year := range sortedYears {
		var running float64
		points := make([]ChartPoint, 0, maxPos)
		for pos := 1; pos <= maxPos; pos++ {
			running += weights[slot{year, pos}]
			points = append(points, ChartPoint{Label: posLabel(granularity, pos), Value: round2(running)})
		}
		series = append(series, ChartSeries{Name: fmt.Sprintf("%d", year), Data: points})
	}

	title := "Cumulative intake by year"
	return &Section{Title: title, Chart: &ChartConfig{
		ChartType:  "line",
		Title:      title,
		XAxis:      granularity,
		YAxis:      "Cumulative weighted shipments",
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
		ShowGrid:   true,
	}}
}

func posLabel(granularity string, pos int) string {
	if granularity == "month" {
		return fmt.Sprintf("%02d", pos)
	}
	return fmt.Sprintf("W%02d", pos)
}

// alignedDailySection overlays the years as smoothed daily series indexed by
// day-of-year, so seasonal shape is comparable across years.
func alignedDailySection(v engine.View, rollingWeeks int) *Section {
	daily := make(map[int]map[int]float64) // year → day-of-year → weight
	lastDay := make(map[int]int)

	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		t := r.OrderPlaced.Value
		year, doy := t.Year(), t.YearDay()
		if daily[year] == nil {
			daily[year] = make(map[int]float64)
		}
		daily[year][doy] += r.ShipmentWeight
		if doy > lastDay[year] {
			lastDay[year] = doy
		}
	}

	years := make(map[int]bool, len(daily))
	for y := range daily {
		years[y] = true
	}

	series := make([]ChartSeries, 0, len(daily))
	for _, year := range sortedKeys(years) {
		values := make([]float64, lastDay[year])
		for doy, w := range daily[year] {
			values[doy-1] = w
		}
		smoothed := rollingMean(values, rollingWeeks*7)
		points := make([]ChartPoint, 0, len(smoothed))
		for i, val := range smoothed {
			points = append(points, ChartPoint{Label: fmt.Sprintf("%d", i+1), Value: round2(val)})
		}
		series = append(series, ChartSeries{Name: fmt.Sprintf("%d", year), Data: points})
	}

	title := fmt.Sprintf("Daily intake by year (%d-week rolling average)", rollingWeeks)
	return &Section{Title: title, Chart: &ChartConfig{
		ChartType:  "line",
		Title:      title,
		XAxis:      "Day of year",
		YAxis:      "Weighted shipments / day",
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
		ShowGrid:   true,
	}}
}

// timelineSection plots the full continuous daily timeline, zero-filling
// gaps, with raw and smoothed series.
func timelineSection(v engine.View, rollingWeeks int) *Section {
	daily := make(map[time.Time]float64)
	var first, last time.Time

	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		day := r.OrderPlaced.Value.Truncate(24 * time.Hour)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		daily[day] += r.ShipmentWeight
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	var labels []string
	var values []float64
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		labels = append(labels, day.Format("2006-01-02"))
		values = append(values, daily[day])
	}
	smoothed := rollingMean(values, rollingWeeks*7)

	raw := make([]ChartPoint, len(values))
	avg := make([]ChartPoint, len(values))
	for i := range values {
		raw[i] = ChartPoint{Label: labels[i], Value: round2(values[i])}
		avg[i] = ChartPoint{Label: labels[i], Value: round2(smoothed[i])}
	}

	title := "Daily intake timeline"
	return &Section{Title: title, Chart: &ChartConfig{
		ChartType: "area",
		Title:     title,
		XAxis:     "Date",
		YAxis:     "Weighted shipments / day",
		Series: []ChartSeries{
			{Name: "Daily", Data: raw, Color: defaultColors[0]},
			{Name: fmt.Sprintf("%d-week average", rollingWeeks), Data: avg, Color: defaultColors[3]},
		},
		ShowLegend: true,
		ShowGrid:   true,
	}}
}

// heatmapSection builds the week × weekday intensity grid. Weekend intake is
// folded into Friday: orders placed on Saturday or Sunday count toward the
// preceding business day.
func heatmapSection(v engine.View) *Section {
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	type cell struct {
		week string
		day  string
	}
	grid := make(map[cell]float64)
	weekSet := make(map[string]bool)

	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		t := r.OrderPlaced.Value
		day := t.Weekday().String()
		if day == "Saturday" || day == "Sunday" {
			day = "Friday"
		}
		year, week := t.ISOWeek()
		label := fmt.Sprintf("%04d-W%02d", year, week)
		grid[cell{label, day}] += r.ShipmentWeight
		weekSet[label] = true
	}

	weeks := make([]string, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)

	series := make([]ChartSeries, 0, len(weekdays))
	for _, day := range weekdays {
		points := make([]ChartPoint, 0, len(weeks))
		for _, week := range weeks {
			points = append(points, ChartPoint{Label: week, Value: round2(grid[cell{week, day}]), Group: day})
		}
		series = append(series, ChartSeries{Name: day, Data: points})
	}

	title := "Intake heatmap (week × weekday)"
	return &Section{Title: title, Chart: &ChartConfig{
		ChartType: "heatmap",
		Title:     title,
		XAxis:     "ISO week",
		YAxis:     "Weekday",
		Series:    series,
		ShowGrid:  false,
	}}
}

// ============================================================================
// LEAD TIMES — working days between order placement and load start
// ============================================================================

func leadTimeSections(v engine.View) []Section {
	type lead struct {
		days int
		week string
		w    float64
	}
	var leads []lead
	weekSet := make(map[string]bool)

	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if !r.LoadFrom.Valid {
			continue
		}
		days := workingDays(r.OrderPlaced.Value, r.LoadFrom.Value)
		if days < 0 {
			continue
		}
		year, week := r.OrderPlaced.Value.ISOWeek()
		label := fmt.Sprintf("%04d-W%02d", year, week)
		leads = append(leads, lead{days: days, week: label, w: r.ShipmentWeight})
		weekSet[label] = true
	}
	if len(leads) == 0 {
		return nil
	}

	values := make([]float64, len(leads))
	var sum float64
	for i, l := range leads {
		values[i] = float64(l.days)
		sum += float64(l.days)
	}

	metrics := []Metric{
		metric("Avg lead time (working days)", sum/float64(len(values))),
		metric("Median lead time (working days)", engine.Median(values)),
	}

	// Histogram clipped at the 99th percentile to keep outliers from
	// flattening the distribution.
	clip := engine.Quantile(values, 0.99)
	clipped := values[:0:0]
	for _, val := range values {
		if val <= clip {
			clipped = append(clipped, val)
		}
	}
	histogram := binChart("Lead time distribution", "Working days", engine.Histogram(clipped, 20))

	// Bucket × week pivot, most recent week first. Each week row carries its
	// mean lead time in working days alongside the bucket counts; the total
	// row sums the buckets.
	pivot := make(map[string]map[string]float64)
	weekDays := make(map[string][]float64)
	for _, l := range leads {
		if pivot[l.week] == nil {
			pivot[l.week] = make(map[string]float64)
		}
		pivot[l.week][leadBucket(l.days)] += l.w
		weekDays[l.week] = append(weekDays[l.week], float64(l.days))
	}
	weeks := make([]string, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(weeks)))

	columns := []Column{{Key: "week", Label: "Week", Type: "text", Align: "left"}}
	for _, b := range leadBuckets {
		columns = append(columns, Column{Key: b, Label: b + " days", Type: "number", Align: "right"})
	}
	columns = append(columns, Column{Key: "avg", Label: "Avg lead time", Type: "number", Align: "right"})

	totals := make(map[string]float64)
	rows := make([][]string, 0, len(weeks)+1)
	for _, week := range weeks {
		row := []string{week}
		for _, b := range leadBuckets {
			val := pivot[week][b]
			totals[b] += val
			row = append(row, formatNumber(val, 1))
		}
		row = append(row, formatNumber(mean(weekDays[week]), 1))
		rows = append(rows, row)
	}
	totalRow := []string{"Total"}
	for _, b := range leadBuckets {
		totalRow = append(totalRow, formatNumber(totals[b], 1))
	}
	totalRow = append(totalRow, formatNumber(sum/float64(len(values)), 1))
	rows = append(rows, totalRow)

	sections := []Section{{Title: "Lead times", Metrics: metrics}}
	if histogram != nil {
		sections = append(sections, Section{Title: "Lead time distribution", Chart: histogram})
	}
	sections = append(sections, Section{
		Title: "Lead time buckets by week",
		Table: &TableData{Title: "Weighted shipments per lead-time bucket", Columns: columns, Rows: rows},
	})
	return sections
}

func leadBucket(days int) string {
	switch {
	case days < 3:
		return "<3"
	case days < 7:
		return "4-7"
	case days < 14:
		return "7-14"
	default:
		return ">14"
	}
}

// workingDays counts Monday–Friday days from the order date (inclusive) to
// the load date (exclusive). Negative when the load date precedes the order.
func workingDays(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}
	days := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return sign * days
}

// ============================================================================
// SMALL NUMERIC HELPERS
// ============================================================================

// rollingMean is a centered moving average with a minimum of one
// contributing value, so the edges stay defined.
func rollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	half := window / 2
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + (window-1)/2
		if hi >= len(values) {
			hi = len(values) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
