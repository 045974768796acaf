package views

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

// ============================================================================
// SHARED VIEW HELPERS
// ============================================================================

// filteredOrNotice resolves the session's filtered view. A gate or data
// problem becomes a warning notice on the page; the caller returns early.
func filteredOrNotice(s *session.Session, page *Page) (engine.View, bool) {
	v, err := s.Filtered()
	if err != nil {
		page.Notices = append(page.Notices, Notice{Level: "warning", Message: err.Error()})
		return engine.View{}, false
	}
	if v.Len() == 0 {
		page.Notices = append(page.Notices, Notice{Level: "info", Message: "no rows match the current filters"})
	}
	return v, true
}

// unfilteredOrNotice resolves the session's unfiltered view for the
// detector and comparison pages.
func unfilteredOrNotice(s *session.Session, page *Page) (engine.View, bool) {
	v, err := s.Unfiltered()
	if err != nil {
		page.Notices = append(page.Notices, Notice{Level: "warning", Message: err.Error()})
		return engine.View{}, false
	}
	return v, true
}

func warn(page *Page, format string, args ...any) {
	page.Notices = append(page.Notices, Notice{Level: "warning", Message: fmt.Sprintf(format, args...)})
}

func info(page *Page, format string, args ...any) {
	page.Notices = append(page.Notices, Notice{Level: "info", Message: fmt.Sprintf(format, args...)})
}

// ============================================================================
// NUMBER FORMATTING
// ============================================================================

// formatNumber renders a float with thousands separators and a fixed number
// of decimals, trimming ".0" tails at zero decimals.
func formatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// metric builds a headline metric with one-decimal formatting.
func metric(label string, raw float64) Metric {
	return Metric{Label: label, Value: formatNumber(raw, 1), Raw: raw}
}

// metricInt builds a headline metric formatted without decimals.
func metricInt(label string, raw float64) Metric {
	return Metric{Label: label, Value: formatNumber(raw, 0), Raw: raw}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ============================================================================
// CHART CONSTRUCTION FROM GROUPS
// ============================================================================

// groupChart turns aggregated groups into a single-series chart of the given
// type. Returns nil when there is nothing to plot.
func groupChart(chartType, title, xAxis string, groups []engine.Group) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{Label: g.Key, Value: round2(g.Weight)})
	}
	cfg := &ChartConfig{
		ChartType:  chartType,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      "Weighted shipments",
		Series:     []ChartSeries{{Name: title, Data: points}},
		ShowLegend: chartType == "pie",
		ShowGrid:   chartType != "pie",
	}
	cfg.Colors = assignColors(len(points))
	return cfg
}

// binChart turns histogram bins into a bar chart with range labels.
func binChart(title, xAxis string, bins []engine.Bin) *ChartConfig {
	if len(bins) == 0 {
		return nil
	}
	points := make([]ChartPoint, 0, len(bins))
	for _, b := range bins {
		label := fmt.Sprintf("%s–%s", formatNumber(b.From, 0), formatNumber(b.To, 0))
		points = append(points, ChartPoint{Label: label, Value: float64(b.Count)})
	}
	return &ChartConfig{
		ChartType: "histogram",
		Title:     title,
		XAxis:     xAxis,
		YAxis:     "Rows",
		Series:    []ChartSeries{{Name: title, Data: points}},
		ShowGrid:  true,
	}
}
