package views

import (
	"fmt"

	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

// Comparison renders the month-over-month treemap page for the session's
// selected base ("Main") and compare months. Missing selections default to
// the two most recent months in the data.
func Comparison(s *session.Session) Page {
	page := Page{View: "comparison", Title: "Month comparison"}
	v, ok := unfilteredOrNotice(s, &page)
	if !ok {
		return page
	}

	base, compare := s.ComparisonMonths()
	if base == nil || compare == nil {
		available := engine.AvailableMonths(v)
		if len(available) < 2 {
			info(&page, "need at least two months of data to compare")
			return page
		}
		if base == nil {
			base = &available[0]
		}
		if compare == nil {
			compare = &available[1]
		}
	}
	page.Title = fmt.Sprintf("Month comparison — %s vs %s", base, compare)

	result := engine.ComparePeriods(v, *base, *compare)
	change := result.BaseTotal - result.CompareTotal
	page.Metrics = append(page.Metrics,
		metric(fmt.Sprintf("Main (%s)", base), result.BaseTotal),
		metric(fmt.Sprintf("Compare (%s)", compare), result.CompareTotal),
		changeMetric(change, result.CompareTotal),
	)

	if len(result.Rows) == 0 {
		info(&page, "no shipments with a known business line in either month")
		return page
	}

	page.Sections = append(page.Sections,
		Section{Title: "Customer treemap", Chart: treemapChart(result)},
		Section{Title: "Business lines", Table: linesTable(result)},
		Section{Title: "Customers", Table: customersTable(result)},
	)
	return page
}

func changeMetric(change, against float64) Metric {
	value := formatNumber(change, 1)
	if against > 0 {
		value = fmt.Sprintf("%s (%+.1f%%)", value, change/against*100)
	}
	return Metric{Label: "Change", Value: value, Raw: change}
}

// treemapChart sizes each customer node by its larger month so shrunken
// customers stay visible; the value carried per point is the signed
// difference for coloring.
func treemapChart(result *engine.CompareResult) *ChartConfig {
	points := make([]ChartPoint, 0, len(result.Rows))
	for _, row := range result.Rows {
		points = append(points, ChartPoint{
			Label: row.Customer,
			Group: row.BusinessLine,
			Value: round2(row.Size),
		})
	}
	return &ChartConfig{
		ChartType:  "treemap",
		Title:      fmt.Sprintf("%s vs %s", result.Base, result.Compare),
		Series:     []ChartSeries{{Name: "Customers", Data: points}},
		ShowLegend: true,
	}
}

func comparisonColumns(withCustomer bool) []Column {
	columns := []Column{{Key: "line", Label: "Business line", Type: "text", Align: "left"}}
	if withCustomer {
		columns = append(columns, Column{Key: "customer", Label: "Customer", Type: "text", Align: "left"})
	}
	return append(columns,
		Column{Key: "base", Label: "Main", Type: "number", Align: "right"},
		Column{Key: "compare", Label: "Compare", Type: "number", Align: "right"},
		Column{Key: "difference", Label: "Difference", Type: "number", Align: "right"},
		Column{Key: "pct", Label: "Change %", Type: "percent", Align: "right"},
	)
}

func linesTable(result *engine.CompareResult) *TableData {
	rows := make([][]string, 0, len(result.Lines))
	for _, line := range result.Lines {
		rows = append(rows, []string{
			line.BusinessLine,
			formatNumber(line.Base, 1),
			formatNumber(line.Compare, 1),
			formatNumber(line.Difference, 1),
			formatNumber(line.PctChange, 1),
		})
	}
	return &TableData{Title: "Business line roll-up", Columns: comparisonColumns(false), Rows: rows}
}

func customersTable(result *engine.CompareResult) *TableData {
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, []string{
			row.BusinessLine,
			row.Customer,
			formatNumber(row.Base, 1),
			formatNumber(row.Compare, 1),
			formatNumber(row.Difference, 1),
			formatNumber(row.PctChange, 1),
		})
	}
	return &TableData{Title: "Customer detail", Columns: comparisonColumns(true), Rows: rows}
}
