package views

import (
	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

// Overview renders the landing page: headline KPIs plus weighted breakdowns
// by status, spot/dedicated, market, and business line. Sections whose
// source column is missing are skipped with a notice; the rest render.
func Overview(s *session.Session) Page {
	page := Page{View: "overview", Title: "Overview"}
	v, ok := filteredOrNotice(s, &page)
	if !ok {
		return page
	}
	caps := s.Caps()

	page.Metrics = append(page.Metrics,
		metric("Weighted shipments", engine.WeightedTotal(v)),
		metricInt("Unique customers", float64(engine.DistinctCount(v, func(r *dataset.Row) string { return r.CustomerName }))),
	)
	if caps.Has(dataset.FieldWeight) {
		total, _ := engine.SumMeasure(v, func(r *dataset.Row) dataset.OptFloat { return r.Weight })
		page.Metrics = append(page.Metrics, metric("Total cargo weight (t)", total/1000))
	}
	if caps.Has(dataset.FieldTotalKM) {
		if avg := engine.MeanMeasure(v, func(r *dataset.Row) dataset.OptFloat { return r.TotalKM }); avg.Valid {
			page.Metrics = append(page.Metrics, metric("Avg total KM", avg.Value))
		}
	}

	type breakdown struct {
		field     dataset.Field
		title     string
		chartType string
		key       func(*dataset.Row) string
	}
	breakdowns := []breakdown{
		{dataset.FieldStatus, "Shipments by status", "pie", func(r *dataset.Row) string { return r.Status }},
		{dataset.FieldSpotDedicated, "Spot vs dedicated", "bar", func(r *dataset.Row) string { return r.SpotDedicated }},
		{dataset.FieldMarket, "Shipments by market", "bar", func(r *dataset.Row) string { return r.Market }},
		{dataset.FieldBusinessLine, "Shipments by business line", "bar", func(r *dataset.Row) string { return r.BusinessLine }},
	}

	for _, b := range breakdowns {
		if !caps.Has(b.field) {
			warn(&page, "column %s not present in this export, skipping %q", b.field, b.title)
			continue
		}
		groups := engine.GroupWeight(v, b.key)
		engine.SortGroups(groups, engine.SortWeightDesc)
		if chart := groupChart(b.chartType, b.title, b.field.String(), groups); chart != nil {
			page.Sections = append(page.Sections, Section{Title: b.title, Chart: chart})
		}
	}
	return page
}
