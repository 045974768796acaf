package views

import (
	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

// defaultTopCustomers is the customer cut when the caller does not choose.
const defaultTopCustomers = 10

// Customers renders the customer page: the top-N customers by weighted
// shipments, their monthly volume trend, and the customer × business line
// breakdown. topN ≤ 0 uses the default.
func Customers(s *session.Session, topN int) Page {
	if topN <= 0 {
		topN = defaultTopCustomers
	}
	page := Page{View: "customers", Title: "Customers"}
	v, ok := filteredOrNotice(s, &page)
	if !ok {
		return page
	}

	byCustomer := engine.GroupWeight(v, func(r *dataset.Row) string { return r.CustomerName })
	top, _ := engine.TopN(byCustomer, topN)
	if len(top) == 0 {
		info(&page, "no customers in the current selection")
		return page
	}

	page.Metrics = append(page.Metrics,
		metricInt("Customers", float64(len(byCustomer))),
		metric("Weighted shipments", engine.WeightedTotal(v)),
	)

	if chart := groupChart("bar", "Top customers", "Customer", top); chart != nil {
		page.Sections = append(page.Sections, Section{Title: "Top customers by weighted shipments", Chart: chart})
	}

	page.Sections = append(page.Sections, monthlyTrendSection(top))

	if s.Caps().Has(dataset.FieldBusinessLine) {
		page.Sections = append(page.Sections, businessLineSection(top))
	} else {
		warn(&page, "column %s not present in this export, skipping business line breakdown", dataset.FieldBusinessLine)
	}
	return page
}

// monthlyTrendSection plots one monthly series per top customer, all aligned
// on the union of months so the lines share an axis.
func monthlyTrendSection(top []engine.Group) Section {
	monthSet := make(map[string]bool)
	perCustomer := make(map[string][]engine.Group, len(top))
	for _, customer := range top {
		months := engine.GroupWeight(customer.View, func(r *dataset.Row) string { return r.OrderMonth })
		perCustomer[customer.Key] = months
		for _, m := range months {
			monthSet[m.Key] = true
		}
	}
	months := make([]engine.Group, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, engine.Group{Key: m})
	}
	engine.SortGroups(months, engine.SortKeyAsc)

	series := make([]ChartSeries, 0, len(top))
	for _, customer := range top {
		weights := make(map[string]float64)
		for _, m := range perCustomer[customer.Key] {
			weights[m.Key] = m.Weight
		}
		points := make([]ChartPoint, 0, len(months))
		for _, m := range months {
			points = append(points, ChartPoint{Label: m.Key, Value: round2(weights[m.Key])})
		}
		series = append(series, ChartSeries{Name: customer.Key, Data: points})
	}

	title := "Monthly volume per top customer"
	return Section{Title: title, Chart: &ChartConfig{
		ChartType:  "line",
		Title:      title,
		XAxis:      "Month",
		YAxis:      "Weighted shipments",
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
		ShowGrid:   true,
	}}
}

// businessLineSection stacks each top customer's weight by business line.
func businessLineSection(top []engine.Group) Section {
	lineSet := make(map[string]bool)
	perCustomer := make(map[string]map[string]float64, len(top))
	for _, customer := range top {
		lines := engine.GroupWeight(customer.View, func(r *dataset.Row) string { return r.BusinessLine })
		weights := make(map[string]float64, len(lines))
		for _, l := range lines {
			weights[l.Key] = l.Weight
			lineSet[l.Key] = true
		}
		perCustomer[customer.Key] = weights
	}
	lines := make([]engine.Group, 0, len(lineSet))
	for l := range lineSet {
		lines = append(lines, engine.Group{Key: l})
	}
	engine.SortGroups(lines, engine.SortKeyAsc)

	series := make([]ChartSeries, 0, len(lines))
	for i, line := range lines {
		points := make([]ChartPoint, 0, len(top))
		for _, customer := range top {
			points = append(points, ChartPoint{Label: customer.Key, Value: round2(perCustomer[customer.Key][line.Key])})
		}
		series = append(series, ChartSeries{Name: line.Key, Data: points, Color: defaultColors[i%len(defaultColors)]})
	}

	title := "Top customers by business line"
	return Section{Title: title, Chart: &ChartConfig{
		ChartType:  "bar",
		Title:      title,
		XAxis:      "Customer",
		YAxis:      "Weighted shipments",
		Series:     series,
		ShowLegend: true,
		ShowGrid:   true,
		Stacked:    true,
	}}
}
