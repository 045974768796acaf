package views

import (
	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

// topCarriers is the carrier cut on the operations page.
const topCarriers = 10

// Operations renders the operations page: KM utilization metrics and
// distribution, cargo weight distribution, modality split, top carriers,
// and legal entity breakdown.
func Operations(s *session.Session) Page {
	page := Page{View: "operations", Title: "Operations"}
	v, ok := filteredOrNotice(s, &page)
	if !ok {
		return page
	}
	caps := s.Caps()

	if caps.Has(dataset.FieldTotalKM, dataset.FieldFullKM, dataset.FieldEmptyKM) {
		page.Sections = append(page.Sections, kmSections(v)...)
	} else {
		warn(&page, "KM columns not present in this export, skipping utilization")
	}

	if caps.Has(dataset.FieldWeight) {
		weights := engine.CollectMeasure(v, func(r *dataset.Row) dataset.OptFloat { return r.Weight })
		if chart := binChart("Cargo weight distribution", "Weight (kg)", engine.Histogram(weights, 20)); chart != nil {
			page.Sections = append(page.Sections, Section{Title: "Cargo weight distribution", Chart: chart})
		}
	}

	if caps.Has(dataset.FieldModality) {
		groups := engine.GroupWeight(v, func(r *dataset.Row) string { return r.Modality })
		engine.SortGroups(groups, engine.SortWeightDesc)
		if chart := groupChart("pie", "Shipments by modality", "Modality", groups); chart != nil {
			page.Sections = append(page.Sections, Section{Title: "Shipments by modality", Chart: chart})
		}
	} else {
		warn(&page, "column %s not present in this export, skipping modality", dataset.FieldModality)
	}

	if caps.Has(dataset.FieldCarrier) {
		carriers := engine.GroupWeight(v.Where(func(r *dataset.Row) bool {
			return r.Carrier != "" && r.Carrier != "-"
		}), func(r *dataset.Row) string { return r.Carrier })
		top, _ := engine.TopN(carriers, topCarriers)
		if chart := groupChart("bar", "Top carriers", "Carrier", top); chart != nil {
			page.Sections = append(page.Sections, Section{Title: "Top carriers", Chart: chart})
		}
	} else {
		warn(&page, "column %s not present in this export, skipping carriers", dataset.FieldCarrier)
	}

	if caps.Has(dataset.FieldLegalEntity) {
		groups := engine.GroupWeight(v, func(r *dataset.Row) string { return r.LegalEntity })
		engine.SortGroups(groups, engine.SortWeightDesc)
		if chart := groupChart("bar", "Shipments by legal entity", "Legal entity", groups); chart != nil {
			page.Sections = append(page.Sections, Section{Title: "Shipments by legal entity", Chart: chart})
		}
	}
	return page
}

// kmSections computes the utilization metrics and histogram over rows that
// carry all three KM measures. Rows with a zero total are excluded from the
// overall ratio so it stays a pure full/total split.
func kmSections(v engine.View) []Section {
	complete := v.Where(func(r *dataset.Row) bool {
		return r.TotalKM.Valid && r.FullKM.Valid && r.EmptyKM.Valid && r.TotalKM.Value != 0
	})
	if complete.Len() == 0 {
		return nil
	}

	var sumFull, sumTotal float64
	for i := 0; i < complete.Len(); i++ {
		r := complete.Row(i)
		sumFull += r.FullKM.Value
		sumTotal += r.TotalKM.Value
	}

	metrics := []Metric{}
	if avg := engine.MeanMeasure(complete, func(r *dataset.Row) dataset.OptFloat { return r.FullKM }); avg.Valid {
		metrics = append(metrics, metric("Avg full KM", avg.Value))
	}
	if avg := engine.MeanMeasure(complete, func(r *dataset.Row) dataset.OptFloat { return r.EmptyKM }); avg.Valid {
		metrics = append(metrics, metric("Avg empty KM", avg.Value))
	}
	metrics = append(metrics, metric("Overall utilization %", sumFull/sumTotal*100))

	// Per-row utilization capped to the plausible [0, 100] band; exports
	// occasionally carry full KM above total KM.
	utils := engine.CollectMeasure(complete, func(r *dataset.Row) dataset.OptFloat { return r.KMUtilization })
	inRange := utils[:0:0]
	for _, u := range utils {
		if u >= 0 && u <= 100 {
			inRange = append(inRange, u)
		}
	}

	sections := []Section{{Title: "KM utilization", Metrics: metrics}}
	if chart := binChart("Utilization distribution", "Full KM / Total KM (%)", engine.Histogram(inRange, 20)); chart != nil {
		sections = append(sections, Section{Title: "Utilization distribution", Chart: chart})
	}
	return sections
}
