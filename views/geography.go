package views

import (
	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

// Geography cuts.
const (
	topCountries = 15
	topRoutes    = 15
	topRegions   = 20
)

// RegionSide selects which region column the drill-down uses.
type RegionSide string

const (
	RegionLoad   RegionSide = "load"
	RegionUnload RegionSide = "unload"
)

// Geography renders the geography page: top load/unload countries, top
// routes, and a region drill-down on the chosen side.
func Geography(s *session.Session, side RegionSide) Page {
	page := Page{View: "geography", Title: "Geography"}
	v, ok := filteredOrNotice(s, &page)
	if !ok {
		return page
	}
	caps := s.Caps()

	type countryCut struct {
		field dataset.Field
		title string
		key   func(*dataset.Row) string
	}
	cuts := []countryCut{
		{dataset.FieldLoadCountry, "Top load countries", func(r *dataset.Row) string { return r.LoadCountry }},
		{dataset.FieldUnloadCountry, "Top unload countries", func(r *dataset.Row) string { return r.UnloadCountry }},
	}
	for _, cut := range cuts {
		if !caps.Has(cut.field) {
			warn(&page, "column %s not present in this export, skipping %q", cut.field, cut.title)
			continue
		}
		groups := engine.GroupWeight(v, cut.key)
		top, _ := engine.TopN(groups, topCountries)
		if chart := groupChart("bar", cut.title, "Country", top); chart != nil {
			page.Sections = append(page.Sections, Section{Title: cut.title, Chart: chart})
		}
	}

	if caps.Has(dataset.FieldLoadCountry, dataset.FieldUnloadCountry) {
		routes := engine.GroupWeight(v, func(r *dataset.Row) string { return r.Route })
		top, _ := engine.TopN(routes, topRoutes)
		if chart := groupChart("bar", "Top routes", "Route", top); chart != nil {
			page.Sections = append(page.Sections, Section{Title: "Top routes", Chart: chart})
		}
	}

	regionField, regionKey := dataset.FieldLoadRegion, func(r *dataset.Row) string { return r.LoadRegion }
	if side == RegionUnload {
		regionField, regionKey = dataset.FieldUnloadRegion, func(r *dataset.Row) string { return r.UnloadRegion }
	}
	if caps.Has(regionField) {
		groups := engine.GroupWeight(v, regionKey)
		top, _ := engine.TopN(groups, topRegions)
		title := "Top " + string(side) + " regions"
		if chart := groupChart("bar", title, "Region", top); chart != nil {
			page.Sections = append(page.Sections, Section{Title: title, Chart: chart})
		}
	} else {
		warn(&page, "column %s not present in this export, skipping region drill-down", regionField)
	}
	return page
}
