package engine

import (
	"sort"
	"time"

	"github.com/freightlens/freightlens/dataset"
)

// ============================================================================
// FIRST-OCCURRENCE / NEW-ENTITY DETECTOR
// ============================================================================
// Two phases over the ENTIRE unfiltered dataset — sidebar filters are
// deliberately bypassed so "new" reflects true first contact:
//
//   1. Global: minimum order-placed timestamp per entity key.
//   2. Windowed attribution: entities first occurring inside the selected
//      period, with weighted activity summed over a trailing window anchored
//      at first contact (30 days monthly, 7 days weekly). The window may
//      extend past the end of the selection period.
// ============================================================================

// Entity is one detected customer or lane.
type Entity struct {
	Key          string
	Customer     string
	Route        string // lanes only: "load city → unload city"
	First        time.Time
	WindowWeight float64
	NewCustomer  bool // lanes only: the lane's customer is itself new this period
}

// FirstOccurrence is one entity's global first-contact timestamp.
type FirstOccurrence struct {
	Key   string
	First time.Time
}

// FirstOccurrences computes the minimum order-placed timestamp per distinct
// key across the whole view. Rows without an order-placed date, or with an
// empty key, contribute nothing; an entity with no datable rows does not
// appear.
func FirstOccurrences(v View, key func(*dataset.Row) string) []FirstOccurrence {
	firsts, order, _ := occurrenceIndex(v, key)
	out := make([]FirstOccurrence, 0, len(order))
	for _, k := range order {
		out = append(out, FirstOccurrence{Key: k, First: firsts[k]})
	}
	return out
}

// occurrenceIndex buckets datable rows by key and tracks each key's minimum
// order-placed timestamp. Keys come back in first-seen order.
func occurrenceIndex(v View, key func(*dataset.Row) string) (map[string]time.Time, []string, map[string][]int) {
	firsts := make(map[string]time.Time)
	buckets := make(map[string][]int)
	var order []string

	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if !r.OrderPlaced.Valid {
			continue
		}
		k := key(r)
		if k == "" {
			continue
		}
		if _, seen := firsts[k]; !seen {
			order = append(order, k)
			firsts[k] = r.OrderPlaced.Value
		} else if r.OrderPlaced.Value.Before(firsts[k]) {
			firsts[k] = r.OrderPlaced.Value
		}
		buckets[k] = append(buckets[k], i)
	}
	return firsts, order, buckets
}

// detectNew selects entities whose first occurrence falls inside the period
// bounds (inclusive) and sums their weighted activity over the trailing
// window. Entities with a zero window sum are still reported.
func detectNew(v View, key func(*dataset.Row) string, p Period) []Entity {
	start, end := p.Bounds()
	window := p.WindowDays()
	firsts, order, buckets := occurrenceIndex(v, key)

	var out []Entity
	for _, k := range order {
		first := firsts[k]
		if first.Before(start) || first.After(end) {
			continue
		}
		cutoff := first.AddDate(0, 0, window)
		var sum float64
		for _, idx := range buckets[k] {
			r := v.Row(idx)
			t := r.OrderPlaced.Value
			if !t.Before(first) && !t.After(cutoff) {
				sum += r.ShipmentWeight
			}
		}
		out = append(out, Entity{Key: k, First: first, WindowWeight: sum})
	}

	// Most recent first contact first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].First.After(out[j].First) })
	return out
}

// NewCustomers reports customers whose first order falls in the period,
// with their first-window weighted order count.
func NewCustomers(v View, p Period) []Entity {
	entities := detectNew(v, func(r *dataset.Row) string { return r.CustomerName }, p)
	for i := range entities {
		entities[i].Customer = entities[i].Key
	}
	return entities
}

// NewLanes reports customer×route lanes whose first order falls in the
// period. Each lane is additionally classified by whether its customer is
// itself new in the same period; the classification is informational and
// does not change window arithmetic.
func NewLanes(v View, p Period) []Entity {
	newCustomers := make(map[string]bool)
	for _, c := range NewCustomers(v, p) {
		newCustomers[c.Key] = true
	}

	// A representative row per lane supplies the display parts.
	parts := make(map[string]*dataset.Row)
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if lane := r.Lane(); parts[lane] == nil {
			parts[lane] = r
		}
	}

	lanes := detectNew(v, func(r *dataset.Row) string { return r.Lane() }, p)
	for i := range lanes {
		if r := parts[lanes[i].Key]; r != nil {
			lanes[i].Customer = r.CustomerName
			lanes[i].Route = r.LaneRoute()
		}
		lanes[i].NewCustomer = newCustomers[lanes[i].Customer]
	}
	return lanes
}
