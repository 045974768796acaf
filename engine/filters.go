package engine

import (
	"log/slog"
	"time"

	"github.com/freightlens/freightlens/dataset"
)

// ============================================================================
// FILTERS — conjunction of optional sidebar constraints
// ============================================================================
// Single pass: a row passes when it satisfies ALL specified constraints.
// An unspecified constraint imposes no restriction, and a row with an absent
// order-placed date always passes the date-range constraint.
// ============================================================================

// DateRange is an inclusive [From, To] range on the order-placed timestamp.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range, inclusive both ends.
func (dr DateRange) Contains(t time.Time) bool {
	return !t.Before(dr.From) && !t.After(dr.To)
}

// Filters is the set of independent, optional sidebar constraints.
// Terms values are OR-combined within a field, AND-combined across fields.
type Filters struct {
	OrderPlaced *DateRange
	Terms       map[dataset.Field][]string
}

// FilterFields are the categorical columns the sidebar can constrain.
var FilterFields = []dataset.Field{
	dataset.FieldCustomerName,
	dataset.FieldLoadCountry,
	dataset.FieldUnloadCountry,
	dataset.FieldMarket,
	dataset.FieldStatus,
	dataset.FieldModality,
	dataset.FieldBusinessLine,
	dataset.FieldOrderAllocation,
	dataset.FieldSpotDedicated,
	dataset.FieldOrderPlacedDay,
}

// IsEmpty reports whether no constraint is specified.
func (f Filters) IsEmpty() bool {
	if f.OrderPlaced != nil {
		return false
	}
	for _, vals := range f.Terms {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Apply returns the sub-view of rows satisfying every specified constraint.
// Zero constraints return the input view unchanged, and an empty result is a
// valid outcome, not an error.
func Apply(v View, f Filters) View {
	if f.IsEmpty() {
		return v
	}

	sets := make(map[dataset.Field]map[string]bool, len(f.Terms))
	for field, allowed := range f.Terms {
		if len(allowed) > 0 {
			set := make(map[string]bool, len(allowed))
			for _, val := range allowed {
				set[val] = true
			}
			sets[field] = set
		}
	}

	idx := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if f.OrderPlaced != nil && r.OrderPlaced.Valid && !f.OrderPlaced.Contains(r.OrderPlaced.Value) {
			continue
		}
		pass := true
		for field, set := range sets {
			if !set[r.Category(field)] {
				pass = false
				break
			}
		}
		if pass {
			idx = append(idx, v.at(i))
		}
	}

	out := subView(v, idx)
	slog.Debug("filters applied", "in", v.Len(), "out", out.Len())
	return out
}
