package engine

import (
	"math"
	"sort"

	"github.com/freightlens/freightlens/dataset"
)

// ============================================================================
// WEIGHTED AGGREGATOR — group, sort, top-N
// ============================================================================
// Every count the system reports is a Shipment Weight sum, never a row
// count. Sorting is stable throughout so top-N ties break by original key
// order and results stay reproducible run to run.
// ============================================================================

// Group is one aggregation bucket: a key, its summed shipment weight, and a
// sub-view of the rows that produced it.
type Group struct {
	Key    string
	Weight float64
	Count  int
	View   View
}

// SortMode selects group ordering.
type SortMode int

const (
	// SortNone preserves first-seen key order.
	SortNone SortMode = iota
	// SortWeightDesc orders by summed weight, largest first.
	SortWeightDesc
	// SortKeyAsc orders by key label; "YYYY-MM" and "YYYY-Wnn" labels sort
	// chronologically under it.
	SortKeyAsc
	// SortKeyDesc is SortKeyAsc reversed (most recent period first).
	SortKeyDesc
)

// WeightedTotal sums Shipment Weight across a view.
func WeightedTotal(v View) float64 {
	var total float64
	for i := 0; i < v.Len(); i++ {
		total += v.Row(i).ShipmentWeight
	}
	return total
}

// GroupWeight buckets a view by key and sums Shipment Weight per bucket, in
// first-seen key order. Rows whose key is empty are dropped, mirroring how
// absent categorical values are excluded from groupings.
func GroupWeight(v View, key func(*dataset.Row) string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < v.Len(); i++ {
		k := key(v.Row(i))
		if k == "" {
			continue
		}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], v.at(i))
	}

	groups := make([]Group, 0, len(order))
	for _, k := range order {
		sub := subView(v, grouped[k])
		groups = append(groups, Group{
			Key:    k,
			Weight: WeightedTotal(sub),
			Count:  sub.Len(),
			View:   sub,
		})
	}
	return groups
}

// SortGroups orders groups in place by the given mode. All modes are stable.
func SortGroups(groups []Group, mode SortMode) {
	switch mode {
	case SortWeightDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Weight > groups[j].Weight })
	case SortKeyAsc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	case SortKeyDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key > groups[j].Key })
	}
}

// TopN returns the n heaviest groups (stable ties) plus the residual weight
// of everything below the cut. Callers include an "Others" bucket only when
// the residual is strictly positive.
func TopN(groups []Group, n int) (top []Group, others float64) {
	sorted := make([]Group, len(groups))
	copy(sorted, groups)
	SortGroups(sorted, SortWeightDesc)

	if n >= len(sorted) {
		return sorted, 0
	}
	top = sorted[:n]
	for _, g := range sorted[n:] {
		others += g.Weight
	}
	return top, others
}

// ============================================================================
// MEASURE HELPERS — optional numeric columns
// ============================================================================

// SumMeasure sums an optional measure over the rows where it is present,
// returning the sum and the number of contributing rows.
func SumMeasure(v View, measure func(*dataset.Row) dataset.OptFloat) (float64, int) {
	var total float64
	var n int
	for i := 0; i < v.Len(); i++ {
		if m := measure(v.Row(i)); m.Valid {
			total += m.Value
			n++
		}
	}
	return total, n
}

// MeanMeasure averages an optional measure over the rows where it is
// present. Absent when no row carries the measure.
func MeanMeasure(v View, measure func(*dataset.Row) dataset.OptFloat) dataset.OptFloat {
	total, n := SumMeasure(v, measure)
	if n == 0 {
		return dataset.OptFloat{}
	}
	return dataset.SomeFloat(total / float64(n))
}

// CollectMeasure gathers the present values of an optional measure in row
// order.
func CollectMeasure(v View, measure func(*dataset.Row) dataset.OptFloat) []float64 {
	out := make([]float64, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if m := measure(v.Row(i)); m.Valid {
			out = append(out, m.Value)
		}
	}
	return out
}

// DistinctCount counts distinct non-empty key values across a view.
func DistinctCount(v View, key func(*dataset.Row) string) int {
	seen := make(map[string]bool)
	for i := 0; i < v.Len(); i++ {
		if k := key(v.Row(i)); k != "" {
			seen[k] = true
		}
	}
	return len(seen)
}

// ============================================================================
// DISTRIBUTION HELPERS — histograms and quantiles for the operations views
// ============================================================================

// Bin is one histogram bucket over [From, To).
type Bin struct {
	From  float64
	To    float64
	Count int
}

// Histogram buckets values into equal-width bins. Returns nil for empty
// input; a single-valued input produces one bin containing everything.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []Bin{{From: lo, To: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{From: lo + float64(i)*width, To: lo + float64(i+1)*width}
	}
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1 // hi lands in the last bin
		}
		out[i].Count++
	}
	return out
}

// Quantile returns the q-th quantile (0..1) with linear interpolation.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Median is the 0.5 quantile.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}
