package engine

import (
	"math"
	"sort"

	"github.com/freightlens/freightlens/dataset"
)

// ============================================================================
// PERIOD COMPARISON ENGINE
// ============================================================================
// Buckets two independently selected months into a business line → customer
// hierarchy (top-15 customers per line plus an "Others" bucket), outer-joins
// the two sides, and computes signed deltas. The base month is the reference
// point: Difference = base − compare, regardless of chronological order.
// ============================================================================

// OthersBucket is the pseudo-customer absorbing everyone below the top-15
// cut within a business line.
const OthersBucket = "Others"

// unknownBusinessLine is the sentinel marker excluded from comparisons.
const unknownBusinessLine = "-"

// comparisonTopN is the per-business-line customer cut.
const comparisonTopN = 15

// CompareRow is one node of the comparison hierarchy. Customer is "" on
// business-line roll-up rows.
type CompareRow struct {
	BusinessLine string
	Customer     string
	Base         float64
	Compare      float64
	Difference   float64 // Base − Compare, signed
	PctChange    float64 // Difference / Base × 100; 0 when Base is 0
	Size         float64 // max(Base, Compare) floored at 1, for node sizing
}

// CompareResult is the full output of a month-over-month comparison.
type CompareResult struct {
	Base         Month
	Compare      Month
	Rows         []CompareRow // per (business line, customer), join order
	Lines        []CompareRow // business-line roll-ups
	BaseTotal    float64
	CompareTotal float64
}

// ComparePeriods compares two months over a view, which callers pass
// unfiltered. Rows with the sentinel "-" or absent business line are
// excluded. An entity present in only one month is still reported, with
// zero weight on the missing side.
func ComparePeriods(v View, base, compare Month) *CompareResult {
	baseWeights, baseOrder := monthBuckets(v, base)
	compWeights, compOrder := monthBuckets(v, compare)

	res := &CompareResult{Base: base, Compare: compare}

	// Outer join: base-side keys in order, then compare-only keys.
	for _, key := range baseOrder {
		res.Rows = append(res.Rows, makeCompareRow(key, baseWeights[key], compWeights[key]))
	}
	for _, key := range compOrder {
		if _, inBase := baseWeights[key]; !inBase {
			res.Rows = append(res.Rows, makeCompareRow(key, 0, compWeights[key]))
		}
	}

	for _, row := range res.Rows {
		res.BaseTotal += row.Base
		res.CompareTotal += row.Compare
	}

	res.Lines = rollUpLines(res.Rows)
	return res
}

type nodeKey struct {
	line     string
	customer string
}

// monthBuckets restricts the view to one month and buckets weight by
// business line → customer, keeping the top 15 customers per line plus a
// strictly-positive Others bucket.
func monthBuckets(v View, m Month) (map[nodeKey]float64, []nodeKey) {
	start, end := m.Bounds()
	monthView := v.Where(func(r *dataset.Row) bool {
		return r.OrderPlaced.Valid &&
			!r.OrderPlaced.Value.Before(start) &&
			!r.OrderPlaced.Value.After(end)
	})

	lines := GroupWeight(monthView, func(r *dataset.Row) string { return r.BusinessLine })
	SortGroups(lines, SortKeyAsc)

	weights := make(map[nodeKey]float64)
	var order []nodeKey

	for _, line := range lines {
		if line.Key == unknownBusinessLine {
			continue
		}
		customers := GroupWeight(line.View, func(r *dataset.Row) string { return r.CustomerName })
		top, others := TopN(customers, comparisonTopN)
		for _, c := range top {
			key := nodeKey{line: line.Key, customer: c.Key}
			weights[key] = c.Weight
			order = append(order, key)
		}
		if others > 0 {
			key := nodeKey{line: line.Key, customer: OthersBucket}
			weights[key] = others
			order = append(order, key)
		}
	}
	return weights, order
}

func makeCompareRow(key nodeKey, base, compare float64) CompareRow {
	return CompareRow{
		BusinessLine: key.line,
		Customer:     key.customer,
		Base:         base,
		Compare:      compare,
		Difference:   base - compare,
		PctChange:    pctChange(base-compare, base),
		Size:         math.Max(math.Max(base, compare), 1),
	}
}

// rollUpLines aggregates the customer rows one level up to business lines,
// applying the same difference and percent-change rules.
func rollUpLines(rows []CompareRow) []CompareRow {
	byLine := make(map[string]*CompareRow)
	var order []string
	for _, row := range rows {
		agg, ok := byLine[row.BusinessLine]
		if !ok {
			agg = &CompareRow{BusinessLine: row.BusinessLine}
			byLine[row.BusinessLine] = agg
			order = append(order, row.BusinessLine)
		}
		agg.Base += row.Base
		agg.Compare += row.Compare
		agg.Difference += row.Difference
	}
	sort.Strings(order)

	out := make([]CompareRow, 0, len(order))
	for _, line := range order {
		agg := byLine[line]
		agg.PctChange = pctChange(agg.Difference, agg.Base)
		agg.Size = math.Max(math.Max(agg.Base, agg.Compare), 1)
		out = append(out, *agg)
	}
	return out
}

// pctChange is difference/base×100 rounded to one decimal, defined as 0 when
// the base weight is zero — never a division fault.
func pctChange(difference, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return math.Round(difference/base*1000) / 10
}
