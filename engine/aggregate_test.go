package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlens/freightlens/dataset"
)

func TestGroupWeightConservesTotal(t *testing.T) {
	v := testView()
	total := WeightedTotal(v)

	for _, key := range []func(*dataset.Row) string{
		func(r *dataset.Row) string { return r.CustomerName },
		func(r *dataset.Row) string { return r.Market },
		func(r *dataset.Row) string { return r.Status },
	} {
		groups := GroupWeight(v, key)
		var sum float64
		for _, g := range groups {
			sum += g.Weight
		}
		assert.InDelta(t, total, sum, 1e-9)
	}
}

func TestGroupWeightDropsEmptyKeysAndKeepsOrder(t *testing.T) {
	rows := []dataset.Row{
		{Market: "B", ShipmentWeight: 1},
		{Market: "", ShipmentWeight: 1},
		{Market: "A", ShipmentWeight: 0.5},
		{Market: "B", ShipmentWeight: 0.5},
	}
	groups := GroupWeight(NewView(&dataset.Table{Rows: rows}), func(r *dataset.Row) string { return r.Market })

	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Key)
	assert.Equal(t, 1.5, groups[0].Weight)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "A", groups[1].Key)
	assert.Equal(t, 0.5, groups[1].Weight)
}

func TestTopNOthersResidual(t *testing.T) {
	groups := []Group{
		{Key: "a", Weight: 5},
		{Key: "b", Weight: 3},
		{Key: "c", Weight: 2},
		{Key: "d", Weight: 1},
	}

	top, others := TopN(groups, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Key)
	assert.Equal(t, "b", top[1].Key)
	assert.Equal(t, 3.0, others)

	top, others = TopN(groups, 10)
	assert.Len(t, top, 4)
	assert.Equal(t, 0.0, others)
}

func TestSortGroupsStableOnTies(t *testing.T) {
	groups := []Group{
		{Key: "first", Weight: 2},
		{Key: "second", Weight: 2},
		{Key: "third", Weight: 5},
	}
	SortGroups(groups, SortWeightDesc)
	assert.Equal(t, []string{"third", "first", "second"}, []string{groups[0].Key, groups[1].Key, groups[2].Key})
}

func TestMeasureHelpers(t *testing.T) {
	rows := []dataset.Row{
		{Weight: dataset.SomeFloat(10)},
		{},
		{Weight: dataset.SomeFloat(20)},
	}
	v := NewView(&dataset.Table{Rows: rows})
	measure := func(r *dataset.Row) dataset.OptFloat { return r.Weight }

	sum, n := SumMeasure(v, measure)
	assert.Equal(t, 30.0, sum)
	assert.Equal(t, 2, n)

	mean := MeanMeasure(v, measure)
	require.True(t, mean.Valid)
	assert.Equal(t, 15.0, mean.Value)

	assert.Equal(t, []float64{10, 20}, CollectMeasure(v, measure))

	empty := NewView(&dataset.Table{})
	assert.False(t, MeanMeasure(empty, measure).Valid)
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}, 5)
	require.Len(t, bins, 5)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 10, total)
	// The maximum lands in the last bin, not past it.
	assert.Equal(t, 10.0, bins[4].To)
	assert.GreaterOrEqual(t, bins[4].Count, 1)

	assert.Nil(t, Histogram(nil, 5))

	single := Histogram([]float64{3, 3, 3}, 5)
	require.Len(t, single, 1)
	assert.Equal(t, 3, single[0].Count)
}

func TestQuantileAndMedian(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 5.0, Quantile(values, 1))
	assert.Equal(t, 3.0, Median(values))
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
}
