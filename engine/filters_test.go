package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlens/freightlens/dataset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testView() View {
	rows := []dataset.Row{
		{CustomerName: "Acme", Market: "Benelux", Status: "Delivered", ShipmentWeight: 1.0, OrderPlaced: dataset.SomeTime(day(2025, 1, 5))},
		{CustomerName: "Beta", Market: "DACH", Status: "Delivered", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 1, 20))},
		{CustomerName: "Acme", Market: "Benelux", Status: "Cancelled", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 2, 3))},
		{CustomerName: "Gamma", Market: "Nordics", Status: "Delivered", ShipmentWeight: 1.0},
	}
	return NewView(&dataset.Table{Rows: rows})
}

func TestApplyNoConstraints(t *testing.T) {
	v := testView()
	out := Apply(v, Filters{})
	require.Equal(t, v.Len(), out.Len())
	for i := 0; i < v.Len(); i++ {
		assert.Equal(t, v.Row(i).CustomerName, out.Row(i).CustomerName)
	}
}

func TestApplyTermFilter(t *testing.T) {
	v := testView()
	out := Apply(v, Filters{Terms: map[dataset.Field][]string{
		dataset.FieldCustomerName: {"Acme"},
	}})
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "Delivered", out.Row(0).Status)
	assert.Equal(t, "Cancelled", out.Row(1).Status)
}

func TestApplyTermsAreOrWithinFieldAndAcrossFields(t *testing.T) {
	v := testView()
	out := Apply(v, Filters{Terms: map[dataset.Field][]string{
		dataset.FieldCustomerName: {"Acme", "Beta"},
		dataset.FieldStatus:       {"Delivered"},
	}})
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "Acme", out.Row(0).CustomerName)
	assert.Equal(t, "Beta", out.Row(1).CustomerName)
}

func TestApplyDateRangeInclusiveAndAbsentPasses(t *testing.T) {
	v := testView()
	out := Apply(v, Filters{OrderPlaced: &DateRange{
		From: day(2025, 1, 5),
		To:   day(2025, 1, 20),
	}})
	// Both boundary rows pass, plus the row with no order-placed date.
	require.Equal(t, 3, out.Len())
	assert.Equal(t, "Acme", out.Row(0).CustomerName)
	assert.Equal(t, "Beta", out.Row(1).CustomerName)
	assert.Equal(t, "Gamma", out.Row(2).CustomerName)
}

func TestApplyIdempotent(t *testing.T) {
	v := testView()
	f := Filters{Terms: map[dataset.Field][]string{dataset.FieldMarket: {"Benelux"}}}
	once := Apply(v, f)
	twice := Apply(once, f)
	require.Equal(t, once.Len(), twice.Len())
	for i := 0; i < once.Len(); i++ {
		assert.Equal(t, once.Row(i).CustomerName, twice.Row(i).CustomerName)
	}
}

func TestApplyEmptyResultIsValid(t *testing.T) {
	v := testView()
	out := Apply(v, Filters{Terms: map[dataset.Field][]string{
		dataset.FieldCustomerName: {"Nobody"},
	}})
	assert.Equal(t, 0, out.Len())
}
