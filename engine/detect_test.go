package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlens/freightlens/dataset"
)

func detectorView() View {
	rows := []dataset.Row{
		// Old customer: first contact long before the period under test.
		{CustomerName: "Old Co", LoadCity: "Rotterdam", UnloadCity: "Hamburg", ShipmentWeight: 1.0, OrderPlaced: dataset.SomeTime(day(2024, 6, 1))},
		{CustomerName: "Old Co", LoadCity: "Rotterdam", UnloadCity: "Hamburg", ShipmentWeight: 1.0, OrderPlaced: dataset.SomeTime(day(2025, 1, 10))},
		// New customer A: single 1.0 order inside the period.
		{CustomerName: "A", LoadCity: "Antwerp", UnloadCity: "Lyon", ShipmentWeight: 1.0, OrderPlaced: dataset.SomeTime(day(2025, 1, 5))},
		// New customer B: two 0.5 orders three days apart.
		{CustomerName: "B", LoadCity: "Gdansk", UnloadCity: "Vienna", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 1, 20))},
		{CustomerName: "B", LoadCity: "Gdansk", UnloadCity: "Vienna", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 1, 23))},
		// B keeps ordering after the 30-day window; must not count.
		{CustomerName: "B", LoadCity: "Gdansk", UnloadCity: "Vienna", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 3, 15))},
		// Old customer opens a new lane inside the period.
		{CustomerName: "Old Co", LoadCity: "Madrid", UnloadCity: "Porto", ShipmentWeight: 1.0, OrderPlaced: dataset.SomeTime(day(2025, 1, 12))},
	}
	return NewView(&dataset.Table{Rows: rows})
}

func TestFirstOccurrences(t *testing.T) {
	v := detectorView()
	firsts := FirstOccurrences(v, func(r *dataset.Row) string { return r.CustomerName })
	require.Len(t, firsts, 3)

	byKey := make(map[string]time.Time)
	for _, f := range firsts {
		byKey[f.Key] = f.First
	}
	assert.Equal(t, day(2024, 6, 1), byKey["Old Co"])
	assert.Equal(t, day(2025, 1, 5), byKey["A"])
	assert.Equal(t, day(2025, 1, 20), byKey["B"])
}

func TestNewCustomersJanuary(t *testing.T) {
	v := detectorView()
	customers := NewCustomers(v, Month{Year: 2025, Month: time.January})
	require.Len(t, customers, 2)

	// Most recent first contact first.
	assert.Equal(t, "B", customers[0].Customer)
	assert.Equal(t, day(2025, 1, 20), customers[0].First)
	assert.Equal(t, 1.0, customers[0].WindowWeight)

	assert.Equal(t, "A", customers[1].Customer)
	assert.Equal(t, 1.0, customers[1].WindowWeight)
}

func TestNewCustomersWindowExtendsPastPeriodEnd(t *testing.T) {
	// First contact on the last period day still gets its full trailing
	// window, reaching into the next month.
	rows := []dataset.Row{
		{CustomerName: "Edge", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 1, 31))},
		{CustomerName: "Edge", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 2, 25))},
		{CustomerName: "Edge", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 4, 1))},
	}
	v := NewView(&dataset.Table{Rows: rows})

	customers := NewCustomers(v, Month{Year: 2025, Month: time.January})
	require.Len(t, customers, 1)
	assert.Equal(t, 1.0, customers[0].WindowWeight)
}

func TestNewLanesClassification(t *testing.T) {
	v := detectorView()
	lanes := NewLanes(v, Month{Year: 2025, Month: time.January})
	require.Len(t, lanes, 3)

	byCustomer := make(map[string]Entity)
	for _, lane := range lanes {
		byCustomer[lane.Customer] = lane
	}

	// Old Co's Madrid lane is new, but the customer itself is not.
	oldLane, ok := byCustomer["Old Co"]
	require.True(t, ok)
	assert.Equal(t, "Madrid → Porto", oldLane.Route)
	assert.False(t, oldLane.NewCustomer)

	assert.True(t, byCustomer["A"].NewCustomer)
	assert.True(t, byCustomer["B"].NewCustomer)
	assert.Equal(t, 1.0, byCustomer["B"].WindowWeight)
}

func TestNewCustomersWeeklyWindow(t *testing.T) {
	// The weekly variant attributes only seven days from first contact.
	rows := []dataset.Row{
		{CustomerName: "W", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 1, 6))},
		{CustomerName: "W", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 1, 13))},
		{CustomerName: "W", ShipmentWeight: 0.5, OrderPlaced: dataset.SomeTime(day(2025, 1, 20))},
	}
	v := NewView(&dataset.Table{Rows: rows})

	customers := NewCustomers(v, WeekOf(day(2025, 1, 6)))
	require.Len(t, customers, 1)
	// Jan 6 and Jan 13 fall inside [first, first+7d]; Jan 20 does not.
	assert.Equal(t, 1.0, customers[0].WindowWeight)
}

func TestDetectorIgnoresRowsWithoutDates(t *testing.T) {
	rows := []dataset.Row{
		{CustomerName: "NoDate", ShipmentWeight: 1.0},
	}
	v := NewView(&dataset.Table{Rows: rows})
	assert.Empty(t, NewCustomers(v, Month{Year: 2025, Month: time.January}))
	assert.Empty(t, FirstOccurrences(v, func(r *dataset.Row) string { return r.CustomerName }))
}
