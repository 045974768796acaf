package dataset

import (
	"strings"
	"time"
)

// ============================================================================
// DERIVED FIELD CALCULATOR
// ============================================================================
// Appends derived columns to every row, each guarded by presence of its
// inputs. Shipment Weight — not row count — is the unit of measure for every
// count the system reports, so it is always set.
// ============================================================================

// oneStepMarker is the classification substring that makes a row count as a
// full shipment instead of a half one.
const oneStepMarker = "1-Step Business"

func deriveAll(t *Table) {
	hasStep := t.Caps[FieldStepBusiness]
	for i := range t.Rows {
		derive(&t.Rows[i], hasStep)
	}
}

func derive(r *Row, hasStep bool) {
	r.ShipmentWeight = shipmentWeight(r.StepBusiness, hasStep)

	if r.OrderPlaced.Valid && r.LoadFrom.Valid {
		days := r.LoadFrom.Value.Sub(r.OrderPlaced.Value).Hours() / 24
		r.LeadTimeDays = SomeFloat(days)
	}

	if r.LoadFrom.Valid {
		r.LoadDate = SomeTime(midnight(r.LoadFrom.Value))
		_, r.LoadWeek = r.LoadFrom.Value.ISOWeek()
		r.LoadDOW = r.LoadFrom.Value.Weekday().String()
		r.LoadMonth = r.LoadFrom.Value.Format("2006-01")
	}

	if r.OrderPlaced.Valid {
		r.OrderDate = SomeTime(midnight(r.OrderPlaced.Value))
		_, r.OrderWeek = r.OrderPlaced.Value.ISOWeek()
		r.OrderDOW = r.OrderPlaced.Value.Weekday().String()
		r.OrderMonth = r.OrderPlaced.Value.Format("2006-01")
	}

	// A zero total distance means utilization is unknowable, not infinite.
	if r.FullKM.Valid && r.TotalKM.Valid && r.TotalKM.Value != 0 {
		r.KMUtilization = SomeFloat(r.FullKM.Value / r.TotalKM.Value * 100)
	}

	if r.LoadCountry != "" && r.UnloadCountry != "" {
		r.Route = r.LoadCountry + " → " + r.UnloadCountry
	}
}

// shipmentWeight implements the canonical counting rule: 1.0 for 1-Step
// Business rows, 0.5 for everything else, and 1.0 across the board when the
// classification column is absent from the source schema.
func shipmentWeight(stepBusiness string, hasStep bool) float64 {
	if !hasStep {
		return 1.0
	}
	if strings.Contains(stepBusiness, oneStepMarker) {
		return 1.0
	}
	return 0.5
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
