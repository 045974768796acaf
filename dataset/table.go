package dataset

import (
	"time"
)

// ============================================================================
// CANONICAL TABLE — typed rows, built once per source
// ============================================================================
// Absence is first-class: timestamps and numerics are either valid or absent,
// never sentinel values. Rows are never mutated after normalization; every
// later stage derives new index views instead.
// ============================================================================

// OptTime is a timestamp that may be absent.
type OptTime struct {
	Value time.Time
	Valid bool
}

// SomeTime wraps a valid timestamp.
func SomeTime(t time.Time) OptTime { return OptTime{Value: t, Valid: true} }

// OptFloat is a numeric value that may be absent.
type OptFloat struct {
	Value float64
	Valid bool
}

// SomeFloat wraps a valid number.
func SomeFloat(v float64) OptFloat { return OptFloat{Value: v, Valid: true} }

// Row is one canonical shipment record. String fields default to "" when the
// source value is missing.
type Row struct {
	CustomerName    string
	ShipmentNo      string
	LoadCity        string
	UnloadCity      string
	LoadCountry     string
	UnloadCountry   string
	LoadRegion      string
	UnloadRegion    string
	Carrier         string
	LegalEntity     string
	Status          string
	Modality        string
	BusinessLine    string
	Market          string
	OrderAllocation string
	SpotDedicated   string
	StepBusiness    string
	OrderPlacedDay  string

	OrderPlaced OptTime
	LoadFrom    OptTime
	LoadTill    OptTime
	UnloadFrom  OptTime
	UnloadTill  OptTime
	OrderLoad   OptTime
	OrderUnload OptTime
	Cancelation OptTime

	Weight          OptFloat
	Quote           OptFloat
	TotalKM         OptFloat
	FullKM          OptFloat
	EmptyKM         OptFloat
	SpecificGravity OptFloat
	TCCapacity      OptFloat
	TCVolume        OptFloat
	TCLength        OptFloat
	Compartments    OptFloat

	// Derived — appended by Normalize, see derive.go.
	ShipmentWeight float64
	LeadTimeDays   OptFloat
	LoadDate       OptTime
	LoadWeek       int
	LoadDOW        string
	LoadMonth      string
	OrderDate      OptTime
	OrderWeek      int
	OrderDOW       string
	OrderMonth     string
	KMUtilization  OptFloat
	Route          string
}

// Lane is the composite new-business identity: customer + load city + unload
// city, each defaulting to empty string, joined with fixed separators.
func (r *Row) Lane() string {
	return r.CustomerName + " | " + r.LoadCity + " → " + r.UnloadCity
}

// LaneRoute is the display part of the lane ("load city → unload city").
func (r *Row) LaneRoute() string {
	return r.LoadCity + " → " + r.UnloadCity
}

// Category returns the value of a categorical field, "" for fields this row
// has no value for. Only filterable/groupable string fields are addressable.
func (r *Row) Category(f Field) string {
	switch f {
	case FieldCustomerName:
		return r.CustomerName
	case FieldShipmentNo:
		return r.ShipmentNo
	case FieldLoadCity:
		return r.LoadCity
	case FieldUnloadCity:
		return r.UnloadCity
	case FieldLoadCountry:
		return r.LoadCountry
	case FieldUnloadCountry:
		return r.UnloadCountry
	case FieldLoadRegion:
		return r.LoadRegion
	case FieldUnloadRegion:
		return r.UnloadRegion
	case FieldCarrier:
		return r.Carrier
	case FieldLegalEntity:
		return r.LegalEntity
	case FieldStatus:
		return r.Status
	case FieldModality:
		return r.Modality
	case FieldBusinessLine:
		return r.BusinessLine
	case FieldMarket:
		return r.Market
	case FieldOrderAllocation:
		return r.OrderAllocation
	case FieldSpotDedicated:
		return r.SpotDedicated
	case FieldStepBusiness:
		return r.StepBusiness
	case FieldOrderPlacedDay:
		return r.OrderPlacedDay
	case FieldLoadDOW:
		return r.LoadDOW
	case FieldLoadMonth:
		return r.LoadMonth
	case FieldOrderDOW:
		return r.OrderDOW
	case FieldOrderMonth:
		return r.OrderMonth
	case FieldRoute:
		return r.Route
	}
	return ""
}

// Table is the canonical dataset: normalized rows plus the capability
// descriptor of the source they came from.
type Table struct {
	Rows []Row
	Caps Capabilities
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// RawTable is the ingestion boundary format: header strings plus string
// cells, exactly as read from the first sheet of a spreadsheet or a CSV.
type RawTable struct {
	Headers []string
	Cells   [][]string
}
