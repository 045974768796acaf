package dataset

import "strings"

// ============================================================================
// FIELD IDENTIFIERS — Fixed enumeration of semantic columns
// ============================================================================
// External header strings are mapped onto Field values exactly once, at the
// normalization boundary. Everything downstream works with Field constants,
// so header-name fragility stays in this file.
// ============================================================================

// Field identifies a semantic column of the shipment table.
type Field int

const (
	FieldUnknown Field = iota

	// Identifiers and categoricals.
	FieldCustomerName
	FieldShipmentNo
	FieldLoadCity
	FieldUnloadCity
	FieldLoadCountry
	FieldUnloadCountry
	FieldLoadRegion
	FieldUnloadRegion
	FieldCarrier
	FieldLegalEntity
	FieldStatus
	FieldModality
	FieldBusinessLine
	FieldMarket
	FieldOrderAllocation
	FieldSpotDedicated
	FieldStepBusiness
	FieldOrderPlacedDay

	// Temporal columns (may arrive as day-count serials).
	FieldOrderPlaced
	FieldLoadFrom
	FieldLoadTill
	FieldUnloadFrom
	FieldUnloadTill
	FieldOrderLoad
	FieldOrderUnload
	FieldCancelation

	// Numeric columns ("-" means missing).
	FieldWeight
	FieldQuote
	FieldTotalKM
	FieldFullKM
	FieldEmptyKM
	FieldSpecificGravity
	FieldTCCapacity
	FieldTCVolume
	FieldTCLength
	FieldCompartments

	// Derived columns, appended by Normalize.
	FieldShipmentWeight
	FieldLeadTimeDays
	FieldLoadDate
	FieldLoadWeek
	FieldLoadDOW
	FieldLoadMonth
	FieldOrderDate
	FieldOrderWeek
	FieldOrderDOW
	FieldOrderMonth
	FieldKMUtilization
	FieldRoute
)

// headerFields maps the exact external header strings onto field identifiers.
var headerFields = map[string]Field{
	"Customer Name":            FieldCustomerName,
	"Shipment No":              FieldShipmentNo,
	"Load City":                FieldLoadCity,
	"Unload City":              FieldUnloadCity,
	"Load Country":             FieldLoadCountry,
	"Unload Country":           FieldUnloadCountry,
	"Load Region":              FieldLoadRegion,
	"Unload Region":            FieldUnloadRegion,
	"Carrier":                  FieldCarrier,
	"Legal Entity":             FieldLegalEntity,
	"Shipment Status":          FieldStatus,
	"Modality":                 FieldModality,
	"Business Line":            FieldBusinessLine,
	"Market":                   FieldMarket,
	"Order Allocation":         FieldOrderAllocation,
	"Spot / Dedicated":         FieldSpotDedicated,
	"Step Business Name":       FieldStepBusiness,
	"Order Placed Day":         FieldOrderPlacedDay,
	"Order Placed Date":        FieldOrderPlaced,
	"Load Date From":           FieldLoadFrom,
	"Load Date Till":           FieldLoadTill,
	"Unload Date From":         FieldUnloadFrom,
	"Unload Date Till":         FieldUnloadTill,
	"Order Load Date":          FieldOrderLoad,
	"Order Unload Date":        FieldOrderUnload,
	"Cancelation Date":         FieldCancelation,
	"Weight":                   FieldWeight,
	"Quote":                    FieldQuote,
	"Total KM":                 FieldTotalKM,
	"Full KM":                  FieldFullKM,
	"Empty KM":                 FieldEmptyKM,
	"Product Specific Gravity": FieldSpecificGravity,
	"TC Total Capacity":        FieldTCCapacity,
	"TC Volume":                FieldTCVolume,
	"TC Length":                FieldTCLength,
	"# of Compartments":        FieldCompartments,
}

var fieldNames = func() map[Field]string {
	names := make(map[Field]string, len(headerFields))
	for h, f := range headerFields {
		names[f] = h
	}
	names[FieldShipmentWeight] = "Shipment Weight"
	names[FieldLeadTimeDays] = "Lead Time Days"
	names[FieldLoadDate] = "Load Date"
	names[FieldLoadWeek] = "Load Week"
	names[FieldLoadDOW] = "Load DOW"
	names[FieldLoadMonth] = "Load Month Name"
	names[FieldOrderDate] = "Order Date"
	names[FieldOrderWeek] = "Order Week"
	names[FieldOrderDOW] = "Order DOW"
	names[FieldOrderMonth] = "Order Month Name"
	names[FieldKMUtilization] = "KM Utilization %"
	names[FieldRoute] = "Route"
	return names
}()

// FieldForHeader resolves an external header string to a field identifier.
// Unrecognized headers map to FieldUnknown and are skipped during
// normalization.
func FieldForHeader(header string) Field {
	if f, ok := headerFields[strings.TrimSpace(header)]; ok {
		return f
	}
	return FieldUnknown
}

// String returns the display name of the field (the external header for
// source fields).
func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "Unknown"
}

// dateFields are the columns that may arrive either as calendar timestamps
// or as day-count serial numbers.
var dateFields = []Field{
	FieldLoadFrom, FieldLoadTill,
	FieldUnloadFrom, FieldUnloadTill,
	FieldOrderPlaced, FieldOrderLoad, FieldOrderUnload,
	FieldCancelation,
}

// numericFields are the columns where non-numeric placeholders (a lone "-",
// blanks) normalize to absent.
var numericFields = []Field{
	FieldWeight, FieldQuote,
	FieldTotalKM, FieldFullKM, FieldEmptyKM,
	FieldSpecificGravity,
	FieldTCCapacity, FieldTCVolume, FieldTCLength,
	FieldCompartments,
}

// IsDate reports whether the field is one of the serial-capable date columns.
func (f Field) IsDate() bool {
	for _, d := range dateFields {
		if f == d {
			return true
		}
	}
	return false
}

// IsNumeric reports whether the field is one of the coerced numeric columns.
func (f Field) IsNumeric() bool {
	for _, n := range numericFields {
		if f == n {
			return true
		}
	}
	return false
}

// ============================================================================
// CAPABILITIES — which semantic fields the loaded source actually has
// ============================================================================

// Capabilities is the schema-capability descriptor computed once after
// normalization. Views consult it instead of re-checking column presence.
type Capabilities map[Field]bool

// Has reports whether every given field is present in the source.
func (c Capabilities) Has(fields ...Field) bool {
	for _, f := range fields {
		if !c[f] {
			return false
		}
	}
	return true
}

// Fields returns the present source fields in enumeration order.
func (c Capabilities) Fields() []Field {
	out := make([]Field, 0, len(c))
	for f := FieldCustomerName; f <= FieldCompartments; f++ {
		if c[f] {
			out = append(out, f)
		}
	}
	return out
}
