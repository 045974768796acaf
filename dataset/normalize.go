package dataset

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// NORMALIZER — raw header+cell table → canonical typed table
// ============================================================================
// Per date column: direct timestamp parsing first; if the entire column
// yields no valid timestamp, the column is reinterpreted as day-count serial
// numbers. Per numeric column: coercion with "-" and blanks mapping to
// absent. Malformed cells degrade to absent, never abort the load.
// ============================================================================

const (
	minSerial = 1
	maxSerial = 73050 // 2099-12-31
)

// serialEpoch is the day-zero anchor for serial dates, matching how
// spreadsheet tools emit them (serial 45000 = 2023-03-15).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// Normalize converts a raw table into the canonical typed table and appends
// the derived columns. Unrecognized columns are skipped silently; the result
// is a deterministic pure function of the raw cells.
func Normalize(raw *RawTable) *Table {
	cols := make(map[Field]int)
	for i, h := range raw.Headers {
		f := FieldForHeader(h)
		if f == FieldUnknown {
			continue
		}
		if _, dup := cols[f]; !dup {
			cols[f] = i
		}
	}

	caps := make(Capabilities, len(cols))
	for f := range cols {
		caps[f] = true
	}

	// Date columns are decided column-wise: the serial fallback only engages
	// when direct parsing produced nothing for the whole column.
	dates := make(map[Field][]OptTime, len(dateFields))
	for _, f := range dateFields {
		if idx, ok := cols[f]; ok {
			dates[f] = normalizeDateColumn(raw.Cells, idx, f)
		}
	}

	rows := make([]Row, len(raw.Cells))
	for i, cells := range raw.Cells {
		rows[i] = buildRow(cells, cols, dates, i)
	}

	t := &Table{Rows: rows, Caps: caps}
	deriveAll(t)

	slog.Debug("normalized table",
		"rows", len(rows),
		"columns", len(cols),
	)
	return t
}

// normalizeDateColumn parses one date-bearing column. Direct timestamp
// parsing wins when it yields any valid value; otherwise every cell is
// reinterpreted as a day-count serial.
func normalizeDateColumn(cells [][]string, idx int, f Field) []OptTime {
	direct := make([]OptTime, len(cells))
	anyDirect := false
	for i := range cells {
		if t, ok := parseTimestamp(cellAt(cells[i], idx)); ok {
			direct[i] = SomeTime(t)
			anyDirect = true
		}
	}
	if anyDirect {
		return direct
	}

	serial := make([]OptTime, len(cells))
	for i := range cells {
		if t, ok := parseSerialDate(cellAt(cells[i], idx)); ok {
			serial[i] = SomeTime(t)
		}
	}
	slog.Debug("date column reinterpreted as serials", "column", f.String())
	return serial
}

// parseTimestamp attempts direct calendar parsing. Out-of-range years
// normalize to absent rather than surfacing nonsense timestamps.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.UTC()
		if !inCalendarRange(t) {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// parseSerialDate converts a day-count serial anchored at 1899-12-30.
// Whole days go through AddDate (day-count arithmetic, no sub-day overflow);
// any fractional remainder becomes a time-of-day offset.
func parseSerialDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, false
	}
	if serial < minSerial || serial > maxSerial {
		return time.Time{}, false
	}
	days := int(serial)
	frac := serial - float64(days)
	t := serialEpoch.AddDate(0, 0, days)
	if frac > 0 {
		t = t.Add(time.Duration(frac * 24 * float64(time.Hour)))
	}
	return t, true
}

func inCalendarRange(t time.Time) bool {
	y := t.Year()
	return y >= 1900 && y <= 2099
}

// parseNumber coerces a numeric cell. Non-numeric text, including the lone
// "-" placeholder, maps to absent.
func parseNumber(s string) OptFloat {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return OptFloat{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return OptFloat{}
	}
	return SomeFloat(v)
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func buildRow(cells []string, cols map[Field]int, dates map[Field][]OptTime, rowIdx int) Row {
	var r Row

	str := func(f Field) string {
		if idx, ok := cols[f]; ok {
			return strings.TrimSpace(cellAt(cells, idx))
		}
		return ""
	}
	num := func(f Field) OptFloat {
		if idx, ok := cols[f]; ok {
			return parseNumber(cellAt(cells, idx))
		}
		return OptFloat{}
	}
	date := func(f Field) OptTime {
		if col, ok := dates[f]; ok {
			return col[rowIdx]
		}
		return OptTime{}
	}

	r.CustomerName = str(FieldCustomerName)
	r.ShipmentNo = str(FieldShipmentNo)
	r.LoadCity = str(FieldLoadCity)
	r.UnloadCity = str(FieldUnloadCity)
	r.LoadCountry = str(FieldLoadCountry)
	r.UnloadCountry = str(FieldUnloadCountry)
	r.LoadRegion = str(FieldLoadRegion)
	r.UnloadRegion = str(FieldUnloadRegion)
	r.Carrier = str(FieldCarrier)
	r.LegalEntity = str(FieldLegalEntity)
	r.Status = str(FieldStatus)
	r.Modality = str(FieldModality)
	r.BusinessLine = str(FieldBusinessLine)
	r.Market = str(FieldMarket)
	r.OrderAllocation = str(FieldOrderAllocation)
	r.SpotDedicated = str(FieldSpotDedicated)
	r.StepBusiness = str(FieldStepBusiness)
	r.OrderPlacedDay = str(FieldOrderPlacedDay)

	r.OrderPlaced = date(FieldOrderPlaced)
	r.LoadFrom = date(FieldLoadFrom)
	r.LoadTill = date(FieldLoadTill)
	r.UnloadFrom = date(FieldUnloadFrom)
	r.UnloadTill = date(FieldUnloadTill)
	r.OrderLoad = date(FieldOrderLoad)
	r.OrderUnload = date(FieldOrderUnload)
	r.Cancelation = date(FieldCancelation)

	r.Weight = num(FieldWeight)
	r.Quote = num(FieldQuote)
	r.TotalKM = num(FieldTotalKM)
	r.FullKM = num(FieldFullKM)
	r.EmptyKM = num(FieldEmptyKM)
	r.SpecificGravity = num(FieldSpecificGravity)
	r.TCCapacity = num(FieldTCCapacity)
	r.TCVolume = num(FieldTCVolume)
	r.TCLength = num(FieldTCLength)
	r.Compartments = num(FieldCompartments)

	return r
}
