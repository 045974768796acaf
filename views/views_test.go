package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleSession(t *testing.T) *session.Session {
	t.Helper()
	raw := &dataset.RawTable{
		Headers: []string{
			"Customer Name", "Load City", "Unload City", "Load Country", "Unload Country",
			"Market", "Shipment Status", "Business Line", "Spot / Dedicated",
			"Step Business Name", "Order Placed Date", "Load Date From",
			"Weight", "Total KM", "Full KM", "Empty KM",
		},
		Cells: [][]string{
			{"Acme", "Rotterdam", "Hamburg", "NL", "DE", "Benelux", "Delivered", "Road", "Dedicated", "1-Step Business", "2025-05-05", "2025-05-08", "1000", "500", "400", "100"},
			{"Acme", "Rotterdam", "Lyon", "NL", "FR", "Benelux", "Delivered", "Road", "Spot", "2-Step Business", "2025-05-12", "2025-05-16", "800", "900", "700", "200"},
			{"Beta", "Gdansk", "Vienna", "PL", "AT", "CEE", "Delivered", "Intermodal", "Spot", "1-Step Business", "2025-06-02", "2025-06-05", "1500", "1100", "900", "200"},
			{"Beta", "Gdansk", "Vienna", "PL", "AT", "CEE", "Cancelled", "Intermodal", "Spot", "2-Step Business", "2025-06-10", "2025-06-13", "-", "1100", "800", "300"},
		},
	}
	s := session.New("")
	s.Load(dataset.Normalize(raw))
	return s
}

func TestOverviewMetricsAndSections(t *testing.T) {
	s := sampleSession(t)
	page := Overview(s)

	require.NotEmpty(t, page.Metrics)
	assert.Equal(t, "Weighted shipments", page.Metrics[0].Label)
	assert.Equal(t, 3.0, page.Metrics[0].Raw) // 1 + 0.5 + 1 + 0.5
	assert.Equal(t, 2.0, page.Metrics[1].Raw) // Acme, Beta

	titles := make([]string, 0, len(page.Sections))
	for _, sec := range page.Sections {
		titles = append(titles, sec.Title)
	}
	assert.Contains(t, titles, "Shipments by status")
	assert.Contains(t, titles, "Shipments by business line")
	assert.Empty(t, page.Notices)
}

func TestOverviewMissingColumnsBecomeNotices(t *testing.T) {
	raw := &dataset.RawTable{
		Headers: []string{"Customer Name"},
		Cells:   [][]string{{"Acme"}},
	}
	s := session.New("")
	s.Load(dataset.Normalize(raw))

	page := Overview(s)
	assert.Empty(t, page.Sections)
	assert.NotEmpty(t, page.Notices)
	for _, n := range page.Notices {
		assert.Equal(t, "warning", n.Level)
	}
}

func TestOverviewUnauthenticated(t *testing.T) {
	s := session.New("secret")
	page := Overview(s)
	assert.Empty(t, page.Sections)
	require.NotEmpty(t, page.Notices)
	assert.Equal(t, "warning", page.Notices[0].Level)
}

func TestCustomersRespectsFilters(t *testing.T) {
	s := sampleSession(t)
	s.SetFilters(engine.Filters{Terms: map[dataset.Field][]string{
		dataset.FieldMarket: {"CEE"},
	}})

	page := Customers(s, 5)
	require.NotEmpty(t, page.Metrics)
	assert.Equal(t, 1.0, page.Metrics[0].Raw) // only Beta left
	assert.Equal(t, 1.5, page.Metrics[1].Raw)
}

func TestOrderIntakeProducesSections(t *testing.T) {
	s := sampleSession(t)
	page := OrderIntake(s, IntakeOptions{})

	titles := make([]string, 0, len(page.Sections))
	for _, sec := range page.Sections {
		titles = append(titles, sec.Title)
	}
	assert.Contains(t, titles, "Cumulative intake by year")
	assert.Contains(t, titles, "Intake heatmap (week × weekday)")
	assert.Contains(t, titles, "Lead times")
	assert.Contains(t, titles, "Lead time buckets by week")
}

func TestNewBusinessMonthDefaultsToLatest(t *testing.T) {
	s := sampleSession(t)
	page := NewBusinessMonth(s, nil)

	// Latest month is 2025-06; Beta first ordered in June.
	assert.Contains(t, page.Title, "2025-06")
	require.NotEmpty(t, page.Metrics)
	assert.Equal(t, 1.0, page.Metrics[0].Raw) // one new customer
}

func TestNewBusinessIgnoresSidebarFilters(t *testing.T) {
	s := sampleSession(t)
	// A filter that hides Beta entirely must not make it "new" elsewhere or
	// change the detector's result.
	s.SetFilters(engine.Filters{Terms: map[dataset.Field][]string{
		dataset.FieldMarket: {"Benelux"},
	}})
	month := engine.Month{Year: 2025, Month: 6}
	page := NewBusinessMonth(s, &month)
	require.NotEmpty(t, page.Metrics)
	assert.Equal(t, 1.0, page.Metrics[0].Raw)
}

func TestComparisonDefaultsToTwoLatestMonths(t *testing.T) {
	s := sampleSession(t)
	page := Comparison(s)

	assert.Contains(t, page.Title, "2025-06")
	assert.Contains(t, page.Title, "2025-05")
	require.Len(t, page.Metrics, 3)
	assert.Equal(t, 1.5, page.Metrics[0].Raw) // June weighted
	assert.Equal(t, 1.5, page.Metrics[1].Raw) // May weighted
	assert.Equal(t, 0.0, page.Metrics[2].Raw)
	require.NotEmpty(t, page.Sections)
}

func TestComparisonNeedsTwoMonths(t *testing.T) {
	raw := &dataset.RawTable{
		Headers: []string{"Customer Name", "Business Line", "Order Placed Date"},
		Cells:   [][]string{{"Acme", "Road", "2025-05-05"}},
	}
	s := session.New("")
	s.Load(dataset.Normalize(raw))

	page := Comparison(s)
	assert.Empty(t, page.Sections)
	require.NotEmpty(t, page.Notices)
	assert.Equal(t, "info", page.Notices[0].Level)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234.5", formatNumber(1234.5, 1))
	assert.Equal(t, "-1,234,567", formatNumber(-1234567, 0))
	assert.Equal(t, "0.0", formatNumber(0, 1))
	assert.Equal(t, "12", formatNumber(12.4, 0))
}

func TestRollingMeanCentered(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := rollingMean(values, 3)
	assert.InDelta(t, 1.5, out[0], 1e-9) // only two values available at the edge
	assert.InDelta(t, 3.0, out[2], 1e-9)
	assert.InDelta(t, 4.5, out[4], 1e-9)
}

func TestLeadBucketBoundaries(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "<3"},
		{2, "<3"},
		{3, "4-7"},
		{6, "4-7"},
		{7, "7-14"},
		{13, "7-14"},
		{14, ">14"},
		{30, ">14"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leadBucket(tt.days), "days=%d", tt.days)
	}
}

func TestLeadTimePivotWeeklyAverage(t *testing.T) {
	// Two orders in ISO week 2025-W11: 3 and 2 working days of lead time.
	// The week row carries their mean, and 3 days lands in the 4-7 bucket.
	rows := []dataset.Row{
		{ShipmentWeight: 1.0, OrderPlaced: dataset.SomeTime(day(2025, 3, 10)), LoadFrom: dataset.SomeTime(day(2025, 3, 13))},
		{ShipmentWeight: 1.0, OrderPlaced: dataset.SomeTime(day(2025, 3, 10)), LoadFrom: dataset.SomeTime(day(2025, 3, 12))},
	}
	v := engine.NewView(&dataset.Table{Rows: rows})

	sections := leadTimeSections(v)
	require.NotEmpty(t, sections)
	pivot := sections[len(sections)-1].Table
	require.NotNil(t, pivot)

	labels := make([]string, 0, len(pivot.Columns))
	for _, c := range pivot.Columns {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Week", "<3 days", "4-7 days", "7-14 days", ">14 days", "Avg lead time"}, labels)

	require.Len(t, pivot.Rows, 2)
	assert.Equal(t, []string{"2025-W11", "1.0", "1.0", "0.0", "0.0", "2.5"}, pivot.Rows[0])
	assert.Equal(t, []string{"Total", "1.0", "1.0", "0.0", "0.0", "2.5"}, pivot.Rows[1])
}

func TestWorkingDays(t *testing.T) {
	// Mon 2025-03-10 to Fri 2025-03-14: Mon-Thu counted, end exclusive.
	assert.Equal(t, 4, workingDays(day(2025, 3, 10), day(2025, 3, 14)))
	// Across a weekend.
	assert.Equal(t, 5, workingDays(day(2025, 3, 10), day(2025, 3, 17)))
	// Same day.
	assert.Equal(t, 0, workingDays(day(2025, 3, 10), day(2025, 3, 10)))
	// Reversed range is negative.
	assert.Equal(t, -5, workingDays(day(2025, 3, 17), day(2025, 3, 10)))
}
