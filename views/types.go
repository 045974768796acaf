package views

// ============================================================================
// VIEW OUTPUT TYPES — render-ready pages
// ============================================================================
// Every view produces a Page: an ordered list of sections, each carrying at
// most one chart or table plus headline metrics. The shapes are frontend
// neutral and JSON-tagged so any renderer can consume them unchanged.
// ============================================================================

// Page is the render-ready output of one view.
type Page struct {
	View     string    `json:"view"`
	Title    string    `json:"title"`
	Metrics  []Metric  `json:"metrics,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Notices  []Notice  `json:"notices,omitempty"`
}

// Section is one titled block of a page. Exactly one of Chart or Table is
// populated; both nil means the section is metric-only.
type Section struct {
	Title   string       `json:"title"`
	Metrics []Metric     `json:"metrics,omitempty"`
	Chart   *ChartConfig `json:"chart,omitempty"`
	Table   *TableData   `json:"table,omitempty"`
}

// Metric is a single headline number with a formatted display value.
type Metric struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
}

// Notice is a non-fatal message about skipped or degraded content. Views
// never fail outright; a missing column downgrades the affected sections to
// notices and the rest of the page renders normally.
type Notice struct {
	Level   string `json:"level"` // "info" or "warning"
	Message string `json:"message"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "bar", "line", "area", "pie", "heatmap", "treemap", "histogram"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
	Stacked    bool          `json:"stacked,omitempty"`
}

// ChartSeries is one data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a single data point. Group carries the parent node for
// hierarchical charts (treemap) and the row label for heatmaps.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Group string  `json:"group,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "date", "percent"
	Align string `json:"align"` // "left", "center", "right"
}

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
