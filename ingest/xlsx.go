package ingest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/freightlens/freightlens/dataset"
)

// ============================================================================
// XLSX READER — first sheet only
// ============================================================================

var (
	// ErrNoSheet is returned for workbooks without any sheet.
	ErrNoSheet = errors.New("ingest: workbook has no sheets")

	// ErrEmpty is returned when a source has a header row but no data rows,
	// or no rows at all.
	ErrEmpty = errors.New("ingest: no data rows")
)

// ReadXLSX reads the first sheet of a workbook into a raw table. Cells are
// taken as raw strings; date cells surface as Excel serial numbers, which the
// normalizer reinterprets column-wise.
func ReadXLSX(r io.Reader) (*dataset.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("ingest: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrEmpty
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	slog.Debug("workbook read", "sheet", sheets[0], "columns", len(headers), "rows", len(rows)-1)
	return &dataset.RawTable{Headers: headers, Cells: rows[1:]}, nil
}
