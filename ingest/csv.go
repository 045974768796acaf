package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/freightlens/freightlens/dataset"
)

// ReadCSV reads a CSV export into the same raw table shape as the XLSX
// reader. Rows may have ragged lengths; malformed rows are skipped with a
// debug log rather than failing the whole file.
func ReadCSV(r io.Reader) (*dataset.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	var cells [][]string
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		cells = append(cells, record)
	}
	if skipped > 0 {
		slog.Debug("csv rows skipped", "count", skipped)
	}
	if len(cells) == 0 {
		return nil, ErrEmpty
	}
	return &dataset.RawTable{Headers: headers, Cells: cells}, nil
}
