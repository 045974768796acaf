package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"Customer Name,Market,Weight",
		"Acme,Benelux,1200",
		"Beta,DACH",
	}, "\n")

	raw, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer Name", "Market", "Weight"}, raw.Headers)
	require.Len(t, raw.Cells, 2)
	assert.Equal(t, []string{"Acme", "Benelux", "1200"}, raw.Cells[0])
	// Ragged rows come through; the normalizer pads them.
	assert.Equal(t, []string{"Beta", "DACH"}, raw.Cells[1])
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ReadCSV(strings.NewReader("Customer Name,Market\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReadXLSXFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Customer Name", "Weight"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Acme", 1200.5}))
	// A second sheet must be ignored.
	_, err := f.NewSheet("Extra")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Extra", "A1", &[]interface{}{"ignored"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	raw, err := ReadXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer Name", "Weight"}, raw.Headers)
	require.Len(t, raw.Cells, 1)
	assert.Equal(t, "Acme", raw.Cells[0][0])
}

func TestReadXLSXHeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Customer Name"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ReadXLSX(buf)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoaderCachesByFileIdentity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	content := "Customer Name,Step Business Name\nAcme,1-Step Business\nBeta,2-Step Business\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loader := NewLoader()
	first, err := loader.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, first.Len())
	assert.Equal(t, 1.0, first.Rows[0].ShipmentWeight)
	assert.Equal(t, 0.5, first.Rows[1].ShipmentWeight)

	second, err := loader.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.csv", "~$b.xlsx", "notes.txt", "c.XLS"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xlsx"), 0o755))

	files, err := ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, "a.csv"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.xlsx"), files[1])
	assert.Equal(t, filepath.Join(dir, "c.XLS"), files[2])
}
