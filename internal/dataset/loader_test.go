package dataset

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeFixture builds an xlsx file with the given header and data rows on
// the default sheet.
func writeFixture(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

var chineseHeader = []string{"股票代码", "企业名称", "年份", "数字化转型指数"}

func TestLoaderCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.xlsx")
	second := filepath.Join(dir, "second.xlsx")
	writeFixture(t, first, chineseHeader, [][]string{
		{"600003", "Acme Digital", "1999", "60"},
	})
	writeFixture(t, second, chineseHeader, [][]string{
		{"000001", "Ping Tech", "2000", "40"},
	})

	// Both candidates exist; the first one wins.
	ds, err := NewLoader([]string{first, second}, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"600003"}, ds.Codes())

	// A missing first candidate falls through to the next.
	ds, err = NewLoader([]string{filepath.Join(dir, "missing.xlsx"), second}, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"000001"}, ds.Codes())
}

func TestLoaderNoCandidateExists(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader([]string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.xlsx")}, nil).Load()
	assert.ErrorIs(t, err, ErrDataNotFound)
}

func TestParseFileChineseHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	writeFixture(t, path, chineseHeader, [][]string{
		{"600003", "Acme Digital", "1999", "60.5"},
		{"000001", "", "1999", "40"},
	})

	obs, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, obs, 2)

	assert.Equal(t, "600003", obs[0].Code)
	assert.Equal(t, "Acme Digital", obs[0].Name)
	assert.Equal(t, 1999, obs[0].Year)
	assert.InDelta(t, 60.5, obs[0].Index, 1e-9)
	// Missing name stays empty here; the sentinel fill is the Dataset's job.
	assert.Empty(t, obs[1].Name)
}

func TestParseFileEnglishHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	writeFixture(t, path, []string{"code", "name", "year", "index"}, [][]string{
		{"000042", "Delta Manufacturing", "2005", "33.3"},
	})

	obs, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "000042", obs[0].Code)
}

func TestParseFileCodesStayTextual(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	writeFixture(t, path, chineseHeader, [][]string{
		{"000001", "Ping Tech", "1999", "40"},
	})

	obs, err := ParseFile(path)
	require.NoError(t, err)
	// Leading zeros survive: codes are strings end to end.
	assert.Equal(t, "000001", obs[0].Code)
}

func TestParseFileFloatRenderedYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	writeFixture(t, path, chineseHeader, [][]string{
		{"600003", "Acme Digital", "1999.0", "60"},
	})

	obs, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1999, obs[0].Year)
}

func TestParseFileSkipsBlankCodeRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	writeFixture(t, path, chineseHeader, [][]string{
		{"600003", "Acme Digital", "1999", "60"},
		{"", "", "", ""},
		{"000001", "Ping Tech", "2000", "40"},
	})

	obs, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, obs, 2)
}

func TestParseFileMalformedValues(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"bad year", []string{"600003", "Acme Digital", "199x", "60"}},
		{"fractional year", []string{"600003", "Acme Digital", "1999.5", "60"}},
		{"bad index", []string{"600003", "Acme Digital", "1999", "sixty"}},
		{"empty index", []string{"600003", "Acme Digital", "1999", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.xlsx")
			writeFixture(t, path, chineseHeader, [][]string{tt.row})

			_, err := ParseFile(path)
			assert.Error(t, err)
		})
	}
}

func TestParseFileNoObservationSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	writeFixture(t, path, []string{"foo", "bar"}, [][]string{{"1", "2"}})

	_, err := ParseFile(path)
	assert.ErrorContains(t, err, "no sheet with observation columns")
}

func TestParseFileEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	// Rows without a code are skipped, leaving nothing to load.
	writeFixture(t, path, chineseHeader, [][]string{{"", "orphan", "1999", "60"}})

	_, err := ParseFile(path)
	assert.ErrorContains(t, err, "no data rows")
}
