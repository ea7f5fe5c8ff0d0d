package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestWorkbook(t *testing.T) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	sheetName := "Sheet1"
	require.NoError(t, f.SetCellValue(sheetName, "B2", "Header1"))
	require.NoError(t, f.SetCellValue(sheetName, "C2", "Header2"))
	require.NoError(t, f.SetCellValue(sheetName, "B3", 100))
	require.NoError(t, f.SetCellValue(sheetName, "C3", 200.5))
	require.NoError(t, f.SetCellValue(sheetName, "D5", "Text"))

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))
	require.NoError(t, f.Close())

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	t.Cleanup(func() { f2.Close() })
	return f2
}

func TestSnapshotCells(t *testing.T) {
	f := newTestWorkbook(t)

	rows, err := SnapshotCells(f, "Sheet1", false)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].R)
	assert.Equal(t, "Header1", rows[0].C["B"])
	assert.Equal(t, "Header2", rows[0].C["C"])
	assert.Equal(t, "100", rows[1].C["B"])
	assert.Equal(t, 5, rows[2].R)
	assert.Equal(t, "Text", rows[2].C["D"])
	assert.NotContains(t, rows[2].C, "A")
}

func TestSnapshotCellsInferTypes(t *testing.T) {
	f := newTestWorkbook(t)

	rows, err := SnapshotCells(f, "Sheet1", true)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, int64(100), rows[1].C["B"])
	assert.Equal(t, 200.5, rows[1].C["C"])
}

func TestSnapshotCellsMissingSheet(t *testing.T) {
	f := newTestWorkbook(t)

	_, err := SnapshotCells(f, "Nope", false)
	assert.Error(t, err)
}

func TestUsedRange(t *testing.T) {
	f := newTestWorkbook(t)

	got, err := UsedRange(f, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "B2:D5", got)

	_, err = f.NewSheet("Empty")
	require.NoError(t, err)
	got, err = UsedRange(f, "Empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseValue(tt.input), "ParseValue(%q)", tt.input)
	}
}
