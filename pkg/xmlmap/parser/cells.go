package parser

import (
	"math"
	"strconv"

	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
	"github.com/xuri/excelize/v2"
)

// SnapshotCells reads the non-empty rows of a sheet, keyed by column letter.
func SnapshotCells(f *excelize.File, sheetName string, inferTypes bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		cellMap := make(map[string]interface{})

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			colName, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				return nil, err
			}
			if inferTypes {
				cellMap[colName] = ParseValue(cellValue)
			} else {
				cellMap[colName] = cellValue
			}
		}

		if len(cellMap) > 0 {
			result = append(result, models.CellRow{
				R: rowIdx + 1,
				C: cellMap,
			})
		}
	}

	return result, nil
}

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for finite decimals, or the original string.
func ParseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
