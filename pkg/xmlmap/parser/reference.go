package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
	"github.com/xuri/excelize/v2"
)

// ParseTargetReference parses a worksheet-qualified cell reference.
// Format: 'Sheet Name'!$B$2 or SheetName!B2. The column must be a single letter.
func ParseTargetReference(ref string) (models.Target, error) {
	var t models.Target

	ref = strings.TrimSpace(ref)
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return t, fmt.Errorf("reference %q: missing worksheet (want Sheet!B2)", ref)
	}

	sheet := strings.TrimSpace(ref[:idx])
	if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	if sheet == "" {
		return t, fmt.Errorf("reference %q: empty worksheet name", ref)
	}

	addr, err := ParseCellAddress(ref[idx+1:])
	if err != nil {
		return t, fmt.Errorf("reference %q: %w", ref, err)
	}

	t.Worksheet = sheet
	t.Start = addr
	return t, nil
}

// ParseCellAddress parses an A1-style cell reference such as "B2" or "$B$2".
func ParseCellAddress(cell string) (models.CellAddress, error) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), "$", "")

	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return models.CellAddress{}, err
	}
	if col > len(models.Columns()) {
		return models.CellAddress{}, fmt.Errorf("%w: %q", models.ErrInvalidColumn, cell)
	}

	colName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return models.CellAddress{}, err
	}

	addr := models.CellAddress{Column: colName, Row: row}
	return addr, addr.Validate()
}
