package xmlmap

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/parser"
	"github.com/xuri/excelize/v2"
)

// OpenWorkbook opens the workbook at path and lists its worksheets.
func OpenWorkbook(path string) (*models.WorkbookInfo, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, &WorkbookOpenError{Path: path, Err: ErrFileNotFound}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &WorkbookOpenError{Path: path, Err: err}
	}
	defer f.Close()

	info := &models.WorkbookInfo{
		BookName:   filepath.Base(path),
		Worksheets: f.GetSheetList(),
	}
	if pkg, err := parser.InspectPackage(path); err == nil {
		info.HasVBAProject = pkg.HasVBAProject
	}
	return info, nil
}

// Snapshot reads the contents of every worksheet in the workbook at path.
func Snapshot(path string, inferTypes bool) (*models.WorkbookSnapshot, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, &WorkbookOpenError{Path: path, Err: ErrFileNotFound}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &WorkbookOpenError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := make(map[string]models.SheetSummary)
	for _, sheetName := range f.GetSheetList() {
		rows, err := parser.SnapshotCells(f, sheetName, inferTypes)
		if err != nil {
			return nil, &WorkbookOpenError{Path: path, Err: err}
		}
		usedRange, err := parser.UsedRange(f, sheetName)
		if err != nil {
			return nil, &WorkbookOpenError{Path: path, Err: err}
		}
		sheets[sheetName] = models.SheetSummary{
			UsedRange: usedRange,
			Rows:      rows,
		}
	}

	return &models.WorkbookSnapshot{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, nil
}
