package xmlmap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/beevik/etree"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Materialize writes the values of every mapped tag into the workbook at
// workbookPath and saves it.
//
// The workbook is created when it does not exist. Each tag's values are
// written one per row from its start cell down, in document order. A
// worksheet missing from the workbook, or an entry with an invalid address,
// is recorded in the report and skipped; the remaining entries are still
// written and saved. The first such failure is returned as a
// *MaterializeError alongside the report.
func Materialize(workbookPath string, doc models.MappingDocument, root *etree.Element, opts Options) (*models.WriteReport, error) {
	opts.defaults()
	log := opts.Logger.With(zap.String("workbook", workbookPath))

	f, created, err := openOrCreate(workbookPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if created {
		log.Info("workbook not found, creating a new one")
	}

	report := &models.WriteReport{
		WorkbookPath: workbookPath,
		Created:      created,
	}
	var firstErr *MaterializeError
	fail := func(merr *MaterializeError) {
		log.Warn("skipping mapping entries",
			zap.String("worksheet", merr.Worksheet),
			zap.String("tag", merr.Tag),
			zap.Error(merr.Err))
		report.Failures = append(report.Failures, models.WriteFailure{
			Worksheet: merr.Worksheet,
			Tag:       merr.Tag,
			Message:   merr.Err.Error(),
		})
		if firstErr == nil {
			firstErr = merr
		}
	}

	for _, sheetName := range doc.Worksheets() {
		if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
			fail(NewMaterializeError(sheetName, "", ErrWorksheetNotFound))
			continue
		}

		sheet := models.SheetWrite{Worksheet: sheetName}
		for _, tag := range doc.Tags(sheetName) {
			values := parser.ValuesForTag(root, tag)
			write, err := writeColumn(f, sheetName, doc[sheetName][tag], values, opts.InferTypes)
			if err != nil {
				fail(NewMaterializeError(sheetName, tag, err))
				continue
			}
			write.Tag = tag
			log.Debug("wrote tag values",
				zap.String("worksheet", sheetName),
				zap.String("tag", tag),
				zap.String("start", write.Start),
				zap.Int("count", write.Count))
			sheet.Tags = append(sheet.Tags, write)
		}
		if len(sheet.Tags) > 0 {
			report.Sheets = append(report.Sheets, sheet)
		}
	}

	target := opts.SavePath(workbookPath)
	if !created && !parser.IsMacroExtension(target) {
		if pkg, err := parser.InspectPackage(workbookPath); err == nil && (pkg.MacroEnabled() || pkg.HasVBAProject) {
			log.Warn("macro-enabled workbook is saved without a macro-enabled extension",
				zap.String("saved_path", target),
				zap.String("content_type", pkg.WorkbookContentType),
				zap.Bool("vba_project", pkg.HasVBAProject))
		}
	}
	if err := f.SaveAs(target); err != nil {
		return report, &MaterializeError{Path: target, Err: err}
	}
	report.SavedPath = target
	log.Info("workbook saved",
		zap.String("saved_path", target),
		zap.Int("values", report.Total()),
		zap.Int("failures", len(report.Failures)))

	if firstErr != nil {
		return report, firstErr
	}
	return report, nil
}

// openOrCreate opens the workbook at path, or creates an empty one when
// the file does not exist.
func openOrCreate(path string) (*excelize.File, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), true, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, &WorkbookOpenError{Path: path, Err: err}
	}
	return f, false, nil
}

// writeColumn writes values one per row starting at start, holding the
// column fixed.
func writeColumn(f *excelize.File, sheetName string, start models.CellAddress, values []string, inferTypes bool) (models.TagWrite, error) {
	write := models.TagWrite{Start: start.String()}
	if err := start.Validate(); err != nil {
		return write, err
	}
	if last := start.Row + len(values) - 1; last > excelize.TotalRows {
		return write, fmt.Errorf("%d values from %s end at row %d: %w", len(values), start, last, excelize.ErrMaxRows)
	}

	for i, value := range values {
		cell, err := start.Offset(i).CellName()
		if err != nil {
			return write, err
		}

		prev, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			return write, err
		}
		if prev != "" {
			write.Overwritten++
		}

		if inferTypes {
			err = f.SetCellValue(sheetName, cell, parser.ParseValue(value))
		} else {
			err = f.SetCellStr(sheetName, cell, value)
		}
		if err != nil {
			return write, err
		}

		write.End = cell
		write.Count++
	}

	return write, nil
}
