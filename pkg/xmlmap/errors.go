package xmlmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/store"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrWorksheetNotFound indicates a mapped worksheet absent from the workbook.
var ErrWorksheetNotFound = errors.New("worksheet not found in workbook")

// Sources that must be loaded before mapping.
const (
	SourceWorkbook = "workbook"
	SourceXML      = "xml"
)

// ParseError reports an XML file that could not be read or parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse XML %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WorkbookOpenError reports a workbook that could not be opened.
type WorkbookOpenError struct {
	Path string
	Err  error
}

func (e *WorkbookOpenError) Error() string {
	return fmt.Sprintf("cannot open workbook %q: %v", e.Path, e.Err)
}

func (e *WorkbookOpenError) Unwrap() error {
	return e.Err
}

// MappingLoadWarning reports a saved mapping that was ignored.
type MappingLoadWarning = store.LoadWarning

// PreconditionError reports an operation attempted before its sources were loaded.
type PreconditionError struct {
	Missing []string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s not loaded", strings.Join(e.Missing, " and "))
}

// MaterializeError reports entries that could not be written.
// Tag is empty when the whole worksheet failed. Path is set instead of
// Worksheet when the workbook itself could not be saved.
type MaterializeError struct {
	Worksheet string
	Tag       string
	Path      string
	Err       error
}

func (e *MaterializeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("save workbook %q: %v", e.Path, e.Err)
	}
	if e.Tag == "" {
		return fmt.Sprintf("materialize worksheet %q: %v", e.Worksheet, e.Err)
	}
	return fmt.Sprintf("materialize worksheet %q tag %q: %v", e.Worksheet, e.Tag, e.Err)
}

func (e *MaterializeError) Unwrap() error {
	return e.Err
}

// NewMaterializeError creates a new MaterializeError.
func NewMaterializeError(worksheet, tag string, err error) *MaterializeError {
	return &MaterializeError{
		Worksheet: worksheet,
		Tag:       tag,
		Err:       err,
	}
}
