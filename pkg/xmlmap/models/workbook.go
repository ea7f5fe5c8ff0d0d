package models

// WorkbookInfo describes an opened workbook.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Worksheets lists worksheet names in workbook order.
	Worksheets []string `json:"worksheets"`
	// HasVBAProject is true when the package carries a macro project.
	HasVBAProject bool `json:"has_vba_project,omitempty"`
}

// WorkbookSnapshot is a workbook-level container with per-sheet contents.
type WorkbookSnapshot struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to SheetSummary.
	Sheets map[string]SheetSummary `json:"sheets"`
}
