package models

// SheetSummary represents the contents of a single sheet.
type SheetSummary struct {
	// UsedRange is the bounding range of non-empty cells (e.g. "A1:D10").
	UsedRange string `json:"used_range,omitempty"`
	// Rows contains non-empty rows.
	Rows []CellRow `json:"rows,omitempty"`
}
