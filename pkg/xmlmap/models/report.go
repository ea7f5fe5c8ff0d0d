package models

// TagWrite records the values written for one tag.
type TagWrite struct {
	// Tag is the XML element tag.
	Tag string `json:"tag"`
	// Start is the first cell written.
	Start string `json:"start"`
	// End is the last cell written (empty if no values).
	End string `json:"end,omitempty"`
	// Count is the number of values written.
	Count int `json:"count"`
	// Overwritten is the number of previously non-empty cells replaced.
	Overwritten int `json:"overwritten,omitempty"`
}

// SheetWrite groups tag writes for one worksheet.
type SheetWrite struct {
	// Worksheet is the worksheet name.
	Worksheet string `json:"worksheet"`
	// Tags lists writes in tag order.
	Tags []TagWrite `json:"tags"`
}

// WriteFailure describes a worksheet or tag whose entries were not written.
type WriteFailure struct {
	Worksheet string `json:"worksheet"`
	Tag       string `json:"tag,omitempty"`
	Message   string `json:"message"`
}

// WriteReport is the outcome of a materialization.
type WriteReport struct {
	// WorkbookPath is the path the workbook was read from (or created for).
	WorkbookPath string `json:"workbook_path"`
	// SavedPath is the path the workbook was written to.
	SavedPath string `json:"saved_path"`
	// Created is true when no workbook existed and a new one was created.
	Created bool `json:"created,omitempty"`
	// Sheets lists successful writes in worksheet order.
	Sheets []SheetWrite `json:"sheets"`
	// Failures lists worksheets or tags that were skipped.
	Failures []WriteFailure `json:"failures,omitempty"`
}

// Total returns the number of values written across all worksheets.
func (r *WriteReport) Total() int {
	n := 0
	for _, s := range r.Sheets {
		for _, t := range s.Tags {
			n += t.Count
		}
	}
	return n
}
