// Package output renders reports and workbook snapshots as JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ReportToJSON serializes a write report.
func ReportToJSON(r *models.WriteReport, pretty bool) ([]byte, error) {
	return ToJSON(r, pretty)
}

// SnapshotToJSON serializes a workbook snapshot.
func SnapshotToJSON(s *models.WorkbookSnapshot, pretty bool) ([]byte, error) {
	return ToJSON(s, pretty)
}

// SheetToJSON serializes a single sheet summary.
func SheetToJSON(s *models.SheetSummary, pretty bool) ([]byte, error) {
	return ToJSON(s, pretty)
}
