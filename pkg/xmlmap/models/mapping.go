package models

import (
	"sort"
)

// Target is where the values of one tag are written.
type Target struct {
	// Worksheet is the destination worksheet name.
	Worksheet string `json:"worksheet"`
	// Start is the first cell written; later values go to the rows below it.
	Start CellAddress `json:"start"`
}

// DefaultTarget returns the target used for a tag with no saved mapping.
func DefaultTarget(worksheets []string) Target {
	t := Target{Start: CellAddress{Column: "A", Row: 1}}
	if len(worksheets) > 0 {
		t.Worksheet = worksheets[0]
	}
	return t
}

// MappingEntry assigns one tag to a target.
type MappingEntry struct {
	Tag    string `json:"tag"`
	Target Target `json:"target"`
}

// MappingDocument is the persisted form: worksheet name -> tag -> start cell.
type MappingDocument map[string]map[string]CellAddress

// NewMappingDocument builds a document from tag assignments.
func NewMappingDocument(assignments map[string]Target) MappingDocument {
	doc := make(MappingDocument)
	for tag, t := range assignments {
		doc.Set(tag, t)
	}
	return doc
}

// Set places tag under the target worksheet, removing any earlier placement of the same tag.
func (d MappingDocument) Set(tag string, t Target) {
	for ws, tags := range d {
		if _, ok := tags[tag]; ok && ws != t.Worksheet {
			delete(tags, tag)
			if len(tags) == 0 {
				delete(d, ws)
			}
		}
	}
	tags, ok := d[t.Worksheet]
	if !ok {
		tags = make(map[string]CellAddress)
		d[t.Worksheet] = tags
	}
	tags[tag] = t.Start
}

// Lookup returns the target of tag, if mapped.
// When a malformed document lists the tag under several worksheets, the
// alphabetically last worksheet wins, matching the order entries are replayed.
func (d MappingDocument) Lookup(tag string) (Target, bool) {
	var (
		found Target
		ok    bool
	)
	for _, ws := range d.Worksheets() {
		if addr, exists := d[ws][tag]; exists {
			found = Target{Worksheet: ws, Start: addr}
			ok = true
		}
	}
	return found, ok
}

// Assignments flattens the document into tag -> target.
func (d MappingDocument) Assignments() map[string]Target {
	out := make(map[string]Target)
	for _, ws := range d.Worksheets() {
		for tag, addr := range d[ws] {
			out[tag] = Target{Worksheet: ws, Start: addr}
		}
	}
	return out
}

// Worksheets returns the worksheet names in sorted order.
func (d MappingDocument) Worksheets() []string {
	names := make([]string, 0, len(d))
	for ws := range d {
		names = append(names, ws)
	}
	sort.Strings(names)
	return names
}

// Tags returns the tags mapped under worksheet in sorted order.
func (d MappingDocument) Tags(worksheet string) []string {
	tags := make([]string, 0, len(d[worksheet]))
	for tag := range d[worksheet] {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Len returns the number of mapped tags.
func (d MappingDocument) Len() int {
	n := 0
	for _, tags := range d {
		n += len(tags)
	}
	return n
}
