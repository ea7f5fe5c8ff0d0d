// Package store persists tag-to-cell mappings as a JSON document of the form
// {"Sheet1": {"Name": ["B", 2]}}.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
)

// DefaultPath is the mapping file name used when none is configured.
const DefaultPath = "mapping.json"

// LoadWarning reports a mapping file that exists but could not be read.
// Callers treat it as recoverable: Load still returns an empty document.
type LoadWarning struct {
	Path string
	Err  error
}

func (w *LoadWarning) Error() string {
	return fmt.Sprintf("mapping file %q ignored: %v", w.Path, w.Err)
}

func (w *LoadWarning) Unwrap() error {
	return w.Err
}

// Load reads the mapping document at path.
// A missing file yields an empty document and a nil error. Any other failure
// yields an empty document and a *LoadWarning.
func Load(path string) (models.MappingDocument, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.MappingDocument{}, nil
	}
	if err != nil {
		return models.MappingDocument{}, &LoadWarning{Path: path, Err: err}
	}

	doc, err := Decode(data)
	if err != nil {
		return models.MappingDocument{}, &LoadWarning{Path: path, Err: err}
	}
	return doc, nil
}

// Decode parses a mapping document. Entries must carry a valid cell address.
func Decode(data []byte) (models.MappingDocument, error) {
	var doc models.MappingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = models.MappingDocument{}
	}
	for ws, tags := range doc {
		if tags == nil {
			delete(doc, ws)
			continue
		}
		for tag, addr := range tags {
			if err := addr.Validate(); err != nil {
				return nil, fmt.Errorf("worksheet %q tag %q: %w", ws, tag, err)
			}
		}
	}
	return doc, nil
}

// Encode serializes a mapping document. Keys are emitted in sorted order,
// so equal documents encode identically.
func Encode(doc models.MappingDocument) ([]byte, error) {
	if doc == nil {
		doc = models.MappingDocument{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Save writes the full document to path, replacing any existing file.
// The data is written to a temporary file in the same directory and renamed
// into place, so readers never observe a partial document.
func Save(path string, doc models.MappingDocument) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: create tmp: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: chmod tmp: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write tmp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close tmp: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}

// EntryFor returns the saved target of tag, if any.
func EntryFor(doc models.MappingDocument, tag string) (models.Target, bool) {
	return doc.Lookup(tag)
}
