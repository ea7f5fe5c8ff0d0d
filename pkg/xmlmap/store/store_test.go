package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
)

func TestLoadMissingFile(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "mapping.json"))
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Zero(t, doc.Len())
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"truncated", `{"Sheet1": {"Name": ["B", `},
		{"wrong shape", `{"Sheet1": ["B", 2]}`},
		{"bad column", `{"Sheet1": {"Name": ["AA", 2]}}`},
		{"bad row", `{"Sheet1": {"Name": ["B", 0]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mapping.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))

			doc, err := Load(path)
			var warn *LoadWarning
			require.True(t, errors.As(err, &warn), "expected *LoadWarning, got %v", err)
			assert.Equal(t, path, warn.Path)
			assert.NotNil(t, doc)
			assert.Zero(t, doc.Len())
		})
	}
}

func TestLoadLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"Sheet1": {"Name": ["B", 2], "Age": ["C", 2]}, "Sheet2": {"City": ["A", 1]}}`), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, models.MappingDocument{
		"Sheet1": {"Name": {Column: "B", Row: 2}, "Age": {Column: "C", Row: 2}},
		"Sheet2": {"City": {Column: "A", Row: 1}},
	}, doc)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	docs := []models.MappingDocument{
		{},
		{"Sheet1": {"Name": {Column: "B", Row: 2}}},
		{
			"Zeta":   {"b": {Column: "Z", Row: 1048576}, "a": {Column: "A", Row: 1}},
			"Alpha":  {"x": {Column: "M", Row: 13}},
			"With ☃": {"ns:tag": {Column: "Q", Row: 5}},
		},
	}

	for _, doc := range docs {
		path := filepath.Join(t.TempDir(), "mapping.json")
		require.NoError(t, Save(path, doc))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	}
}

func TestEncodeStable(t *testing.T) {
	a := models.MappingDocument{}
	a.Set("one", models.Target{Worksheet: "S1", Start: models.CellAddress{Column: "A", Row: 1}})
	a.Set("two", models.Target{Worksheet: "S2", Start: models.CellAddress{Column: "B", Row: 2}})

	b := models.MappingDocument{}
	b.Set("two", models.Target{Worksheet: "S2", Start: models.CellAddress{Column: "B", Row: 2}})
	b.Set("one", models.Target{Worksheet: "S1", Start: models.CellAddress{Column: "A", Row: 1}})

	da, err := Encode(a)
	require.NoError(t, err)
	db, err := Encode(b)
	require.NoError(t, err)
	assert.Equal(t, string(da), string(db))
	assert.JSONEq(t, `{"S1": {"one": ["A", 1]}, "S2": {"two": ["B", 2]}}`, string(da))
}

func TestSaveReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0644))

	doc := models.MappingDocument{"Sheet1": {"Name": {Column: "B", Row: 2}}}
	require.NoError(t, Save(path, doc))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSaveMissingDirectory(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope", "mapping.json"), models.MappingDocument{})
	assert.Error(t, err)
}

func TestEntryFor(t *testing.T) {
	doc := models.MappingDocument{"Sheet1": {"Name": {Column: "B", Row: 2}}}

	got, ok := EntryFor(doc, "Name")
	assert.True(t, ok)
	assert.Equal(t, models.Target{Worksheet: "Sheet1", Start: models.CellAddress{Column: "B", Row: 2}}, got)

	_, ok = EntryFor(doc, "Age")
	assert.False(t, ok)
}
