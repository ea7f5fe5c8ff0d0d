// Package xmlmap maps XML element text onto worksheet cells and replays the
// mapping to populate workbooks.
package xmlmap

import (
	"path/filepath"
	"strings"

	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/store"
	"go.uber.org/zap"
)

// Options configures a mapping session and materialization.
type Options struct {
	// MappingPath is the mapping document location (default: mapping.json).
	MappingPath string
	// MacroEnabled saves a .xlsx workbook as .xlsm next to it.
	MacroEnabled bool
	// InferTypes writes numeric-looking values as numbers instead of text.
	InferTypes bool
	// Logger receives warnings and debug output. Nil discards logs.
	Logger *zap.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		MappingPath: store.DefaultPath,
	}
}

func (o *Options) defaults() {
	if o.MappingPath == "" {
		o.MappingPath = store.DefaultPath
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// SavePath returns the path a workbook opened from path is written to.
func (o Options) SavePath(path string) string {
	if o.MacroEnabled && strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return path[:len(path)-len(".xlsx")] + ".xlsm"
	}
	return path
}
