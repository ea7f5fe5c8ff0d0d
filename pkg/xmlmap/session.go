package xmlmap

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/beevik/etree"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/parser"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/store"
	"go.uber.org/zap"
)

// Stage is the position of a session in the mapping workflow.
type Stage int

const (
	// StageInit means the workbook, the XML file, or both are missing.
	StageInit Stage = iota
	// StageSourcesLoaded means both sources are loaded but editing has not started.
	StageSourcesLoaded
	// StageMappingEditing means tag targets are live and can be edited or committed.
	StageMappingEditing
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageSourcesLoaded:
		return "sources-loaded"
	case StageMappingEditing:
		return "mapping-editing"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Session holds the state of one interactive mapping workflow: the selected
// workbook, the parsed XML tree and the tag targets being edited.
//
// Every method runs to completion; a failing method leaves the session as it
// was before the call. A Session is not safe for concurrent use.
type Session struct {
	opts Options
	log  *zap.Logger

	workbookPath string
	worksheets   []string

	xmlPath string
	xmlRoot *etree.Element
	tags    []string

	editing bool
	targets map[string]models.Target
}

// NewSession creates a session with no sources loaded.
func NewSession(opts Options) *Session {
	opts.defaults()
	return &Session{
		opts: opts,
		log:  opts.Logger,
	}
}

// Stage returns the current workflow stage.
func (s *Session) Stage() Stage {
	switch {
	case len(s.missingSources()) > 0:
		return StageInit
	case !s.editing:
		return StageSourcesLoaded
	default:
		return StageMappingEditing
	}
}

// OpenWorkbook selects the workbook at path and returns its worksheet names.
func (s *Session) OpenWorkbook(path string) ([]string, error) {
	info, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}

	s.workbookPath = path
	s.worksheets = info.Worksheets
	s.log.Info("workbook loaded",
		zap.String("path", path),
		zap.Strings("worksheets", info.Worksheets),
		zap.Bool("vba_project", info.HasVBAProject))
	return slices.Clone(s.worksheets), nil
}

// OpenXML parses the XML file at path and returns the tags that carry text.
func (s *Session) OpenXML(path string) ([]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, &ParseError{Path: path, Err: ErrFileNotFound}
	}

	root, err := parser.ReadXMLFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	s.xmlPath = path
	s.xmlRoot = root
	s.tags = parser.DistinctTextualTags(root)
	s.log.Info("xml loaded",
		zap.String("path", path),
		zap.String("root", root.FullTag()),
		zap.Int("tags", len(s.tags)))

	if s.editing {
		// Keep edited targets and give newly seen tags their defaults.
		for _, tag := range s.tags {
			if _, ok := s.targets[tag]; !ok {
				s.targets[tag] = models.DefaultTarget(s.worksheets)
			}
		}
	}
	return slices.Clone(s.tags), nil
}

// WorkbookPath returns the selected workbook path.
func (s *Session) WorkbookPath() string { return s.workbookPath }

// Worksheets returns the worksheet names of the selected workbook.
func (s *Session) Worksheets() []string { return slices.Clone(s.worksheets) }

// Tags returns the distinct tags with text in the loaded XML, sorted.
func (s *Session) Tags() []string { return slices.Clone(s.tags) }

// Values returns the values tag would contribute, in document order.
func (s *Session) Values(tag string) ([]string, error) {
	if s.xmlRoot == nil {
		return nil, &PreconditionError{Missing: []string{SourceXML}}
	}
	return parser.ValuesForTag(s.xmlRoot, tag), nil
}

// BeginMapping enters mapping editing. Each tag of the loaded XML gets its
// saved target when the mapping file has one, and otherwise the first
// worksheet at A1. Saved targets of tags absent from this XML are kept so a
// later commit writes them back.
func (s *Session) BeginMapping() (map[string]models.Target, error) {
	if missing := s.missingSources(); len(missing) > 0 {
		return nil, &PreconditionError{Missing: missing}
	}
	if s.editing {
		return maps.Clone(s.targets), nil
	}

	saved, err := store.Load(s.opts.MappingPath)
	if err != nil {
		var warn *MappingLoadWarning
		if !errors.As(err, &warn) {
			return nil, err
		}
		s.log.Warn("error loading mappings, starting empty",
			zap.String("path", warn.Path),
			zap.Error(warn.Err))
	}

	// Saved entries for tags absent from this XML stay in the table.
	targets := saved.Assignments()
	for _, tag := range s.tags {
		if t, ok := store.EntryFor(saved, tag); ok {
			targets[tag] = t
			continue
		}
		targets[tag] = models.DefaultTarget(s.worksheets)
	}

	s.targets = targets
	s.editing = true
	return maps.Clone(s.targets), nil
}

// MappingDefaults returns the target shown for tag when the mapping form
// opens: its current target while editing, else the saved one, else the
// first worksheet at A1.
func (s *Session) MappingDefaults(tag string) (models.Target, error) {
	if _, err := s.BeginMapping(); err != nil {
		return models.Target{}, err
	}
	if t, ok := s.targets[tag]; ok {
		return t, nil
	}
	return models.DefaultTarget(s.worksheets), nil
}

// Assign sets the target of tag. Reassigning a tag replaces its target.
func (s *Session) Assign(tag string, t models.Target) error {
	if _, err := s.BeginMapping(); err != nil {
		return err
	}
	if err := t.Start.Validate(); err != nil {
		return NewMaterializeError(t.Worksheet, tag, err)
	}
	s.targets[tag] = t
	return nil
}

// Targets returns a copy of the live tag targets.
func (s *Session) Targets() map[string]models.Target {
	return maps.Clone(s.targets)
}

// Commit applies assignments on top of the live targets, saves the mapping
// document and writes every mapped tag into the workbook.
//
// Invalid addresses are rejected before anything is written. On success
// the session stays in mapping editing with the committed targets.
func (s *Session) Commit(assignments map[string]models.Target) (*models.WriteReport, error) {
	if _, err := s.BeginMapping(); err != nil {
		return nil, err
	}

	for _, tag := range slices.Sorted(maps.Keys(assignments)) {
		t := assignments[tag]
		if err := t.Start.Validate(); err != nil {
			return nil, NewMaterializeError(t.Worksheet, tag, err)
		}
	}

	next := maps.Clone(s.targets)
	maps.Copy(next, assignments)
	doc := models.NewMappingDocument(next)

	if err := store.Save(s.opts.MappingPath, doc); err != nil {
		return nil, err
	}
	s.targets = next
	s.log.Info("mapping saved",
		zap.String("path", s.opts.MappingPath),
		zap.Int("entries", doc.Len()))

	return Materialize(s.workbookPath, doc, s.xmlRoot, s.opts)
}

func (s *Session) missingSources() []string {
	var missing []string
	if s.workbookPath == "" {
		missing = append(missing, SourceWorkbook)
	}
	if s.xmlRoot == nil {
		missing = append(missing, SourceXML)
	}
	return missing
}
