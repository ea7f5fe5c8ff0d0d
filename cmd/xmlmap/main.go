// Package main provides the CLI entry point for xmlmap.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/models"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/output"
	"github.com/ukaji3/xmlmap-go/pkg/xmlmap/parser"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath  string
	mappingPath string
	pretty      bool
	verbose     bool
	macro       bool
	inferTypes  bool
	assignRefs  []string
	sheetsDir   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xmlmap",
		Short: "Map XML element text onto worksheet cells",
		Long: `xmlmap assigns XML element tags to worksheet cells, saves the assignment
to a mapping file and writes the element values into the workbook.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVarP(&mappingPath, "mapping", "m", "", "Mapping file (default: mapping.json)")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	sheetsCmd := &cobra.Command{
		Use:   "sheets <workbook>",
		Short: "List the worksheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runSheets,
	}

	tagsCmd := &cobra.Command{
		Use:   "tags <input.xml>",
		Short: "List the XML tags that carry text",
		Args:  cobra.ExactArgs(1),
		RunE:  runTags,
	}

	valuesCmd := &cobra.Command{
		Use:   "values <input.xml> <tag>",
		Short: "Print the values of a tag in document order",
		Args:  cobra.ExactArgs(2),
		RunE:  runValues,
	}

	defaultsCmd := &cobra.Command{
		Use:   "defaults <workbook> <input.xml>",
		Short: "Print the target each tag would be written to",
		Args:  cobra.ExactArgs(2),
		RunE:  runDefaults,
	}

	commitCmd := &cobra.Command{
		Use:   "commit <workbook> <input.xml>",
		Short: "Save the mapping and write the XML values into the workbook",
		Args:  cobra.ExactArgs(2),
		RunE:  runCommit,
	}
	commitCmd.Flags().StringArrayVarP(&assignRefs, "assign", "a", nil, "Tag target as Tag=Sheet!B2 (repeatable)")
	commitCmd.Flags().BoolVar(&macro, "xlsm", false, "Save a .xlsx workbook as .xlsm")
	commitCmd.Flags().BoolVar(&inferTypes, "infer-types", false, "Write numeric values as numbers")

	inspectCmd := &cobra.Command{
		Use:   "inspect <workbook>",
		Short: "Dump worksheet contents as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	inspectCmd.Flags().BoolVar(&inferTypes, "infer-types", false, "Report numeric cells as numbers")

	rootCmd.AddCommand(sheetsCmd, tagsCmd, valuesCmd, defaultsCmd, commitCmd, inspectCmd)
	return rootCmd
}

// loadOptions merges the config file with command-line flags.
func loadOptions(cmd *cobra.Command) (xmlmap.Options, *Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		loaded, err := LoadFile(configPath)
		if err != nil {
			return xmlmap.Options{}, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mapping") {
		cfg.MappingFile = mappingPath
	}
	if flags.Changed("pretty") {
		cfg.Pretty = pretty
	}
	if flags.Changed("xlsm") {
		cfg.MacroEnabled = macro
	}
	if flags.Changed("infer-types") {
		cfg.InferTypes = inferTypes
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return xmlmap.Options{}, nil, err
	}

	return xmlmap.Options{
		MappingPath:  cfg.MappingFile,
		MacroEnabled: cfg.MacroEnabled,
		InferTypes:   cfg.InferTypes,
		Logger:       logger,
	}, cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	return zc.Build()
}

func runSheets(cmd *cobra.Command, args []string) error {
	opts, cfg, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	defer opts.Logger.Sync()

	info, err := xmlmap.OpenWorkbook(args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, info, cfg.Pretty)
}

func runTags(cmd *cobra.Command, args []string) error {
	opts, cfg, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	defer opts.Logger.Sync()

	session := xmlmap.NewSession(opts)
	tags, err := session.OpenXML(args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, tags, cfg.Pretty)
}

func runValues(cmd *cobra.Command, args []string) error {
	opts, cfg, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	defer opts.Logger.Sync()

	session := xmlmap.NewSession(opts)
	if _, err := session.OpenXML(args[0]); err != nil {
		return err
	}
	values, err := session.Values(args[1])
	if err != nil {
		return err
	}
	return printJSON(cmd, values, cfg.Pretty)
}

func runDefaults(cmd *cobra.Command, args []string) error {
	opts, cfg, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	defer opts.Logger.Sync()

	session, err := openSources(opts, args[0], args[1])
	if err != nil {
		return err
	}

	entries := make([]models.MappingEntry, 0, len(session.Tags()))
	for _, tag := range session.Tags() {
		t, err := session.MappingDefaults(tag)
		if err != nil {
			return err
		}
		entries = append(entries, models.MappingEntry{Tag: tag, Target: t})
	}
	return printJSON(cmd, entries, cfg.Pretty)
}

func runCommit(cmd *cobra.Command, args []string) error {
	opts, cfg, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	defer opts.Logger.Sync()

	assignments, err := parseAssignments(assignRefs)
	if err != nil {
		return err
	}

	session, err := openSources(opts, args[0], args[1])
	if err != nil {
		return err
	}

	report, err := session.Commit(assignments)
	if report != nil {
		if perr := printReport(cmd, report, cfg.Pretty); perr != nil {
			return perr
		}
	}
	if err != nil {
		var merr *xmlmap.MaterializeError
		if errors.As(err, &merr) && report != nil && report.SavedPath != "" {
			return fmt.Errorf("workbook saved with skipped entries: %w", err)
		}
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts, cfg, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	defer opts.Logger.Sync()

	snapshot, err := xmlmap.Snapshot(args[0], opts.InferTypes)
	if err != nil {
		return err
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(snapshot, sheetsDir, cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
		return nil
	}

	jsonData, err := output.SnapshotToJSON(snapshot, cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func openSources(opts xmlmap.Options, workbookPath, xmlPath string) (*xmlmap.Session, error) {
	session := xmlmap.NewSession(opts)
	if _, err := session.OpenWorkbook(workbookPath); err != nil {
		return nil, err
	}
	if _, err := session.OpenXML(xmlPath); err != nil {
		return nil, err
	}
	return session, nil
}

// parseAssignments parses repeated Tag=Sheet!B2 flags.
func parseAssignments(refs []string) (map[string]models.Target, error) {
	assignments := make(map[string]models.Target, len(refs))
	for _, ref := range refs {
		tag, target, ok := strings.Cut(ref, "=")
		tag = strings.TrimSpace(tag)
		if !ok || tag == "" {
			return nil, fmt.Errorf("invalid assignment %q (want Tag=Sheet!B2)", ref)
		}
		t, err := parser.ParseTargetReference(target)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment %q: %w", ref, err)
		}
		assignments[tag] = t
	}
	return assignments, nil
}

func printReport(cmd *cobra.Command, report *models.WriteReport, pretty bool) error {
	jsonData, err := output.ReportToJSON(report, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}, pretty bool) error {
	jsonData, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func writeSheetFiles(snapshot *models.WorkbookSnapshot, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	names := make([]string, 0, len(snapshot.Sheets))
	for name := range snapshot.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, sheetName := range names {
		sheet := snapshot.Sheets[sheetName]
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
