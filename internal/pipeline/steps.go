package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jsondict/jsondict/internal/config"
	"github.com/jsondict/jsondict/internal/document"
	"github.com/jsondict/jsondict/internal/flatten"
	"github.com/jsondict/jsondict/internal/history"
	"github.com/jsondict/jsondict/internal/model"
	"github.com/jsondict/jsondict/internal/table"
	"github.com/jsondict/jsondict/internal/workbook"
)

// ErrNoDocument reports a step that needs the parsed document running
// before any load step populated it.
var ErrNoDocument = errors.New("no document loaded")

// LoadStep reads the input file, validates the JSON, and resolves the
// content mode. It populates the dictionary's parsed document, mode, and
// envelope key for the steps that follow.
type LoadStep struct {
	// mode selects direct-content or envelope-content loading.
	mode config.Mode

	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a step that loads the dictionary's source path with
// the given content mode.
func NewLoadStep(mode config.Mode, opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		mode:   mode,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, dict *model.Dictionary) error {
	doc, err := document.Load(dict.SourcePath, s.mode)
	if err != nil {
		return err
	}

	dict.Doc = doc
	dict.Mode = string(doc.Mode)
	dict.EnvelopeKey = doc.ContentKey

	s.logger.Debug("document loaded",
		"source", dict.SourcePath,
		"mode", dict.Mode,
		"sections", doc.SectionCount(),
	)

	return nil
}

// BuildStep flattens every section of the loaded document, in document
// order, into section tables, and collects the top-level key index. One
// progress line per section narrates the walk.
type BuildStep struct {
	// layout supplies the column headers and tokens for built tables.
	layout table.Layout

	// skipSections holds top-level keys excluded from the workbook.
	// Skipped sections get neither a sheet nor an index row.
	skipSections map[string]bool

	// progress receives the per-section narration lines.
	progress io.Writer

	// logger for structured logging.
	logger *slog.Logger
}

// BuildStepOption configures a BuildStep.
type BuildStepOption func(*BuildStep)

// WithBuildProgress sets the writer receiving per-section progress lines.
// Defaults to standard output.
func WithBuildProgress(w io.Writer) BuildStepOption {
	return func(s *BuildStep) {
		s.progress = w
	}
}

// WithSkipSections sets the top-level keys to leave out of the workbook.
func WithSkipSections(keys []string) BuildStepOption {
	return func(s *BuildStep) {
		for _, key := range keys {
			s.skipSections[key] = true
		}
	}
}

// WithBuildLogger sets a custom logger for the build step.
func WithBuildLogger(logger *slog.Logger) BuildStepOption {
	return func(s *BuildStep) {
		s.logger = logger
	}
}

// NewBuildStep creates a step that builds section tables with the given
// sheet layout.
func NewBuildStep(layout table.Layout, opts ...BuildStepOption) *BuildStep {
	s := &BuildStep{
		layout:       layout,
		skipSections: make(map[string]bool),
		progress:     os.Stdout,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *BuildStep) Name() string {
	return "build"
}

// Do executes the build step. Every kept top-level key gets an index entry;
// sections whose value flattens to at least one record also get a table.
// Scalar sections and empty arrays yield no records and so no sheet.
func (s *BuildStep) Do(_ context.Context, dict *model.Dictionary) error {
	if dict.Doc == nil {
		return fmt.Errorf("%w: %s", ErrNoDocument, dict.SourcePath)
	}

	for _, section := range dict.Doc.Sections() {
		if s.skipSections[section.Key] {
			fmt.Fprintf(s.progress, "Processing %s... skipped\n", section.Key)
			continue
		}
		fmt.Fprintf(s.progress, "Processing %s... ", section.Key)

		dict.AddIndexEntry(section.Key, flatten.TypeName(section.Value))

		records, err := flatten.Section(section.Value)
		if err != nil {
			fmt.Fprintln(s.progress, "FAILED")
			return fmt.Errorf("failed to flatten section %q: %w", section.Key, err)
		}
		if len(records) > 0 {
			dict.AddTable(table.Build(section.Key, records, s.layout))
		}

		fmt.Fprintln(s.progress, "OK")
	}

	s.logger.Debug("tables built",
		"source", dict.SourcePath,
		"sections", dict.SectionCount(),
		"fields", dict.FieldCount(),
	)

	return nil
}

// WriteStep persists the dictionary as an xlsx workbook, one sheet per
// section table, with the index sheet first when enabled. This is the
// first of the two save round-trips.
type WriteStep struct {
	// layout supplies the index sheet name and headers.
	layout table.Layout

	// logger for structured logging.
	logger *slog.Logger
}

// WriteStepOption configures a WriteStep.
type WriteStepOption func(*WriteStep)

// WithWriteLogger sets a custom logger for the write step.
func WithWriteLogger(logger *slog.Logger) WriteStepOption {
	return func(s *WriteStep) {
		s.logger = logger
	}
}

// NewWriteStep creates a step that writes the workbook to the dictionary's
// output path.
func NewWriteStep(layout table.Layout, opts ...WriteStepOption) *WriteStep {
	s := &WriteStep{
		layout: layout,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do executes the write step.
func (s *WriteStep) Do(_ context.Context, dict *model.Dictionary) error {
	if err := workbook.Write(dict, s.layout); err != nil {
		return err
	}

	s.logger.Debug("workbook written",
		"output", dict.OutputPath,
		"sheets", dict.SectionCount(),
	)

	return nil
}

// StyleStep reopens the workbook saved by the write step and applies the
// full styling pass: fills, borders, merges, widths, and the auto filter.
// This is the second save round-trip.
type StyleStep struct {
	// layout identifies the type, required, and key columns by header.
	layout table.Layout

	// logger for structured logging.
	logger *slog.Logger
}

// StyleStepOption configures a StyleStep.
type StyleStepOption func(*StyleStep)

// WithStyleLogger sets a custom logger for the style step.
func WithStyleLogger(logger *slog.Logger) StyleStepOption {
	return func(s *StyleStep) {
		s.logger = logger
	}
}

// NewStyleStep creates a step that styles the workbook at the dictionary's
// output path.
func NewStyleStep(layout table.Layout, opts ...StyleStepOption) *StyleStep {
	s := &StyleStep{
		layout: layout,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *StyleStep) Name() string {
	return "style"
}

// Do executes the style step.
func (s *StyleStep) Do(_ context.Context, dict *model.Dictionary) error {
	if err := workbook.Style(dict.OutputPath, s.layout); err != nil {
		return err
	}

	s.logger.Debug("workbook styled", "output", dict.OutputPath)

	return nil
}

// SnapshotStep persists the generated dictionary to the history store so
// the compare command can diff this run against earlier ones.
type SnapshotStep struct {
	// store is the snapshot database.
	store *history.Store

	// logger for structured logging.
	logger *slog.Logger
}

// SnapshotStepOption configures a SnapshotStep.
type SnapshotStepOption func(*SnapshotStep)

// WithSnapshotLogger sets a custom logger for the snapshot step.
func WithSnapshotLogger(logger *slog.Logger) SnapshotStepOption {
	return func(s *SnapshotStep) {
		s.logger = logger
	}
}

// NewSnapshotStep creates a step that saves the dictionary to the given
// store. The store's lifecycle belongs to the caller.
func NewSnapshotStep(store *history.Store, opts ...SnapshotStepOption) *SnapshotStep {
	s := &SnapshotStep{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SnapshotStep) Name() string {
	return "snapshot"
}

// Do executes the snapshot step.
func (s *SnapshotStep) Do(ctx context.Context, dict *model.Dictionary) error {
	id, err := s.store.SaveSnapshot(ctx, dict)
	if err != nil {
		return fmt.Errorf("failed to save history snapshot: %w", err)
	}

	s.logger.Debug("snapshot saved",
		"source", dict.SourcePath,
		"snapshot_id", id,
	)

	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// SkipSections lists top-level keys to leave out of the workbook.
	SkipSections []string

	// Progress receives the per-section narration lines.
	// Defaults to standard output.
	Progress io.Writer

	// Store enables the snapshot step when non-nil.
	Store *history.Store
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineSkipSections sets top-level keys to leave out of the workbook.
func WithPipelineSkipSections(keys []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.SkipSections = keys
	}
}

// WithPipelineProgress sets the writer receiving per-section progress lines.
func WithPipelineProgress(w io.Writer) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Progress = w
	}
}

// WithPipelineSnapshots enables the snapshot step against the given store.
func WithPipelineSnapshots(store *history.Store) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Store = store
	}
}

// DefaultPipeline creates a pipeline with the standard generation steps in
// order: load, build, write, style, and, when a store is configured,
// snapshot.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineSnapshots, etc).
func DefaultPipeline(mode config.Mode, layout table.Layout, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{}
	for _, opt := range configOpts {
		opt(cfg)
	}

	buildOpts := make([]BuildStepOption, 0)
	if cfg.Progress != nil {
		buildOpts = append(buildOpts, WithBuildProgress(cfg.Progress))
	}
	if len(cfg.SkipSections) > 0 {
		buildOpts = append(buildOpts, WithSkipSections(cfg.SkipSections))
	}

	p.AddSteps(
		NewLoadStep(mode),
		NewBuildStep(layout, buildOpts...),
		NewWriteStep(layout),
		NewStyleStep(layout),
	)

	if cfg.Store != nil {
		p.AddStep(NewSnapshotStep(cfg.Store))
	}

	return p
}
