package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jsondict/jsondict/internal/config"
	"github.com/jsondict/jsondict/internal/history"
	"github.com/jsondict/jsondict/internal/log"
	"github.com/jsondict/jsondict/internal/model"
	"github.com/jsondict/jsondict/internal/pipeline"
	"github.com/jsondict/jsondict/internal/report"
	"github.com/jsondict/jsondict/internal/table"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [file.json ...]",
		Short: "Generate xlsx data dictionaries from JSON documents",
		Long: `Generate converts JSON documents into styled xlsx data dictionaries.

Every top-level key of the document becomes one worksheet. Each scalar
field becomes one row carrying its key path, inferred type, and example
value, next to the documentation columns analysts fill in by hand:
unit, meaning, required flag, observations, and value bounds.

In direct mode (the default) the whole document is the content and the
workbook opens with an index sheet of the top-level keys. In envelope
mode the content is unwrapped first: file names containing "output"
select the "result" key, names containing "input" select the "content"
key.

Examples:
  # Document the default input (data/input_model.json)
  jsondict generate

  # Document explicit files
  jsondict generate model.json other_model.json

  # Unwrap an envelope document
  jsondict generate --mode envelope output_model.json

  # Pick the workbook destination
  jsondict generate -o dictionary.xlsx model.json

  # Additionally print the dictionary as Markdown
  jsondict generate -m model.json

  # Use a custom configuration file
  jsondict generate -c myconfig.yaml model.json

Configuration file (.jsondict.yaml) example:
  defaults:
    mode: direct
    history: true
  sources:
    output_model.json:
      mode: envelope
      skipSections: [debug]
  labels:
    type: Tipo
    requiredYes: SIM`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerateCmd,
	}

	// Content interpretation flags
	cmd.Flags().String("mode", string(config.DefaultMode),
		`Content mode: "direct" documents the whole file, "envelope" unwraps it first`)
	cmd.Flags().Bool("index", false,
		"Force the top-level key index sheet on or off (default: on in direct mode)")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Workbook destination path (single input only; default: input with .xlsx extension)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .jsondict.yaml in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Additionally render the dictionary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Additionally render the dictionary as Markdown (mutually exclusive with --json)")
	cmd.Flags().String("report-file", "",
		"Write the JSON/Markdown report to this file instead of stdout")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Skip saving the generated dictionary to the snapshot store")
	cmd.Flags().String("history-dir", "",
		"Directory holding the snapshot database (default: XDG data directory)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	return executeGenerate(cmd, cfg)
}

// executeGenerate validates the configuration, wires up logging and signal
// cancellation, and runs the generation pipeline. It is shared by the
// generate command and the bare root invocation.
func executeGenerate(cmd *cobra.Command, cfg *config.Config) error {
	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	cfg.Verbose = getVerboseFlag(cmd)
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runGenerate(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return nil, err
	}
	cfg.Mode = config.Mode(mode)

	// The index flag is tri-state: left unset it follows the mode
	if cmd.Flags().Changed("index") {
		index, err := cmd.Flags().GetBool("index")
		if err != nil {
			return nil, err
		}
		cfg.IndexSheet = &index
	}

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := resolveFileConfig(cfg); err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report-file")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.HistoryDir, err = cmd.Flags().GetString("history-dir")
	if err != nil {
		return nil, err
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = config.XDGDataDir()
	}

	// Get positional arguments (input files)
	cfg.Targets = args
	if len(cfg.Targets) == 0 {
		cfg.Targets = []string{config.DefaultInputPath}
	}

	return cfg, nil
}

// resolveFileConfig loads per-source settings and label overrides from the
// configuration file into cfg.
// If the user explicitly specified a config file path, error if not found.
// If no path specified, silently use empty config if no file found.
func resolveFileConfig(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		fileConfig, err := config.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.FileConfig = fileConfig
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.FileConfig = &config.File{
			Sources: make(map[string]config.SourceConfig),
		}
	}

	return nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Oversized attribute values such as JSON fragments come out truncated so
// one large document cannot flood the terminal.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// runGenerate executes the generation pipeline for every target.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting generation",
		"targets", cfg.Targets,
		"mode", cfg.Mode,
		"saveHistory", cfg.SaveHistory,
	)

	// Open the snapshot store once if any target saves history
	var store *history.Store
	if needsHistory(cfg) {
		var err error
		store, err = history.Open(cfg.HistoryDir, history.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()
		logger.Info("history store opened", "dir", cfg.HistoryDir)
	}

	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := generateOne(ctx, cfg, target, store, logger); err != nil {
			return fmt.Errorf("failed to document %s: %w", target, err)
		}
	}

	return nil
}

// generateOne documents a single input file through the full pipeline:
// load, build, write, style, and optionally snapshot.
func generateOne(ctx context.Context, cfg *config.Config, target string, store *history.Store, logger *slog.Logger) error {
	srcCfg := sourceConfig(cfg, target)

	// A per-source mode from the configuration file wins over the flag
	mode := cfg.Mode
	if srcCfg.Mode != "" {
		mode = config.Mode(srcCfg.Mode)
		if !mode.Valid() {
			return fmt.Errorf("configuration error for %s: %w", filepath.Base(target), config.ErrInvalidMode)
		}
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(target)
	}

	dict := model.NewDictionary(target, outputPath)
	dict.IncludeIndex = includeIndex(cfg, srcCfg, mode)

	p := createPipeline(cfg, srcCfg, mode, store, logger)
	if err := p.Execute(ctx, dict); err != nil {
		return err
	}

	fmt.Printf("Excel file generated: %s\n", outputPath)

	// Additionally render the dictionary when a report was requested
	if cfg.JSONReport || cfg.MarkdownReport || cfg.ReportFile != "" {
		if err := outputReport(cfg, dict); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return nil
}

// sourceConfig returns the configuration file settings for one target,
// identified by its base name. Falls back to the file's defaults section.
func sourceConfig(cfg *config.Config, target string) config.SourceConfig {
	if cfg.FileConfig == nil {
		return config.SourceConfig{}
	}
	return cfg.FileConfig.GetSourceConfig(filepath.Base(target))
}

// sourceSavesHistory resolves the snapshot decision for one target: a
// per-source history setting from the configuration file wins over the
// global flag.
func sourceSavesHistory(cfg *config.Config, srcCfg config.SourceConfig) bool {
	if srcCfg.History != nil {
		return *srcCfg.History
	}
	return cfg.SaveHistory
}

// needsHistory reports whether any target persists a snapshot, deciding
// whether the store is opened at all.
func needsHistory(cfg *config.Config) bool {
	for _, target := range cfg.Targets {
		if sourceSavesHistory(cfg, sourceConfig(cfg, target)) {
			return true
		}
	}
	return false
}

// includeIndex resolves the index-sheet decision for one target: the
// per-source setting wins, then the --index flag, then the mode default
// (on for direct, off for envelope).
func includeIndex(cfg *config.Config, srcCfg config.SourceConfig, mode config.Mode) bool {
	if srcCfg.Index != nil {
		return *srcCfg.Index
	}
	if cfg.IndexSheet != nil {
		return *cfg.IndexSheet
	}
	return mode == config.ModeDirect
}

// defaultOutputPath derives the workbook path from the input path by
// swapping its extension for .xlsx.
func defaultOutputPath(target string) string {
	return strings.TrimSuffix(target, filepath.Ext(target)) + ".xlsx"
}

// createPipeline assembles the generation pipeline for one target with its
// resolved per-source settings.
func createPipeline(cfg *config.Config, srcCfg config.SourceConfig, mode config.Mode, store *history.Store, logger *slog.Logger) *pipeline.Pipeline {
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := make([]pipeline.DefaultPipelineOption, 0)
	if len(srcCfg.SkipSections) > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineSkipSections(srcCfg.SkipSections))
	}
	if store != nil && sourceSavesHistory(cfg, srcCfg) {
		configOpts = append(configOpts, pipeline.WithPipelineSnapshots(store))
	}

	return pipeline.DefaultPipeline(mode, buildLayout(cfg), pipelineOpts, configOpts...)
}

// buildLayout produces the sheet layout: the conventional Portuguese
// defaults with any label overrides from the configuration file applied.
func buildLayout(cfg *config.Config) table.Layout {
	layout := table.DefaultLayout()
	if cfg.FileConfig == nil {
		return layout
	}

	// Override with non-empty values
	labels := cfg.FileConfig.Labels
	if len(labels.Levels) == table.FixedLevelCount {
		layout.LevelLabels = labels.Levels
	}
	if labels.GenericLevel != "" {
		layout.GenericLevelFormat = labels.GenericLevel
	}
	if labels.Example != "" {
		layout.Example = labels.Example
	}
	if labels.Type != "" {
		layout.Type = labels.Type
	}
	if labels.Unit != "" {
		layout.Unit = labels.Unit
	}
	if labels.Meaning != "" {
		layout.Meaning = labels.Meaning
	}
	if labels.Required != "" {
		layout.Required = labels.Required
	}
	if labels.Observations != "" {
		layout.Observations = labels.Observations
	}
	if labels.MinBound != "" {
		layout.MinBound = labels.MinBound
	}
	if labels.MaxBound != "" {
		layout.MaxBound = labels.MaxBound
	}
	if labels.RequiredYes != "" {
		layout.RequiredYes = labels.RequiredYes
	}
	if labels.RequiredNo != "" {
		layout.RequiredNo = labels.RequiredNo
	}
	if labels.Placeholder != "" {
		layout.Placeholder = labels.Placeholder
	}
	if labels.KeyPrefix != "" {
		layout.KeyPrefix = labels.KeyPrefix
	}
	if labels.IndexSheet != "" {
		layout.IndexSheet = labels.IndexSheet
	}
	if labels.IndexKey != "" {
		layout.IndexKey = labels.IndexKey
	}

	return layout
}

// outputReport renders the generated dictionary in the requested format.
func outputReport(cfg *config.Config, dict *model.Dictionary) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full dictionary with generation metadata)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(dict)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(dict)
		return err
	}

	// Human-readable summary (default when only --report-file is set)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(dict)
	return err
}
