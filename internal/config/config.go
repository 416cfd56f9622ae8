package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Mode selects how the loader locates the schema content inside the input
// document.
type Mode string

const (
	// ModeDirect treats the whole loaded document as the content. Every
	// top-level key becomes one sheet and the workbook gains an index sheet
	// listing the top-level keys and their types.
	ModeDirect Mode = "direct"

	// ModeEnvelope expects the document to wrap the content in an envelope
	// object, selected by filename convention: a name containing "output"
	// selects the "result" key, a name containing "input" selects the
	// "content" key, and any other name is rejected. When the selected key is
	// missing or empty the whole document is used as a fallback. The index
	// sheet is omitted in this mode unless explicitly enabled.
	ModeEnvelope Mode = "envelope"
)

// Valid reports whether m is one of the defined content modes.
func (m Mode) Valid() bool {
	return m == ModeDirect || m == ModeEnvelope
}

// Default configuration values.
const (
	// DefaultInputPath is the JSON file processed when no positional
	// arguments are given. It mirrors the conventional project layout where
	// the schema model lives under data/.
	DefaultInputPath = "data/input_model.json"

	// DefaultMode is the content mode used when neither the --mode flag nor
	// the configuration file picks one.
	DefaultMode = ModeDirect

	// AppName is the application name used for XDG directory paths.
	AppName = "jsondict"
)

// Config holds all generation options for jsondict.
// It is populated from CLI flags and the optional configuration file, then
// passed through the application via dependency injection rather than global
// state. One Config describes one invocation; per-source overrides from the
// configuration file are resolved per input file with GetSourceConfig.
type Config struct {
	// Targets is the list of input JSON file paths to document.
	// Must contain at least one path; the CLI falls back to DefaultInputPath
	// when no positional arguments are given.
	Targets []string

	// OutputPath is an explicit workbook destination. When empty, each input
	// derives its output path by swapping the .json extension for .xlsx.
	// Only valid with a single target.
	OutputPath string

	// Mode selects direct-content or envelope-content loading.
	Mode Mode

	// IndexSheet forces the top-level key index sheet on or off.
	// When nil, the index follows the mode: included for ModeDirect,
	// omitted for ModeEnvelope.
	IndexSheet *bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .jsondict.yaml in the current
	// directory, the XDG config directory, and the user's home directory.
	ConfigFilePath string

	// FileConfig holds per-source settings and label overrides loaded from
	// the configuration file. Populated by LoadConfigFile; nil when no
	// configuration file exists.
	FileConfig *File

	// JSONReport additionally renders the generated dictionary as JSON.
	// Mutually exclusive with MarkdownReport. The xlsx workbook is always
	// written regardless of report flags.
	JSONReport bool

	// MarkdownReport additionally renders the generated dictionary as
	// GitHub Flavored Markdown. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the JSON/Markdown report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// SaveHistory persists each generated dictionary to the local snapshot
	// store so the compare command can diff runs. Enabled by default;
	// disabled with --no-history.
	SaveHistory bool

	// HistoryDir is the directory holding the snapshot database.
	// When empty, the XDG data directory is used.
	HistoryDir string
}

// NewConfig creates a new Config with default values: direct-content mode
// with history saving enabled. Targets is left empty; the CLI fills it from
// positional arguments or DefaultInputPath.
func NewConfig() *Config {
	return &Config{
		Mode:        DefaultMode,
		SaveHistory: true,
	}
}

// ShouldIncludeIndex reports whether the workbook gets the top-level key
// index sheet. An explicit IndexSheet setting wins; otherwise the index is
// included exactly in direct mode.
func (c *Config) ShouldIncludeIndex() bool {
	if c.IndexSheet != nil {
		return *c.IndexSheet
	}
	return c.Mode == ModeDirect
}

// XDGDataDir returns the XDG data directory for jsondict.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/jsondict
// On macOS: ~/Library/Application Support/jsondict
// On Windows: %LOCALAPPDATA%\jsondict
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for jsondict.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/jsondict
// On macOS: ~/Library/Application Support/jsondict
// On Windows: %APPDATA%\jsondict
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid. Validation happens
// once after CLI parsing, before any file is read, and returns the first
// error found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if !c.Mode.Valid() {
		return ErrInvalidMode
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// An explicit output path cannot serve several workbooks
	if c.OutputPath != "" && len(c.Targets) != 1 {
		return ErrOutputWithMultipleTargets
	}

	return nil
}
