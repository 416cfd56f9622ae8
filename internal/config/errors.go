package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and LoadConfigFile() and
// provide specific information about what is wrong with the configuration.
// Callers use errors.Is() for programmatic handling while the messages stay
// human-readable on the console.
var (
	// ErrNoTarget is returned when no input JSON file is specified.
	// This occurs when neither a positional argument nor the default
	// input path resolves to a target list.
	ErrNoTarget = errors.New("no input specified: provide a JSON file path")

	// ErrInvalidMode is returned when the content mode is neither
	// "direct" nor "envelope".
	ErrInvalidMode = errors.New(`invalid content mode: must be "direct" or "envelope"`)

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one report format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrOutputWithMultipleTargets is returned when --output is combined with
	// more than one input file. An explicit workbook path can only name a
	// single destination; multiple inputs derive their own output paths.
	ErrOutputWithMultipleTargets = errors.New("explicit output path requires exactly one input file")

	// ErrInvalidLevelLabels is returned when the labels.levels override in the
	// configuration file does not contain exactly six entries. The fixed label
	// table covers key depths one through six; deeper levels keep their
	// generic rank names.
	ErrInvalidLevelLabels = errors.New("invalid level labels: exactly six labels are required")
)
