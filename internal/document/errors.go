package document

import "errors"

// Loader errors. All of them are fatal: the pipeline writes no output file
// when loading fails.
var (
	// ErrEmptyDocument is returned when the loaded JSON document is empty:
	// an empty object, empty array, empty string, zero, false, or null.
	ErrEmptyDocument = errors.New("the JSON document is empty")

	// ErrNotObject is returned when the document root (or the selected
	// envelope content) is not a JSON object. Sections can only be derived
	// from an object's top-level keys.
	ErrNotObject = errors.New("the JSON content is not an object")

	// ErrUnknownEnvelope is returned in envelope mode when the file name
	// contains neither "input" nor "output", so no content key can be
	// selected.
	ErrUnknownEnvelope = errors.New(`unrecognized envelope: file name must contain "input" or "output"`)

	// ErrInvalidJSON is returned when the file is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON document")
)
