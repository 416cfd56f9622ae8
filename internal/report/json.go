package report

import (
	"encoding/json"
	"io"

	"github.com/jsondict/jsondict/internal/model"
)

// JSONWriter outputs dictionaries and drift in JSON format for tool
// integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the dictionary in JSON format.
func (w *JSONWriter) Write(dict *model.Dictionary) (int, error) {
	return w.writeJSON(dict)
}

// WriteDrift outputs the drift comparison in JSON format.
func (w *JSONWriter) WriteDrift(drift *model.Drift) (int, error) {
	return w.writeJSON(drift)
}

// writeJSON marshals the given value and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output.
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a dictionary with generator metadata for complete
// machine-readable output.
type JSONReport struct {
	// Version is the jsondict version that generated this dictionary.
	Version string `json:"version"`

	// Dictionary is the generated dictionary.
	Dictionary *model.Dictionary `json:"dictionary"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(dict *model.Dictionary, version string) *JSONReport {
	return &JSONReport{
		Version:    version,
		Dictionary: dict,
	}
}

// FullJSONWriter outputs dictionaries wrapped with generator metadata.
type FullJSONWriter struct {
	*JSONWriter

	// version is the jsondict version string.
	version string
}

// NewFullJSONWriter creates a writer for wrapped dictionary output.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the dictionary wrapped with metadata.
func (w *FullJSONWriter) Write(dict *model.Dictionary) (int, error) {
	return w.writeJSON(NewJSONReport(dict, w.version))
}
