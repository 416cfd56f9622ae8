package report

import (
	"io"

	"github.com/jsondict/jsondict/internal/model"
)

// Writer defines the interface for report output. Implementations render
// dictionaries and drift comparisons in one format.
type Writer interface {
	// Write outputs the dictionary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(dict *model.Dictionary) (int, error)

	// WriteDrift outputs a schema drift comparison.
	WriteDrift(drift *model.Drift) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
