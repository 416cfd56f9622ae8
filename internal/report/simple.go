package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jsondict/jsondict/internal/model"
)

// ruleWidth is the width of the section rules in text output.
const ruleWidth = 70

// SimpleWriter outputs human-readable text summaries. The format is plain
// ASCII so it pipes cleanly to files and other tools.
type SimpleWriter struct {
	baseWriter

	// verbose adds a per-section breakdown to dictionary summaries.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-section breakdown.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs a dictionary summary in human-readable format.
func (w *SimpleWriter) Write(dict *model.Dictionary) (int, error) {
	var sb strings.Builder

	w.writeTitle(&sb, "DATA DICTIONARY")

	sb.WriteString(fmt.Sprintf("Source:      %s\n", dict.SourcePath))
	sb.WriteString(fmt.Sprintf("Workbook:    %s\n", dict.OutputPath))
	sb.WriteString(fmt.Sprintf("Mode:        %s\n", dict.Mode))
	if dict.EnvelopeKey != "" {
		sb.WriteString(fmt.Sprintf("Envelope:    %s\n", dict.EnvelopeKey))
	}
	sb.WriteString(fmt.Sprintf("Generated:   %s\n", dict.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Sections:    %d\n", dict.SectionCount()))
	sb.WriteString(fmt.Sprintf("Fields:      %d\n", dict.FieldCount()))
	sb.WriteString("\n")

	if w.verbose && len(dict.Tables) > 0 {
		w.writeRule(&sb, "SECTIONS")
		for _, t := range dict.Tables {
			sb.WriteString(fmt.Sprintf("  %-30s %3d fields  (depth %d)\n", t.Name, t.FieldCount(), t.Depth))
		}
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteDrift outputs a schema drift comparison in human-readable format.
func (w *SimpleWriter) WriteDrift(drift *model.Drift) (int, error) {
	var sb strings.Builder

	w.writeTitle(&sb, "SCHEMA DRIFT")

	sb.WriteString(fmt.Sprintf("Source:      %s\n", drift.SourcePath))
	sb.WriteString(fmt.Sprintf("From:        %s\n", w.generationText(drift.FromSnapshot, drift.FromGeneratedAt)))
	sb.WriteString(fmt.Sprintf("To:          %s\n", w.generationText(drift.ToSnapshot, drift.ToGeneratedAt)))
	sb.WriteString("\n")

	if !drift.HasChanges() {
		sb.WriteString("No schema changes detected.\n")
		return w.output.Write([]byte(sb.String()))
	}

	sb.WriteString(fmt.Sprintf("  ADDED:    %d\n", len(drift.Added)))
	sb.WriteString(fmt.Sprintf("  REMOVED:  %d\n", len(drift.Removed)))
	sb.WriteString(fmt.Sprintf("  CHANGED:  %d\n", len(drift.Changed)))
	sb.WriteString("\n")

	if len(drift.Added) > 0 {
		w.writeRule(&sb, "ADDED")
		for _, entry := range drift.Added {
			sb.WriteString(fmt.Sprintf("  + %s (%s)\n", entry.Field, entry.TypeName))
		}
		sb.WriteString("\n")
	}
	if len(drift.Removed) > 0 {
		w.writeRule(&sb, "REMOVED")
		for _, entry := range drift.Removed {
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", entry.Field, entry.TypeName))
		}
		sb.WriteString("\n")
	}
	if len(drift.Changed) > 0 {
		w.writeRule(&sb, "TYPE CHANGES")
		for _, change := range drift.Changed {
			sb.WriteString(fmt.Sprintf("  ~ %s: %s -> %s\n", change.Field, change.OldType, change.NewType))
		}
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// writeTitle writes the centered banner that opens every text report.
func (w *SimpleWriter) writeTitle(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	pad := (ruleWidth - len(title)) / 2
	if pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

// writeRule writes a section heading between dashed rules.
func (w *SimpleWriter) writeRule(sb *strings.Builder, heading string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(heading)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// generationText formats one side of the comparison, with the snapshot ID
// when the dictionary came from the history store.
func (w *SimpleWriter) generationText(snapshotID int64, generatedAt time.Time) string {
	stamp := generatedAt.Format("2006-01-02 15:04:05 MST")
	if snapshotID > 0 {
		return fmt.Sprintf("snapshot %d (%s)", snapshotID, stamp)
	}
	return stamp
}
