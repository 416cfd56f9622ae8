package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/jsondict/jsondict/internal/model"
)

// MarkdownWriter outputs dictionaries and drift in Markdown format for
// documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the dictionary in Markdown format: a metadata table, the
// index when present, and one table per section.
func (w *MarkdownWriter) Write(dict *model.Dictionary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Data Dictionary")
	md.PlainText("")

	rows := [][]string{
		{"Source", "`" + dict.SourcePath + "`"},
		{"Workbook", "`" + dict.OutputPath + "`"},
		{"Mode", dict.Mode},
	}
	if dict.EnvelopeKey != "" {
		rows = append(rows, []string{"Envelope", "`" + dict.EnvelopeKey + "`"})
	}
	rows = append(rows,
		[]string{"Generated", dict.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		[]string{"Sections", strconv.Itoa(dict.SectionCount())},
		[]string{"Fields", strconv.Itoa(dict.FieldCount())},
	)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if dict.IncludeIndex && len(dict.Index) > 0 {
		w.writeIndex(md, dict)
	}
	for _, t := range dict.Tables {
		w.writeSection(md, t)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteDrift outputs the drift comparison in Markdown format.
func (w *MarkdownWriter) WriteDrift(drift *model.Drift) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Schema Drift")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + drift.SourcePath + "`"},
			{"From", w.generationText(drift.FromSnapshot, drift.FromGeneratedAt)},
			{"To", w.generationText(drift.ToSnapshot, drift.ToGeneratedAt)},
			{"Changes", strconv.Itoa(drift.TotalChanges())},
		},
	})
	md.PlainText("")

	if !drift.HasChanges() {
		md.PlainText("No schema changes detected.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	if len(drift.Added) > 0 {
		md.H2("Added")
		md.PlainText("")
		rows := make([][]string, len(drift.Added))
		for i, entry := range drift.Added {
			rows[i] = []string{"`" + entry.Field + "`", entry.TypeName}
		}
		md.Table(markdown.TableSet{Header: []string{"Field", "Type"}, Rows: rows})
		md.PlainText("")
	}

	if len(drift.Removed) > 0 {
		md.H2("Removed")
		md.PlainText("")
		rows := make([][]string, len(drift.Removed))
		for i, entry := range drift.Removed {
			rows[i] = []string{"`" + entry.Field + "`", entry.TypeName}
		}
		md.Table(markdown.TableSet{Header: []string{"Field", "Type"}, Rows: rows})
		md.PlainText("")
	}

	if len(drift.Changed) > 0 {
		md.H2("Type Changes")
		md.PlainText("")
		rows := make([][]string, len(drift.Changed))
		for i, change := range drift.Changed {
			rows[i] = []string{"`" + change.Field + "`", change.OldType, change.NewType}
		}
		md.Table(markdown.TableSet{Header: []string{"Field", "Old Type", "New Type"}, Rows: rows})
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeIndex writes the top-level key index.
func (w *MarkdownWriter) writeIndex(md *markdown.Markdown, dict *model.Dictionary) {
	md.H2("Index")
	md.PlainText("")

	rows := make([][]string, len(dict.Index))
	for i, entry := range dict.Index {
		rows[i] = []string{"`" + entry.Key + "`", entry.TypeName}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Key", "Type"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSection writes one section table with its sheet columns.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, t *model.SectionTable) {
	md.H2(t.Name)
	md.PlainText("")

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := row.Cells()
		text := make([]string, len(cells))
		for j, cell := range cells {
			text[j] = fmt.Sprint(cell)
		}
		rows[i] = text
	}
	md.Table(markdown.TableSet{
		Header: t.Columns,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by jsondict*")
}

// generationText formats one side of the comparison, with the snapshot ID
// when the dictionary came from the history store.
func (w *MarkdownWriter) generationText(snapshotID int64, generatedAt time.Time) string {
	stamp := generatedAt.Format("2006-01-02 15:04:05 MST")
	if snapshotID > 0 {
		return fmt.Sprintf("snapshot %d (%s)", snapshotID, stamp)
	}
	return stamp
}
