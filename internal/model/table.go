package model

import "strings"

// DocFields holds the hand-filled documentation cells of one row. The
// builder initializes all of them to the placeholder except the required
// flag, which defaults to the affirmative token.
type DocFields struct {
	// Unit is the field's unit of measure.
	Unit string `json:"unit"`

	// Meaning is the field's human description.
	Meaning string `json:"meaning"`

	// Required is the required flag token (e.g. "SIM"/"NÃO").
	Required string `json:"required"`

	// Observations holds free-form notes.
	Observations string `json:"observations"`

	// MinBound is the minimum allowed value, as text.
	MinBound string `json:"min_bound"`

	// MaxBound is the maximum allowed value, as text.
	MaxBound string `json:"max_bound"`
}

// Row is one sheet row of a section table.
type Row struct {
	// Levels holds the key-path segments padded to the table's depth with
	// the placeholder, shallowest first.
	Levels []string `json:"levels"`

	// Example is the example value with its native scalar type preserved,
	// so numbers land in the workbook as numbers.
	Example any `json:"example"`

	// TypeName is the field's inferred type name.
	TypeName string `json:"type_name"`

	// Docs holds the documentation cells.
	Docs DocFields `json:"docs"`
}

// Cells returns the row's cell values in column order: the level cells,
// then example, type, unit, meaning, required, observations, minimum bound,
// and maximum bound.
func (r Row) Cells() []any {
	cells := make([]any, 0, len(r.Levels)+8)
	for _, level := range r.Levels {
		cells = append(cells, level)
	}
	return append(cells,
		r.Example,
		r.TypeName,
		r.Docs.Unit,
		r.Docs.Meaning,
		r.Docs.Required,
		r.Docs.Observations,
		r.Docs.MinBound,
		r.Docs.MaxBound,
	)
}

// Path joins the row's meaningful level cells with dots, stopping at the
// first placeholder pad. It identifies the field for drift comparison.
func (r Row) Path(placeholder string) string {
	segments := make([]string, 0, len(r.Levels))
	for _, level := range r.Levels {
		if level == placeholder {
			break
		}
		segments = append(segments, level)
	}
	return strings.Join(segments, ".")
}

// SectionTable is one top-level section rendered as a rectangular table,
// ready to persist as a sheet.
type SectionTable struct {
	// Name is the top-level key; it names the sheet.
	Name string `json:"name"`

	// Depth is the deepest key-path length among the section's records.
	// The table has one level column per depth rank.
	Depth int `json:"depth"`

	// Columns holds the ordered header labels.
	Columns []string `json:"columns"`

	// Rows holds the table rows, deduplicated and sorted by their leading
	// key cells.
	Rows []Row `json:"rows"`
}

// FieldCount returns the number of documented fields (rows) in the table.
func (t *SectionTable) FieldCount() int {
	return len(t.Rows)
}
