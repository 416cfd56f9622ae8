package model

import (
	"sort"
	"time"
)

// DriftEntry is one field present on only one side of a comparison.
type DriftEntry struct {
	// Field is the fully qualified field: the section key and the row's
	// key path, dot-joined.
	Field string `json:"field"`

	// TypeName is the field's inferred type name.
	TypeName string `json:"type_name"`
}

// FieldChange is one field whose inferred type changed between two
// generations.
type FieldChange struct {
	// Field is the fully qualified field.
	Field string `json:"field"`

	// OldType is the type name in the older generation.
	OldType string `json:"old_type"`

	// NewType is the type name in the newer generation.
	NewType string `json:"new_type"`
}

// Drift is the schema difference between two generations of the same source
// document: fields that appeared, disappeared, or changed type.
type Drift struct {
	// SourcePath is the compared source document.
	SourcePath string `json:"source_path"`

	// FromSnapshot and ToSnapshot are history snapshot IDs. They stay zero
	// when the compared dictionaries did not come from the store.
	FromSnapshot int64 `json:"from_snapshot,omitempty"`
	ToSnapshot   int64 `json:"to_snapshot,omitempty"`

	// FromGeneratedAt and ToGeneratedAt stamp the compared generations.
	FromGeneratedAt time.Time `json:"from_generated_at"`
	ToGeneratedAt   time.Time `json:"to_generated_at"`

	// Added lists fields present only in the newer generation.
	Added []DriftEntry `json:"added"`

	// Removed lists fields present only in the older generation.
	Removed []DriftEntry `json:"removed"`

	// Changed lists fields whose type name differs between generations.
	Changed []FieldChange `json:"changed"`
}

// NewDrift compares two generations of one source document. Fields are
// keyed by the section key plus the row's key path; the placeholder marks
// padded level cells to stop at. Every list comes out sorted by field name.
func NewDrift(previous, current *Dictionary, placeholder string) *Drift {
	drift := &Drift{
		SourcePath:      current.SourcePath,
		FromGeneratedAt: previous.GeneratedAt,
		ToGeneratedAt:   current.GeneratedAt,
	}

	oldFields := fieldTypes(previous, placeholder)
	newFields := fieldTypes(current, placeholder)

	for field, typeName := range newFields {
		oldType, ok := oldFields[field]
		switch {
		case !ok:
			drift.Added = append(drift.Added, DriftEntry{Field: field, TypeName: typeName})
		case oldType != typeName:
			drift.Changed = append(drift.Changed, FieldChange{Field: field, OldType: oldType, NewType: typeName})
		}
	}
	for field, typeName := range oldFields {
		if _, ok := newFields[field]; !ok {
			drift.Removed = append(drift.Removed, DriftEntry{Field: field, TypeName: typeName})
		}
	}

	sort.Slice(drift.Added, func(i, j int) bool { return drift.Added[i].Field < drift.Added[j].Field })
	sort.Slice(drift.Removed, func(i, j int) bool { return drift.Removed[i].Field < drift.Removed[j].Field })
	sort.Slice(drift.Changed, func(i, j int) bool { return drift.Changed[i].Field < drift.Changed[j].Field })

	return drift
}

// HasChanges reports whether any field was added, removed, or retyped.
func (d *Drift) HasChanges() bool {
	return len(d.Added)+len(d.Removed)+len(d.Changed) > 0
}

// TotalChanges returns the number of drifted fields.
func (d *Drift) TotalChanges() int {
	return len(d.Added) + len(d.Removed) + len(d.Changed)
}

// fieldTypes flattens a dictionary into field-to-type pairs.
func fieldTypes(dict *Dictionary, placeholder string) map[string]string {
	fields := make(map[string]string)
	for _, t := range dict.Tables {
		for _, row := range t.Rows {
			field := t.Name
			if path := row.Path(placeholder); path != "" {
				field += "." + path
			}
			fields[field] = row.TypeName
		}
	}
	return fields
}
