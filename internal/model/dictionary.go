package model

import (
	"time"

	"github.com/jsondict/jsondict/internal/document"
)

// IndexEntry is one row of the index sheet: a top-level key and the type
// name of its value. Every top-level key gets an entry, including scalar
// sections that produce no sheet of their own.
type IndexEntry struct {
	// Key is the top-level key.
	Key string `json:"key"`

	// TypeName is the type name of the key's value.
	TypeName string `json:"type_name"`
}

// Dictionary is the unit flowing through the generation pipeline and
// persisted to the history store: one input document rendered as section
// tables plus generation metadata.
type Dictionary struct {
	// SourcePath is the input JSON file path.
	SourcePath string `json:"source_path"`

	// OutputPath is the xlsx destination path.
	OutputPath string `json:"output_path"`

	// Mode is the content mode the dictionary was generated with
	// ("direct" or "envelope").
	Mode string `json:"mode"`

	// EnvelopeKey is the envelope key the loader selected, empty in direct
	// mode or when envelope mode fell back to the whole document.
	EnvelopeKey string `json:"envelope_key,omitempty"`

	// GeneratedAt is the generation timestamp.
	GeneratedAt time.Time `json:"generated_at"`

	// IncludeIndex records whether the workbook carries the index sheet.
	IncludeIndex bool `json:"include_index"`

	// Index lists every top-level key and its type, in document order.
	Index []IndexEntry `json:"index,omitempty"`

	// Tables holds one section table per documentable top-level key, in
	// document order.
	Tables []*SectionTable `json:"tables"`

	// Doc is the parsed input document. It only lives between the load and
	// flatten steps and never serializes.
	Doc *document.Document `json:"-"`
}

// NewDictionary creates a Dictionary for one input file, stamped with the
// current time.
func NewDictionary(sourcePath, outputPath string) *Dictionary {
	return &Dictionary{
		SourcePath:  sourcePath,
		OutputPath:  outputPath,
		GeneratedAt: time.Now(),
		Tables:      make([]*SectionTable, 0),
	}
}

// AddTable appends a section table.
func (d *Dictionary) AddTable(t *SectionTable) {
	d.Tables = append(d.Tables, t)
}

// AddIndexEntry appends one top-level key to the index.
func (d *Dictionary) AddIndexEntry(key, typeName string) {
	d.Index = append(d.Index, IndexEntry{Key: key, TypeName: typeName})
}

// Table returns the section table with the given name, or nil when the
// section produced no table.
func (d *Dictionary) Table(name string) *SectionTable {
	for _, t := range d.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// SectionCount returns the number of section tables.
func (d *Dictionary) SectionCount() int {
	return len(d.Tables)
}

// FieldCount returns the number of documented fields across all tables.
func (d *Dictionary) FieldCount() int {
	count := 0
	for _, t := range d.Tables {
		count += t.FieldCount()
	}
	return count
}
