package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jsondict/jsondict/internal/config"
)

// Envelope keys selected by file name convention in envelope mode.
const (
	// OutputEnvelopeKey wraps the content of files whose base name contains
	// "output".
	OutputEnvelopeKey = "result"

	// InputEnvelopeKey wraps the content of files whose base name contains
	// "input".
	InputEnvelopeKey = "content"
)

// Document is the loaded input file: the parsed JSON tree plus the resolved
// content selection. It is read-only after Load.
type Document struct {
	// Path is the input file path as given to Load.
	Path string

	// Mode is the content mode the document was loaded with.
	Mode config.Mode

	// ContentKey is the envelope key whose value was selected as content.
	// Empty in direct mode and when envelope mode fell back to the whole
	// document.
	ContentKey string

	content gjson.Result
}

// Section is one top-level key/value pair of the content. Each section with
// at least one documentable field becomes one sheet.
type Section struct {
	// Key is the top-level key; it names the sheet.
	Key string

	// Value is the section's parsed JSON value.
	Value gjson.Result
}

// Load reads and parses the JSON file at path and resolves its content per
// mode. It returns ErrInvalidJSON for unparseable files, ErrEmptyDocument
// for empty/falsy documents, ErrNotObject when the document root or the
// selected envelope content cannot be iterated as top-level sections, and
// ErrUnknownEnvelope when envelope mode cannot derive a content key from the
// file's base name.
func Load(path string, mode config.Mode) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, path)
	}

	root := gjson.ParseBytes(data)
	if !isTruthy(root) {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: document root in %s", ErrNotObject, path)
	}

	doc := &Document{
		Path:    path,
		Mode:    mode,
		content: root,
	}

	if mode == config.ModeEnvelope {
		key, err := envelopeKey(filepath.Base(path))
		if err != nil {
			return nil, err
		}

		// A missing or empty envelope value falls back to the whole document.
		if selected := root.Get(key); isTruthy(selected) {
			if !selected.IsObject() {
				return nil, fmt.Errorf("%w: envelope key %q in %s", ErrNotObject, key, path)
			}
			doc.ContentKey = key
			doc.content = selected
		}
	}

	return doc, nil
}

// Sections returns the content's top-level key/value pairs in document
// order.
func (d *Document) Sections() []Section {
	sections := make([]Section, 0)
	d.content.ForEach(func(key, value gjson.Result) bool {
		sections = append(sections, Section{Key: key.String(), Value: value})
		return true
	})
	return sections
}

// SectionCount returns the number of top-level keys in the content.
func (d *Document) SectionCount() int {
	return len(d.Sections())
}

// envelopeKey derives the envelope content key from the file's base name.
// "output" takes precedence over "input" when the name contains both.
func envelopeKey(name string) (string, error) {
	switch {
	case strings.Contains(name, "output"):
		return OutputEnvelopeKey, nil
	case strings.Contains(name, "input"):
		return InputEnvelopeKey, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownEnvelope, name)
	}
}

// isTruthy reports whether a JSON value has content: non-empty objects,
// arrays, and strings, non-zero numbers, and true. Missing values, null,
// empty containers, empty strings, zero, and false are all empty.
func isTruthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch {
	case v.IsObject() || v.IsArray():
		hasChild := false
		v.ForEach(func(_, _ gjson.Result) bool {
			hasChild = true
			return false
		})
		return hasChild
	case v.Type == gjson.String:
		return v.Str != ""
	case v.Type == gjson.Number:
		return v.Num != 0
	case v.Type == gjson.True:
		return true
	default:
		// null and false
		return false
	}
}
