// Package flatten walks a JSON section and extracts one record per
// documentable leaf: the key path, the inferred type name, and an example
// value. Traversal preserves document key order and never descends past the
// first element of an array.
package flatten
