// Package document loads the input JSON file and resolves which part of it
// holds the schema content to be documented. It preserves the document's own
// key order, which Go maps would lose, so sheets come out in the same order
// as the source file.
package document
