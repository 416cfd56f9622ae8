// Package main provides the entry point for the jsondict CLI.
//
// jsondict converts JSON documents into multi-sheet xlsx data dictionaries:
// one sheet per top-level key, one row per scalar leaf with its key path,
// inferred type, and example value, next to the documentation columns
// analysts fill in by hand.
//
// Usage:
//
//	jsondict generate model.json
//	jsondict generate --mode envelope output_model.json
//
// See --help for all available options.
package main

// main is the entry point for jsondict.
func main() {
	Execute()
}
