// Package pipeline orchestrates the dictionary generation stages.
//
// A generation run is a sequence of steps executed in order against one
// Dictionary: load the JSON document, build the section tables, write the
// workbook, style it in a second save round-trip, and optionally store a
// history snapshot. The pipeline checks for context cancellation between
// steps and aborts on the first failing step; there is no partial-success
// mode.
package pipeline
