// Package model defines the core data structures shared across jsondict:
// flattened schema records, section tables, and the generated dictionary.
// Types here avoid dependencies on the generation pipeline so every layer
// (flattening, workbook writing, reporting, history) can share them.
package model
