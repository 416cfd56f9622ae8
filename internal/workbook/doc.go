// Package workbook persists dictionaries as xlsx files and formats them.
//
// Generation is two full round-trips over the file: Write renders the index
// sheet and every section table into a new workbook and saves it, then Style
// reopens the saved file, applies the documentation formatting, and saves it
// again. The styler works from cell values alone, so it can also reformat a
// workbook generated earlier.
package workbook
