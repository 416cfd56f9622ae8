// Package table turns flattened records into rectangular section tables:
// level columns by key depth, the fixed documentation columns, placeholder
// fill, and the leading-key deduplication. The Layout type carries every
// label written into the workbook so the sheet text can be swapped without
// touching the build logic.
package table
