package workbook

import "errors"

// ErrNoSheets is returned by Write when the dictionary holds neither
// section tables nor index entries, so there is nothing to persist.
var ErrNoSheets = errors.New("no sheets to write")
