package workbook

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/jsondict/jsondict/internal/table"
)

// widthPadding is added to the longest value of a column to size it.
const widthPadding = 8

// Style reopens the workbook at path, formats every sheet, and saves it
// back in place. Displayed values are never changed:
//
//   - header row: bold, on top of the base formatting
//   - every cell: centered with thin borders on all sides
//   - type column: palette fill per type name, unmapped names unfilled
//   - required column: green for the affirmative token, red for the
//     negative one, compared case-insensitively
//   - key columns: vertically-contiguous equal cells merged, runs longer
//     than one cell only
//   - every column sized to its longest value, every sheet auto-filtered
//     over the used range
func Style(path string, layout table.Layout) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	for _, name := range f.GetSheetList() {
		if err := styleSheet(f, name, layout, styles); err != nil {
			return fmt.Errorf("failed to style sheet %q: %w", name, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// styleSet holds the style IDs registered on one workbook. IDs are only
// valid for the file that created them.
type styleSet struct {
	base   int
	header int
	fills  map[string]int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	base, err := f.NewStyle(&excelize.Style{Alignment: center, Border: border})
	if err != nil {
		return nil, fmt.Errorf("failed to register base style: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Alignment: center,
		Border:    border,
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register header style: %w", err)
	}

	fills := make(map[string]int)
	for _, color := range []string{
		ColorInt, ColorFloat, ColorString, ColorList, ColorDict, ColorBool,
		ColorYes, ColorNo,
	} {
		// Fill styles carry the base formatting too: a cell has a single
		// style, so the fill cannot be layered on afterwards.
		id, err := f.NewStyle(&excelize.Style{
			Alignment: center,
			Border:    border,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to register fill style %s: %w", color, err)
		}
		fills[color] = id
	}

	return &styleSet{base: base, header: header, fills: fills}, nil
}

func styleSheet(f *excelize.File, name string, layout table.Layout, styles *styleSet) error {
	grid, err := f.GetRows(name)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return nil
	}

	rowCount := len(grid)
	colCount := 0
	for _, row := range grid {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	lastCell, err := excelize.CoordinatesToCellName(colCount, rowCount)
	if err != nil {
		return err
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(colCount, 1)
	if err != nil {
		return err
	}

	if rowCount > 1 {
		if err := f.SetCellStyle(name, "A2", lastCell, styles.base); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(name, "A1", lastHeaderCell, styles.header); err != nil {
		return err
	}

	for c := 0; c < colCount; c++ {
		header := cellAt(grid, 0, c)

		if err := fitColumn(f, name, grid, c); err != nil {
			return err
		}
		if header == layout.Type {
			if err := fillTypeCells(f, name, grid, c, styles); err != nil {
				return err
			}
		}
		if header == layout.Required {
			if err := fillRequiredCells(f, name, grid, c, layout, styles); err != nil {
				return err
			}
		}
		if layout.IsKeyColumn(header) {
			if err := mergeEqualRuns(f, name, grid, c); err != nil {
				return err
			}
		}
	}

	return f.AutoFilter(name, "A1:"+lastCell, nil)
}

// cellAt returns one cell of the read-back grid, empty when the row stops
// short of the column.
func cellAt(grid [][]string, row, col int) string {
	if row >= len(grid) || col >= len(grid[row]) {
		return ""
	}
	return grid[row][col]
}

// fitColumn sizes one column to its longest value plus the fixed padding.
func fitColumn(f *excelize.File, sheet string, grid [][]string, col int) error {
	maxLen := 0
	for r := range grid {
		if n := utf8.RuneCountInString(cellAt(grid, r, col)); n > maxLen {
			maxLen = n
		}
	}

	colName, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return err
	}
	width := float64(maxLen + widthPadding)
	if width > excelize.MaxColumnWidth {
		width = excelize.MaxColumnWidth
	}
	return f.SetColWidth(sheet, colName, colName, width)
}

// fillTypeCells applies the type palette to mapped values in one column.
func fillTypeCells(f *excelize.File, sheet string, grid [][]string, col int, styles *styleSet) error {
	for r := range grid {
		color, ok := TypeFill(cellAt(grid, r, col))
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.fills[color]); err != nil {
			return err
		}
	}
	return nil
}

// fillRequiredCells colors the required flag cells of one column: green for
// the affirmative token, red for the negative one.
func fillRequiredCells(f *excelize.File, sheet string, grid [][]string, col int, layout table.Layout, styles *styleSet) error {
	for r := range grid {
		value := cellAt(grid, r, col)

		var color string
		switch {
		case strings.EqualFold(value, layout.RequiredYes):
			color = ColorYes
		case strings.EqualFold(value, layout.RequiredNo):
			color = ColorNo
		default:
			continue
		}

		cell, err := excelize.CoordinatesToCellName(col+1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.fills[color]); err != nil {
			return err
		}
	}
	return nil
}

// mergeEqualRuns merges vertically-contiguous equal cells in one column,
// anchored on the top cell of each run. Empty cells never start a run: they
// are what an earlier merge left behind, so skipping them keeps reformatting
// an already-styled workbook from stacking overlapping merges.
func mergeEqualRuns(f *excelize.File, sheet string, grid [][]string, col int) error {
	start := 0
	for start < len(grid) {
		value := cellAt(grid, start, col)
		end := start + 1
		for value != "" && end < len(grid) && cellAt(grid, end, col) == value {
			end++
		}

		if end-start > 1 {
			top, err := excelize.CoordinatesToCellName(col+1, start+1)
			if err != nil {
				return err
			}
			bottom, err := excelize.CoordinatesToCellName(col+1, end)
			if err != nil {
				return err
			}
			if err := f.MergeCell(sheet, top, bottom); err != nil {
				return err
			}
		}
		start = end
	}
	return nil
}
