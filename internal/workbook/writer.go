package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jsondict/jsondict/internal/model"
	"github.com/jsondict/jsondict/internal/table"
)

// sheet is one renderable worksheet: its name and rectangular cell rows,
// header row first.
type sheet struct {
	name string
	rows [][]any
}

// Write renders the dictionary as a new xlsx workbook at its output path:
// the index sheet first when enabled, then one sheet per section table in
// document order. The file is saved unstyled; Style formats it in a second
// pass.
func Write(dict *model.Dictionary, layout table.Layout) error {
	sheets := planSheets(dict, layout)
	if len(sheets) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSheets, dict.SourcePath)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		// A fresh workbook starts with one default sheet; the first sheet
		// written takes its place so no empty sheet survives.
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("failed to create sheet %q: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", s.name, err)
		}

		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("failed to write sheet %q row %d: %w", s.name, r+1, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(dict.OutputPath); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", dict.OutputPath, err)
	}
	return nil
}

// planSheets lays the dictionary out as ordered worksheets. An enabled but
// empty index produces no sheet.
func planSheets(dict *model.Dictionary, layout table.Layout) []sheet {
	sheets := make([]sheet, 0, len(dict.Tables)+1)

	if dict.IncludeIndex && len(dict.Index) > 0 {
		rows := make([][]any, 0, len(dict.Index)+1)
		rows = append(rows, headerCells(layout.IndexHeaders()))
		for _, entry := range dict.Index {
			rows = append(rows, []any{entry.Key, entry.TypeName})
		}
		sheets = append(sheets, sheet{name: layout.IndexSheet, rows: rows})
	}

	for _, t := range dict.Tables {
		rows := make([][]any, 0, len(t.Rows)+1)
		rows = append(rows, headerCells(t.Columns))
		for _, row := range t.Rows {
			rows = append(rows, row.Cells())
		}
		sheets = append(sheets, sheet{name: t.Name, rows: rows})
	}
	return sheets
}

func headerCells(headers []string) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
